package storage

import (
	"errors"
	"fmt"
	"strings"
)

// Driver selects the repository implementation the app wires.
type Driver string

const (
	DriverPostgres Driver = "postgres"
	DriverMemory   Driver = "memory"
)

// ErrUnavailable marks failures caused by the store being unreachable rather than by the
// request itself.
var ErrUnavailable = errors.New("storage unavailable")

func ParseDriver(raw string) (Driver, error) {
	switch Driver(strings.ToLower(strings.TrimSpace(raw))) {
	case "", DriverPostgres:
		return DriverPostgres, nil
	case DriverMemory:
		return DriverMemory, nil
	default:
		return "", fmt.Errorf("unsupported storage driver %q (expected postgres or memory)", raw)
	}
}
