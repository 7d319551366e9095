package id

import (
	"fmt"

	"github.com/google/uuid"
)

// Generator creates identifiers for new records.
type Generator interface {
	NewID() (string, error)
}

// UUIDGenerator issues random (v4) UUIDs, matching the uuid columns of the schema.
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) NewID() (string, error) {
	value, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate uuid: %w", err)
	}
	return value.String(), nil
}

// Valid reports whether raw parses as a UUID. Used to reject foreign keys before they reach
// a uuid column.
func Valid(raw string) bool {
	_, err := uuid.Parse(raw)
	return err == nil
}
