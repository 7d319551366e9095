package place

import (
	"fmt"
	"strings"
)

// Place is read-only reference data shared by many matches.
type Place struct {
	ID      string
	Name    string
	Address string
}

func (p Place) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("place id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("place name is required")
	}
	return nil
}

const DefaultID = "example-place"

// Default is the court every fresh installation is seeded with.
func Default() Place {
	return Place{
		ID:      DefaultID,
		Name:    "Quadra Principal",
		Address: "Rua do Basquete, 123 - Recife, PE",
	}
}
