// Package utils holds small general-purpose helpers shared across the
// possync application.
package utils

import "github.com/google/uuid"

// UUIDGenerator produces stable identifiers for devices, entities and
// bills. Version 7 UUIDs are time-ordered, which keeps locally generated
// ids roughly chronological in the store.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
