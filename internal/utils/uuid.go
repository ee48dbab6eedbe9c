package utils

import "github.com/google/uuid"

// TokenSource produces random tokens mixed into request identifiers.
type TokenSource interface {
	Generate() string
}

// UUIDGenerator is the default [TokenSource]. Every token is a random
// (version 4) UUID.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	return uuid.NewString()
}
