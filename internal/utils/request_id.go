package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"
)

// RequestIDLength is the number of hex characters in a request id.
const RequestIDLength = 16

// HashRequestID derives a request identifier from its inputs.
//
// The millisecond timestamp, the random token and the client address are
// concatenated, hashed with SHA-256, and the first [RequestIDLength]
// lowercase hex characters of the digest are returned. The function is pure:
// identical inputs always yield the identical id.
//
// Example usage:
//
//	id := utils.HashRequestID(time.Now(), "k3j5h2", "203.0.113.7")
func HashRequestID(ts time.Time, token, clientAddr string) string {
	sum := sha256.Sum256([]byte(strconv.FormatInt(ts.UnixMilli(), 10) + token + clientAddr))
	return hex.EncodeToString(sum[:])[:RequestIDLength]
}

// RequestIDGenerator produces correlation ids for inbound requests.
// It holds no state between calls and is safe for concurrent use as long as
// its [TokenSource] is.
type RequestIDGenerator struct {
	tokens TokenSource
	now    func() time.Time
}

// NewRequestIDGenerator returns a generator drawing randomness from tokens.
// A nil tokens falls back to [UUIDGenerator].
func NewRequestIDGenerator(tokens TokenSource) *RequestIDGenerator {
	if tokens == nil {
		tokens = NewUUIDGenerator()
	}
	return &RequestIDGenerator{tokens: tokens, now: time.Now}
}

// Generate returns a fresh request id for a client at clientAddr.
func (g *RequestIDGenerator) Generate(clientAddr string) string {
	return HashRequestID(g.now(), g.tokens.Generate(), clientAddr)
}
