// Package credentials owns password hashing and verification.
//
// Stored credentials are bcrypt hashes: salted, adaptive-cost, and
// one-way. Hashing the same plaintext twice yields different
// credentials because bcrypt generates a fresh random salt per call,
// and verification runs in constant time with respect to the plaintext.
package credentials

import (
	"golang.org/x/crypto/bcrypt"
)

// Store hashes and verifies passwords at a fixed bcrypt cost.
type Store struct {
	cost int
}

// NewStore returns a Store with the given bcrypt cost. Costs outside
// bcrypt's supported range fall back to the library default.
func NewStore(cost int) *Store {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Store{cost: cost}
}

// Hash derives an opaque credential from the plaintext password.
func (s *Store) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), s.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether plaintext matches the stored credential.
// Failure is a plain false; the caller never learns whether the
// credential was malformed or the password wrong.
func (s *Store) Verify(plaintext, credential string) bool {
	return bcrypt.CompareHashAndPassword([]byte(credential), []byte(plaintext)) == nil
}
