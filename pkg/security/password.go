// Package security provides password hashing for stored credentials.
package security

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	apperrors "feedback-service/pkg/errors"
)

// BcryptHasher hashes and verifies passwords with bcrypt.
// Each hash embeds its own random salt and cost.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a hasher with the given cost.
// Costs outside bcrypt's accepted range fall back to bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Cost returns the bcrypt cost used for new hashes
func (h *BcryptHasher) Cost() int {
	return h.cost
}

// Hash generates a salted hash from a plaintext password.
func (h *BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", apperrors.NewValidationError("password", "must be at most 72 bytes long")
		}
		return "", apperrors.NewInternalError("failed to hash password", err)
	}
	return string(hash), nil
}

// Check reports whether password produced hash.
// bcrypt compares the derived keys in constant time; malformed hashes never match.
func (h *BcryptHasher) Check(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
