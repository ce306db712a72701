package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher derives a one-way salted hash from a plaintext credential.
// Verification is deliberately absent: authentication happens upstream.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
}

type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
