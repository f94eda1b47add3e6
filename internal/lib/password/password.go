// Package password hashes and checks account passwords with bcrypt.
//
// The stored form is bcrypt's modular-crypt string ($2a$<cost>$<salt><digest>),
// so every hash carries the parameters needed to verify it.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultCost = 12
	// MaxBytes is bcrypt's input limit.
	MaxBytes = 72
)

var (
	ErrCostOutOfRange = errors.New("bcrypt cost out of range")
	ErrTooLong        = bcrypt.ErrPasswordTooLong
)

type Hasher struct {
	cost int
}

func New(cost int) (*Hasher, error) {
	const op = "password.New"

	if cost == 0 {
		cost = DefaultCost
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("%s: %w: %d", op, ErrCostOutOfRange, cost)
	}

	return &Hasher{cost: cost}, nil
}

// Hash salts and hashes plain. Two calls with the same input never return the same string.
func (h *Hasher) Hash(plain string) ([]byte, error) {
	const op = "password.Hash"

	hash, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return hash, nil
}

// Verify reports whether plain matches hash, using the cost and salt embedded in hash.
func (h *Hasher) Verify(plain string, hash []byte) bool {
	return bcrypt.CompareHashAndPassword(hash, []byte(plain)) == nil
}
