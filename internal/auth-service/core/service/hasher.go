package service

import (
	"fmt"

	"driver-auth/internal/auth-service/core/ports/driven"

	"golang.org/x/crypto/bcrypt"
)

const HashFactor = 10

type bcryptHasher struct {
	cost int
}

var _ driven.IPasswordHasher = (*bcryptHasher)(nil)

func NewBcryptHasher() driven.IPasswordHasher {
	return &bcryptHasher{cost: HashFactor}
}

// NewBcryptHasherWithCost is meant for tests that want a cheaper work factor.
func NewBcryptHasherWithCost(cost int) driven.IPasswordHasher {
	return &bcryptHasher{cost: cost}
}

func (h *bcryptHasher) Hash(password string) ([]byte, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return nil, fmt.Errorf("bcrypt: %w", err)
	}
	return bytes, nil
}

func (h *bcryptHasher) Check(password string, hash []byte) bool {
	return bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil
}
