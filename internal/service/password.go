package service

import (
	"crypto/subtle"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// PasswordEncoder turns a raw password into its stored form and verifies candidates against it.
type PasswordEncoder interface {
	Encode(raw string) (string, error)
	Matches(raw, encoded string) bool
}

// NewPasswordEncoder resolves an encoder by name: "plain" (default) or "bcrypt".
func NewPasswordEncoder(name string) (PasswordEncoder, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "plain":
		return PlainPasswordEncoder{}, nil
	case "bcrypt":
		return BcryptPasswordEncoder{Cost: bcrypt.DefaultCost}, nil
	default:
		return nil, fmt.Errorf("unknown password encoder %q", name)
	}
}

// PlainPasswordEncoder stores passwords verbatim.
type PlainPasswordEncoder struct{}

func (PlainPasswordEncoder) Encode(raw string) (string, error) { return raw, nil }

func (PlainPasswordEncoder) Matches(raw, encoded string) bool {
	return subtle.ConstantTimeCompare([]byte(raw), []byte(encoded)) == 1
}

type BcryptPasswordEncoder struct {
	Cost int
}

func (e BcryptPasswordEncoder) Encode(raw string) (string, error) {
	cost := e.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (BcryptPasswordEncoder) Matches(raw, encoded string) bool {
	return bcrypt.CompareHashAndPassword([]byte(encoded), []byte(raw)) == nil
}
