package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Password hasher names accepted by NewPasswordHasher.
const (
	HasherBcrypt = "bcrypt"
	HasherLegacy = "legacy"
)

// PasswordHasher turns plaintext passwords into stored form and checks them.
type PasswordHasher interface {
	Name() string
	Hash(plain string) (string, error)
	Verify(plain, stored string) bool
}

// NewPasswordHasher returns the hasher registered under name.
// An empty name selects bcrypt.
func NewPasswordHasher(name string) (PasswordHasher, error) {
	switch name {
	case "", HasherBcrypt:
		return BcryptHasher{}, nil
	case HasherLegacy:
		return LegacyHasher{}, nil
	default:
		return nil, fmt.Errorf("unknown password hasher %q", name)
	}
}

// bcryptMaxInput is the longest password bcrypt accepts.
const bcryptMaxInput = 72

// BcryptHasher stores salted bcrypt hashes. Passwords longer than bcrypt's
// 72-byte limit are reduced to their base64 SHA-256 digest first.
type BcryptHasher struct {
	// Cost defaults to bcrypt.DefaultCost when zero.
	Cost int
}

func (BcryptHasher) Name() string { return HasherBcrypt }

func (h BcryptHasher) Hash(plain string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword(bcryptInput(plain), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (BcryptHasher) Verify(plain, stored string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), bcryptInput(plain)) == nil
}

func bcryptInput(plain string) []byte {
	if len(plain) <= bcryptMaxInput {
		return []byte(plain)
	}
	sum := sha256.Sum256([]byte(plain))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}

// LegacyHasher stores the standard base64 encoding of the password. It is
// reversible and exists only to read fixtures written by older versions.
type LegacyHasher struct{}

func (LegacyHasher) Name() string { return HasherLegacy }

func (LegacyHasher) Hash(plain string) (string, error) {
	return base64.StdEncoding.EncodeToString([]byte(plain)), nil
}

func (h LegacyHasher) Verify(plain, stored string) bool {
	encoded, _ := h.Hash(plain)
	return subtle.ConstantTimeCompare([]byte(encoded), []byte(stored)) == 1
}
