package shop

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Verifier checks an admin secret.
type Verifier interface {
	Verify(secret string) bool
}

// Rekeyer is implemented by verifiers that can produce a replacement
// verifier of the same kind for a new secret.
type Rekeyer interface {
	Rekey(secret string) (Verifier, error)
}

// PlaintextVerifier compares against a shared secret held in memory.
type PlaintextVerifier struct {
	secret []byte
}

func NewPlaintextVerifier(secret string) PlaintextVerifier {
	return PlaintextVerifier{secret: []byte(secret)}
}

func (v PlaintextVerifier) Verify(secret string) bool {
	if len(v.secret) == 0 {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(secret), v.secret) == 1
}

func (v PlaintextVerifier) Rekey(secret string) (Verifier, error) {
	return NewPlaintextVerifier(secret), nil
}

// BcryptVerifier compares against a bcrypt hash.
type BcryptVerifier struct {
	hash []byte
	cost int
}

// NewBcryptVerifier wraps an existing hash, e.g. one printed by cmd/hashpw.
func NewBcryptVerifier(hash string) (*BcryptVerifier, error) {
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		return nil, fmt.Errorf("parse bcrypt hash: %w", err)
	}
	return &BcryptVerifier{hash: []byte(hash), cost: cost}, nil
}

func (v *BcryptVerifier) Verify(secret string) bool {
	return bcrypt.CompareHashAndPassword(v.hash, []byte(secret)) == nil
}

// Rekey hashes the new secret with the cost of the current hash.
func (v *BcryptVerifier) Rekey(secret string) (Verifier, error) {
	hash, err := HashSecret(secret, v.cost)
	if err != nil {
		return nil, err
	}
	return &BcryptVerifier{hash: []byte(hash), cost: v.cost}, nil
}

// HashSecret returns a bcrypt hash of secret. A cost of 0 uses bcrypt.DefaultCost.
func HashSecret(secret string, cost int) (string, error) {
	if secret == "" {
		return "", ErrEmptyPassword
	}
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
	if err != nil {
		return "", fmt.Errorf("hash secret: %w", err)
	}
	return string(hash), nil
}
