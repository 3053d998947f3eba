package config

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// MinKeyLength is the minimum decoded length of SESSION_KEY and CSRF_KEY.
const MinKeyLength = 32

// Keys holds the decoded cookie signing keys.
type Keys struct {
	Session []byte
	CSRF    []byte

	// Generated lists the variables that were unset and got a random key.
	Generated []string
}

// Keys decodes SESSION_KEY and CSRF_KEY, generating a random key for each
// one that is unset.
func (c *SecurityConfig) Keys() (Keys, error) {
	var k Keys
	var err error

	if k.Session, err = resolveKey(c.SessionKey); err != nil {
		return Keys{}, fmt.Errorf("SESSION_KEY: %w", err)
	}
	if c.SessionKey == "" {
		k.Generated = append(k.Generated, "SESSION_KEY")
	}

	if k.CSRF, err = resolveKey(c.CSRFKey); err != nil {
		return Keys{}, fmt.Errorf("CSRF_KEY: %w", err)
	}
	if c.CSRFKey == "" {
		k.Generated = append(k.Generated, "CSRF_KEY")
	}

	return k, nil
}

func resolveKey(encoded string) ([]byte, error) {
	if encoded == "" {
		key := make([]byte, MinKeyLength)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("generate key: %w", err)
		}
		return key, nil
	}
	return decodeKey(encoded)
}

// decodeKey accepts an empty value (a key will be generated) or base64 of
// at least MinKeyLength bytes. Only the first MinKeyLength bytes are used.
func decodeKey(encoded string) ([]byte, error) {
	if encoded == "" {
		return nil, nil
	}
	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("not valid base64: %w", err)
	}
	if len(key) < MinKeyLength {
		return nil, fmt.Errorf("decoded key is %d bytes, need at least %d", len(key), MinKeyLength)
	}
	return key[:MinKeyLength], nil
}
