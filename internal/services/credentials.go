package services

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Password storage pipeline: sha256 → base64 → bcrypt → hex.
//
// Plaintext is digested first because bcrypt silently truncates input past
// 72 bytes; the base64-encoded digest is a fixed 44 bytes regardless of
// password length. The bcrypt output (salt embedded) is hex-encoded for
// the password column.

// HashPassword produces the storable credential for a plaintext password.
func HashPassword(plaintext string, cost int) (string, error) {
	digest := sha256.Sum256([]byte(plaintext))
	encoded := []byte(base64.StdEncoding.EncodeToString(digest[:]))

	hash, err := bcrypt.GenerateFromPassword(encoded, cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return hex.EncodeToString(hash), nil
}

// CheckPassword reports whether plaintext matches a stored credential.
// A malformed stored form is an error, not a false.
func CheckPassword(plaintext, stored string) (bool, error) {
	raw, err := hex.DecodeString(stored)
	if err != nil {
		return false, fmt.Errorf("malformed stored credential: %w", err)
	}

	digest := sha256.Sum256([]byte(plaintext))
	encoded := []byte(base64.StdEncoding.EncodeToString(digest[:]))

	err = bcrypt.CompareHashAndPassword(raw, encoded)
	if err == nil {
		return true, nil
	}
	if err == bcrypt.ErrMismatchedHashAndPassword {
		return false, nil
	}
	return false, fmt.Errorf("malformed stored credential: %w", err)
}
