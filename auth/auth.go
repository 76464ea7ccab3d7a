// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrInvalidPassword = errors.New("invalid password")
	ErrMissingToken    = errors.New("missing token")
)

// NewID returns a random UUID string for database records
func NewID() string {
	return uuid.NewString()
}

// GenerateToken creates a random hex token of 32 bytes (256 bits)
func GenerateToken() (string, error) {
	b := make([]byte, 32)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// CheckPassword compares a submitted password with the configured one in
// constant time. Both sides are hashed first so the length is not leaked.
func CheckPassword(given, expected string) error {
	g := sha256.Sum256([]byte(given))
	e := sha256.Sum256([]byte(expected))
	if expected == "" || !hmac.Equal(g[:], e[:]) {
		return ErrInvalidPassword
	}
	return nil
}

// BearerToken extracts the token from an Authorization header value.
// Both "Bearer <token>" and a bare token are accepted.
func BearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		header = strings.TrimSpace(header[7:])
	}
	if header == "" {
		return "", ErrMissingToken
	}
	return header, nil
}
