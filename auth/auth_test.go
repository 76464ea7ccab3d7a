// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth_test

import (
	"errors"
	"testing"

	"github.com/danielhkuo/whisky-survey/auth"
	"github.com/google/uuid"
)

func TestNewID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := auth.NewID()
		if _, err := uuid.Parse(id); err != nil {
			t.Fatalf("NewID() returned invalid UUID %q: %v", id, err)
		}
		if seen[id] {
			t.Fatalf("NewID() returned duplicate %q", id)
		}
		seen[id] = true
	}
}

func TestGenerateToken(t *testing.T) {
	a, err := auth.GenerateToken()
	if err != nil {
		t.Fatalf("GenerateToken() error: %v", err)
	}
	b, err := auth.GenerateToken()
	if err != nil {
		t.Fatalf("GenerateToken() error: %v", err)
	}

	if len(a) != 64 {
		t.Errorf("Expected 64 hex chars, got %d", len(a))
	}
	if a == b {
		t.Error("Expected two different tokens")
	}
}

func TestCheckPassword(t *testing.T) {
	tests := []struct {
		name     string
		given    string
		expected string
		wantErr  bool
	}{
		{"match", "WhiskyTasting123!", "WhiskyTasting123!", false},
		{"mismatch", "wrong", "WhiskyTasting123!", true},
		{"prefix", "Whisky", "WhiskyTasting123!", true},
		{"empty given", "", "secret", true},
		{"empty expected never matches", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := auth.CheckPassword(tt.given, tt.expected)
			if tt.wantErr && !errors.Is(err, auth.ErrInvalidPassword) {
				t.Errorf("Expected ErrInvalidPassword, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Expected no error, got %v", err)
			}
		})
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr bool
	}{
		{"Bearer abc123", "abc123", false},
		{"bearer abc123", "abc123", false},
		{"abc123", "abc123", false},
		{"  Bearer   abc123  ", "abc123", false},
		{"", "", true},
		{"Bearer ", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			got, err := auth.BearerToken(tt.header)
			if tt.wantErr {
				if !errors.Is(err, auth.ErrMissingToken) {
					t.Errorf("Expected ErrMissingToken, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("BearerToken(%q) = %q, want %q", tt.header, got, tt.want)
			}
		})
	}
}
