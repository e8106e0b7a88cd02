// Copyright (c) 2025 The digital-ballot-college Authors.
// Licensed under the MIT License. See LICENSE.

package auth

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/maliknivodhit/digital-ballot-college/models"
)

func TestGenerateOrganizerKey(t *testing.T) {
	tests := []struct {
		name   string
		userID string
		salt   string
	}{
		{"standard", "user123", "secret-salt"},
		{"empty user id", "", "salt"},
		{"empty salt", "user456", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := GenerateOrganizerKey(tt.userID, tt.salt)

			// Should not be empty
			if key == "" {
				t.Error("GenerateOrganizerKey() returned empty string")
			}

			// Should be deterministic
			key2 := GenerateOrganizerKey(tt.userID, tt.salt)
			if key != key2 {
				t.Error("GenerateOrganizerKey() is not deterministic")
			}

			// Different inputs should produce different keys
			if tt.userID != "" && tt.salt != "" {
				differentKey := GenerateOrganizerKey(tt.userID+"x", tt.salt)
				if key == differentKey {
					t.Error("GenerateOrganizerKey() produced same key for different user IDs")
				}
			}

			// Should be URL-safe (no padding)
			if strings.Contains(key, "=") {
				t.Error("GenerateOrganizerKey() contains padding characters")
			}
		})
	}
}

func TestValidateOrganizerKey(t *testing.T) {
	userID := "organizer-123"
	salt := "test-salt"
	validKey := GenerateOrganizerKey(userID, salt)

	tests := []struct {
		name    string
		userID  string
		key     string
		salt    string
		wantErr bool
	}{
		{"valid key", userID, validKey, salt, false},
		{"wrong key", userID, "wrong-key", salt, true},
		{"wrong user id", "different-user", validKey, salt, true},
		{"wrong salt", userID, validKey, "different-salt", true},
		{"empty key", userID, "", salt, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOrganizerKey(tt.userID, tt.key, tt.salt)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOrganizerKey() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && err != ErrInvalidOrganizerKey {
				t.Errorf("ValidateOrganizerKey() error = %v, want %v", err, ErrInvalidOrganizerKey)
			}
		})
	}
}

func TestHeaderProviderIdentify(t *testing.T) {
	salt := "test-salt"
	provider := NewHeaderProvider(salt)

	tests := []struct {
		name     string
		headers  map[string]string
		wantErr  error
		wantRole string
	}{
		{
			name:    "missing user id",
			headers: map[string]string{},
			wantErr: ErrMissingIdentity,
		},
		{
			name:     "voter",
			headers:  map[string]string{HeaderUserID: "voter-1"},
			wantRole: models.RoleVoter,
		},
		{
			name: "organizer",
			headers: map[string]string{
				HeaderUserID:       "org-1",
				HeaderOrganizerKey: GenerateOrganizerKey("org-1", salt),
			},
			wantRole: models.RoleOrganizer,
		},
		{
			name: "organizer key for another user",
			headers: map[string]string{
				HeaderUserID:       "voter-1",
				HeaderOrganizerKey: GenerateOrganizerKey("org-1", salt),
			},
			wantErr: ErrInvalidOrganizerKey,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}

			id, err := provider.Identify(req)
			if err != tt.wantErr {
				t.Fatalf("Identify() error = %v, want %v", err, tt.wantErr)
			}
			if err == nil && id.Role != tt.wantRole {
				t.Errorf("Identify() role = %q, want %q", id.Role, tt.wantRole)
			}
		})
	}
}
