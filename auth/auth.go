// Copyright (c) 2025 The digital-ballot-college Authors.
// Licensed under the MIT License. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"

	"github.com/maliknivodhit/digital-ballot-college/models"
)

const (
	HeaderUserID       = "X-User-ID"
	HeaderOrganizerKey = "X-Organizer-Key"
)

var (
	ErrMissingIdentity     = errors.New("missing user identity")
	ErrInvalidOrganizerKey = errors.New("invalid organizer key")
)

// Identity is the caller as established by the identity provider.
// The id is trusted as-is; no credential verification happens here.
type Identity struct {
	UserID string
	Role   string
}

func (i Identity) IsOrganizer() bool {
	return i.Role == models.RoleOrganizer
}

// Provider resolves the caller of a request.
type Provider interface {
	Identify(r *http.Request) (Identity, error)
}

// HeaderProvider reads identity from request headers set by the upstream
// identity provider. A request carries organizer rights only when its
// organizer key matches the HMAC of its user id.
type HeaderProvider struct {
	Salt string
}

func NewHeaderProvider(salt string) HeaderProvider {
	return HeaderProvider{Salt: salt}
}

func (p HeaderProvider) Identify(r *http.Request) (Identity, error) {
	userID := strings.TrimSpace(r.Header.Get(HeaderUserID))
	if userID == "" {
		return Identity{}, ErrMissingIdentity
	}

	key := r.Header.Get(HeaderOrganizerKey)
	if key == "" {
		return Identity{UserID: userID, Role: models.RoleVoter}, nil
	}
	if err := ValidateOrganizerKey(userID, key, p.Salt); err != nil {
		return Identity{}, err
	}
	return Identity{UserID: userID, Role: models.RoleOrganizer}, nil
}

// GenerateOrganizerKey creates an HMAC-based organizer key for a user
// This is deterministic and verifiable
func GenerateOrganizerKey(userID, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(userID))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cleaner keys
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateOrganizerKey checks if the provided organizer key is valid for the user
func ValidateOrganizerKey(userID, key, salt string) error {
	expected := GenerateOrganizerKey(userID, salt)
	if !hmac.Equal([]byte(key), []byte(expected)) {
		return ErrInvalidOrganizerKey
	}
	return nil
}
