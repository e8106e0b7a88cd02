// Copyright (c) 2025 The digital-ballot-college Authors.
// Licensed under the MIT License. See LICENSE.

package handlers

import (
	"errors"
	"net/http"

	"github.com/maliknivodhit/digital-ballot-college/auth"
	"github.com/maliknivodhit/digital-ballot-college/middleware"
)

// identify resolves the caller or writes a 401.
func identify(w http.ResponseWriter, r *http.Request, p auth.Provider) (auth.Identity, bool) {
	id, err := p.Identify(r)
	if errors.Is(err, auth.ErrInvalidOrganizerKey) {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid organizer key")
		return auth.Identity{}, false
	}
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, auth.HeaderUserID+" header is required")
		return auth.Identity{}, false
	}
	return id, true
}

// requireOrganizer resolves the caller and writes a 403 unless they hold
// organizer rights.
func requireOrganizer(w http.ResponseWriter, r *http.Request, p auth.Provider) (auth.Identity, bool) {
	id, ok := identify(w, r, p)
	if !ok {
		return auth.Identity{}, false
	}
	if !id.IsOrganizer() {
		middleware.ErrorResponse(w, http.StatusForbidden, "Organizer access required")
		return auth.Identity{}, false
	}
	return id, true
}
