// Filmatlas - Movie Recommendation Service
// Copyright 2026 Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

package models

import (
	"fmt"
	"net/mail"
	"time"
)

// User is an account that can rate movies and request recommendations.
// PasswordHash is a bcrypt hash and is never serialized.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

const (
	minUsernameLen = 3
	maxUsernameLen = 64
)

// Validate checks the user record before it is written.
func (u *User) Validate() error {
	if u.ID == "" {
		return fmt.Errorf("user id is required")
	}
	if l := len(u.Username); l < minUsernameLen || l > maxUsernameLen {
		return fmt.Errorf("user %s: username must be %d-%d characters", u.ID, minUsernameLen, maxUsernameLen)
	}
	if u.Email != "" {
		if _, err := mail.ParseAddress(u.Email); err != nil {
			return fmt.Errorf("user %s: invalid email: %w", u.ID, err)
		}
	}
	if u.PasswordHash == "" {
		return fmt.Errorf("user %s: password hash is required", u.ID)
	}
	return nil
}
