// Filmatlas - Movie Recommendation Service
// Copyright 2026 Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

// Package auth provides JWT-based authentication for the HTTP API:
// token creation and validation (HS256), bcrypt password hashing, and
// the middleware that guards protected routes.
package auth
