// Filmatlas - Movie Recommendation Service
// Copyright 2026 Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

// Package services adapts application components to the suture v4
// supervision model. Each wrapper implements suture.Service, turning a
// component's native lifecycle (ListenAndServe/Shutdown, periodic
// jobs) into a single context-aware Serve method, and fmt.Stringer so
// the supervisor can name it in log messages.
package services
