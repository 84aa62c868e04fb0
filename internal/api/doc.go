// Filmatlas - Movie Recommendation Service
// Copyright 2026 Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

// Package api provides the HTTP surface of Filmatlas using the Chi
// router: account endpoints, catalog, rating, review, and watchlist
// endpoints, the four recommendation endpoints and the nearby-theater
// lookup.
//
// Every response uses the models.APIResponse envelope. Recommendation
// failures distinguish "dataset is unusable" (EMPTY_DATASET or
// DATA_INTEGRITY, 5xx) from "nothing to recommend for this user"
// (200 with an empty list).
package api
