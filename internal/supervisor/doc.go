// Filmatlas - Movie Recommendation Service
// Copyright 2026 Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

/*
Package supervisor provides process supervision for Filmatlas using suture v4.

Long-running components are organized into a small tree for failure
isolation:

	Root ("filmatlas")
	├── DataSupervisor ("data-layer")
	│   └── MaintenanceService (aggregate refresh)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

A panicking maintenance job is restarted with backoff without
disturbing the HTTP server, and vice versa. Service wrappers live in
the services subpackage.
*/
package supervisor
