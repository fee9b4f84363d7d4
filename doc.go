// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the social network API server.

The server manages users, groups, events and the features hanging off an
event: discussions, photo albums, polls, ticketing, a shared shopping
list and carpooling.

# Starting the Server

With defaults the server uses a local SQLite file:

	go run .

PostgreSQL:

	DATABASE_TYPE=postgres DATABASE_URL=postgres://... go run .

Or with flags:

	go run . -p 8000 -t postgres -d "postgres://..." --secret-key s3cret

# Configuration

Settings come from defaults, then a YAML file (--config), then the
environment (including values loaded from .env), then flags:

  - PORT (-p): server port (default: 8000)
  - DATABASE_URL (-d): connection string (default: file:app.db)
  - DATABASE_TYPE (-t): sqlite or postgres, sqlite3 and postgresql also accepted (default: sqlite)
  - SECRET_KEY (--secret-key): JWT signing secret
  - ACCESS_TOKEN_EXPIRE_MINUTES (--token-expire-minutes): 15 to 1440
  - ALGORITHM (--algorithm): HS256, HS384 or HS512
  - ALLOWED_ORIGINS (--allowed-origins): CORS origins (default: *)
  - API_PREFIX (--api-prefix): route prefix (default: /api)

# Architecture

  - handlers: HTTP request handlers, one per resource family
  - router: route definitions using Go 1.22+ routing
  - middleware: request IDs, logging, bearer auth, validation, CORS
  - service: domain engines, one transaction per operation
  - guards: authorization predicates
  - store: typed queries inside transactions
  - db: connection, schema and constraint classification
  - auth: bcrypt passwords and JWT tokens
  - apperr: error kinds and HTTP status mapping
  - models: request/response types
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
