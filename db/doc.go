// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and creates the schema.

Two dialects are supported: PostgreSQL through lib/pq and SQLite
through modernc.org/sqlite. SQLite is the default and is what the test
suite runs against.

# Opening

	conn, err := db.Open(ctx, db.SQLite, "file:app.db")
	if err != nil {
		log.Fatal(err)
	}
	if err := db.CreateSchema(ctx, conn, db.SQLite); err != nil {
		log.Fatal(err)
	}

SQLite pools are capped at a single connection. Every transaction is
therefore serialized, and code holding a transaction must not issue
queries on the pool itself.

# Constraints

Uniqueness rules live in the schema:

  - users.email
  - group_memberships.(group_id, user_id)
  - event_organizers.(event_id, user_id)
  - event_participants.(event_id, user_id)
  - poll_votes.(question_id, voter_id)
  - tickets.(ticket_type_id, purchaser_email)
  - shopping_list_items.(event_id, name)

IsUniqueViolation and IsForeignKeyViolation classify driver errors so
callers can map them to client-facing errors.
*/
package db
