// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(ctx context.Context, conn *sql.DB, dialect Dialect) error {
	for _, stmt := range statements(dialect) {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// statements splits the schema into single statements with the
// dialect's primary key column type filled in. Some drivers refuse
// multi-statement Exec.
func statements(dialect Dialect) []string {
	pk := "BIGSERIAL PRIMARY KEY"
	if dialect == SQLite {
		pk = "INTEGER PRIMARY KEY AUTOINCREMENT"
	}
	full := strings.ReplaceAll(schema, "{{pk}}", pk)

	var out []string
	for _, stmt := range strings.Split(full, ";") {
		if s := strings.TrimSpace(stmt); s != "" {
			out = append(out, s)
		}
	}
	return out
}

const schema = `
-- Users
CREATE TABLE IF NOT EXISTS users (
    id {{pk}},
    email TEXT NOT NULL UNIQUE,
    full_name TEXT NOT NULL,
    hashed_password TEXT NOT NULL,
    is_active BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMP NOT NULL
);

-- Groups
CREATE TABLE IF NOT EXISTS social_groups (
    id {{pk}},
    name TEXT NOT NULL,
    description TEXT,
    icon TEXT,
    cover_photo TEXT,
    type TEXT NOT NULL CHECK (type IN ('public', 'private', 'secret')),
    allow_member_posts BOOLEAN NOT NULL DEFAULT TRUE,
    allow_member_events BOOLEAN NOT NULL DEFAULT TRUE,
    created_by_id BIGINT NOT NULL REFERENCES users(id),
    created_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS group_memberships (
    id {{pk}},
    group_id BIGINT NOT NULL REFERENCES social_groups(id) ON DELETE CASCADE,
    user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    is_admin BOOLEAN NOT NULL DEFAULT FALSE,
    can_create_events BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMP NOT NULL,
    UNIQUE (group_id, user_id)
);

CREATE INDEX IF NOT EXISTS idx_group_memberships_user_id ON group_memberships(user_id);

-- Events
CREATE TABLE IF NOT EXISTS events (
    id {{pk}},
    name TEXT NOT NULL,
    description TEXT,
    start_date TIMESTAMP NOT NULL,
    end_date TIMESTAMP NOT NULL,
    location TEXT NOT NULL,
    cover_photo TEXT,
    is_private BOOLEAN NOT NULL DEFAULT FALSE,
    created_by_id BIGINT NOT NULL REFERENCES users(id),
    group_id BIGINT REFERENCES social_groups(id) ON DELETE CASCADE,
    carpool_enabled BOOLEAN NOT NULL DEFAULT FALSE,
    shopping_list_enabled BOOLEAN NOT NULL DEFAULT FALSE,
    ticketing_enabled BOOLEAN NOT NULL DEFAULT FALSE,
    polls_enabled BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_events_group_id ON events(group_id);

CREATE TABLE IF NOT EXISTS event_organizers (
    id {{pk}},
    event_id BIGINT NOT NULL REFERENCES events(id) ON DELETE CASCADE,
    user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    created_at TIMESTAMP NOT NULL,
    UNIQUE (event_id, user_id)
);

CREATE TABLE IF NOT EXISTS event_participants (
    id {{pk}},
    event_id BIGINT NOT NULL REFERENCES events(id) ON DELETE CASCADE,
    user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    joined_at TIMESTAMP NOT NULL,
    UNIQUE (event_id, user_id)
);

-- Discussions
CREATE TABLE IF NOT EXISTS discussion_threads (
    id {{pk}},
    title TEXT NOT NULL,
    context TEXT NOT NULL CHECK (context IN ('group', 'event')),
    group_id BIGINT REFERENCES social_groups(id) ON DELETE CASCADE,
    event_id BIGINT REFERENCES events(id) ON DELETE CASCADE,
    created_by_id BIGINT NOT NULL REFERENCES users(id),
    created_at TIMESTAMP NOT NULL,
    CHECK ((context = 'group' AND group_id IS NOT NULL AND event_id IS NULL)
        OR (context = 'event' AND event_id IS NOT NULL AND group_id IS NULL))
);

CREATE TABLE IF NOT EXISTS messages (
    id {{pk}},
    thread_id BIGINT NOT NULL REFERENCES discussion_threads(id) ON DELETE CASCADE,
    author_id BIGINT NOT NULL REFERENCES users(id),
    content TEXT NOT NULL,
    parent_id BIGINT REFERENCES messages(id) ON DELETE CASCADE,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_messages_thread_id ON messages(thread_id);

-- Media
CREATE TABLE IF NOT EXISTS photo_albums (
    id {{pk}},
    name TEXT NOT NULL,
    event_id BIGINT NOT NULL REFERENCES events(id) ON DELETE CASCADE,
    created_by_id BIGINT NOT NULL REFERENCES users(id),
    created_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS photos (
    id {{pk}},
    album_id BIGINT NOT NULL REFERENCES photo_albums(id) ON DELETE CASCADE,
    uploaded_by_id BIGINT NOT NULL REFERENCES users(id),
    url TEXT NOT NULL,
    caption TEXT,
    created_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS photo_comments (
    id {{pk}},
    photo_id BIGINT NOT NULL REFERENCES photos(id) ON DELETE CASCADE,
    author_id BIGINT NOT NULL REFERENCES users(id),
    content TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);

-- Polls
CREATE TABLE IF NOT EXISTS polls (
    id {{pk}},
    event_id BIGINT NOT NULL REFERENCES events(id) ON DELETE CASCADE,
    title TEXT NOT NULL,
    created_by_id BIGINT NOT NULL REFERENCES users(id),
    is_active BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS poll_questions (
    id {{pk}},
    poll_id BIGINT NOT NULL REFERENCES polls(id) ON DELETE CASCADE,
    question TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS poll_options (
    id {{pk}},
    question_id BIGINT NOT NULL REFERENCES poll_questions(id) ON DELETE CASCADE,
    label TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS poll_votes (
    id {{pk}},
    question_id BIGINT NOT NULL REFERENCES poll_questions(id) ON DELETE CASCADE,
    option_id BIGINT NOT NULL REFERENCES poll_options(id) ON DELETE CASCADE,
    voter_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    created_at TIMESTAMP NOT NULL,
    UNIQUE (question_id, voter_id)
);

CREATE INDEX IF NOT EXISTS idx_poll_votes_option_id ON poll_votes(option_id);

-- Ticketing
CREATE TABLE IF NOT EXISTS ticket_types (
    id {{pk}},
    event_id BIGINT NOT NULL REFERENCES events(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    price DOUBLE PRECISION NOT NULL CHECK (price >= 0),
    quantity INTEGER NOT NULL CHECK (quantity >= 0),
    created_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS tickets (
    id {{pk}},
    ticket_type_id BIGINT NOT NULL REFERENCES ticket_types(id) ON DELETE CASCADE,
    purchaser_first_name TEXT NOT NULL,
    purchaser_last_name TEXT NOT NULL,
    purchaser_email TEXT NOT NULL,
    purchaser_address TEXT,
    purchased_at TIMESTAMP NOT NULL,
    UNIQUE (ticket_type_id, purchaser_email)
);

-- Add-ons
CREATE TABLE IF NOT EXISTS shopping_list_items (
    id {{pk}},
    event_id BIGINT NOT NULL REFERENCES events(id) ON DELETE CASCADE,
    owner_id BIGINT NOT NULL REFERENCES users(id),
    name TEXT NOT NULL,
    quantity INTEGER NOT NULL CHECK (quantity >= 1),
    arrival_time TIMESTAMP NOT NULL,
    created_at TIMESTAMP NOT NULL,
    UNIQUE (event_id, name)
);

CREATE TABLE IF NOT EXISTS carpool_offers (
    id {{pk}},
    event_id BIGINT NOT NULL REFERENCES events(id) ON DELETE CASCADE,
    driver_id BIGINT NOT NULL REFERENCES users(id),
    departure_location TEXT NOT NULL,
    departure_time TIMESTAMP NOT NULL,
    price DOUBLE PRECISION NOT NULL CHECK (price >= 0),
    available_seats INTEGER NOT NULL CHECK (available_seats >= 1),
    max_detour_minutes INTEGER NOT NULL CHECK (max_detour_minutes >= 0),
    created_at TIMESTAMP NOT NULL
)
`
