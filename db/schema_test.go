// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

type testDB struct {
	conn *sql.DB
}

func openTestDB(t *testing.T) *testDB {
	t.Helper()
	ctx := context.Background()
	dsn := "file:" + filepath.Join(t.TempDir(), "schema.db")
	conn, err := Open(ctx, SQLite, dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	if err := CreateSchema(ctx, conn, SQLite); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	return &testDB{conn: conn}
}

func TestCreateSchemaIdempotent(t *testing.T) {
	o := openTestDB(t)
	if err := CreateSchema(context.Background(), o.conn, SQLite); err != nil {
		t.Fatalf("second CreateSchema should succeed: %v", err)
	}
}

func TestStatementsUseDialectPrimaryKey(t *testing.T) {
	for _, stmt := range statements(Postgres) {
		if strings.Contains(stmt, "{{pk}}") || strings.Contains(stmt, "AUTOINCREMENT") {
			t.Fatalf("postgres statement not rendered: %s", stmt)
		}
	}
	lite := strings.Join(statements(SQLite), "\n")
	if !strings.Contains(lite, "INTEGER PRIMARY KEY AUTOINCREMENT") {
		t.Error("sqlite schema should use INTEGER PRIMARY KEY AUTOINCREMENT")
	}
}

func TestUniqueViolationClassified(t *testing.T) {
	o := openTestDB(t)
	now := time.Now().UTC()

	insert := `INSERT INTO users (email, full_name, hashed_password, is_active, created_at) VALUES ($1, $2, $3, $4, $5)`
	if _, err := o.conn.Exec(insert, "a@example.com", "A", "x", true, now); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	_, err := o.conn.Exec(insert, "a@example.com", "A2", "y", true, now)
	if err == nil {
		t.Fatal("expected duplicate email to fail")
	}
	if !IsUniqueViolation(err) {
		t.Errorf("expected unique violation, got %v", err)
	}
	if IsForeignKeyViolation(err) {
		t.Error("unique violation misclassified as foreign key violation")
	}
}

func TestForeignKeyViolationClassified(t *testing.T) {
	o := openTestDB(t)

	_, err := o.conn.Exec(
		`INSERT INTO group_memberships (group_id, user_id, is_admin, can_create_events, created_at) VALUES ($1, $2, $3, $4, $5)`,
		999, 999, false, false, time.Now().UTC(),
	)
	if err == nil {
		t.Fatal("expected foreign key failure with foreign_keys pragma on")
	}
	if !IsForeignKeyViolation(err) {
		t.Errorf("expected foreign key violation, got %v", err)
	}
}

func TestParseDialect(t *testing.T) {
	tests := []struct {
		in      string
		want    Dialect
		wantErr bool
	}{
		{"postgres", Postgres, false},
		{"PostgreSQL", Postgres, false},
		{"sqlite", SQLite, false},
		{"", SQLite, false},
		{"mysql", "", true},
	}
	for _, tt := range tests {
		got, err := ParseDialect(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDialect(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDialect(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestForUpdate(t *testing.T) {
	if Postgres.ForUpdate() != " FOR UPDATE" {
		t.Error("postgres should lock rows")
	}
	if SQLite.ForUpdate() != "" {
		t.Error("sqlite has no FOR UPDATE")
	}
}
