// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/danielhkuo/socialnet/auth"
	"github.com/danielhkuo/socialnet/cliparse"
	"github.com/danielhkuo/socialnet/db"
	"github.com/danielhkuo/socialnet/models"
	"github.com/danielhkuo/socialnet/store"
	"github.com/google/uuid"
)

// TestPassword is the password every fixture user gets
const TestPassword = "password123"

var emailSeq atomic.Int64

// SetupTestDB creates a fresh SQLite database file with the full schema.
// The file lives in t.TempDir() and is removed with it.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	ctx := context.Background()
	dsn := "file:" + filepath.Join(t.TempDir(), "test.db")

	conn, err := db.Open(ctx, db.SQLite, dsn)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(ctx, conn, db.SQLite); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	return conn
}

// SetupTestStore wraps SetupTestDB in a store
func SetupTestStore(t *testing.T) *store.Store {
	t.Helper()
	return store.New(SetupTestDB(t), db.SQLite)
}

// PostgresURLEnv names the variable holding a PostgreSQL DSN for tests
// that need real concurrent transactions.
const PostgresURLEnv = "TEST_DATABASE_URL"

// SetupPostgresStore returns a store backed by a throwaway schema in the
// database named by TEST_DATABASE_URL. The test is skipped when the
// variable is unset. The schema is dropped on cleanup.
func SetupPostgresStore(t *testing.T) *store.Store {
	t.Helper()

	dsn := os.Getenv(PostgresURLEnv)
	if dsn == "" {
		t.Skipf("%s not set", PostgresURLEnv)
	}

	ctx := context.Background()
	admin, err := db.Open(ctx, db.Postgres, dsn)
	if err != nil {
		t.Fatalf("Failed to open postgres: %v", err)
	}
	t.Cleanup(func() { admin.Close() })

	schema := "socialnet_test_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	if _, err := admin.ExecContext(ctx, "CREATE SCHEMA "+schema); err != nil {
		t.Fatalf("Failed to create schema %s: %v", schema, err)
	}
	t.Cleanup(func() {
		admin.ExecContext(context.Background(), "DROP SCHEMA "+schema+" CASCADE")
	})

	conn, err := db.Open(ctx, db.Postgres, withSearchPath(dsn, schema))
	if err != nil {
		t.Fatalf("Failed to open postgres schema: %v", err)
	}
	// Registered after the DROP so it runs first.
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(ctx, conn, db.Postgres); err != nil {
		t.Fatalf("Failed to create tables: %v", err)
	}
	return store.New(conn, db.Postgres)
}

// withSearchPath adds a search_path runtime parameter to a URL or
// key=value DSN.
func withSearchPath(dsn, schema string) string {
	if !strings.HasPrefix(dsn, "postgres://") && !strings.HasPrefix(dsn, "postgresql://") {
		return dsn + " search_path=" + schema
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&search_path=" + schema
	}
	return dsn + "?search_path=" + schema
}

// GetTestConfig returns a config suitable for testing
func GetTestConfig() cliparse.Config {
	cfg := cliparse.Defaults()
	cfg.DatabaseURL = "file:test.db"
	cfg.SecretKey = "test-secret-key"
	return cfg
}

// NewTestIssuer returns a token issuer matching GetTestConfig
func NewTestIssuer(t *testing.T) *auth.TokenIssuer {
	t.Helper()
	cfg := GetTestConfig()
	ti, err := auth.NewTokenIssuer(cfg.SecretKey, cfg.Algorithm, cfg.TokenTTL())
	if err != nil {
		t.Fatalf("Failed to create token issuer: %v", err)
	}
	return ti
}

// UniqueEmail returns an address no other fixture has used
func UniqueEmail(prefix string) string {
	return fmt.Sprintf("%s%d@example.com", prefix, emailSeq.Add(1))
}

// CreateTestUser inserts an active user with TestPassword
func CreateTestUser(t *testing.T, st *store.Store, name string) models.User {
	t.Helper()

	hash, err := auth.HashPassword(TestPassword)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	u := models.User{
		Email:          UniqueEmail(name),
		FullName:       name,
		HashedPassword: hash,
		IsActive:       true,
	}
	err = st.InTx(context.Background(), func(tx *store.Tx) error {
		return tx.InsertUser(context.Background(), &u)
	})
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return u
}

// EventToggles selects which feature families a fixture event enables
type EventToggles struct {
	Carpool, Shopping, Ticketing, Polls bool
}

// AllToggles enables every feature family
var AllToggles = EventToggles{Carpool: true, Shopping: true, Ticketing: true, Polls: true}

// CreateTestEvent inserts an event with ownerID as its only organizer
func CreateTestEvent(t *testing.T, st *store.Store, ownerID int64, toggles EventToggles) models.Event {
	t.Helper()

	ctx := context.Background()
	start := time.Now().UTC().Add(24 * time.Hour).Truncate(time.Second)
	ev := models.Event{
		Name:                "Test Event",
		StartDate:           start,
		EndDate:             start.Add(4 * time.Hour),
		Location:            "Test Hall",
		CarpoolEnabled:      toggles.Carpool,
		ShoppingListEnabled: toggles.Shopping,
		TicketingEnabled:    toggles.Ticketing,
		PollsEnabled:        toggles.Polls,
		CreatedByID:         ownerID,
	}
	err := st.InTx(ctx, func(tx *store.Tx) error {
		if err := tx.InsertEvent(ctx, &ev); err != nil {
			return err
		}
		_, err := tx.InsertOrganizer(ctx, ev.ID, ownerID)
		return err
	})
	if err != nil {
		t.Fatalf("Failed to create test event: %v", err)
	}
	return ev
}

// AddTestParticipant links userID to eventID as a participant
func AddTestParticipant(t *testing.T, st *store.Store, eventID, userID int64) {
	t.Helper()
	err := st.InTx(context.Background(), func(tx *store.Tx) error {
		_, err := tx.InsertParticipant(context.Background(), eventID, userID)
		return err
	})
	if err != nil {
		t.Fatalf("Failed to add test participant: %v", err)
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// Bearer returns the Authorization header for token
func Bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

// AssertDetail checks the {"detail": ...} error envelope
func AssertDetail(t *testing.T, w *httptest.ResponseRecorder, expected string) {
	t.Helper()
	var body models.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode error body %q: %v", w.Body.String(), err)
	}
	if body.Detail != expected {
		t.Errorf("Expected detail %q, got %q", expected, body.Detail)
	}
}
