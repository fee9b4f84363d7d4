// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package service

import (
	"context"
	"testing"

	"github.com/danielhkuo/socialnet/apperr"
	"github.com/danielhkuo/socialnet/models"
)

func TestRegisterAndIssueToken(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	u, err := e.accounts.Register(ctx, models.RegisterRequest{
		Email:    "Alice@Example.com",
		FullName: "Alice",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if u.ID == 0 || !u.IsActive {
		t.Fatalf("unexpected user %+v", u)
	}
	if u.Email != "alice@example.com" {
		t.Errorf("email should be normalized, got %s", u.Email)
	}
	if u.HashedPassword == "password123" {
		t.Error("password stored in plaintext")
	}

	tok, err := e.accounts.IssueToken(ctx, "alice@example.com", "password123")
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}
	if tok.TokenType != "bearer" || tok.AccessToken == "" {
		t.Errorf("unexpected token response %+v", tok)
	}

	got, err := e.accounts.Authenticate(ctx, tok.AccessToken)
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if got.ID != u.ID {
		t.Errorf("Authenticate() user = %d, want %d", got.ID, u.ID)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	req := models.RegisterRequest{Email: "dup@example.com", FullName: "Dup", Password: "password123"}

	if _, err := e.accounts.Register(ctx, req); err != nil {
		t.Fatal(err)
	}
	_, err := e.accounts.Register(ctx, req)
	assertKind(t, err, apperr.KindConflict, "Email already registered")
}

func TestIssueTokenRejectsBadCredentials(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	if _, err := e.accounts.Register(ctx, models.RegisterRequest{Email: "bob@example.com", FullName: "Bob", Password: "password123"}); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name, email, password string
	}{
		{"wrong password", "bob@example.com", "password124"},
		{"unknown email", "nobody@example.com", "password123"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.accounts.IssueToken(ctx, tt.email, tt.password)
			assertKind(t, err, apperr.KindBadRequest, "Incorrect email or password")
		})
	}
}

func TestAuthenticateRejectsBadTokens(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	_, err := e.accounts.Authenticate(ctx, "garbage")
	assertKind(t, err, apperr.KindUnauthenticated, "Could not validate credentials")

	// Valid signature, no such user
	token, err := e.accounts.tokens.IssueToken(9999)
	if err != nil {
		t.Fatal(err)
	}
	_, err = e.accounts.Authenticate(ctx, token)
	assertKind(t, err, apperr.KindUnauthenticated, "User not found")
}

func TestGetUser(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	_, err := e.accounts.GetUser(ctx, 12345)
	assertKind(t, err, apperr.KindNotFound, "User not found")
}
