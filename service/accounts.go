// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/danielhkuo/socialnet/apperr"
	"github.com/danielhkuo/socialnet/auth"
	"github.com/danielhkuo/socialnet/models"
	"github.com/danielhkuo/socialnet/store"
)

// Accounts registers users, grants tokens and resolves bearer tokens
// back to users.
type Accounts struct {
	st     *store.Store
	tokens *auth.TokenIssuer
}

func NewAccounts(st *store.Store, tokens *auth.TokenIssuer) *Accounts {
	return &Accounts{st: st, tokens: tokens}
}

func (a *Accounts) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		Email:          normalizeEmail(req.Email),
		FullName:       req.FullName,
		HashedPassword: hash,
		IsActive:       true,
	}

	err = a.st.InTx(ctx, func(tx *store.Tx) error {
		if _, err := tx.GetUserByEmail(ctx, u.Email); err == nil {
			return apperr.Conflict("Email already registered")
		} else if !errors.Is(err, store.ErrNotFound) {
			return err
		}
		return conflict(tx.InsertUser(ctx, u), "Email already registered")
	})
	if err != nil {
		return nil, err
	}

	slog.Info("user registered", "user_id", u.ID)
	return u, nil
}

// IssueToken checks the password grant. Unknown email and wrong password
// produce the same error.
func (a *Accounts) IssueToken(ctx context.Context, email, password string) (*models.TokenResponse, error) {
	var u *models.User
	err := a.st.InTx(ctx, func(tx *store.Tx) error {
		var err error
		u, err = tx.GetUserByEmail(ctx, normalizeEmail(email))
		return err
	})
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperr.BadRequest("Incorrect email or password")
	}
	if err != nil {
		return nil, err
	}

	if err := auth.VerifyPassword(u.HashedPassword, password); err != nil {
		return nil, apperr.BadRequest("Incorrect email or password")
	}
	if !u.IsActive {
		return nil, apperr.Forbidden("Inactive user")
	}

	token, err := a.tokens.IssueToken(u.ID)
	if err != nil {
		return nil, err
	}
	return &models.TokenResponse{AccessToken: token, TokenType: "bearer"}, nil
}

// Authenticate resolves a bearer token to an active user
func (a *Accounts) Authenticate(ctx context.Context, token string) (*models.User, error) {
	userID, err := a.tokens.VerifyToken(token)
	if err != nil {
		return nil, apperr.Unauthenticated("Could not validate credentials")
	}

	var u *models.User
	err = a.st.InTx(ctx, func(tx *store.Tx) error {
		var err error
		u, err = tx.GetUser(ctx, userID)
		return err
	})
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperr.Unauthenticated("User not found")
	}
	if err != nil {
		return nil, err
	}
	if !u.IsActive {
		return nil, apperr.Forbidden("Inactive user")
	}
	return u, nil
}

func (a *Accounts) GetUser(ctx context.Context, userID int64) (*models.User, error) {
	var u *models.User
	err := a.st.InTx(ctx, func(tx *store.Tx) error {
		var err error
		u, err = tx.GetUser(ctx, userID)
		return notFound(err, "User not found")
	})
	return u, err
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
