// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"

	"github.com/danielhkuo/socialnet/models"
)

const userColumns = `id, email, full_name, hashed_password, is_active, created_at`

func scanUser(row scanner) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.FullName, &u.HashedPassword, &u.IsActive, &u.CreatedAt)
	return u, err
}

// InsertUser stores u and fills in its ID and CreatedAt
func (t *Tx) InsertUser(ctx context.Context, u *models.User) error {
	u.CreatedAt = t.Now()
	id, err := t.insertID(ctx, `
		INSERT INTO users (email, full_name, hashed_password, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, u.Email, u.FullName, u.HashedPassword, u.IsActive, u.CreatedAt)
	if err != nil {
		return err
	}
	u.ID = id
	return nil
}

func (t *Tx) GetUser(ctx context.Context, id int64) (*models.User, error) {
	u, err := scanUser(t.tx.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, classify(err)
	}
	return &u, nil
}

func (t *Tx) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	u, err := scanUser(t.tx.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err != nil {
		return nil, classify(err)
	}
	return &u, nil
}

func (t *Tx) UserExists(ctx context.Context, id int64) (bool, error) {
	return t.exists(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, id)
}
