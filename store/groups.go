// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"

	"github.com/danielhkuo/socialnet/models"
)

const groupColumns = `id, name, description, icon, cover_photo, type, allow_member_posts, allow_member_events, created_by_id, created_at`

func scanGroup(row scanner) (models.Group, error) {
	var g models.Group
	err := row.Scan(&g.ID, &g.Name, &g.Description, &g.Icon, &g.CoverPhoto, &g.Type,
		&g.AllowMemberPosts, &g.AllowMemberEvents, &g.CreatedByID, &g.CreatedAt)
	return g, err
}

func scanMembership(row scanner) (models.GroupMembership, error) {
	var m models.GroupMembership
	err := row.Scan(&m.GroupID, &m.UserID, &m.IsAdmin, &m.CanCreateEvents, &m.CreatedAt)
	return m, err
}

func (t *Tx) InsertGroup(ctx context.Context, g *models.Group) error {
	g.CreatedAt = t.Now()
	id, err := t.insertID(ctx, `
		INSERT INTO social_groups (name, description, icon, cover_photo, type, allow_member_posts, allow_member_events, created_by_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`, g.Name, g.Description, g.Icon, g.CoverPhoto, g.Type, g.AllowMemberPosts, g.AllowMemberEvents, g.CreatedByID, g.CreatedAt)
	if err != nil {
		return err
	}
	g.ID = id
	return nil
}

func (t *Tx) GetGroup(ctx context.Context, id int64) (*models.Group, error) {
	g, err := scanGroup(t.tx.QueryRowContext(ctx, `SELECT `+groupColumns+` FROM social_groups WHERE id = $1`, id))
	if err != nil {
		return nil, classify(err)
	}
	return &g, nil
}

func (t *Tx) ListGroups(ctx context.Context) ([]models.Group, error) {
	rows, err := t.tx.QueryContext(ctx, `SELECT `+groupColumns+` FROM social_groups ORDER BY id`)
	return collect(rows, err, scanGroup)
}

func (t *Tx) InsertMembership(ctx context.Context, m *models.GroupMembership) error {
	m.CreatedAt = t.Now()
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO group_memberships (group_id, user_id, is_admin, can_create_events, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, m.GroupID, m.UserID, m.IsAdmin, m.CanCreateEvents, m.CreatedAt)
	return classify(err)
}

// GetMembership returns ErrNotFound when the user is not in the group
func (t *Tx) GetMembership(ctx context.Context, groupID, userID int64) (*models.GroupMembership, error) {
	m, err := scanMembership(t.tx.QueryRowContext(ctx, `
		SELECT group_id, user_id, is_admin, can_create_events, created_at
		FROM group_memberships
		WHERE group_id = $1 AND user_id = $2
	`, groupID, userID))
	if err != nil {
		return nil, classify(err)
	}
	return &m, nil
}

func (t *Tx) ListMemberships(ctx context.Context, groupID int64) ([]models.GroupMembership, error) {
	rows, err := t.tx.QueryContext(ctx, `
		SELECT group_id, user_id, is_admin, can_create_events, created_at
		FROM group_memberships
		WHERE group_id = $1
		ORDER BY id
	`, groupID)
	return collect(rows, err, scanMembership)
}

// UpdateMembership writes the role flags of an existing membership
func (t *Tx) UpdateMembership(ctx context.Context, m *models.GroupMembership) error {
	ok, err := t.execAffected(ctx, `
		UPDATE group_memberships
		SET is_admin = $1, can_create_events = $2
		WHERE group_id = $3 AND user_id = $4
	`, m.IsAdmin, m.CanCreateEvents, m.GroupID, m.UserID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (t *Tx) DeleteMembership(ctx context.Context, groupID, userID int64) error {
	ok, err := t.execAffected(ctx, `DELETE FROM group_memberships WHERE group_id = $1 AND user_id = $2`, groupID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
