// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"

	"github.com/danielhkuo/socialnet/models"
)

func scanMessage(row scanner) (models.Message, error) {
	var m models.Message
	err := row.Scan(&m.ID, &m.ThreadID, &m.Content, &m.ParentID, &m.AuthorID, &m.CreatedAt)
	return m, err
}

func (t *Tx) InsertThread(ctx context.Context, th *models.DiscussionThread) error {
	th.CreatedAt = t.Now()
	id, err := t.insertID(ctx, `
		INSERT INTO discussion_threads (title, context, group_id, event_id, created_by_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, th.Title, th.Context, th.GroupID, th.EventID, th.CreatedByID, th.CreatedAt)
	if err != nil {
		return err
	}
	th.ID = id
	return nil
}

func (t *Tx) GetThread(ctx context.Context, id int64) (*models.DiscussionThread, error) {
	var th models.DiscussionThread
	err := t.tx.QueryRowContext(ctx, `
		SELECT id, title, context, group_id, event_id, created_by_id, created_at
		FROM discussion_threads WHERE id = $1
	`, id).Scan(&th.ID, &th.Title, &th.Context, &th.GroupID, &th.EventID, &th.CreatedByID, &th.CreatedAt)
	if err != nil {
		return nil, classify(err)
	}
	return &th, nil
}

func (t *Tx) InsertMessage(ctx context.Context, m *models.Message) error {
	m.CreatedAt = t.Now()
	id, err := t.insertID(ctx, `
		INSERT INTO messages (thread_id, author_id, content, parent_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, m.ThreadID, m.AuthorID, m.Content, m.ParentID, m.CreatedAt)
	if err != nil {
		return err
	}
	m.ID = id
	return nil
}

// MessageInThread reports whether messageID exists and belongs to threadID
func (t *Tx) MessageInThread(ctx context.Context, threadID, messageID int64) (bool, error) {
	return t.exists(ctx, `SELECT EXISTS(SELECT 1 FROM messages WHERE id = $1 AND thread_id = $2)`, messageID, threadID)
}

// ListMessages returns a thread's messages oldest first
func (t *Tx) ListMessages(ctx context.Context, threadID int64) ([]models.Message, error) {
	rows, err := t.tx.QueryContext(ctx, `
		SELECT id, thread_id, content, parent_id, author_id, created_at
		FROM messages WHERE thread_id = $1
		ORDER BY created_at, id
	`, threadID)
	return collect(rows, err, scanMessage)
}
