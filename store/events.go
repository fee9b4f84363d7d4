// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"

	"github.com/danielhkuo/socialnet/models"
)

const eventColumns = `id, name, description, start_date, end_date, location, cover_photo, is_private, group_id,
	carpool_enabled, shopping_list_enabled, ticketing_enabled, polls_enabled, created_by_id, created_at`

func scanEvent(row scanner) (models.Event, error) {
	var e models.Event
	err := row.Scan(&e.ID, &e.Name, &e.Description, &e.StartDate, &e.EndDate, &e.Location, &e.CoverPhoto,
		&e.IsPrivate, &e.GroupID, &e.CarpoolEnabled, &e.ShoppingListEnabled, &e.TicketingEnabled,
		&e.PollsEnabled, &e.CreatedByID, &e.CreatedAt)
	return e, err
}

func (t *Tx) InsertEvent(ctx context.Context, e *models.Event) error {
	e.CreatedAt = t.Now()
	id, err := t.insertID(ctx, `
		INSERT INTO events (name, description, start_date, end_date, location, cover_photo, is_private, group_id,
			carpool_enabled, shopping_list_enabled, ticketing_enabled, polls_enabled, created_by_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id
	`, e.Name, e.Description, e.StartDate, e.EndDate, e.Location, e.CoverPhoto, e.IsPrivate, e.GroupID,
		e.CarpoolEnabled, e.ShoppingListEnabled, e.TicketingEnabled, e.PollsEnabled, e.CreatedByID, e.CreatedAt)
	if err != nil {
		return err
	}
	e.ID = id
	return nil
}

func (t *Tx) GetEvent(ctx context.Context, id int64) (*models.Event, error) {
	e, err := scanEvent(t.tx.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id))
	if err != nil {
		return nil, classify(err)
	}
	return &e, nil
}

func (t *Tx) ListEvents(ctx context.Context) ([]models.Event, error) {
	rows, err := t.tx.QueryContext(ctx, `SELECT `+eventColumns+` FROM events ORDER BY start_date, id`)
	return collect(rows, err, scanEvent)
}

// Organizers

func (t *Tx) InsertOrganizer(ctx context.Context, eventID, userID int64) (*models.EventOrganizer, error) {
	o := models.EventOrganizer{EventID: eventID, UserID: userID, CreatedAt: t.Now()}
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO event_organizers (event_id, user_id, created_at)
		VALUES ($1, $2, $3)
	`, o.EventID, o.UserID, o.CreatedAt)
	if err != nil {
		return nil, classify(err)
	}
	return &o, nil
}

func (t *Tx) IsOrganizer(ctx context.Context, eventID, userID int64) (bool, error) {
	return t.exists(ctx, `SELECT EXISTS(SELECT 1 FROM event_organizers WHERE event_id = $1 AND user_id = $2)`, eventID, userID)
}

func (t *Tx) ListOrganizers(ctx context.Context, eventID int64) ([]models.EventOrganizer, error) {
	rows, err := t.tx.QueryContext(ctx, `
		SELECT event_id, user_id, created_at FROM event_organizers WHERE event_id = $1 ORDER BY id
	`, eventID)
	return collect(rows, err, func(row scanner) (models.EventOrganizer, error) {
		var o models.EventOrganizer
		err := row.Scan(&o.EventID, &o.UserID, &o.CreatedAt)
		return o, err
	})
}

// Participants

func (t *Tx) InsertParticipant(ctx context.Context, eventID, userID int64) (*models.EventParticipant, error) {
	p := models.EventParticipant{EventID: eventID, UserID: userID, JoinedAt: t.Now()}
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO event_participants (event_id, user_id, joined_at)
		VALUES ($1, $2, $3)
	`, p.EventID, p.UserID, p.JoinedAt)
	if err != nil {
		return nil, classify(err)
	}
	return &p, nil
}

func (t *Tx) IsParticipant(ctx context.Context, eventID, userID int64) (bool, error) {
	return t.exists(ctx, `SELECT EXISTS(SELECT 1 FROM event_participants WHERE event_id = $1 AND user_id = $2)`, eventID, userID)
}

func (t *Tx) ListParticipants(ctx context.Context, eventID int64) ([]models.EventParticipant, error) {
	rows, err := t.tx.QueryContext(ctx, `
		SELECT event_id, user_id, joined_at FROM event_participants WHERE event_id = $1 ORDER BY id
	`, eventID)
	return collect(rows, err, func(row scanner) (models.EventParticipant, error) {
		var p models.EventParticipant
		err := row.Scan(&p.EventID, &p.UserID, &p.JoinedAt)
		return p, err
	})
}

func (t *Tx) DeleteParticipant(ctx context.Context, eventID, userID int64) error {
	ok, err := t.execAffected(ctx, `DELETE FROM event_participants WHERE event_id = $1 AND user_id = $2`, eventID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
