// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"

	"github.com/danielhkuo/socialnet/models"
)

const ticketTypeColumns = `id, event_id, name, price, quantity, created_at`

func scanTicketType(row scanner) (models.TicketType, error) {
	var tt models.TicketType
	err := row.Scan(&tt.ID, &tt.EventID, &tt.Name, &tt.Price, &tt.Quantity, &tt.CreatedAt)
	return tt, err
}

func (t *Tx) InsertTicketType(ctx context.Context, tt *models.TicketType) error {
	tt.CreatedAt = t.Now()
	id, err := t.insertID(ctx, `
		INSERT INTO ticket_types (event_id, name, price, quantity, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, tt.EventID, tt.Name, tt.Price, tt.Quantity, tt.CreatedAt)
	if err != nil {
		return err
	}
	tt.ID = id
	return nil
}

// LockTicketType reads the ticket type and holds its row lock until the
// transaction ends, so concurrent purchases of the same type queue up
// behind the capacity check.
func (t *Tx) LockTicketType(ctx context.Context, id int64) (*models.TicketType, error) {
	query := `SELECT ` + ticketTypeColumns + ` FROM ticket_types WHERE id = $1` + t.dialect.ForUpdate()
	tt, err := scanTicketType(t.tx.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, classify(err)
	}
	return &tt, nil
}

// ListTicketTypes returns the event's ticket types with sold counts
func (t *Tx) ListTicketTypes(ctx context.Context, eventID int64) ([]models.TicketTypeStock, error) {
	rows, err := t.tx.QueryContext(ctx, `
		SELECT tt.id, tt.event_id, tt.name, tt.price, tt.quantity, tt.created_at, COUNT(tk.id)
		FROM ticket_types tt
		LEFT JOIN tickets tk ON tk.ticket_type_id = tt.id
		WHERE tt.event_id = $1
		GROUP BY tt.id, tt.event_id, tt.name, tt.price, tt.quantity, tt.created_at
		ORDER BY tt.id
	`, eventID)
	return collect(rows, err, func(row scanner) (models.TicketTypeStock, error) {
		var s models.TicketTypeStock
		err := row.Scan(&s.ID, &s.EventID, &s.Name, &s.Price, &s.Quantity, &s.CreatedAt, &s.Sold)
		s.Remaining = max(s.Quantity-s.Sold, 0)
		return s, err
	})
}

func (t *Tx) CountTickets(ctx context.Context, ticketTypeID int64) (int, error) {
	var n int
	err := t.tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM tickets WHERE ticket_type_id = $1`, ticketTypeID).Scan(&n)
	return n, err
}

func (t *Tx) TicketEmailTaken(ctx context.Context, ticketTypeID int64, email string) (bool, error) {
	return t.exists(ctx, `
		SELECT EXISTS(SELECT 1 FROM tickets WHERE ticket_type_id = $1 AND purchaser_email = $2)
	`, ticketTypeID, email)
}

func (t *Tx) InsertTicket(ctx context.Context, tk *models.Ticket) error {
	tk.PurchasedAt = t.Now()
	id, err := t.insertID(ctx, `
		INSERT INTO tickets (ticket_type_id, purchaser_first_name, purchaser_last_name, purchaser_email, purchaser_address, purchased_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, tk.TicketTypeID, tk.PurchaserFirstName, tk.PurchaserLastName, tk.PurchaserEmail, tk.PurchaserAddress, tk.PurchasedAt)
	if err != nil {
		return err
	}
	tk.ID = id
	return nil
}
