// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package service

import (
	"context"
	"log/slog"

	"github.com/danielhkuo/socialnet/apperr"
	"github.com/danielhkuo/socialnet/guards"
	"github.com/danielhkuo/socialnet/models"
	"github.com/danielhkuo/socialnet/store"
)

const errAlreadyTicketed = "This attendee already has a ticket"

// Tickets manages ticket types and public ticket sales.
type Tickets struct {
	st *store.Store
}

func NewTickets(st *store.Store) *Tickets {
	return &Tickets{st: st}
}

func ticketingEvent(ctx context.Context, tx *store.Tx, eventID int64) (*models.Event, error) {
	ev, err := loadEvent(ctx, tx, eventID)
	if err != nil {
		return nil, err
	}
	if !ev.TicketingEnabled {
		return nil, apperr.BadRequest("Ticketing not enabled for this event")
	}
	return ev, nil
}

func (t *Tickets) CreateTicketType(ctx context.Context, actorID, eventID int64, req models.CreateTicketTypeRequest) (*models.TicketType, error) {
	if req.Price < 0 || req.Quantity < 0 {
		return nil, apperr.BadRequest("price and quantity must not be negative")
	}

	tt := &models.TicketType{EventID: eventID, Name: req.Name, Price: req.Price, Quantity: req.Quantity}
	err := t.st.InTx(ctx, func(tx *store.Tx) error {
		if _, err := ticketingEvent(ctx, tx, eventID); err != nil {
			return err
		}
		if err := check(ctx, tx, guards.IsEventOrganizer, actorID, eventID, errOrganizerRequired); err != nil {
			return err
		}
		return tx.InsertTicketType(ctx, tt)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("ticket type created", "ticket_type_id", tt.ID, "event_id", eventID, "quantity", tt.Quantity)
	return tt, nil
}

func (t *Tickets) ListTicketTypes(ctx context.Context, eventID int64) ([]models.TicketTypeStock, error) {
	var types []models.TicketTypeStock
	err := t.st.InTx(ctx, func(tx *store.Tx) error {
		if _, err := ticketingEvent(ctx, tx, eventID); err != nil {
			return err
		}
		var err error
		types, err = tx.ListTicketTypes(ctx, eventID)
		return err
	})
	return types, err
}

// PurchaseTicket sells one ticket without authentication. The ticket
// type row is locked before the sold count is read, so the capacity
// check and the insert cannot interleave with another purchase of the
// same type.
func (t *Tickets) PurchaseTicket(ctx context.Context, ticketTypeID int64, req models.PurchaseTicketRequest) (*models.Ticket, error) {
	tk := &models.Ticket{
		TicketTypeID:       ticketTypeID,
		PurchaserFirstName: req.PurchaserFirstName,
		PurchaserLastName:  req.PurchaserLastName,
		PurchaserEmail:     normalizeEmail(req.PurchaserEmail),
		PurchaserAddress:   req.PurchaserAddress,
	}

	err := t.st.InTx(ctx, func(tx *store.Tx) error {
		tt, err := tx.LockTicketType(ctx, ticketTypeID)
		if err != nil {
			return notFound(err, "Ticket type not found")
		}
		if _, err := ticketingEvent(ctx, tx, tt.EventID); err != nil {
			return err
		}

		sold, err := tx.CountTickets(ctx, ticketTypeID)
		if err != nil {
			return err
		}
		if sold >= tt.Quantity {
			return apperr.BadRequest("No more tickets available")
		}

		taken, err := tx.TicketEmailTaken(ctx, ticketTypeID, tk.PurchaserEmail)
		if err != nil {
			return err
		}
		if taken {
			return apperr.Conflict(errAlreadyTicketed)
		}

		return conflict(tx.InsertTicket(ctx, tk), errAlreadyTicketed)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("ticket purchased", "ticket_id", tk.ID, "ticket_type_id", ticketTypeID)
	return tk, nil
}
