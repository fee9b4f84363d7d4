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

const (
	errShoppingDisabled = "Shopping list is not enabled for this event"
	errCarpoolDisabled  = "Carpooling is not enabled for this event"
	errEventMembership  = "Event membership required"
	errItemRegistered   = "Item already registered for this event"
)

// Addons manages the per-event shopping list and carpool offers. Each
// family is gated by its event toggle, checked before the actor's role.
type Addons struct {
	st *store.Store
}

func NewAddons(st *store.Store) *Addons {
	return &Addons{st: st}
}

func addonAccess(ctx context.Context, tx *store.Tx, actorID, eventID int64, enabled func(*models.Event) bool, disabled string) error {
	ev, err := loadEvent(ctx, tx, eventID)
	if err != nil {
		return err
	}
	if !enabled(ev) {
		return apperr.BadRequest(disabled)
	}
	return check(ctx, tx, guards.IsEventMember, actorID, eventID, errEventMembership)
}

func shoppingEnabled(ev *models.Event) bool { return ev.ShoppingListEnabled }

func carpoolEnabled(ev *models.Event) bool { return ev.CarpoolEnabled }

func (a *Addons) AddShoppingItem(ctx context.Context, actorID, eventID int64, req models.CreateShoppingItemRequest) (*models.ShoppingItem, error) {
	item := &models.ShoppingItem{
		EventID:     eventID,
		OwnerID:     actorID,
		Name:        req.Name,
		Quantity:    req.Quantity,
		ArrivalTime: req.ArrivalTime.UTC(),
	}

	err := a.st.InTx(ctx, func(tx *store.Tx) error {
		if err := addonAccess(ctx, tx, actorID, eventID, shoppingEnabled, errShoppingDisabled); err != nil {
			return err
		}

		exists, err := tx.ShoppingItemExists(ctx, eventID, item.Name)
		if err != nil {
			return err
		}
		if exists {
			return apperr.Conflict(errItemRegistered)
		}
		return conflict(tx.InsertShoppingItem(ctx, item), errItemRegistered)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("shopping item added", "item_id", item.ID, "event_id", eventID, "owner", actorID)
	return item, nil
}

func (a *Addons) ListShoppingItems(ctx context.Context, actorID, eventID int64) ([]models.ShoppingItem, error) {
	var items []models.ShoppingItem
	err := a.st.InTx(ctx, func(tx *store.Tx) error {
		if err := addonAccess(ctx, tx, actorID, eventID, shoppingEnabled, errShoppingDisabled); err != nil {
			return err
		}
		var err error
		items, err = tx.ListShoppingItems(ctx, eventID)
		return err
	})
	return items, err
}

func (a *Addons) CreateCarpoolOffer(ctx context.Context, actorID, eventID int64, req models.CreateCarpoolRequest) (*models.CarpoolOffer, error) {
	offer := &models.CarpoolOffer{
		EventID:           eventID,
		DriverID:          actorID,
		DepartureLocation: req.DepartureLocation,
		DepartureTime:     req.DepartureTime.UTC(),
		Price:             req.Price,
		AvailableSeats:    req.AvailableSeats,
		MaxDetourMinutes:  req.MaxDetourMinutes,
	}

	err := a.st.InTx(ctx, func(tx *store.Tx) error {
		if err := addonAccess(ctx, tx, actorID, eventID, carpoolEnabled, errCarpoolDisabled); err != nil {
			return err
		}
		return tx.InsertCarpoolOffer(ctx, offer)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("carpool offer created", "offer_id", offer.ID, "event_id", eventID, "driver", actorID)
	return offer, nil
}

func (a *Addons) ListCarpoolOffers(ctx context.Context, actorID, eventID int64) ([]models.CarpoolOffer, error) {
	var offers []models.CarpoolOffer
	err := a.st.InTx(ctx, func(tx *store.Tx) error {
		if err := addonAccess(ctx, tx, actorID, eventID, carpoolEnabled, errCarpoolDisabled); err != nil {
			return err
		}
		var err error
		offers, err = tx.ListCarpoolOffers(ctx, eventID)
		return err
	})
	return offers, err
}
