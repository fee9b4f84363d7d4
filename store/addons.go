// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"

	"github.com/danielhkuo/socialnet/models"
)

// Shopping list

func (t *Tx) InsertShoppingItem(ctx context.Context, it *models.ShoppingItem) error {
	it.CreatedAt = t.Now()
	id, err := t.insertID(ctx, `
		INSERT INTO shopping_list_items (event_id, owner_id, name, quantity, arrival_time, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, it.EventID, it.OwnerID, it.Name, it.Quantity, it.ArrivalTime, it.CreatedAt)
	if err != nil {
		return err
	}
	it.ID = id
	return nil
}

func (t *Tx) ShoppingItemExists(ctx context.Context, eventID int64, name string) (bool, error) {
	return t.exists(ctx, `SELECT EXISTS(SELECT 1 FROM shopping_list_items WHERE event_id = $1 AND name = $2)`, eventID, name)
}

func (t *Tx) ListShoppingItems(ctx context.Context, eventID int64) ([]models.ShoppingItem, error) {
	rows, err := t.tx.QueryContext(ctx, `
		SELECT id, event_id, name, quantity, arrival_time, owner_id, created_at
		FROM shopping_list_items WHERE event_id = $1 ORDER BY id
	`, eventID)
	return collect(rows, err, func(row scanner) (models.ShoppingItem, error) {
		var it models.ShoppingItem
		err := row.Scan(&it.ID, &it.EventID, &it.Name, &it.Quantity, &it.ArrivalTime, &it.OwnerID, &it.CreatedAt)
		return it, err
	})
}

// Carpools

func (t *Tx) InsertCarpoolOffer(ctx context.Context, c *models.CarpoolOffer) error {
	c.CreatedAt = t.Now()
	id, err := t.insertID(ctx, `
		INSERT INTO carpool_offers (event_id, driver_id, departure_location, departure_time, price, available_seats, max_detour_minutes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, c.EventID, c.DriverID, c.DepartureLocation, c.DepartureTime, c.Price, c.AvailableSeats, c.MaxDetourMinutes, c.CreatedAt)
	if err != nil {
		return err
	}
	c.ID = id
	return nil
}

func (t *Tx) ListCarpoolOffers(ctx context.Context, eventID int64) ([]models.CarpoolOffer, error) {
	rows, err := t.tx.QueryContext(ctx, `
		SELECT id, event_id, driver_id, departure_location, departure_time, price, available_seats, max_detour_minutes, created_at
		FROM carpool_offers WHERE event_id = $1 ORDER BY departure_time, id
	`, eventID)
	return collect(rows, err, func(row scanner) (models.CarpoolOffer, error) {
		var c models.CarpoolOffer
		err := row.Scan(&c.ID, &c.EventID, &c.DriverID, &c.DepartureLocation, &c.DepartureTime,
			&c.Price, &c.AvailableSeats, &c.MaxDetourMinutes, &c.CreatedAt)
		return c, err
	})
}
