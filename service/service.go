// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package service

import (
	"context"
	"errors"

	"github.com/danielhkuo/socialnet/apperr"
	"github.com/danielhkuo/socialnet/guards"
	"github.com/danielhkuo/socialnet/models"
	"github.com/danielhkuo/socialnet/store"
)

// notFound turns store.ErrNotFound into a NotFound with detail and
// passes every other error through.
func notFound(err error, detail string) error {
	if errors.Is(err, store.ErrNotFound) {
		return apperr.NotFound(detail)
	}
	return err
}

// errMissingReference is the detail for a foreign key that no longer
// resolves when the write lands.
const errMissingReference = "Referenced record not found"

// conflict turns a unique violation that slipped past a pre-check into
// the same Conflict the pre-check would have produced. A foreign key
// violation becomes NotFound.
func conflict(err error, detail string) error {
	switch {
	case errors.Is(err, store.ErrDuplicate):
		return apperr.Conflict(detail)
	case errors.Is(err, store.ErrMissingReference):
		return apperr.NotFound(errMissingReference)
	}
	return err
}

type guard func(ctx context.Context, l guards.Lookup, actorID, resourceID int64) (bool, error)

// check runs g and turns a failed check into Forbidden with detail
func check(ctx context.Context, tx *store.Tx, g guard, actorID, resourceID int64, detail string) error {
	ok, err := g(ctx, tx, actorID, resourceID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.Forbidden(detail)
	}
	return nil
}

func loadEvent(ctx context.Context, tx *store.Tx, eventID int64) (*models.Event, error) {
	ev, err := tx.GetEvent(ctx, eventID)
	if err != nil {
		return nil, notFound(err, "Event not found")
	}
	return ev, nil
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}
