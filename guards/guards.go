// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package guards

import (
	"context"
	"errors"

	"github.com/danielhkuo/socialnet/models"
	"github.com/danielhkuo/socialnet/store"
)

// Lookup is the read-only view guards need. *store.Tx satisfies it.
type Lookup interface {
	GetMembership(ctx context.Context, groupID, userID int64) (*models.GroupMembership, error)
	IsOrganizer(ctx context.Context, eventID, userID int64) (bool, error)
	IsParticipant(ctx context.Context, eventID, userID int64) (bool, error)
}

var _ Lookup = (*store.Tx)(nil)

func membership(ctx context.Context, l Lookup, groupID, userID int64) (*models.GroupMembership, error) {
	m, err := l.GetMembership(ctx, groupID, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	return m, err
}

func IsGroupMember(ctx context.Context, l Lookup, actorID, groupID int64) (bool, error) {
	m, err := membership(ctx, l, groupID, actorID)
	return m != nil, err
}

// IsGroupAdmin implies IsGroupMember
func IsGroupAdmin(ctx context.Context, l Lookup, actorID, groupID int64) (bool, error) {
	m, err := membership(ctx, l, groupID, actorID)
	if err != nil || m == nil {
		return false, err
	}
	return m.IsAdmin, nil
}

// CanCreateGroupEvent holds for group admins and for members flagged
// can_create_events.
func CanCreateGroupEvent(ctx context.Context, l Lookup, actorID, groupID int64) (bool, error) {
	m, err := membership(ctx, l, groupID, actorID)
	if err != nil || m == nil {
		return false, err
	}
	return m.IsAdmin || m.CanCreateEvents, nil
}

func IsEventOrganizer(ctx context.Context, l Lookup, actorID, eventID int64) (bool, error) {
	return l.IsOrganizer(ctx, eventID, actorID)
}

func IsEventParticipant(ctx context.Context, l Lookup, actorID, eventID int64) (bool, error) {
	return l.IsParticipant(ctx, eventID, actorID)
}

// IsEventMember holds for organizers and participants
func IsEventMember(ctx context.Context, l Lookup, actorID, eventID int64) (bool, error) {
	ok, err := l.IsOrganizer(ctx, eventID, actorID)
	if err != nil || ok {
		return ok, err
	}
	return l.IsParticipant(ctx, eventID, actorID)
}
