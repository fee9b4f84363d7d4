// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/danielhkuo/socialnet/apperr"
	"github.com/danielhkuo/socialnet/guards"
	"github.com/danielhkuo/socialnet/models"
	"github.com/danielhkuo/socialnet/store"
)

const errOrganizerRequired = "Organizer privileges required"

// Events manages events and their organizer and participant links.
type Events struct {
	st *store.Store
}

func NewEvents(st *store.Store) *Events {
	return &Events{st: st}
}

// CreateEvent stores the event and makes the creator and every id in
// OrganizerIDs an organizer. Group events need CanCreateGroupEvent.
func (e *Events) CreateEvent(ctx context.Context, actorID int64, req models.CreateEventRequest) (*models.Event, error) {
	if !req.EndDate.After(req.StartDate) {
		return nil, apperr.BadRequest("end_date must be after start_date")
	}

	ev := &models.Event{
		Name:                req.Name,
		Description:         req.Description,
		StartDate:           req.StartDate.UTC(),
		EndDate:             req.EndDate.UTC(),
		Location:            req.Location,
		CoverPhoto:          req.CoverPhoto,
		IsPrivate:           req.IsPrivate,
		GroupID:             req.GroupID,
		CarpoolEnabled:      req.CarpoolEnabled,
		ShoppingListEnabled: req.ShoppingListEnabled,
		TicketingEnabled:    req.TicketingEnabled,
		PollsEnabled:        boolOr(req.PollsEnabled, true),
		CreatedByID:         actorID,
	}

	organizers := []int64{actorID}
	seen := map[int64]bool{actorID: true}
	for _, id := range req.OrganizerIDs {
		if !seen[id] {
			seen[id] = true
			organizers = append(organizers, id)
		}
	}

	err := e.st.InTx(ctx, func(tx *store.Tx) error {
		if req.GroupID != nil {
			err := check(ctx, tx, guards.CanCreateGroupEvent, actorID, *req.GroupID,
				"User cannot create or manage events for this group")
			if err != nil {
				return err
			}
		}

		for _, id := range organizers[1:] {
			exists, err := tx.UserExists(ctx, id)
			if err != nil {
				return err
			}
			if !exists {
				return apperr.NotFound(fmt.Sprintf("Organizer %d not found", id))
			}
		}

		if err := tx.InsertEvent(ctx, ev); err != nil {
			return err
		}
		for _, id := range organizers {
			if _, err := tx.InsertOrganizer(ctx, ev.ID, id); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("event created", "event_id", ev.ID, "created_by", actorID, "organizers", len(organizers))
	return ev, nil
}

func (e *Events) ListEvents(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	err := e.st.InTx(ctx, func(tx *store.Tx) error {
		var err error
		events, err = tx.ListEvents(ctx)
		return err
	})
	return events, err
}

func (e *Events) GetEvent(ctx context.Context, eventID int64) (*models.EventDetail, error) {
	var detail models.EventDetail
	err := e.st.InTx(ctx, func(tx *store.Tx) error {
		ev, err := loadEvent(ctx, tx, eventID)
		if err != nil {
			return err
		}
		organizers, err := tx.ListOrganizers(ctx, eventID)
		if err != nil {
			return err
		}
		participants, err := tx.ListParticipants(ctx, eventID)
		if err != nil {
			return err
		}
		detail = models.EventDetail{Event: *ev, Organizers: organizers, Participants: participants}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

func (e *Events) AddOrganizer(ctx context.Context, actorID, eventID, userID int64) (*models.EventOrganizer, error) {
	var o *models.EventOrganizer
	err := e.st.InTx(ctx, func(tx *store.Tx) error {
		if err := check(ctx, tx, guards.IsEventOrganizer, actorID, eventID, errOrganizerRequired); err != nil {
			return err
		}

		already, err := tx.IsOrganizer(ctx, eventID, userID)
		if err != nil {
			return err
		}
		if already {
			return apperr.Conflict("User already organizer")
		}
		if err := userMustExist(ctx, tx, userID); err != nil {
			return err
		}

		o, err = tx.InsertOrganizer(ctx, eventID, userID)
		return conflict(err, "User already organizer")
	})
	if err != nil {
		return nil, err
	}

	slog.Info("event organizer added", "event_id", eventID, "user_id", userID, "by", actorID)
	return o, nil
}

// AddParticipant lets any user add themselves. Adding someone else
// requires organizer privileges.
func (e *Events) AddParticipant(ctx context.Context, actorID, eventID, userID int64) (*models.EventParticipant, error) {
	var p *models.EventParticipant
	err := e.st.InTx(ctx, func(tx *store.Tx) error {
		if _, err := loadEvent(ctx, tx, eventID); err != nil {
			return err
		}
		if userID != actorID {
			if err := check(ctx, tx, guards.IsEventOrganizer, actorID, eventID, errOrganizerRequired); err != nil {
				return err
			}
		}

		already, err := tx.IsParticipant(ctx, eventID, userID)
		if err != nil {
			return err
		}
		if already {
			return apperr.Conflict("User already participant")
		}
		if err := userMustExist(ctx, tx, userID); err != nil {
			return err
		}

		p, err = tx.InsertParticipant(ctx, eventID, userID)
		return conflict(err, "User already participant")
	})
	if err != nil {
		return nil, err
	}

	slog.Info("event participant added", "event_id", eventID, "user_id", userID, "self", userID == actorID)
	return p, nil
}

func (e *Events) RemoveParticipant(ctx context.Context, actorID, eventID, userID int64) error {
	err := e.st.InTx(ctx, func(tx *store.Tx) error {
		if err := check(ctx, tx, guards.IsEventOrganizer, actorID, eventID, errOrganizerRequired); err != nil {
			return err
		}
		return notFound(tx.DeleteParticipant(ctx, eventID, userID), "Participant not found")
	})
	if err != nil {
		return err
	}

	slog.Info("event participant removed", "event_id", eventID, "user_id", userID, "by", actorID)
	return nil
}

func userMustExist(ctx context.Context, tx *store.Tx, userID int64) error {
	exists, err := tx.UserExists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("User not found")
	}
	return nil
}
