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

// Discussions manages threads attached to a group or an event.
type Discussions struct {
	st *store.Store
}

func NewDiscussions(st *store.Store) *Discussions {
	return &Discussions{st: st}
}

// threadContext validates that exactly the id matching context is set
// and returns the parent resource id.
func threadContext(req models.CreateThreadRequest) (int64, error) {
	switch req.Context {
	case models.ContextGroup:
		if req.GroupID == nil {
			return 0, apperr.BadRequest("group_id is required when context = group")
		}
		if req.EventID != nil {
			return 0, apperr.BadRequest("event_id must be empty when context = group")
		}
		return *req.GroupID, nil
	case models.ContextEvent:
		if req.EventID == nil {
			return 0, apperr.BadRequest("event_id is required when context = event")
		}
		if req.GroupID != nil {
			return 0, apperr.BadRequest("group_id must be empty when context = event")
		}
		return *req.EventID, nil
	default:
		return 0, apperr.BadRequest("context must be group or event")
	}
}

// checkAccess applies the guard matching the thread's context
func checkAccess(ctx context.Context, tx *store.Tx, actorID int64, kind string, groupID, eventID *int64) error {
	switch {
	case kind == models.ContextGroup && groupID != nil:
		return check(ctx, tx, guards.IsGroupMember, actorID, *groupID, "Access to group discussion denied")
	case kind == models.ContextEvent && eventID != nil:
		return check(ctx, tx, guards.IsEventMember, actorID, *eventID, "Access to event discussion denied")
	default:
		return apperr.Forbidden("Access to discussion denied")
	}
}

// loadThread fetches the thread and checks the actor against the
// context stored on the thread, not anything in the request.
func loadThread(ctx context.Context, tx *store.Tx, actorID, threadID int64) (*models.DiscussionThread, error) {
	th, err := tx.GetThread(ctx, threadID)
	if err != nil {
		return nil, notFound(err, "Thread not found")
	}
	if err := checkAccess(ctx, tx, actorID, th.Context, th.GroupID, th.EventID); err != nil {
		return nil, err
	}
	return th, nil
}

func (d *Discussions) CreateThread(ctx context.Context, actorID int64, req models.CreateThreadRequest) (*models.DiscussionThread, error) {
	if _, err := threadContext(req); err != nil {
		return nil, err
	}

	th := &models.DiscussionThread{
		Title:       req.Title,
		Context:     req.Context,
		GroupID:     req.GroupID,
		EventID:     req.EventID,
		CreatedByID: actorID,
	}

	err := d.st.InTx(ctx, func(tx *store.Tx) error {
		if err := checkAccess(ctx, tx, actorID, th.Context, th.GroupID, th.EventID); err != nil {
			return err
		}
		return tx.InsertThread(ctx, th)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("thread created", "thread_id", th.ID, "context", th.Context, "created_by", actorID)
	return th, nil
}

func (d *Discussions) GetThread(ctx context.Context, actorID, threadID int64) (*models.ThreadDetail, error) {
	var detail models.ThreadDetail
	err := d.st.InTx(ctx, func(tx *store.Tx) error {
		th, err := loadThread(ctx, tx, actorID, threadID)
		if err != nil {
			return err
		}
		messages, err := tx.ListMessages(ctx, threadID)
		if err != nil {
			return err
		}
		detail = models.ThreadDetail{DiscussionThread: *th, Messages: messages}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

// PostMessage adds a message. A parent, if given, must already exist in
// the same thread.
func (d *Discussions) PostMessage(ctx context.Context, actorID, threadID int64, req models.CreateMessageRequest) (*models.Message, error) {
	m := &models.Message{
		ThreadID: threadID,
		AuthorID: actorID,
		Content:  req.Content,
		ParentID: req.ParentID,
	}

	err := d.st.InTx(ctx, func(tx *store.Tx) error {
		if _, err := loadThread(ctx, tx, actorID, threadID); err != nil {
			return err
		}
		if req.ParentID != nil {
			ok, err := tx.MessageInThread(ctx, threadID, *req.ParentID)
			if err != nil {
				return err
			}
			if !ok {
				return apperr.BadRequest("Parent message not found in this thread")
			}
		}
		return tx.InsertMessage(ctx, m)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("message posted", "thread_id", threadID, "message_id", m.ID, "author", actorID)
	return m, nil
}

func (d *Discussions) ListMessages(ctx context.Context, actorID, threadID int64) ([]models.Message, error) {
	var messages []models.Message
	err := d.st.InTx(ctx, func(tx *store.Tx) error {
		if _, err := loadThread(ctx, tx, actorID, threadID); err != nil {
			return err
		}
		var err error
		messages, err = tx.ListMessages(ctx, threadID)
		return err
	})
	return messages, err
}
