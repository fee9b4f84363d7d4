// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package service

import (
	"context"
	"testing"

	"github.com/danielhkuo/socialnet/apperr"
	"github.com/danielhkuo/socialnet/models"
	"github.com/danielhkuo/socialnet/testutil"
)

func TestCreateThreadContextValidation(t *testing.T) {
	e := setup(t)
	owner := testutil.CreateTestUser(t, e.st, "owner")
	id := int64(1)

	tests := []struct {
		name   string
		req    models.CreateThreadRequest
		detail string
	}{
		{
			name:   "group context without group_id",
			req:    models.CreateThreadRequest{Title: "t", Context: models.ContextGroup},
			detail: "group_id is required when context = group",
		},
		{
			name:   "group context with event_id",
			req:    models.CreateThreadRequest{Title: "t", Context: models.ContextGroup, GroupID: &id, EventID: &id},
			detail: "event_id must be empty when context = group",
		},
		{
			name:   "event context without event_id",
			req:    models.CreateThreadRequest{Title: "t", Context: models.ContextEvent},
			detail: "event_id is required when context = event",
		},
		{
			name:   "event context with group_id",
			req:    models.CreateThreadRequest{Title: "t", Context: models.ContextEvent, GroupID: &id, EventID: &id},
			detail: "group_id must be empty when context = event",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.discussions.CreateThread(context.Background(), owner.ID, tt.req)
			assertKind(t, err, apperr.KindBadRequest, tt.detail)
		})
	}
}

func TestThreadAccess(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	owner := testutil.CreateTestUser(t, e.st, "owner")
	guest := testutil.CreateTestUser(t, e.st, "guest")
	outsider := testutil.CreateTestUser(t, e.st, "outsider")
	g := newGroup(t, e, owner.ID)
	ev := testutil.CreateTestEvent(t, e.st, owner.ID, testutil.EventToggles{})
	testutil.AddTestParticipant(t, e.st, ev.ID, guest.ID)

	_, err := e.discussions.CreateThread(ctx, outsider.ID, models.CreateThreadRequest{
		Title: "Plans", Context: models.ContextGroup, GroupID: &g.ID,
	})
	assertKind(t, err, apperr.KindForbidden, "Access to group discussion denied")

	th, err := e.discussions.CreateThread(ctx, guest.ID, models.CreateThreadRequest{
		Title: "Rides", Context: models.ContextEvent, EventID: &ev.ID,
	})
	if err != nil {
		t.Fatalf("participant should open event threads: %v", err)
	}

	_, err = e.discussions.GetThread(ctx, outsider.ID, th.ID)
	assertKind(t, err, apperr.KindForbidden, "Access to event discussion denied")

	_, err = e.discussions.GetThread(ctx, owner.ID, 9999)
	assertKind(t, err, apperr.KindNotFound, "Thread not found")
}

func TestPostMessageReplies(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	owner := testutil.CreateTestUser(t, e.st, "owner")
	g := newGroup(t, e, owner.ID)

	newThread := func(title string) *models.DiscussionThread {
		th, err := e.discussions.CreateThread(ctx, owner.ID, models.CreateThreadRequest{
			Title: title, Context: models.ContextGroup, GroupID: &g.ID,
		})
		if err != nil {
			t.Fatal(err)
		}
		return th
	}
	first := newThread("first")
	second := newThread("second")

	root, err := e.discussions.PostMessage(ctx, owner.ID, first.ID, models.CreateMessageRequest{Content: "hello"})
	if err != nil {
		t.Fatalf("PostMessage() error = %v", err)
	}
	reply, err := e.discussions.PostMessage(ctx, owner.ID, first.ID, models.CreateMessageRequest{Content: "hi", ParentID: &root.ID})
	if err != nil {
		t.Fatalf("reply error = %v", err)
	}
	if reply.ParentID == nil || *reply.ParentID != root.ID {
		t.Errorf("reply parent = %v, want %d", reply.ParentID, root.ID)
	}

	// A parent from another thread is rejected
	_, err = e.discussions.PostMessage(ctx, owner.ID, second.ID, models.CreateMessageRequest{Content: "x", ParentID: &root.ID})
	assertKind(t, err, apperr.KindBadRequest, "Parent message not found in this thread")

	detail, err := e.discussions.GetThread(ctx, owner.ID, first.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(detail.Messages) != 2 {
		t.Errorf("expected 2 messages, got %d", len(detail.Messages))
	}

	msgs, err := e.discussions.ListMessages(ctx, owner.ID, second.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(msgs) != 0 {
		t.Errorf("second thread should be empty, got %d", len(msgs))
	}
}
