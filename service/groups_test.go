// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package service

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/danielhkuo/socialnet/apperr"
	"github.com/danielhkuo/socialnet/models"
	"github.com/danielhkuo/socialnet/testutil"
)

func newGroup(t *testing.T, e *engines, ownerID int64) *models.Group {
	t.Helper()
	g, err := e.groups.CreateGroup(context.Background(), ownerID, models.CreateGroupRequest{
		Name: "Hikers",
		Type: models.GroupPublic,
	})
	if err != nil {
		t.Fatalf("CreateGroup() error = %v", err)
	}
	return g
}

func TestCreateGroupMakesCreatorAdmin(t *testing.T) {
	e := setup(t)
	owner := testutil.CreateTestUser(t, e.st, "owner")

	g := newGroup(t, e, owner.ID)
	if !g.AllowMemberPosts || !g.AllowMemberEvents {
		t.Error("member toggles should default to true")
	}

	detail, err := e.groups.GetGroup(context.Background(), g.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(detail.Members) != 1 {
		t.Fatalf("expected 1 member, got %d", len(detail.Members))
	}
	m := detail.Members[0]
	if m.UserID != owner.ID || !m.IsAdmin || !m.CanCreateEvents {
		t.Errorf("creator membership = %+v, want admin with can_create_events", m)
	}
}

func TestAddMember(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	owner := testutil.CreateTestUser(t, e.st, "owner")
	bob := testutil.CreateTestUser(t, e.st, "bob")
	carol := testutil.CreateTestUser(t, e.st, "carol")
	g := newGroup(t, e, owner.ID)

	m, err := e.groups.AddMember(ctx, owner.ID, g.ID, models.AddMemberRequest{UserID: bob.ID, CanCreateEvents: true})
	if err != nil {
		t.Fatalf("AddMember() error = %v", err)
	}
	if m.IsAdmin || !m.CanCreateEvents {
		t.Errorf("unexpected flags %+v", m)
	}

	t.Run("duplicate is a conflict", func(t *testing.T) {
		_, err := e.groups.AddMember(ctx, owner.ID, g.ID, models.AddMemberRequest{UserID: bob.ID})
		assertKind(t, err, apperr.KindConflict, "User already member")
	})

	t.Run("non-admin is forbidden", func(t *testing.T) {
		_, err := e.groups.AddMember(ctx, bob.ID, g.ID, models.AddMemberRequest{UserID: carol.ID})
		assertKind(t, err, apperr.KindForbidden, "Administrator privileges required")
	})

	t.Run("missing user", func(t *testing.T) {
		_, err := e.groups.AddMember(ctx, owner.ID, g.ID, models.AddMemberRequest{UserID: 9999})
		assertKind(t, err, apperr.KindNotFound, "User not found")
	})
}

func TestAddMemberConcurrentUniqueness(t *testing.T) {
	concurrentAddMember(t, setup(t))
}

// concurrentAddMember races several adds of the same user; exactly one
// may win and the rest must see Conflict.
func concurrentAddMember(t *testing.T, e *engines) {
	t.Helper()
	owner := testutil.CreateTestUser(t, e.st, "owner")
	bob := testutil.CreateTestUser(t, e.st, "bob")
	g := newGroup(t, e, owner.ID)

	const attempts = 8
	var wg sync.WaitGroup
	var ok, conflicts atomic.Int32

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := e.groups.AddMember(context.Background(), owner.ID, g.ID, models.AddMemberRequest{UserID: bob.ID})
			switch {
			case err == nil:
				ok.Add(1)
			case apperr.Is(err, apperr.KindConflict):
				conflicts.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if ok.Load() != 1 {
		t.Errorf("expected exactly one successful add, got %d", ok.Load())
	}
	if conflicts.Load() != attempts-1 {
		t.Errorf("expected %d conflicts, got %d", attempts-1, conflicts.Load())
	}
}

func TestUpdateAndRemoveMember(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	owner := testutil.CreateTestUser(t, e.st, "owner")
	bob := testutil.CreateTestUser(t, e.st, "bob")
	g := newGroup(t, e, owner.ID)

	if _, err := e.groups.AddMember(ctx, owner.ID, g.ID, models.AddMemberRequest{UserID: bob.ID, CanCreateEvents: true}); err != nil {
		t.Fatal(err)
	}

	// Only is_admin is sent; can_create_events keeps its value
	m, err := e.groups.UpdateMember(ctx, owner.ID, g.ID, bob.ID, models.UpdateMemberRequest{IsAdmin: ptr(true)})
	if err != nil {
		t.Fatalf("UpdateMember() error = %v", err)
	}
	if !m.IsAdmin || !m.CanCreateEvents {
		t.Errorf("partial update lost a flag: %+v", m)
	}

	_, err = e.groups.UpdateMember(ctx, owner.ID, g.ID, 9999, models.UpdateMemberRequest{IsAdmin: ptr(false)})
	assertKind(t, err, apperr.KindNotFound, "Membership not found")

	if err := e.groups.RemoveMember(ctx, owner.ID, g.ID, bob.ID); err != nil {
		t.Fatalf("RemoveMember() error = %v", err)
	}
	err = e.groups.RemoveMember(ctx, owner.ID, g.ID, bob.ID)
	assertKind(t, err, apperr.KindNotFound, "Membership not found")
}
