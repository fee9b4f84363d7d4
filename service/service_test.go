// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package service

import (
	"testing"

	"github.com/danielhkuo/socialnet/apperr"
	"github.com/danielhkuo/socialnet/store"
	"github.com/danielhkuo/socialnet/testutil"
)

type engines struct {
	st          *store.Store
	accounts    *Accounts
	groups      *Groups
	events      *Events
	discussions *Discussions
	media       *Media
	polls       *Polls
	tickets     *Tickets
	addons      *Addons
}

func setup(t *testing.T) *engines {
	t.Helper()
	return newEngines(t, testutil.SetupTestStore(t))
}

func newEngines(t *testing.T, st *store.Store) *engines {
	t.Helper()
	return &engines{
		st:          st,
		accounts:    NewAccounts(st, testutil.NewTestIssuer(t)),
		groups:      NewGroups(st),
		events:      NewEvents(st),
		discussions: NewDiscussions(st),
		media:       NewMedia(st),
		polls:       NewPolls(st),
		tickets:     NewTickets(st),
		addons:      NewAddons(st),
	}
}

// assertKind fails unless err is an *apperr.Error of kind with detail.
// An empty detail skips the message check.
func assertKind(t *testing.T, err error, kind apperr.Kind, detail string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", kind)
	}
	if got := apperr.KindOf(err); got != kind {
		t.Fatalf("expected %s error, got %s (%v)", kind, got, err)
	}
	if detail != "" && apperr.DetailOf(err) != detail {
		t.Errorf("expected detail %q, got %q", detail, apperr.DetailOf(err))
	}
}

func ptr[T any](v T) *T { return &v }
