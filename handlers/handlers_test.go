// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/danielhkuo/socialnet/apperr"
	"github.com/danielhkuo/socialnet/middleware"
	"github.com/danielhkuo/socialnet/models"
	"github.com/danielhkuo/socialnet/service"
	"github.com/danielhkuo/socialnet/store"
	"github.com/danielhkuo/socialnet/testutil"
)

type env struct {
	st       *store.Store
	accounts *service.Accounts
	authed   func(http.HandlerFunc) http.HandlerFunc
}

func setup(t *testing.T) *env {
	t.Helper()
	st := testutil.SetupTestStore(t)
	accounts := service.NewAccounts(st, testutil.NewTestIssuer(t))
	return &env{st: st, accounts: accounts, authed: middleware.RequireAuth(accounts)}
}

// login issues a bearer token for a fixture user
func (e *env) login(t *testing.T, u models.User) map[string]string {
	t.Helper()
	resp, err := e.accounts.IssueToken(t.Context(), u.Email, testutil.TestPassword)
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}
	return testutil.Bearer(resp.AccessToken)
}

func TestPathID(t *testing.T) {
	testCases := []struct {
		name    string
		value   string
		want    int64
		wantErr bool
	}{
		{"positive", "42", 42, false},
		{"zero", "0", 0, true},
		{"negative", "-3", 0, true},
		{"not a number", "abc", 0, true},
		{"empty", "", 0, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.SetPathValue("event_id", tc.value)

			got, err := pathID(req, "event_id")
			if tc.wantErr {
				if apperr.DetailOf(err) != "Invalid event_id" {
					t.Errorf("Expected 'Invalid event_id', got %v", err)
				}
				return
			}
			if err != nil || got != tc.want {
				t.Errorf("pathID() = %d, %v; want %d", got, err, tc.want)
			}
		})
	}
}

func TestTokenAcceptsFormAndJSON(t *testing.T) {
	e := setup(t)
	h := NewAccountHandler(e.accounts)
	u := testutil.CreateTestUser(t, e.st, "alice")

	t.Run("form", func(t *testing.T) {
		form := url.Values{"username": {u.Email}, "password": {testutil.TestPassword}}
		req := httptest.NewRequest("POST", "/api/auth/token", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()

		h.Token(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)
		var resp models.TokenResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.AccessToken == "" || resp.TokenType != "bearer" {
			t.Errorf("Unexpected token response %+v", resp)
		}
	})

	t.Run("json", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/api/auth/token", models.TokenRequest{Username: u.Email, Password: testutil.TestPassword}, nil)
		w := httptest.NewRecorder()

		h.Token(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)
	})

	t.Run("form without password", func(t *testing.T) {
		form := url.Values{"username": {u.Email}}
		req := httptest.NewRequest("POST", "/api/auth/token", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()

		h.Token(w, req)

		testutil.AssertStatus(t, w, http.StatusBadRequest)
		testutil.AssertDetail(t, w, "password failed validation: required")
	})
}

func TestRegister(t *testing.T) {
	e := setup(t)
	h := NewAccountHandler(e.accounts)

	body := models.RegisterRequest{Email: "New@Example.com", FullName: "New User", Password: "password123"}

	w := httptest.NewRecorder()
	h.Register(w, testutil.MakeRequest("POST", "/api/auth/register", body, nil))
	testutil.AssertStatus(t, w, http.StatusCreated)

	var u models.User
	testutil.AssertJSON(t, w, &u)
	if u.Email != "new@example.com" || !u.IsActive {
		t.Errorf("Unexpected user %+v", u)
	}
	if strings.Contains(w.Body.String(), "password") {
		t.Error("Response must not expose the password hash")
	}

	w = httptest.NewRecorder()
	h.Register(w, testutil.MakeRequest("POST", "/api/auth/register", body, nil))
	testutil.AssertStatus(t, w, http.StatusBadRequest)
	testutil.AssertDetail(t, w, "Email already registered")
}

func TestGroupMemberRoutes(t *testing.T) {
	e := setup(t)
	h := NewGroupHandler(service.NewGroups(e.st))
	owner := testutil.CreateTestUser(t, e.st, "owner")
	bob := testutil.CreateTestUser(t, e.st, "bob")

	w := httptest.NewRecorder()
	e.authed(h.CreateGroup)(w, testutil.MakeRequest("POST", "/api/groups", models.CreateGroupRequest{Name: "Club", Type: "secret"}, e.login(t, owner)))
	testutil.AssertStatus(t, w, http.StatusCreated)
	var g models.Group
	testutil.AssertJSON(t, w, &g)

	groupID := itoa(g.ID)

	t.Run("invalid group type", func(t *testing.T) {
		w := httptest.NewRecorder()
		e.authed(h.CreateGroup)(w, testutil.MakeRequest("POST", "/api/groups", models.CreateGroupRequest{Name: "Club", Type: "hidden"}, e.login(t, owner)))
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("non-admin cannot add", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/api/groups/"+groupID+"/members", models.AddMemberRequest{UserID: owner.ID}, e.login(t, bob))
		req.SetPathValue("group_id", groupID)
		w := httptest.NewRecorder()
		e.authed(h.AddMember)(w, req)
		testutil.AssertStatus(t, w, http.StatusForbidden)
		testutil.AssertDetail(t, w, "Administrator privileges required")
	})

	t.Run("add, update and remove", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/api/groups/"+groupID+"/members", models.AddMemberRequest{UserID: bob.ID}, e.login(t, owner))
		req.SetPathValue("group_id", groupID)
		w := httptest.NewRecorder()
		e.authed(h.AddMember)(w, req)
		testutil.AssertStatus(t, w, http.StatusCreated)

		req = testutil.MakeRequest("PATCH", "/api/groups/"+groupID+"/members/"+itoa(bob.ID), map[string]bool{"can_create_events": true}, e.login(t, owner))
		req.SetPathValue("group_id", groupID)
		req.SetPathValue("user_id", itoa(bob.ID))
		w = httptest.NewRecorder()
		e.authed(h.UpdateMember)(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)
		var m models.GroupMembership
		testutil.AssertJSON(t, w, &m)
		if !m.CanCreateEvents || m.IsAdmin {
			t.Errorf("Unexpected membership %+v", m)
		}

		req = testutil.MakeRequest("DELETE", "/api/groups/"+groupID+"/members/"+itoa(bob.ID), nil, e.login(t, owner))
		req.SetPathValue("group_id", groupID)
		req.SetPathValue("user_id", itoa(bob.ID))
		w = httptest.NewRecorder()
		e.authed(h.RemoveMember)(w, req)
		testutil.AssertStatus(t, w, http.StatusNoContent)
		if w.Body.Len() != 0 {
			t.Errorf("Expected empty body, got %q", w.Body.String())
		}
	})
}

func TestSubmitVotesBody(t *testing.T) {
	e := setup(t)
	h := NewPollHandler(service.NewPolls(e.st))
	owner := testutil.CreateTestUser(t, e.st, "owner")

	testCases := []struct {
		name   string
		body   string
		detail string
	}{
		{"object instead of array", `{"question_id":1,"option_id":1}`, "Invalid JSON"},
		{"empty array", `[]`, "At least one vote is required"},
		{"missing option", `[{"question_id":1}]`, "item 0: option_id failed validation: required"},
		{"unknown poll", `[{"question_id":1,"option_id":1}]`, "Poll not found"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/polls/77/votes", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			for k, v := range e.login(t, owner) {
				req.Header.Set(k, v)
			}
			req.SetPathValue("poll_id", "77")
			w := httptest.NewRecorder()

			e.authed(h.SubmitVotes)(w, req)

			testutil.AssertDetail(t, w, tc.detail)
		})
	}
}
