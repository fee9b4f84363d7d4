// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/socialnet/apperr"
	"github.com/danielhkuo/socialnet/middleware"
	"github.com/danielhkuo/socialnet/models"
	"github.com/danielhkuo/socialnet/service"
)

type PollHandler struct {
	polls *service.Polls
}

func NewPollHandler(polls *service.Polls) *PollHandler {
	return &PollHandler{polls: polls}
}

// CreatePoll handles POST /events/{event_id}/polls
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	eventID, err := pathID(r, "event_id")
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	var req models.CreatePollRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	detail, err := h.polls.CreatePoll(r.Context(), middleware.MustUser(r).ID, eventID, req)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusCreated, detail)
}

// ListPolls handles GET /events/{event_id}/polls
func (h *PollHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	eventID, err := pathID(r, "event_id")
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	polls, err := h.polls.ListPolls(r.Context(), middleware.MustUser(r).ID, eventID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, polls)
}

// GetPoll handles GET /polls/{poll_id}
func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	pollID, err := pathID(r, "poll_id")
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	detail, err := h.polls.GetPoll(r.Context(), middleware.MustUser(r).ID, pollID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, detail)
}

// SubmitVotes handles POST /polls/{poll_id}/votes. The body is a JSON
// array of {question_id, option_id}.
func (h *PollHandler) SubmitVotes(w http.ResponseWriter, r *http.Request) {
	pollID, err := pathID(r, "poll_id")
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	var votes []models.VoteItem
	if err := middleware.ParseJSONBody(r, &votes); err != nil {
		middleware.WriteError(w, r, apperr.BadRequest("Invalid JSON"))
		return
	}
	if len(votes) == 0 {
		middleware.WriteError(w, r, apperr.BadRequest("At least one vote is required"))
		return
	}
	if err := middleware.ValidateEach(votes); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	detail, err := h.polls.SubmitVotes(r.Context(), middleware.MustUser(r).ID, pollID, votes)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, detail)
}

// ClosePoll handles POST /polls/{poll_id}/close
func (h *PollHandler) ClosePoll(w http.ResponseWriter, r *http.Request) {
	pollID, err := pathID(r, "poll_id")
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	detail, err := h.polls.ClosePoll(r.Context(), middleware.MustUser(r).ID, pollID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, detail)
}
