// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/socialnet/middleware"
	"github.com/danielhkuo/socialnet/models"
	"github.com/danielhkuo/socialnet/service"
)

type EventHandler struct {
	events *service.Events
}

func NewEventHandler(events *service.Events) *EventHandler {
	return &EventHandler{events: events}
}

// CreateEvent handles POST /events
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req models.CreateEventRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	ev, err := h.events.CreateEvent(r.Context(), middleware.MustUser(r).ID, req)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusCreated, ev)
}

// ListEvents handles GET /events
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.events.ListEvents(r.Context())
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, events)
}

// GetEvent handles GET /events/{event_id}
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID, err := pathID(r, "event_id")
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	detail, err := h.events.GetEvent(r.Context(), eventID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, detail)
}

// AddOrganizer handles POST /events/{event_id}/organizers
func (h *EventHandler) AddOrganizer(w http.ResponseWriter, r *http.Request) {
	eventID, err := pathID(r, "event_id")
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	var req models.UserRefRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	o, err := h.events.AddOrganizer(r.Context(), middleware.MustUser(r).ID, eventID, req.UserID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusCreated, o)
}

// AddParticipant handles POST /events/{event_id}/participants
func (h *EventHandler) AddParticipant(w http.ResponseWriter, r *http.Request) {
	eventID, err := pathID(r, "event_id")
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	var req models.UserRefRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	p, err := h.events.AddParticipant(r.Context(), middleware.MustUser(r).ID, eventID, req.UserID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusCreated, p)
}

// RemoveParticipant handles DELETE /events/{event_id}/participants/{user_id}
func (h *EventHandler) RemoveParticipant(w http.ResponseWriter, r *http.Request) {
	ids, err := pathIDs(r, "event_id", "user_id")
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	if err := h.events.RemoveParticipant(r.Context(), middleware.MustUser(r).ID, ids[0], ids[1]); err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
