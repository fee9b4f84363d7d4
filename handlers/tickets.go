// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/socialnet/middleware"
	"github.com/danielhkuo/socialnet/models"
	"github.com/danielhkuo/socialnet/service"
)

type TicketHandler struct {
	tickets *service.Tickets
}

func NewTicketHandler(tickets *service.Tickets) *TicketHandler {
	return &TicketHandler{tickets: tickets}
}

// CreateTicketType handles POST /tickets/events/{event_id}/types
func (h *TicketHandler) CreateTicketType(w http.ResponseWriter, r *http.Request) {
	eventID, err := pathID(r, "event_id")
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	var req models.CreateTicketTypeRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	tt, err := h.tickets.CreateTicketType(r.Context(), middleware.MustUser(r).ID, eventID, req)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusCreated, tt)
}

// ListTicketTypes handles GET /tickets/events/{event_id}/types
func (h *TicketHandler) ListTicketTypes(w http.ResponseWriter, r *http.Request) {
	eventID, err := pathID(r, "event_id")
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	types, err := h.tickets.ListTicketTypes(r.Context(), eventID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, types)
}

// PurchaseTicket handles POST /tickets/types/{ticket_type_id}/purchase.
// It is public; buyers need no account.
func (h *TicketHandler) PurchaseTicket(w http.ResponseWriter, r *http.Request) {
	ticketTypeID, err := pathID(r, "ticket_type_id")
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	var req models.PurchaseTicketRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	tk, err := h.tickets.PurchaseTicket(r.Context(), ticketTypeID, req)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	slog.Debug("ticket sale", "ticket_type_id", ticketTypeID, "client_ip", middleware.GetClientIP(r))
	middleware.JSONResponse(w, http.StatusCreated, tk)
}
