// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/socialnet/middleware"
	"github.com/danielhkuo/socialnet/models"
	"github.com/danielhkuo/socialnet/service"
)

type AddonHandler struct {
	addons *service.Addons
}

func NewAddonHandler(addons *service.Addons) *AddonHandler {
	return &AddonHandler{addons: addons}
}

// AddShoppingItem handles POST /addons/events/{event_id}/shopping-items
func (h *AddonHandler) AddShoppingItem(w http.ResponseWriter, r *http.Request) {
	eventID, err := pathID(r, "event_id")
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	var req models.CreateShoppingItemRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	item, err := h.addons.AddShoppingItem(r.Context(), middleware.MustUser(r).ID, eventID, req)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusCreated, item)
}

// ListShoppingItems handles GET /addons/events/{event_id}/shopping-items
func (h *AddonHandler) ListShoppingItems(w http.ResponseWriter, r *http.Request) {
	eventID, err := pathID(r, "event_id")
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	items, err := h.addons.ListShoppingItems(r.Context(), middleware.MustUser(r).ID, eventID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, items)
}

// CreateCarpoolOffer handles POST /addons/events/{event_id}/carpools
func (h *AddonHandler) CreateCarpoolOffer(w http.ResponseWriter, r *http.Request) {
	eventID, err := pathID(r, "event_id")
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	var req models.CreateCarpoolRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	offer, err := h.addons.CreateCarpoolOffer(r.Context(), middleware.MustUser(r).ID, eventID, req)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusCreated, offer)
}

// ListCarpoolOffers handles GET /addons/events/{event_id}/carpools
func (h *AddonHandler) ListCarpoolOffers(w http.ResponseWriter, r *http.Request) {
	eventID, err := pathID(r, "event_id")
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	offers, err := h.addons.ListCarpoolOffers(r.Context(), middleware.MustUser(r).ID, eventID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, offers)
}
