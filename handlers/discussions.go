// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/socialnet/middleware"
	"github.com/danielhkuo/socialnet/models"
	"github.com/danielhkuo/socialnet/service"
)

type DiscussionHandler struct {
	discussions *service.Discussions
}

func NewDiscussionHandler(discussions *service.Discussions) *DiscussionHandler {
	return &DiscussionHandler{discussions: discussions}
}

// CreateThread handles POST /discussions
func (h *DiscussionHandler) CreateThread(w http.ResponseWriter, r *http.Request) {
	var req models.CreateThreadRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	th, err := h.discussions.CreateThread(r.Context(), middleware.MustUser(r).ID, req)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusCreated, th)
}

// GetThread handles GET /discussions/{thread_id}
func (h *DiscussionHandler) GetThread(w http.ResponseWriter, r *http.Request) {
	threadID, err := pathID(r, "thread_id")
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	detail, err := h.discussions.GetThread(r.Context(), middleware.MustUser(r).ID, threadID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, detail)
}

// PostMessage handles POST /discussions/{thread_id}/messages
func (h *DiscussionHandler) PostMessage(w http.ResponseWriter, r *http.Request) {
	threadID, err := pathID(r, "thread_id")
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	var req models.CreateMessageRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	m, err := h.discussions.PostMessage(r.Context(), middleware.MustUser(r).ID, threadID, req)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusCreated, m)
}

// ListMessages handles GET /discussions/{thread_id}/messages
func (h *DiscussionHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	threadID, err := pathID(r, "thread_id")
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	messages, err := h.discussions.ListMessages(r.Context(), middleware.MustUser(r).ID, threadID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, messages)
}
