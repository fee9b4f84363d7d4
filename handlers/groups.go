// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/socialnet/middleware"
	"github.com/danielhkuo/socialnet/models"
	"github.com/danielhkuo/socialnet/service"
)

type GroupHandler struct {
	groups *service.Groups
}

func NewGroupHandler(groups *service.Groups) *GroupHandler {
	return &GroupHandler{groups: groups}
}

// CreateGroup handles POST /groups
func (h *GroupHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req models.CreateGroupRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	group, err := h.groups.CreateGroup(r.Context(), middleware.MustUser(r).ID, req)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusCreated, group)
}

// ListGroups handles GET /groups
func (h *GroupHandler) ListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.groups.ListGroups(r.Context())
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, groups)
}

// GetGroup handles GET /groups/{group_id}
func (h *GroupHandler) GetGroup(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathID(r, "group_id")
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	detail, err := h.groups.GetGroup(r.Context(), groupID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, detail)
}

// AddMember handles POST /groups/{group_id}/members
func (h *GroupHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathID(r, "group_id")
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	var req models.AddMemberRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	m, err := h.groups.AddMember(r.Context(), middleware.MustUser(r).ID, groupID, req)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusCreated, m)
}

// UpdateMember handles PATCH /groups/{group_id}/members/{user_id}
func (h *GroupHandler) UpdateMember(w http.ResponseWriter, r *http.Request) {
	ids, err := pathIDs(r, "group_id", "user_id")
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	var req models.UpdateMemberRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	m, err := h.groups.UpdateMember(r.Context(), middleware.MustUser(r).ID, ids[0], ids[1], req)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, m)
}

// RemoveMember handles DELETE /groups/{group_id}/members/{user_id}
func (h *GroupHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	ids, err := pathIDs(r, "group_id", "user_id")
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	if err := h.groups.RemoveMember(r.Context(), middleware.MustUser(r).ID, ids[0], ids[1]); err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
