// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"mime"
	"net/http"

	"github.com/danielhkuo/socialnet/apperr"
	"github.com/danielhkuo/socialnet/middleware"
	"github.com/danielhkuo/socialnet/models"
	"github.com/danielhkuo/socialnet/service"
)

type AccountHandler struct {
	accounts *service.Accounts
}

func NewAccountHandler(accounts *service.Accounts) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// Register handles POST /auth/register
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	user, err := h.accounts.Register(r.Context(), req)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusCreated, user)
}

// Token handles POST /auth/token. The password grant arrives as a form
// (OAuth2 style) or as JSON; username carries the email.
func (h *AccountHandler) Token(w http.ResponseWriter, r *http.Request) {
	req, err := parseTokenRequest(r)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	resp, err := h.accounts.IssueToken(r.Context(), req.Username, req.Password)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, resp)
}

func parseTokenRequest(r *http.Request) (models.TokenRequest, error) {
	var req models.TokenRequest

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		return req, middleware.DecodeAndValidate(r, &req)
	}

	if err := r.ParseForm(); err != nil {
		return req, apperr.BadRequest("Invalid form body")
	}
	req.Username = r.PostForm.Get("username")
	req.Password = r.PostForm.Get("password")
	return req, middleware.Validate(&req)
}

// Me handles GET /users/me
func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, middleware.MustUser(r))
}

// GetUser handles GET /users/{user_id}
func (h *AccountHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "user_id")
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	user, err := h.accounts.GetUser(r.Context(), userID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, user)
}
