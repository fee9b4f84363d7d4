// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /api/groups", middleware.WithLogging(handler))

Each request gets an ID (client X-Request-ID or a fresh UUID), echoed in
the response and logged with method, path, status and duration_ms.

# Authentication

RequireAuth resolves "Authorization: Bearer <jwt>" to an active user:

	authed := middleware.RequireAuth(accounts)
	mux.HandleFunc("GET /api/users/me", middleware.WithLogging(authed(h.Me)))

Handlers read the user with MustUser(r). Failures answer 401 with
WWW-Authenticate: Bearer, or 403 for inactive users.

# CORS Middleware

	server := http.Server{
		Handler: middleware.CORS(cfg.AllowedOrigins)(mux),
	}

# JSON Helpers

Every failure uses the {"detail": "..."} envelope:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.WriteError(w, r, err)

Decode and validate request bodies against their validate tags:

	var req models.CreateGroupRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.WriteError(w, r, err)
		return
	}
*/
package middleware
