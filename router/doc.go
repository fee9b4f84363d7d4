// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the social network API.

# Route Registration

NewRouter wires engines, handlers and middleware onto an http.ServeMux
and wraps it in CORS:

	handler := router.NewRouter(st, tokens, cfg)

Every API route lives under cfg.APIPrefix (default /api). Routes marked
authed go through middleware.RequireAuth.

# Endpoints

Unprefixed:

	GET /        - ready message
	GET /health  - liveness ("OK")

Accounts:

	POST /auth/register, POST /auth/token (public)
	GET  /users/me, GET /users/{user_id}

Groups, events, discussions, media:

	/groups, /groups/{group_id}/members[/{user_id}]
	/events, /events/{event_id}/organizers, /events/{event_id}/participants[/{user_id}]
	/discussions, /discussions/{thread_id}/messages
	/media/events/{event_id}/albums, /media/albums/{album_id}/photos, /media/photos/{photo_id}/comments

Polls sit under the event because ServeMux rejects ambiguous pairs such
as /polls/events/{event_id} next to /polls/{poll_id}/votes:

	/events/{event_id}/polls, /polls/{poll_id}, /polls/{poll_id}/votes, /polls/{poll_id}/close

Ticketing and add-ons:

	/tickets/events/{event_id}/types
	POST /tickets/types/{ticket_type_id}/purchase (public)
	/addons/events/{event_id}/shopping-items, /addons/events/{event_id}/carpools
*/
package router
