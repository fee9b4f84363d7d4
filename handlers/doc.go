// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the social network API.

# Handler Types

Each handler is a struct over one service engine:

  - AccountHandler: registration, token grant, user lookup
  - GroupHandler: groups and memberships
  - EventHandler: events, organizers and participants
  - DiscussionHandler: threads and messages
  - MediaHandler: albums, photos and photo comments
  - PollHandler: polls, votes and closing
  - TicketHandler: ticket types and public purchases
  - AddonHandler: shopping list items and carpool offers

Handlers are created via constructor functions:

	groupHandler := handlers.NewGroupHandler(service.NewGroups(st))

# Request Flow

A handler parses path ids, decodes and validates the body, calls the
engine with the authenticated user's id and writes the result:

	201 on creation, 200 on reads and updates, 204 on deletes

Every failure goes through middleware.WriteError and uses the
{"detail": "..."} envelope.

# Votes

POST /polls/{poll_id}/votes takes a JSON array of
{"question_id", "option_id"} pairs. A repeated vote on a question
replaces the earlier choice.

# Tickets

POST /tickets/types/{ticket_type_id}/purchase is the only write route
without authentication.
*/
package handlers
