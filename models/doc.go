// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Incoming JSON bodies carry validate tags checked by
middleware.DecodeAndValidate:

  - RegisterRequest, TokenRequest
  - CreateGroupRequest, AddMemberRequest, UpdateMemberRequest
  - CreateEventRequest, UserRefRequest
  - CreateThreadRequest, CreateMessageRequest
  - CreateAlbumRequest, CreatePhotoRequest, CreateCommentRequest
  - CreatePollRequest, VoteItem
  - CreateTicketTypeRequest, PurchaseTicketRequest
  - CreateShoppingItemRequest, CreateCarpoolRequest

Business rules that need the database (feature toggles, membership,
capacity) are checked by the service layer, not by tags.

# Domain Types

Domain types are serialized directly as responses. Detail types embed
the entity and add its children:

	GroupDetail  = Group + members
	EventDetail  = Event + organizers + participants
	ThreadDetail = DiscussionThread + messages
	PollDetail   = Poll + questions + options with live vote counts

Optional columns are pointers and serialize as null when unset.

# Errors

Every failure body is ErrorResponse:

	{"detail": "Event not found"}
*/
package models
