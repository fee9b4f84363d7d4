// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package service implements the domain engines.

	Accounts     registration, password grant, bearer token resolution
	Groups       groups and memberships (admin-gated)
	Events       events, organizers, participants
	Discussions  threads in a group or event context, threaded messages
	Media        albums, photos, photo comments
	Polls        multi-question polls, replaceable votes, live tallies
	Tickets      ticket types and unauthenticated purchase
	Addons       shopping list items and carpool offers

Every operation runs in a single store transaction. Authorization and
business rules are checked before the first write, and failures are
returned as *apperr.Error values:

	NotFound         referenced entity absent
	Forbidden        guard failed
	BadRequest       validation, disabled toggle, closed poll, sold out
	Conflict         duplicate of a unique pair
	Unauthenticated  bad or expired token

Unique violations that race past a pre-check are mapped to the same
Conflict the pre-check returns.

# Check order

Operations on event sub-resources check in a fixed order: the event
exists, its feature toggle is on, then the actor's role. A disabled
toggle is therefore reported the same way to every caller.
*/
package service
