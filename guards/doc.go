// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package guards holds the authorization predicates.

Each guard answers one question about an actor and a resource with at
most two point lookups and never writes:

	IsGroupMember        membership exists
	IsGroupAdmin         membership.is_admin
	CanCreateGroupEvent  membership.is_admin or membership.can_create_events
	IsEventOrganizer     organizer link exists
	IsEventParticipant   participant link exists
	IsEventMember        organizer or participant

Guards return (false, nil) when the check fails and a non-nil error
only when the lookup itself failed. Turning a failed check into a
Forbidden error is the caller's job.
*/
package guards
