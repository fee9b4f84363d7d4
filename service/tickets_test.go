// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/danielhkuo/socialnet/apperr"
	"github.com/danielhkuo/socialnet/models"
	"github.com/danielhkuo/socialnet/testutil"
)

func purchase(email string) models.PurchaseTicketRequest {
	return models.PurchaseTicketRequest{
		PurchaserFirstName: "Ada",
		PurchaserLastName:  "Lovelace",
		PurchaserEmail:     email,
	}
}

func TestTicketingGate(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	owner := testutil.CreateTestUser(t, e.st, "owner")
	guest := testutil.CreateTestUser(t, e.st, "guest")
	off := testutil.CreateTestEvent(t, e.st, owner.ID, testutil.EventToggles{})
	on := testutil.CreateTestEvent(t, e.st, owner.ID, testutil.EventToggles{Ticketing: true})
	testutil.AddTestParticipant(t, e.st, on.ID, guest.ID)

	_, err := e.tickets.CreateTicketType(ctx, owner.ID, off.ID, models.CreateTicketTypeRequest{Name: "GA", Quantity: 1})
	assertKind(t, err, apperr.KindBadRequest, "Ticketing not enabled for this event")

	_, err = e.tickets.ListTicketTypes(ctx, off.ID)
	assertKind(t, err, apperr.KindBadRequest, "Ticketing not enabled for this event")

	_, err = e.tickets.CreateTicketType(ctx, guest.ID, on.ID, models.CreateTicketTypeRequest{Name: "GA", Quantity: 1})
	assertKind(t, err, apperr.KindForbidden, "Organizer privileges required")

	_, err = e.tickets.PurchaseTicket(ctx, 9999, purchase("a@example.com"))
	assertKind(t, err, apperr.KindNotFound, "Ticket type not found")
}

func TestPurchaseTicket(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	owner := testutil.CreateTestUser(t, e.st, "owner")
	ev := testutil.CreateTestEvent(t, e.st, owner.ID, testutil.EventToggles{Ticketing: true})

	tt, err := e.tickets.CreateTicketType(ctx, owner.ID, ev.ID, models.CreateTicketTypeRequest{Name: "GA", Price: 10, Quantity: 2})
	if err != nil {
		t.Fatalf("CreateTicketType() error = %v", err)
	}

	tk, err := e.tickets.PurchaseTicket(ctx, tt.ID, purchase("Ada@Example.com"))
	if err != nil {
		t.Fatalf("PurchaseTicket() error = %v", err)
	}
	if tk.PurchaserEmail != "ada@example.com" {
		t.Errorf("email not normalized: %q", tk.PurchaserEmail)
	}

	_, err = e.tickets.PurchaseTicket(ctx, tt.ID, purchase("ada@example.com"))
	assertKind(t, err, apperr.KindConflict, "This attendee already has a ticket")

	if _, err := e.tickets.PurchaseTicket(ctx, tt.ID, purchase("bob@example.com")); err != nil {
		t.Fatalf("second purchase error = %v", err)
	}

	_, err = e.tickets.PurchaseTicket(ctx, tt.ID, purchase("carol@example.com"))
	assertKind(t, err, apperr.KindBadRequest, "No more tickets available")

	stock, err := e.tickets.ListTicketTypes(ctx, ev.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(stock) != 1 || stock[0].Sold != 2 || stock[0].Remaining != 0 {
		t.Errorf("unexpected stock %+v", stock)
	}
}

func TestPurchaseTicketConcurrentCapacity(t *testing.T) {
	concurrentPurchase(t, setup(t))
}

// concurrentPurchase has more buyers than seats; sales must stop at
// capacity with everyone else told the type is sold out.
func concurrentPurchase(t *testing.T, e *engines) {
	t.Helper()
	ctx := context.Background()
	owner := testutil.CreateTestUser(t, e.st, "owner")
	ev := testutil.CreateTestEvent(t, e.st, owner.ID, testutil.EventToggles{Ticketing: true})

	const capacity = 3
	const buyers = 12
	tt, err := e.tickets.CreateTicketType(ctx, owner.ID, ev.ID, models.CreateTicketTypeRequest{Name: "GA", Quantity: capacity})
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	var sold, soldOut atomic.Int32

	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := e.tickets.PurchaseTicket(ctx, tt.ID, purchase(fmt.Sprintf("buyer%d@example.com", n)))
			switch {
			case err == nil:
				sold.Add(1)
			case apperr.DetailOf(err) == "No more tickets available":
				soldOut.Add(1)
			default:
				t.Errorf("buyer %d: unexpected error %v", n, err)
			}
		}(i)
	}
	wg.Wait()

	if sold.Load() != capacity {
		t.Errorf("sold %d tickets, capacity is %d", sold.Load(), capacity)
	}
	if soldOut.Load() != buyers-capacity {
		t.Errorf("expected %d sold-out errors, got %d", buyers-capacity, soldOut.Load())
	}
}
