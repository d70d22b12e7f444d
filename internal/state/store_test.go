package state

import (
	"errors"
	"testing"

	"github.com/deepclear/manifest/internal/api"
)

func TestStore_SetTicketsAndSnapshot(t *testing.T) {
	store := &Store{}
	store.SetTickets([]api.Ticket{{ReferenceNumber: "REF1"}, {ReferenceNumber: "REF2"}}, 12)

	snap := store.Snapshot()
	if len(snap.Tickets) != 2 || snap.TicketTotal != 12 {
		t.Fatalf("snapshot = %d tickets total %d, want 2/12", len(snap.Tickets), snap.TicketTotal)
	}
	if snap.LastError != nil {
		t.Fatalf("LastError = %v, want nil", snap.LastError)
	}
	if snap.LastUpdated.IsZero() {
		t.Fatal("LastUpdated not set")
	}

	// Mutating the returned slice must not affect the store.
	snap.Tickets[0].ReferenceNumber = "tampered"
	if store.Snapshot().Tickets[0].ReferenceNumber != "REF1" {
		t.Fatal("snapshot aliases internal ticket slice")
	}
}

func TestStore_TicketByReference(t *testing.T) {
	store := &Store{}
	store.SetTickets([]api.Ticket{{ReferenceNumber: "REF1", CarrierName: "ACME"}}, 1)

	got, ok := store.Snapshot().TicketByReference("REF1")
	if !ok || got.CarrierName != "ACME" {
		t.Fatalf("TicketByReference = %#v ok=%v", got, ok)
	}
	if _, ok := store.Snapshot().TicketByReference("missing"); ok {
		t.Fatal("found a ticket that does not exist")
	}
}

func TestStore_ReplaceTicket(t *testing.T) {
	store := &Store{}
	store.SetTickets([]api.Ticket{
		{TruckTicketID: 1, CarrierName: "ACME"},
		{TruckTicketID: 2, CarrierName: "Northern"},
	}, 2)

	store.ReplaceTicket(api.Ticket{TruckTicketID: 2, CarrierName: "Updated"})

	snap := store.Snapshot()
	if snap.Tickets[1].CarrierName != "Updated" {
		t.Fatalf("ticket 2 carrier = %q, want Updated", snap.Tickets[1].CarrierName)
	}
	if snap.Tickets[0].CarrierName != "ACME" {
		t.Fatal("unrelated ticket changed")
	}

	// Unknown ids are ignored.
	store.ReplaceTicket(api.Ticket{TruckTicketID: 99})
	if len(store.Snapshot().Tickets) != 2 {
		t.Fatal("replace of unknown ticket changed the page")
	}
}

func TestStore_FailuresKeepDataAndCount(t *testing.T) {
	store := &Store{}
	store.SetQuotes([]api.QuoteDetail{{Quote: api.Quote{QuoteID: 7}}}, 1)

	store.RecordFailure(errors.New("connection refused"))
	snap := store.Snapshot()
	if snap.LastError == nil || snap.FailureCount != 1 {
		t.Fatalf("after one failure: err=%v count=%d", snap.LastError, snap.FailureCount)
	}
	if len(snap.Quotes) != 1 {
		t.Fatal("failure dropped cached quotes")
	}
	if snap.IsOffline() {
		t.Fatal("one failure should not mark offline")
	}

	store.RecordFailure(errors.New("connection refused"))
	if !store.Snapshot().IsOffline() {
		t.Fatal("two consecutive failures should mark offline")
	}

	// A successful fetch clears the failure streak.
	store.SetQuotes(nil, 0)
	snap = store.Snapshot()
	if snap.FailureCount != 0 || snap.LastError != nil {
		t.Fatalf("success did not reset failure state: count=%d err=%v", snap.FailureCount, snap.LastError)
	}
}
