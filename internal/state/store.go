package state

import (
	"sync"
	"time"

	"github.com/deepclear/manifest/internal/api"
)

// Snapshot is the latest fetched list data shared across screens.
type Snapshot struct {
	Tickets      []api.Ticket
	TicketTotal  int
	Quotes       []api.QuoteDetail
	QuoteTotal   int
	LastUpdated  time.Time
	LastError    error
	FailureCount int // consecutive failed fetches
}

// IsOffline reports that the API has been unreachable for multiple fetches.
func (s Snapshot) IsOffline() bool {
	return s.FailureCount >= 2
}

// TicketByReference finds a ticket in the cached page.
func (s Snapshot) TicketByReference(reference string) (api.Ticket, bool) {
	for _, t := range s.Tickets {
		if t.ReferenceNumber == reference {
			return t, true
		}
	}
	return api.Ticket{}, false
}

// Store coordinates updates to the snapshot. List screens write after each
// fetch; the detail screen reads to resolve the selected record.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// SetTickets replaces the cached ticket page.
func (s *Store) SetTickets(tickets []api.Ticket, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Tickets = cloneTickets(tickets)
	s.snapshot.TicketTotal = total
	s.markSuccess()
}

// SetQuotes replaces the cached quote page.
func (s *Store) SetQuotes(quotes []api.QuoteDetail, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Quotes = cloneQuotes(quotes)
	s.snapshot.QuoteTotal = total
	s.markSuccess()
}

// ReplaceTicket swaps one cached ticket in place after a successful update,
// keyed by its ticket id. Unknown tickets are ignored.
func (s *Store) ReplaceTicket(ticket api.Ticket) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.snapshot.Tickets {
		if t.TruckTicketID == ticket.TruckTicketID {
			s.snapshot.Tickets[i] = ticket
			return
		}
	}
}

// RecordFailure notes a failed fetch. Previously cached data is kept for
// visibility; only the error and failure count change.
func (s *Store) RecordFailure(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.LastError = err
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.FailureCount++
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Tickets = cloneTickets(s.snapshot.Tickets)
	snap.Quotes = cloneQuotes(s.snapshot.Quotes)
	return snap
}

func (s *Store) markSuccess() {
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.FailureCount = 0
}

func cloneTickets(items []api.Ticket) []api.Ticket {
	if len(items) == 0 {
		return nil
	}
	dup := make([]api.Ticket, len(items))
	copy(dup, items)
	return dup
}

func cloneQuotes(items []api.QuoteDetail) []api.QuoteDetail {
	if len(items) == 0 {
		return nil
	}
	dup := make([]api.QuoteDetail, len(items))
	copy(dup, items)
	return dup
}
