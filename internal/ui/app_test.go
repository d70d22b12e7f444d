package ui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deepclear/manifest/internal/api"
	"github.com/deepclear/manifest/internal/editor"
	"github.com/deepclear/manifest/internal/policy"
	"github.com/deepclear/manifest/internal/session"
	"github.com/deepclear/manifest/internal/state"
)

// fakeService stubs the API for model tests. Unset methods return zero
// values.
type fakeService struct {
	fetchTickets func(api.TicketQuery) (api.TicketPage, error)
	uploadTicket func(api.Ticket) error
	quoteDetails func(api.QuoteQuery) (api.QuotePage, error)
	updateQuote  func(api.QuoteUpdate) error
	listClients  func() ([]api.ClientAccount, error)
	createTicket func(api.Ticket) (api.CreatedTicket, error)
	createQuote  func(api.QuoteRequest) error
}

func (f *fakeService) Login(ctx context.Context, name, password string) (api.LoginResult, error) {
	return api.LoginResult{}, nil
}

func (f *fakeService) CreateAdmin(ctx context.Context, req api.CreateUserRequest) (api.CreatedAdmin, error) {
	return api.CreatedAdmin{}, nil
}

func (f *fakeService) CreateClient(ctx context.Context, req api.CreateUserRequest) (api.CreatedClient, error) {
	return api.CreatedClient{}, nil
}

func (f *fakeService) ListClients(ctx context.Context) ([]api.ClientAccount, error) {
	if f.listClients != nil {
		return f.listClients()
	}
	return nil, nil
}

func (f *fakeService) CreateQuote(ctx context.Context, req api.QuoteRequest) error {
	if f.createQuote != nil {
		return f.createQuote(req)
	}
	return nil
}

func (f *fakeService) QuoteDetails(ctx context.Context, query api.QuoteQuery) (api.QuotePage, error) {
	if f.quoteDetails != nil {
		return f.quoteDetails(query)
	}
	return api.QuotePage{}, nil
}

func (f *fakeService) UpdateQuote(ctx context.Context, update api.QuoteUpdate) error {
	if f.updateQuote != nil {
		return f.updateQuote(update)
	}
	return nil
}

func (f *fakeService) CreateTicket(ctx context.Context, ticket api.Ticket) (api.CreatedTicket, error) {
	if f.createTicket != nil {
		return f.createTicket(ticket)
	}
	return api.CreatedTicket{}, nil
}

func (f *fakeService) FetchTickets(ctx context.Context, query api.TicketQuery) (api.TicketPage, error) {
	if f.fetchTickets != nil {
		return f.fetchTickets(query)
	}
	return api.TicketPage{}, nil
}

func (f *fakeService) UploadTicket(ctx context.Context, ticket api.Ticket) error {
	if f.uploadTicket != nil {
		return f.uploadTicket(ticket)
	}
	return nil
}

var _ api.Service = (*fakeService)(nil)

func newTestModel(t *testing.T, dept policy.Department, svc api.Service) Model {
	t.Helper()
	if svc == nil {
		svc = &fakeService{}
	}
	m := New(Options{
		Client:  svc,
		Store:   &state.Store{},
		Session: session.Session{AdminName: "ops", Department: dept, Token: "tok"},
	})
	m.width, m.height, m.ready = 100, 40, true
	return m
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok, "update returned %T", next)
	return out, cmd
}

func sampleTicket() api.Ticket {
	return api.Ticket{
		MainID:          7,
		TruckTicketID:   42,
		ReferenceNumber: "REF-1001",
		ClientName:      "Acme Freight",
		ContainerNumber: "CONT-1",
		PickupAddress:   "1 Dock Rd",
		DeliveryAddress: "9 Yard Ln",
		CarrierName:     "Northern",
		PARS:            "A1,B2",
	}
}

func TestMenuFilteringByDepartment(t *testing.T) {
	office := newMenuState(policy.DeptOffice)
	labels := make([]string, 0, len(office.entries))
	for _, e := range office.entries {
		labels = append(labels, e.label)
	}
	assert.Equal(t, []string{"Truck Tickets", "Quotes", "Create Truck Ticket", "Create Quote"}, labels)

	carrier := newMenuState(policy.DeptCarrier)
	require.Len(t, carrier.entries, 1)
	assert.Equal(t, "Truck Tickets", carrier.entries[0].label)

	// Unknown departments get the carrier menu.
	unknown := newMenuState(policy.Department(9).Normalize())
	assert.Len(t, unknown.entries, 1)
}

func TestTicketEditSaveFlow(t *testing.T) {
	var uploaded api.Ticket
	svc := &fakeService{
		uploadTicket: func(ticket api.Ticket) error {
			uploaded = ticket
			return nil
		},
	}
	m := newTestModel(t, policy.DeptOffice, svc)
	m, _ = update(t, m, ticketPageMsg{page: api.TicketPage{Data: []api.Ticket{sampleTicket()}, Total: 1}})
	m.screen = ScreenTickets

	m, _ = update(t, m, key("enter"))
	require.Equal(t, ScreenTicketDetail, m.screen)
	require.Equal(t, editor.ModeView, m.detail.group.Mode())

	m, _ = update(t, m, key("e"))
	require.Equal(t, editor.ModeEditing, m.detail.group.Mode())

	require.NoError(t, m.detail.group.Set("carrier_name", "Southern"))

	m, cmd := update(t, m, key("ctrl+s"))
	require.Equal(t, editor.ModeSaving, m.detail.group.Mode())
	require.NotNil(t, cmd)

	m, _ = update(t, m, cmd())
	assert.Equal(t, "Southern", uploaded.CarrierName)
	assert.Equal(t, int64(42), uploaded.TruckTicketID)
	assert.Equal(t, editor.ModeView, m.detail.group.Mode())
	assert.Equal(t, "Southern", m.detail.group.Get("carrier_name"))

	cached, ok := m.store.Snapshot().TicketByReference("REF-1001")
	require.True(t, ok)
	assert.Equal(t, "Southern", cached.CarrierName)
}

func TestTicketSaveFailureKeepsDraft(t *testing.T) {
	svc := &fakeService{
		uploadTicket: func(api.Ticket) error {
			return &api.ServerError{Status: 500, Message: "boom"}
		},
	}
	m := newTestModel(t, policy.DeptOffice, svc)
	m, _ = update(t, m, ticketPageMsg{page: api.TicketPage{Data: []api.Ticket{sampleTicket()}, Total: 1}})
	m.screen = ScreenTickets
	m, _ = update(t, m, key("enter"))
	m, _ = update(t, m, key("e"))
	require.NoError(t, m.detail.group.Set("carrier_name", "Southern"))

	m, cmd := update(t, m, key("ctrl+s"))
	m, _ = update(t, m, cmd())

	assert.Equal(t, editor.ModeEditing, m.detail.group.Mode())
	assert.Equal(t, "Southern", m.detail.group.Get("carrier_name"))
	assert.Equal(t, "boom", m.detail.group.Message())
}

func TestStaleSaveReplyDropped(t *testing.T) {
	m := newTestModel(t, policy.DeptOffice, nil)
	m, _ = update(t, m, ticketPageMsg{page: api.TicketPage{Data: []api.Ticket{sampleTicket()}, Total: 1}})
	m.screen = ScreenTickets
	m, _ = update(t, m, key("enter"))

	// A reply for a ticket that is no longer open must change nothing.
	edited := sampleTicket()
	edited.CarrierName = "Ghost"
	m, _ = update(t, m, ticketSavedMsg{reference: "REF-other", ticket: edited})

	assert.Equal(t, "Northern", m.detail.group.Get("carrier_name"))
	cached, _ := m.store.Snapshot().TicketByReference("REF-1001")
	assert.Equal(t, "Northern", cached.CarrierName)
}

func TestCarrierCannotEditRestrictedField(t *testing.T) {
	m := newTestModel(t, policy.DeptCarrier, nil)
	m, _ = update(t, m, ticketPageMsg{page: api.TicketPage{Data: []api.Ticket{sampleTicket()}, Total: 1}})
	m.screen = ScreenTickets
	m, _ = update(t, m, key("enter"))
	m, _ = update(t, m, key("e"))
	require.Equal(t, editor.ModeEditing, m.detail.group.Mode())

	assert.True(t, m.detail.group.Editable("carrier_name"))
	assert.False(t, m.detail.group.Editable("container_number"))
	assert.ErrorIs(t, m.detail.group.Set("container_number", "X"), editor.ErrFieldNotEditable)
}

func TestAuthErrorQuits(t *testing.T) {
	m := newTestModel(t, policy.DeptOffice, nil)
	m.screen = ScreenTickets

	m, cmd := update(t, m, ticketPageMsg{err: &api.AuthError{Status: 401, Message: "expired"}})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, m.authExpired)
}

func TestOfflineAfterRepeatedFailures(t *testing.T) {
	m := newTestModel(t, policy.DeptOffice, nil)
	m.screen = ScreenTickets

	netErr := &api.NetworkError{Err: errors.New("dial tcp: refused")}
	m, _ = update(t, m, ticketPageMsg{err: netErr})
	assert.False(t, m.store.Snapshot().IsOffline())
	m, _ = update(t, m, ticketPageMsg{err: netErr})
	assert.True(t, m.store.Snapshot().IsOffline())
}

func TestQuoteSaveSendsPartialUpdate(t *testing.T) {
	var got api.QuoteUpdate
	price := 120.0
	svc := &fakeService{
		updateQuote: func(update api.QuoteUpdate) error {
			got = update
			return nil
		},
	}
	m := newTestModel(t, policy.DeptOffice, svc)
	page := api.QuotePage{
		Data:        []api.QuoteDetail{{Quote: api.Quote{QuoteID: 5, ClientName: "Acme", Price: &price}}},
		TotalQuotes: 1,
	}
	m.screen = ScreenQuotes
	m, _ = update(t, m, quotePageMsg{page: page})

	g := m.quotes.groups[priceGroupID(5)]
	require.NotNil(t, g)
	require.True(t, g.BeginEdit())
	require.NoError(t, g.Set("price", "150.50"))

	m, cmd := update(t, m, key("ctrl+s"))
	require.NotNil(t, cmd)
	require.Equal(t, editor.ModeSaving, g.Mode())

	_, _ = update(t, m, cmd())
	require.NotNil(t, got.Price)
	assert.Equal(t, 150.50, *got.Price)
	assert.Nil(t, got.AdminNote)
	assert.Equal(t, int64(5), got.QuoteID)
}

func TestQuoteInvalidPriceStaysEditing(t *testing.T) {
	m := newTestModel(t, policy.DeptOffice, nil)
	page := api.QuotePage{
		Data:        []api.QuoteDetail{{Quote: api.Quote{QuoteID: 5}}},
		TotalQuotes: 1,
	}
	m.screen = ScreenQuotes
	m, _ = update(t, m, quotePageMsg{page: page})

	g := m.quotes.groups[priceGroupID(5)]
	require.True(t, g.BeginEdit())
	require.NoError(t, g.Set("price", "abc"))

	m, cmd := update(t, m, key("ctrl+s"))
	assert.Nil(t, cmd)
	assert.Equal(t, editor.ModeEditing, g.Mode())
	assert.Contains(t, g.Message(), "valid number")
}

func TestCreateTicketSurfacesReference(t *testing.T) {
	svc := &fakeService{
		listClients: func() ([]api.ClientAccount, error) {
			return []api.ClientAccount{{ClientID: 3, ClientName: "Acme"}}, nil
		},
		createTicket: func(ticket api.Ticket) (api.CreatedTicket, error) {
			return api.CreatedTicket{ReferenceNumber: "REF-2002"}, nil
		},
	}
	m := newTestModel(t, policy.DeptOffice, svc)
	m.screen = ScreenCreateTicket
	m.createTicket = newCreateTicketState()
	m, _ = update(t, m, clientsMsg{clients: []api.ClientAccount{{ClientID: 3, ClientName: "Acme"}}})

	m.createTicket.inputs[1].SetValue("1 Dock Rd")
	m.createTicket.inputs[2].SetValue("9 Yard Ln")

	m, cmd := update(t, m, key("ctrl+s"))
	require.NotNil(t, cmd)
	require.True(t, m.createTicket.saving)

	m, _ = update(t, m, cmd())
	assert.False(t, m.createTicket.saving)
	assert.Equal(t, "REF-2002", m.createTicket.created)
}

func TestQuoteRefetchRebasesViewModeGroups(t *testing.T) {
	m := newTestModel(t, policy.DeptOffice, nil)
	m.screen = ScreenQuotes

	first, second := 100.0, 250.0
	m, _ = update(t, m, quotePageMsg{page: api.QuotePage{
		Data:        []api.QuoteDetail{{Quote: api.Quote{QuoteID: 5, Price: &first, AdminNote: "old"}}},
		TotalQuotes: 1,
	}})

	noteGroup := m.quotes.groups[noteGroupID(5)]
	require.True(t, noteGroup.BeginEdit())
	require.NoError(t, noteGroup.Set("admin_note", "my draft"))

	// Another operator changed the quote; a refetch must show their values
	// in idle groups without touching the in-progress draft.
	m, _ = update(t, m, quotePageMsg{page: api.QuotePage{
		Data:        []api.QuoteDetail{{Quote: api.Quote{QuoteID: 5, Price: &second, AdminNote: "theirs"}}},
		TotalQuotes: 1,
	}})

	assert.Equal(t, "250", m.quotes.groups[priceGroupID(5)].Get("price"))
	assert.Equal(t, "my draft", noteGroup.Get("admin_note"))
	assert.Equal(t, "old", noteGroup.Baseline()["admin_note"])
}

func TestMenuOpensQuotesWithPagedFetch(t *testing.T) {
	var got api.QuoteQuery
	svc := &fakeService{
		quoteDetails: func(query api.QuoteQuery) (api.QuotePage, error) {
			got = query
			return api.QuotePage{}, nil
		},
	}
	m := newTestModel(t, policy.DeptOffice, svc)

	m, _ = update(t, m, key("j")) // Quotes is the second office entry
	m, cmd := update(t, m, key("enter"))
	require.Equal(t, ScreenQuotes, m.screen)
	require.NotNil(t, cmd)

	_ = cmd()
	assert.Equal(t, 1, got.Page)
	assert.Equal(t, quotePageSize, got.Limit)
}
