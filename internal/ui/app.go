package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/deepclear/manifest/internal/api"
	"github.com/deepclear/manifest/internal/policy"
	"github.com/deepclear/manifest/internal/session"
	"github.com/deepclear/manifest/internal/state"
)

// Screen identifies the active console screen.
type Screen int

const (
	ScreenMenu Screen = iota
	ScreenTickets
	ScreenTicketDetail
	ScreenQuotes
	ScreenCreateTicket
	ScreenCreateQuote
)

// Options configure the UI.
type Options struct {
	Context  context.Context
	Client   api.Service
	Store    *state.Store
	Session  session.Session
	Sessions *session.Store
	APIBase  string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx      context.Context
	client   api.Service
	store    *state.Store
	sessions *session.Store
	session  session.Session
	dept     policy.Department
	apiBase  string

	theme  Theme
	screen Screen
	width  int
	height int
	ready  bool

	// authExpired is set when any call comes back with an auth failure; the
	// program quits and Run reports the forced re-login.
	authExpired bool

	menu         menuState
	tickets      ticketListState
	detail       ticketDetailState
	quotes       quoteListState
	createTicket createTicketState
	createQuote  createQuoteState
}

// New creates the root model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	dept := opts.Session.Department.Normalize()
	return Model{
		ctx:      ctx,
		client:   opts.Client,
		store:    opts.Store,
		sessions: opts.Sessions,
		session:  opts.Session,
		dept:     dept,
		apiBase:  opts.APIBase,
		theme:    DefaultTheme(),
		screen:   ScreenMenu,
		menu:     newMenuState(dept),
		tickets:  newTicketListState(),
		quotes:   newQuoteListState(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.EnterAltScreen
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case ticketPageMsg:
		return m.handleTicketPage(msg)
	case ticketSavedMsg:
		return m.handleTicketSaved(msg)
	case quotePageMsg:
		return m.handleQuotePage(msg)
	case quoteSavedMsg:
		return m.handleQuoteSaved(msg)
	case clientsMsg:
		return m.handleClients(msg)
	case ticketCreatedMsg:
		return m.handleTicketCreated(msg)
	case quoteCreatedMsg:
		return m.handleQuoteCreated(msg)
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(m.renderTitleBar())
	b.WriteString("\n\n")

	switch m.screen {
	case ScreenMenu:
		b.WriteString(m.renderMenu())
	case ScreenTickets:
		b.WriteString(m.renderTickets())
	case ScreenTicketDetail:
		b.WriteString(m.renderTicketDetail())
	case ScreenQuotes:
		b.WriteString(m.renderQuotes())
	case ScreenCreateTicket:
		b.WriteString(m.renderCreateTicket())
	case ScreenCreateQuote:
		b.WriteString(m.renderCreateQuote())
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	return b.String()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.screen {
	case ScreenMenu:
		return m.handleMenuKey(msg)
	case ScreenTickets:
		return m.handleTicketsKey(msg)
	case ScreenTicketDetail:
		return m.handleTicketDetailKey(msg)
	case ScreenQuotes:
		return m.handleQuotesKey(msg)
	case ScreenCreateTicket:
		return m.handleCreateTicketKey(msg)
	case ScreenCreateQuote:
		return m.handleCreateQuoteKey(msg)
	}
	return m, nil
}

func (m Model) renderTitleBar() string {
	title := m.theme.Title.Render("DeepClear Manifest")
	who := m.theme.Hint.Render(fmt.Sprintf("%s · %s", m.session.AdminName, m.dept.String()))
	return title + "  " + who
}

func (m Model) renderStatusBar() string {
	snap := m.store.Snapshot()
	if snap.IsOffline() {
		return m.theme.Error.Render(fmt.Sprintf("offline (%s): %s", m.apiBase, snap.LastError))
	}
	return m.theme.Hint.Render(m.screenHints())
}

func (m Model) screenHints() string {
	switch m.screen {
	case ScreenMenu:
		return "j/k move · enter select · q quit"
	case ScreenTickets:
		return "j/k move · enter details · f filter · [/] page · r refresh · esc menu"
	case ScreenTicketDetail:
		return m.detailHints()
	case ScreenQuotes:
		return m.quoteHints()
	case ScreenCreateTicket:
		return "tab/shift+tab field · ctrl+s create · esc menu"
	case ScreenCreateQuote:
		return m.createQuoteHints()
	}
	return ""
}

// authFailure flags the expired session and quits. Every command result
// funnels auth errors through here.
func (m *Model) authFailure(err error) tea.Cmd {
	log.Warn("session rejected", "error", err)
	m.authExpired = true
	return tea.Quit
}

// Messages

type ticketPageMsg struct {
	page api.TicketPage
	err  error
}

type ticketSavedMsg struct {
	reference string
	ticket    api.Ticket
	err       error
}

type quotePageMsg struct {
	page api.QuotePage
	err  error
}

type quoteSavedMsg struct {
	groupID string
	err     error
}

type clientsMsg struct {
	clients []api.ClientAccount
	err     error
}

type ticketCreatedMsg struct {
	created api.CreatedTicket
	err     error
}

type quoteCreatedMsg struct {
	err error
}

// Commands

func fetchTicketsCmd(ctx context.Context, client api.Service, query api.TicketQuery) tea.Cmd {
	return func() tea.Msg {
		page, err := client.FetchTickets(ctx, query)
		return ticketPageMsg{page: page, err: err}
	}
}

func saveTicketCmd(ctx context.Context, client api.Service, ticket api.Ticket) tea.Cmd {
	return func() tea.Msg {
		err := client.UploadTicket(ctx, ticket)
		return ticketSavedMsg{reference: ticket.ReferenceNumber, ticket: ticket, err: err}
	}
}

func fetchQuotesCmd(ctx context.Context, client api.Service, query api.QuoteQuery) tea.Cmd {
	return func() tea.Msg {
		page, err := client.QuoteDetails(ctx, query)
		return quotePageMsg{page: page, err: err}
	}
}

func saveQuoteCmd(ctx context.Context, client api.Service, groupID string, update api.QuoteUpdate) tea.Cmd {
	return func() tea.Msg {
		err := client.UpdateQuote(ctx, update)
		return quoteSavedMsg{groupID: groupID, err: err}
	}
}

func fetchClientsCmd(ctx context.Context, client api.Service) tea.Cmd {
	return func() tea.Msg {
		clients, err := client.ListClients(ctx)
		return clientsMsg{clients: clients, err: err}
	}
}

func createTicketCmd(ctx context.Context, client api.Service, ticket api.Ticket) tea.Cmd {
	return func() tea.Msg {
		created, err := client.CreateTicket(ctx, ticket)
		return ticketCreatedMsg{created: created, err: err}
	}
}

func createQuoteCmd(ctx context.Context, client api.Service, req api.QuoteRequest) tea.Cmd {
	return func() tea.Msg {
		return quoteCreatedMsg{err: client.CreateQuote(ctx, req)}
	}
}

// Run starts the Bubble Tea program and blocks until it exits. An expired
// session clears the stored credentials and reports the forced re-login.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok && fm.authExpired {
		if opts.Sessions != nil {
			_ = opts.Sessions.Clear()
		}
		return fmt.Errorf("session expired, run `manifest login`")
	}
	return nil
}
