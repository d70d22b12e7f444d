package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/deepclear/manifest/internal/api"
	"github.com/deepclear/manifest/internal/policy"
)

type menuEntry struct {
	label  string
	screen Screen
}

type menuState struct {
	entries []menuEntry
	cursor  int
}

// newMenuState builds the menu for the given department. Carrier accounts
// only see truck tickets.
func newMenuState(dept policy.Department) menuState {
	entries := []menuEntry{
		{label: "Truck Tickets", screen: ScreenTickets},
	}
	if policy.CanManageQuotes(dept) {
		entries = append(entries, menuEntry{label: "Quotes", screen: ScreenQuotes})
	}
	if policy.CanCreateTickets(dept) {
		entries = append(entries, menuEntry{label: "Create Truck Ticket", screen: ScreenCreateTicket})
	}
	if policy.CanManageQuotes(dept) {
		entries = append(entries, menuEntry{label: "Create Quote", screen: ScreenCreateQuote})
	}
	return menuState{entries: entries}
}

func (m Model) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "j", "down":
		if m.menu.cursor < len(m.menu.entries)-1 {
			m.menu.cursor++
		}
	case "k", "up":
		if m.menu.cursor > 0 {
			m.menu.cursor--
		}
	case "enter":
		entry := m.menu.entries[m.menu.cursor]
		return m.openScreen(entry.screen)
	}
	return m, nil
}

// openScreen switches to a screen and kicks off its initial fetch.
func (m Model) openScreen(screen Screen) (tea.Model, tea.Cmd) {
	m.screen = screen
	switch screen {
	case ScreenTickets:
		m.tickets = newTicketListState()
		m.tickets.loading = true
		return m, fetchTicketsCmd(m.ctx, m.client, m.tickets.query())
	case ScreenQuotes:
		m.quotes = newQuoteListState()
		m.quotes.loading = true
		return m, fetchQuotesCmd(m.ctx, m.client, api.QuoteQuery{Page: m.quotes.page, Limit: quotePageSize})
	case ScreenCreateTicket:
		m.createTicket = newCreateTicketState()
		m.createTicket.loadingClients = true
		return m, fetchClientsCmd(m.ctx, m.client)
	case ScreenCreateQuote:
		m.createQuote = newCreateQuoteState()
		m.createQuote.loadingClients = true
		return m, fetchClientsCmd(m.ctx, m.client)
	}
	return m, nil
}

func (m Model) renderMenu() string {
	var b strings.Builder
	b.WriteString(m.theme.Header.Render("Main Menu"))
	b.WriteString("\n\n")
	for i, entry := range m.menu.entries {
		line := "  " + entry.label
		if i == m.menu.cursor {
			line = m.theme.Selected.Render("> " + entry.label)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
