package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/deepclear/manifest/internal/api"
)

const ticketPageSize = 10

var ticketFilterNames = []string{"Reference", "Main ID", "Container", "Transaction"}

type ticketListState struct {
	filters   []textinput.Model
	filterIdx int
	filtering bool

	cursor  int
	page    int
	loading bool
	message string
}

func newTicketListState() ticketListState {
	filters := make([]textinput.Model, len(ticketFilterNames))
	for i, name := range ticketFilterNames {
		in := textinput.New()
		in.Placeholder = name
		in.CharLimit = 64
		in.Width = 24
		filters[i] = in
	}
	return ticketListState{filters: filters, page: 1}
}

// query builds the fetch request from the current filters and page.
func (s ticketListState) query() api.TicketQuery {
	return api.TicketQuery{
		ReferenceNumber:   strings.TrimSpace(s.filters[0].Value()),
		MainID:            strings.TrimSpace(s.filters[1].Value()),
		ContainerNumber:   strings.TrimSpace(s.filters[2].Value()),
		TransactionNumber: strings.TrimSpace(s.filters[3].Value()),
		Page:              s.page,
		Limit:             ticketPageSize,
	}
}

func (m Model) handleTicketsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.tickets.filtering {
		return m.handleTicketFilterKey(msg)
	}

	snap := m.store.Snapshot()
	switch msg.String() {
	case "esc", "q":
		m.screen = ScreenMenu
		return m, nil
	case "j", "down":
		if m.tickets.cursor < len(snap.Tickets)-1 {
			m.tickets.cursor++
		}
	case "k", "up":
		if m.tickets.cursor > 0 {
			m.tickets.cursor--
		}
	case "enter":
		if m.tickets.cursor < len(snap.Tickets) {
			m.detail = newTicketDetailState(snap.Tickets[m.tickets.cursor], m.dept)
			m.screen = ScreenTicketDetail
		}
	case "f":
		m.tickets.filtering = true
		m.tickets.filterIdx = 0
		m.tickets.filters[0].Focus()
	case "[":
		if m.tickets.page > 1 {
			m.tickets.page--
			return m.refetchTickets()
		}
	case "]":
		if m.tickets.page < pageCount(snap.TicketTotal, ticketPageSize) {
			m.tickets.page++
			return m.refetchTickets()
		}
	case "r":
		return m.refetchTickets()
	}
	return m, nil
}

func (m Model) handleTicketFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.tickets.filtering = false
		m.tickets.filters[m.tickets.filterIdx].Blur()
		return m, nil
	case "tab", "shift+tab":
		m.tickets.filters[m.tickets.filterIdx].Blur()
		if msg.String() == "tab" {
			m.tickets.filterIdx = (m.tickets.filterIdx + 1) % len(m.tickets.filters)
		} else {
			m.tickets.filterIdx = (m.tickets.filterIdx + len(m.tickets.filters) - 1) % len(m.tickets.filters)
		}
		m.tickets.filters[m.tickets.filterIdx].Focus()
		return m, nil
	case "enter":
		m.tickets.filtering = false
		m.tickets.filters[m.tickets.filterIdx].Blur()
		m.tickets.page = 1
		m.tickets.cursor = 0
		return m.refetchTickets()
	}

	var cmd tea.Cmd
	m.tickets.filters[m.tickets.filterIdx], cmd = m.tickets.filters[m.tickets.filterIdx].Update(msg)
	return m, cmd
}

func (m Model) refetchTickets() (tea.Model, tea.Cmd) {
	m.tickets.loading = true
	m.tickets.message = ""
	return m, fetchTicketsCmd(m.ctx, m.client, m.tickets.query())
}

func (m Model) handleTicketPage(msg ticketPageMsg) (tea.Model, tea.Cmd) {
	m.tickets.loading = false
	if msg.err != nil {
		if api.IsAuth(msg.err) {
			return m, m.authFailure(msg.err)
		}
		m.store.RecordFailure(msg.err)
		m.tickets.message = msg.err.Error()
		log.Error("ticket fetch failed", "error", msg.err)
		return m, nil
	}
	m.store.SetTickets(msg.page.Data, msg.page.Total)
	if m.tickets.cursor >= len(msg.page.Data) {
		m.tickets.cursor = 0
	}
	return m, nil
}

func (m Model) renderTickets() string {
	snap := m.store.Snapshot()

	var b strings.Builder
	b.WriteString(m.theme.Header.Render("Truck Tickets"))
	b.WriteString("\n\n")

	if m.tickets.filtering || m.anyTicketFilterSet() {
		for i := range m.tickets.filters {
			b.WriteString(m.tickets.filters[i].View())
			b.WriteString("  ")
		}
		b.WriteString("\n\n")
	}

	if m.tickets.loading {
		b.WriteString(m.theme.Muted.Render("Fetching tickets..."))
		b.WriteString("\n")
		return b.String()
	}
	if m.tickets.message != "" {
		b.WriteString(m.theme.Error.Render(m.tickets.message))
		b.WriteString("\n\n")
	}
	if len(snap.Tickets) == 0 {
		b.WriteString(m.theme.Muted.Render("No tickets."))
		b.WriteString("\n")
		return b.String()
	}

	header := pad("Reference", 16) + pad("Client", 20) + pad("Container", 16) + pad("Carrier", 20) + pad("Pickup", 18)
	b.WriteString(m.theme.Label.Render(header))
	b.WriteString("\n")
	for i, t := range snap.Tickets {
		row := pad(orDash(t.ReferenceNumber), 16) +
			pad(orDash(t.ClientName), 20) +
			pad(orDash(t.ContainerNumber), 16) +
			pad(orDash(t.CarrierName), 20) +
			pad(orDash(t.PickupTime), 18)
		if i == m.tickets.cursor {
			b.WriteString(m.theme.Selected.Render(row))
		} else {
			b.WriteString(m.theme.Value.Render(row))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.theme.Muted.Render(pageStatus(m.tickets.page, snap.TicketTotal, ticketPageSize)))
	b.WriteString("\n")
	return b.String()
}

func (m Model) anyTicketFilterSet() bool {
	for i := range m.tickets.filters {
		if strings.TrimSpace(m.tickets.filters[i].Value()) != "" {
			return true
		}
	}
	return false
}
