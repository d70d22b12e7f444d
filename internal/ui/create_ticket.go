package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/deepclear/manifest/internal/api"
	"github.com/deepclear/manifest/internal/editor"
)

// createTicketFields lists the inputs of the creation form, in tab order.
// The client selector sits before them.
var createTicketFields = []string{
	"container_number",
	"pickup_address",
	"delivery_address",
	"carrier_name",
	"ein_number",
	"scac_number",
	"pickup_time",
	"load_number",
	"truck_number",
	"trailer_number",
	"poe",
	"cross_border_location",
	"quote_price",
	"cost_price",
}

type createTicketState struct {
	clients        []api.ClientAccount
	clientIdx      int
	loadingClients bool

	inputs []textinput.Model
	// focus 0 is the client selector; 1..len(inputs) are the text inputs.
	focus   int
	saving  bool
	message string
	created string
}

func newCreateTicketState() createTicketState {
	inputs := make([]textinput.Model, len(createTicketFields))
	for i, f := range createTicketFields {
		in := textinput.New()
		in.Placeholder = fieldLabel(f)
		in.CharLimit = 256
		in.Width = 40
		inputs[i] = in
	}
	return createTicketState{inputs: inputs}
}

func (m Model) handleCreateTicketKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := &m.createTicket
	switch msg.String() {
	case "esc":
		m.screen = ScreenMenu
		return m, nil
	case "tab", "down":
		m.moveCreateTicketFocus(1)
		return m, nil
	case "shift+tab", "up":
		m.moveCreateTicketFocus(-1)
		return m, nil
	case "ctrl+s":
		return m.submitCreateTicket()
	}

	if s.focus == 0 {
		switch msg.String() {
		case "left", "h":
			if s.clientIdx > 0 {
				s.clientIdx--
			}
		case "right", "l":
			if s.clientIdx < len(s.clients)-1 {
				s.clientIdx++
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	s.inputs[s.focus-1], cmd = s.inputs[s.focus-1].Update(msg)
	return m, cmd
}

func (m *Model) moveCreateTicketFocus(delta int) {
	s := &m.createTicket
	if s.focus > 0 {
		s.inputs[s.focus-1].Blur()
	}
	n := len(s.inputs) + 1
	s.focus = (s.focus + delta + n) % n
	if s.focus > 0 {
		s.inputs[s.focus-1].Focus()
	}
}

func (m Model) submitCreateTicket() (tea.Model, tea.Cmd) {
	s := &m.createTicket
	if s.saving {
		return m, nil
	}
	if len(s.clients) == 0 {
		s.message = "no client accounts available"
		return m, nil
	}

	values := editor.Values{}
	for i, f := range createTicketFields {
		values[f] = strings.TrimSpace(s.inputs[i].Value())
	}
	ticket := api.Ticket{ClientID: s.clients[s.clientIdx].ClientID}.ApplyEdits(values)

	s.saving = true
	s.message = ""
	s.created = ""
	return m, createTicketCmd(m.ctx, m.client, ticket)
}

// handleClients routes the account list to whichever creation screen asked
// for it.
func (m Model) handleClients(msg clientsMsg) (tea.Model, tea.Cmd) {
	m.createTicket.loadingClients = false
	m.createQuote.loadingClients = false
	if msg.err != nil {
		if api.IsAuth(msg.err) {
			return m, m.authFailure(msg.err)
		}
		if m.screen == ScreenCreateQuote {
			m.createQuote.message = msg.err.Error()
		} else {
			m.createTicket.message = msg.err.Error()
		}
		log.Error("client list failed", "error", msg.err)
		return m, nil
	}
	if m.screen == ScreenCreateQuote {
		m.createQuote.clients = msg.clients
		m.createQuote.clientIdx = 0
	} else {
		m.createTicket.clients = msg.clients
		m.createTicket.clientIdx = 0
	}
	return m, nil
}

func (m Model) handleTicketCreated(msg ticketCreatedMsg) (tea.Model, tea.Cmd) {
	s := &m.createTicket
	s.saving = false
	if msg.err != nil {
		if api.IsAuth(msg.err) {
			return m, m.authFailure(msg.err)
		}
		s.message = msg.err.Error()
		return m, nil
	}

	s.created = msg.created.ReferenceNumber
	for i := range s.inputs {
		s.inputs[i].SetValue("")
	}
	log.Info("ticket created", "reference", s.created)
	return m, nil
}

func (m Model) renderCreateTicket() string {
	s := m.createTicket
	var b strings.Builder
	b.WriteString(m.theme.Header.Render("Create Truck Ticket"))
	b.WriteString("\n\n")

	if s.loadingClients {
		b.WriteString(m.theme.Muted.Render("Loading clients..."))
		b.WriteString("\n")
		return b.String()
	}

	clientLine := "no clients"
	if len(s.clients) > 0 {
		c := s.clients[s.clientIdx]
		clientLine = fmt.Sprintf("< %s (#%d) >", c.ClientName, c.ClientID)
	}
	label := m.theme.Label.Render(pad("Client", 24))
	if s.focus == 0 {
		b.WriteString(label + m.theme.Selected.Render(clientLine))
	} else {
		b.WriteString(label + m.theme.Value.Render(clientLine))
	}
	b.WriteString("\n")

	for i, f := range createTicketFields {
		b.WriteString(m.theme.Label.Render(pad(fieldLabel(f), 24)))
		b.WriteString(s.inputs[i].View())
		b.WriteString("\n")
	}

	if s.saving {
		b.WriteString("\n" + m.theme.Badge.Render("saving") + "\n")
	}
	if s.message != "" {
		b.WriteString("\n" + m.theme.Error.Render(s.message) + "\n")
	}
	if s.created != "" {
		b.WriteString("\n" + m.theme.Success.Render("Created ticket "+s.created) + "\n")
	}
	return b.String()
}
