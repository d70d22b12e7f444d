package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/deepclear/manifest/internal/api"
)

// Quote creation walks two steps: route details first, cargo items second.
const (
	quoteStepDetails = iota
	quoteStepCargo
)

var cargoTypeLabels = []string{"Pallet", "Box", "Crate"}

type createQuoteState struct {
	step int

	clients        []api.ClientAccount
	clientIdx      int
	loadingClients bool

	// Route details: departure, arrival, note.
	details []textinput.Model
	// focus 0 is the client selector on the details step, the cargo type
	// selector on the cargo step; text inputs follow.
	focus int

	// Cargo entry: number, length, width, height, weight, note.
	cargoInputs []textinput.Model
	cargoType   int
	items       []api.CargoItemRequest

	saving  bool
	message string
	notice  string
}

func newCreateQuoteState() createQuoteState {
	details := make([]textinput.Model, 3)
	for i, name := range []string{"Departure Address", "Arrival Address", "Quote Note"} {
		in := textinput.New()
		in.Placeholder = name
		in.CharLimit = 256
		in.Width = 40
		details[i] = in
	}

	cargo := make([]textinput.Model, 6)
	for i, name := range []string{"Number", "Length (m)", "Width (m)", "Height (m)", "Weight (kg)", "Cargo Note"} {
		in := textinput.New()
		in.Placeholder = name
		in.CharLimit = 64
		in.Width = 16
		cargo[i] = in
	}

	return createQuoteState{details: details, cargoInputs: cargo}
}

func (m Model) handleCreateQuoteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := &m.createQuote
	switch msg.String() {
	case "esc":
		if s.step == quoteStepCargo {
			s.step = quoteStepDetails
			m.focusCreateQuote(0)
			return m, nil
		}
		m.screen = ScreenMenu
		return m, nil
	case "tab", "down":
		m.moveCreateQuoteFocus(1)
		return m, nil
	case "shift+tab", "up":
		m.moveCreateQuoteFocus(-1)
		return m, nil
	case "ctrl+n":
		if s.step == quoteStepDetails {
			return m.advanceToCargo()
		}
		return m, nil
	case "ctrl+a":
		if s.step == quoteStepCargo {
			m.addCargoItem()
		}
		return m, nil
	case "ctrl+d":
		if s.step == quoteStepCargo && len(s.items) > 0 {
			s.items = s.items[:len(s.items)-1]
		}
		return m, nil
	case "ctrl+s":
		if s.step == quoteStepCargo {
			return m.submitCreateQuote()
		}
		return m, nil
	}

	if s.focus == 0 {
		switch msg.String() {
		case "left", "h":
			m.cycleCreateQuoteSelector(-1)
		case "right", "l":
			m.cycleCreateQuoteSelector(1)
		}
		return m, nil
	}

	var cmd tea.Cmd
	inputs := m.createQuote.stepInputs()
	inputs[s.focus-1], cmd = inputs[s.focus-1].Update(msg)
	return m, cmd
}

// stepInputs returns the text inputs of the active step.
func (s *createQuoteState) stepInputs() []textinput.Model {
	if s.step == quoteStepDetails {
		return s.details
	}
	return s.cargoInputs
}

func (m *Model) cycleCreateQuoteSelector(delta int) {
	s := &m.createQuote
	if s.step == quoteStepDetails {
		next := s.clientIdx + delta
		if next >= 0 && next < len(s.clients) {
			s.clientIdx = next
		}
		return
	}
	s.cargoType = (s.cargoType + delta + len(cargoTypeLabels)) % len(cargoTypeLabels)
}

func (m *Model) moveCreateQuoteFocus(delta int) {
	s := &m.createQuote
	n := len(s.stepInputs()) + 1
	m.focusCreateQuote((s.focus + delta + n) % n)
}

func (m *Model) focusCreateQuote(focus int) {
	s := &m.createQuote
	inputs := s.stepInputs()
	if s.focus > 0 && s.focus-1 < len(inputs) {
		inputs[s.focus-1].Blur()
	}
	s.focus = focus
	if s.focus > 0 {
		inputs[s.focus-1].Focus()
	}
}

func (m Model) advanceToCargo() (tea.Model, tea.Cmd) {
	s := &m.createQuote
	if len(s.clients) == 0 {
		s.message = "no client accounts available"
		return m, nil
	}
	if strings.TrimSpace(s.details[0].Value()) == "" || strings.TrimSpace(s.details[1].Value()) == "" {
		s.message = "departure and arrival addresses are required"
		return m, nil
	}
	s.message = ""
	s.step = quoteStepCargo
	m.focusCreateQuote(0)
	return m, nil
}

// addCargoItem validates the cargo entry row and appends it to the item
// list, clearing the row for the next one.
func (m *Model) addCargoItem() {
	s := &m.createQuote

	parse := func(i int, name string) (float64, bool) {
		v, err := strconv.ParseFloat(strings.TrimSpace(s.cargoInputs[i].Value()), 64)
		if err != nil || v <= 0 {
			s.message = name + " must be a positive number"
			return 0, false
		}
		return v, true
	}

	item := api.CargoItemRequest{CargoType: s.cargoType + 1, CargoNote: strings.TrimSpace(s.cargoInputs[5].Value())}
	if raw := strings.TrimSpace(s.cargoInputs[0].Value()); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			s.message = "number must be a positive integer"
			return
		}
		item.Number = &n
	}

	var ok bool
	if item.Length, ok = parse(1, "length"); !ok {
		return
	}
	if item.Width, ok = parse(2, "width"); !ok {
		return
	}
	if item.Height, ok = parse(3, "height"); !ok {
		return
	}
	if item.Weight, ok = parse(4, "weight"); !ok {
		return
	}

	s.items = append(s.items, item)
	s.message = ""
	for i := range s.cargoInputs {
		s.cargoInputs[i].SetValue("")
	}
}

func (m Model) submitCreateQuote() (tea.Model, tea.Cmd) {
	s := &m.createQuote
	if s.saving {
		return m, nil
	}
	if len(s.items) == 0 {
		s.message = "add at least one cargo item"
		return m, nil
	}

	req := api.QuoteRequest{
		ClientID:         s.clients[s.clientIdx].ClientID,
		DepartureAddress: strings.TrimSpace(s.details[0].Value()),
		ArrivalAddress:   strings.TrimSpace(s.details[1].Value()),
		QuoteNote:        strings.TrimSpace(s.details[2].Value()),
		CargoItems:       s.items,
	}
	s.saving = true
	s.message = ""
	s.notice = ""
	return m, createQuoteCmd(m.ctx, m.client, req)
}

func (m Model) handleQuoteCreated(msg quoteCreatedMsg) (tea.Model, tea.Cmd) {
	s := &m.createQuote
	s.saving = false
	if msg.err != nil {
		if api.IsAuth(msg.err) {
			return m, m.authFailure(msg.err)
		}
		s.message = msg.err.Error()
		return m, nil
	}

	clients, idx := s.clients, s.clientIdx
	*s = newCreateQuoteState()
	s.clients, s.clientIdx = clients, idx
	s.notice = "Quote created"
	log.Info("quote created", "client_id", clients[idx].ClientID)
	return m, nil
}

func (m Model) renderCreateQuote() string {
	s := m.createQuote
	var b strings.Builder
	b.WriteString(m.theme.Header.Render("Create Quote"))
	b.WriteString("\n\n")

	if s.loadingClients {
		b.WriteString(m.theme.Muted.Render("Loading clients..."))
		b.WriteString("\n")
		return b.String()
	}

	if s.step == quoteStepDetails {
		clientLine := "no clients"
		if len(s.clients) > 0 {
			c := s.clients[s.clientIdx]
			clientLine = fmt.Sprintf("< %s (#%d) >", c.ClientName, c.ClientID)
		}
		label := m.theme.Label.Render(pad("Client", 20))
		if s.focus == 0 {
			b.WriteString(label + m.theme.Selected.Render(clientLine))
		} else {
			b.WriteString(label + m.theme.Value.Render(clientLine))
		}
		b.WriteString("\n")
		for i, name := range []string{"Departure", "Arrival", "Note"} {
			b.WriteString(m.theme.Label.Render(pad(name, 20)))
			b.WriteString(s.details[i].View())
			b.WriteString("\n")
		}
	} else {
		typeLine := fmt.Sprintf("< %s >", cargoTypeLabels[s.cargoType])
		label := m.theme.Label.Render(pad("Cargo Type", 20))
		if s.focus == 0 {
			b.WriteString(label + m.theme.Selected.Render(typeLine))
		} else {
			b.WriteString(label + m.theme.Value.Render(typeLine))
		}
		b.WriteString("\n")
		for i, name := range []string{"Number", "Length", "Width", "Height", "Weight", "Note"} {
			b.WriteString(m.theme.Label.Render(pad(name, 20)))
			b.WriteString(s.cargoInputs[i].View())
			b.WriteString("\n")
		}

		b.WriteString("\n")
		if len(s.items) == 0 {
			b.WriteString(m.theme.Muted.Render("No cargo items yet."))
			b.WriteString("\n")
		}
		for i, item := range s.items {
			line := fmt.Sprintf("%d. %s  %.1fx%.1fx%.1f m  %.1f kg", i+1,
				cargoTypeLabels[item.CargoType-1], item.Length, item.Width, item.Height, item.Weight)
			if item.Number != nil {
				line += fmt.Sprintf("  x%d", *item.Number)
			}
			b.WriteString(m.theme.Value.Render(line))
			b.WriteString("\n")
		}
	}

	if s.saving {
		b.WriteString("\n" + m.theme.Badge.Render("saving") + "\n")
	}
	if s.message != "" {
		b.WriteString("\n" + m.theme.Error.Render(s.message) + "\n")
	}
	if s.notice != "" {
		b.WriteString("\n" + m.theme.Success.Render(s.notice) + "\n")
	}
	return b.String()
}

func (m Model) createQuoteHints() string {
	if m.createQuote.step == quoteStepDetails {
		return "tab field · ←/→ client · ctrl+n cargo step · esc menu"
	}
	return "tab field · ←/→ type · ctrl+a add item · ctrl+d drop item · ctrl+s create · esc back"
}
