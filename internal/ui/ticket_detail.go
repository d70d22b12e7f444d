package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/deepclear/manifest/internal/api"
	"github.com/deepclear/manifest/internal/editor"
	"github.com/deepclear/manifest/internal/policy"
)

// arrayFields names the ticket fields edited as row lists.
var arrayFields = []string{"pars", "transaction_number"}

// detailRow is one navigable line of the detail screen. Scalar fields have
// index -1; list fields contribute one row per element.
type detailRow struct {
	field string
	index int
}

type ticketDetailState struct {
	ticket api.Ticket
	group  *editor.Group
	arrays map[string]*editor.ArrayField

	cursor int
	input  textinput.Model
	typing bool
	notice string
}

func newTicketDetailState(ticket api.Ticket, dept policy.Department) ticketDetailState {
	group := editor.NewGroup(editor.Config{
		ID:       ticket.ReferenceNumber,
		Fields:   api.TicketEditFields,
		Editable: policy.FieldGate(dept, policy.TicketAllowList),
		Baseline: ticket.EditValues(),
	})

	arrays := make(map[string]*editor.ArrayField, len(arrayFields))
	for _, f := range arrayFields {
		arrays[f] = editor.AttachArrayField(group, f)
	}

	in := textinput.New()
	in.CharLimit = 256
	in.Width = 48

	return ticketDetailState{
		ticket: ticket,
		group:  group,
		arrays: arrays,
		input:  in,
	}
}

// rows flattens the field list into navigable lines, expanding array fields
// into their current rows.
func (s ticketDetailState) rows() []detailRow {
	var rows []detailRow
	for _, f := range s.group.Fields() {
		arr, ok := s.arrays[f]
		if !ok {
			rows = append(rows, detailRow{field: f, index: -1})
			continue
		}
		for i := 0; i < arr.Len(); i++ {
			rows = append(rows, detailRow{field: f, index: i})
		}
	}
	return rows
}

func (s *ticketDetailState) resetArrays() {
	for _, arr := range s.arrays {
		arr.Reset()
	}
}

func (s *ticketDetailState) clampCursor() {
	if n := len(s.rows()); s.cursor >= n {
		s.cursor = n - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
}

func (m Model) handleTicketDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.detail.typing {
		return m.handleDetailInputKey(msg)
	}

	rows := m.detail.rows()
	switch msg.String() {
	case "esc":
		if m.detail.group.Mode() == editor.ModeEditing {
			m.detail.group.Cancel()
			m.detail.resetArrays()
			m.detail.clampCursor()
			return m, nil
		}
		if m.detail.group.Mode() == editor.ModeSaving {
			return m, nil
		}
		m.screen = ScreenTickets
		return m, nil
	case "j", "down":
		if m.detail.cursor < len(rows)-1 {
			m.detail.cursor++
		}
	case "k", "up":
		if m.detail.cursor > 0 {
			m.detail.cursor--
		}
	case "e":
		if m.detail.group.BeginEdit() {
			m.detail.resetArrays()
			m.detail.notice = ""
		}
	case "enter":
		return m.startDetailInput()
	case "a":
		row := rows[m.detail.cursor]
		if arr, ok := m.detail.arrays[row.field]; ok {
			if err := arr.Add(); err == nil {
				m.detail.cursor++
			}
		}
	case "d":
		row := rows[m.detail.cursor]
		if arr, ok := m.detail.arrays[row.field]; ok && arr.Len() > 1 {
			if err := arr.Remove(row.index); err == nil {
				m.detail.clampCursor()
			}
		}
	case "ctrl+s":
		return m.submitTicket()
	}
	return m, nil
}

func (m Model) startDetailInput() (tea.Model, tea.Cmd) {
	rows := m.detail.rows()
	row := rows[m.detail.cursor]
	if !m.detail.group.Editable(row.field) {
		return m, nil
	}

	value := m.detail.group.Get(row.field)
	if arr, ok := m.detail.arrays[row.field]; ok {
		value = arr.Rows()[row.index]
	}
	m.detail.input.SetValue(value)
	m.detail.input.CursorEnd()
	m.detail.input.Focus()
	m.detail.typing = true
	return m, nil
}

func (m Model) handleDetailInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.detail.typing = false
		m.detail.input.Blur()
		return m, nil
	case "enter":
		rows := m.detail.rows()
		row := rows[m.detail.cursor]
		value := m.detail.input.Value()
		var err error
		if arr, ok := m.detail.arrays[row.field]; ok {
			err = arr.Update(row.index, value)
		} else {
			err = m.detail.group.Set(row.field, value)
		}
		if err != nil {
			m.detail.group.SetMessage(err.Error())
		}
		m.detail.typing = false
		m.detail.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.detail.input, cmd = m.detail.input.Update(msg)
	return m, cmd
}

func (m Model) submitTicket() (tea.Model, tea.Cmd) {
	values, ok := m.detail.group.Submit()
	if !ok {
		return m, nil
	}
	ticket := m.detail.ticket.ApplyEdits(values)
	m.detail.notice = ""
	return m, saveTicketCmd(m.ctx, m.client, ticket)
}

func (m Model) handleTicketSaved(msg ticketSavedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil && api.IsAuth(msg.err) {
		return m, m.authFailure(msg.err)
	}

	// Replies for a ticket the user has navigated away from are dropped;
	// Resolve on a non-saving group is a no-op anyway.
	if m.screen != ScreenTicketDetail || m.detail.group == nil || m.detail.group.ID() != msg.reference {
		log.Debug("dropping stale save reply", "reference", msg.reference)
		return m, nil
	}

	if msg.err != nil {
		m.detail.group.Resolve(nil, msg.err)
		m.store.RecordFailure(msg.err)
		return m, nil
	}

	m.detail.group.Resolve(msg.ticket.EditValues(), nil)
	m.detail.resetArrays()
	m.detail.clampCursor()
	m.detail.ticket = msg.ticket
	m.detail.notice = "Saved"
	m.store.ReplaceTicket(msg.ticket)
	return m, nil
}

func (m Model) renderTicketDetail() string {
	s := m.detail
	var b strings.Builder

	title := "Ticket " + orDash(s.ticket.ReferenceNumber)
	b.WriteString(m.theme.Header.Render(title))
	switch s.group.Mode() {
	case editor.ModeEditing:
		b.WriteString("  " + m.theme.Editing.Render("[editing]"))
	case editor.ModeSaving:
		b.WriteString("  " + m.theme.Badge.Render("saving"))
	}
	b.WriteString("\n\n")

	b.WriteString(m.theme.Label.Render(pad("Main ID", 24)))
	b.WriteString(m.theme.Value.Render(fmt.Sprintf("%d", s.ticket.MainID)))
	b.WriteString("\n")
	b.WriteString(m.theme.Label.Render(pad("Client", 24)))
	b.WriteString(m.theme.Value.Render(orDash(s.ticket.ClientName)))
	b.WriteString("\n\n")

	rows := s.rows()
	for i, row := range rows {
		label := fieldLabel(row.field)
		value := s.group.Get(row.field)
		if arr, ok := s.arrays[row.field]; ok {
			label = fmt.Sprintf("%s [%d]", fieldLabel(row.field), row.index+1)
			value = arr.Rows()[row.index]
		}

		line := pad(label, 24)
		if i == s.cursor && s.typing {
			b.WriteString(m.theme.Label.Render(line))
			b.WriteString(s.input.View())
			b.WriteString("\n")
			continue
		}

		valueStyle := m.theme.Value
		if s.group.Mode() != editor.ModeView && !s.group.Editable(row.field) {
			valueStyle = m.theme.Muted
		}
		rendered := m.theme.Label.Render(line) + valueStyle.Render(orDash(value))
		if i == s.cursor {
			rendered = m.theme.Selected.Render(pad(label, 24) + orDash(value))
		}
		b.WriteString(rendered)
		b.WriteString("\n")
	}

	if msg := s.group.Message(); msg != "" {
		b.WriteString("\n")
		b.WriteString(m.theme.Error.Render(msg))
		b.WriteString("\n")
	}
	if s.notice != "" {
		b.WriteString("\n")
		b.WriteString(m.theme.Success.Render(s.notice))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) detailHints() string {
	switch m.detail.group.Mode() {
	case editor.ModeEditing:
		return "j/k move · enter edit value · a add row · d remove row · ctrl+s save · esc discard"
	case editor.ModeSaving:
		return "saving..."
	default:
		if m.detail.group.CanEdit() {
			return "j/k move · e edit · esc back"
		}
		return "j/k move · esc back"
	}
}
