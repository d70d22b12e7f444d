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

const quotePageSize = 5

// Quote rows a card exposes for editing.
const (
	quoteRowPrice = iota
	quoteRowNote
)

type quoteListState struct {
	// groups holds the per-quote field groups, keyed "price:<id>" and
	// "note:<id>". Each quote edits and saves independently.
	groups map[string]*editor.Group

	cursor  int
	row     int
	page    int
	loading bool
	message string
	notice  string

	input  textinput.Model
	typing bool
}

func newQuoteListState() quoteListState {
	in := textinput.New()
	in.CharLimit = 256
	in.Width = 40
	return quoteListState{
		groups: make(map[string]*editor.Group),
		page:   1,
		input:  in,
	}
}

func priceGroupID(quoteID int64) string { return fmt.Sprintf("price:%d", quoteID) }
func noteGroupID(quoteID int64) string  { return fmt.Sprintf("note:%d", quoteID) }

// ensureQuoteGroups syncs the per-quote groups with a fetched page. Missing
// groups are created; existing view-mode groups are rebased onto the server
// values so another operator's changes show up on refetch. Groups that are
// editing or saving keep their draft until the edit resolves.
func (m *Model) ensureQuoteGroups(quotes []api.QuoteDetail) {
	gate := policy.FieldGate(m.dept, policy.QuoteAllowList)
	for _, qd := range quotes {
		q := qd.Quote
		if g, ok := m.quotes.groups[priceGroupID(q.QuoteID)]; ok {
			g.Rebase(editor.Values{"price": q.PriceString()})
		} else {
			m.quotes.groups[priceGroupID(q.QuoteID)] = editor.NewGroup(editor.Config{
				ID:       priceGroupID(q.QuoteID),
				Fields:   []string{"price"},
				Required: []string{"price"},
				Editable: gate,
				Baseline: editor.Values{"price": q.PriceString()},
			})
		}
		if g, ok := m.quotes.groups[noteGroupID(q.QuoteID)]; ok {
			g.Rebase(editor.Values{"admin_note": q.AdminNote})
		} else {
			m.quotes.groups[noteGroupID(q.QuoteID)] = editor.NewGroup(editor.Config{
				ID:       noteGroupID(q.QuoteID),
				Fields:   []string{"admin_note"},
				Editable: gate,
				Baseline: editor.Values{"admin_note": q.AdminNote},
			})
		}
	}
}

func (m Model) focusedQuote() (api.QuoteDetail, bool) {
	snap := m.store.Snapshot()
	if m.quotes.cursor >= len(snap.Quotes) {
		return api.QuoteDetail{}, false
	}
	return snap.Quotes[m.quotes.cursor], true
}

func (m Model) focusedQuoteGroup() *editor.Group {
	qd, ok := m.focusedQuote()
	if !ok {
		return nil
	}
	if m.quotes.row == quoteRowPrice {
		return m.quotes.groups[priceGroupID(qd.Quote.QuoteID)]
	}
	return m.quotes.groups[noteGroupID(qd.Quote.QuoteID)]
}

func (m Model) handleQuotesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.quotes.typing {
		return m.handleQuoteInputKey(msg)
	}

	snap := m.store.Snapshot()
	switch msg.String() {
	case "esc", "q":
		if g := m.focusedQuoteGroup(); g != nil && g.Mode() == editor.ModeEditing {
			g.Cancel()
			return m, nil
		}
		m.screen = ScreenMenu
		return m, nil
	case "j", "down":
		if m.quotes.cursor < len(snap.Quotes)-1 {
			m.quotes.cursor++
			m.quotes.row = quoteRowPrice
		}
	case "k", "up":
		if m.quotes.cursor > 0 {
			m.quotes.cursor--
			m.quotes.row = quoteRowPrice
		}
	case "tab":
		if m.quotes.row == quoteRowPrice {
			m.quotes.row = quoteRowNote
		} else {
			m.quotes.row = quoteRowPrice
		}
	case "e":
		if g := m.focusedQuoteGroup(); g != nil && g.BeginEdit() {
			m.quotes.notice = ""
			return m.startQuoteInput()
		}
	case "enter":
		if g := m.focusedQuoteGroup(); g != nil && g.Mode() == editor.ModeEditing {
			return m.startQuoteInput()
		}
	case "ctrl+s":
		return m.submitQuote()
	case "[":
		if m.quotes.page > 1 {
			m.quotes.page--
			return m.refetchQuotes()
		}
	case "]":
		if m.quotes.page < pageCount(snap.QuoteTotal, quotePageSize) {
			m.quotes.page++
			return m.refetchQuotes()
		}
	case "r":
		return m.refetchQuotes()
	}
	return m, nil
}

func (m Model) startQuoteInput() (tea.Model, tea.Cmd) {
	g := m.focusedQuoteGroup()
	if g == nil {
		return m, nil
	}
	field := g.Fields()[0]
	if !g.Editable(field) {
		return m, nil
	}
	m.quotes.input.SetValue(g.Get(field))
	m.quotes.input.CursorEnd()
	m.quotes.input.Focus()
	m.quotes.typing = true
	return m, nil
}

func (m Model) handleQuoteInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.quotes.typing = false
		m.quotes.input.Blur()
		return m, nil
	case "enter":
		if g := m.focusedQuoteGroup(); g != nil {
			field := g.Fields()[0]
			if err := g.Set(field, m.quotes.input.Value()); err != nil {
				g.SetMessage(err.Error())
			}
		}
		m.quotes.typing = false
		m.quotes.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.quotes.input, cmd = m.quotes.input.Update(msg)
	return m, cmd
}

func (m Model) submitQuote() (tea.Model, tea.Cmd) {
	qd, ok := m.focusedQuote()
	if !ok {
		return m, nil
	}
	g := m.focusedQuoteGroup()
	if g == nil {
		return m, nil
	}
	values, ok := g.Submit()
	if !ok {
		return m, nil
	}

	update := api.QuoteUpdate{QuoteID: qd.Quote.QuoteID}
	if m.quotes.row == quoteRowPrice {
		price, err := api.ParsePrice(values["price"])
		if err != nil {
			g.Resolve(nil, err)
			return m, nil
		}
		update.Price = &price
	} else {
		note := values["admin_note"]
		update.AdminNote = &note
	}
	m.quotes.notice = ""
	return m, saveQuoteCmd(m.ctx, m.client, g.ID(), update)
}

func (m Model) refetchQuotes() (tea.Model, tea.Cmd) {
	m.quotes.loading = true
	m.quotes.message = ""
	return m, fetchQuotesCmd(m.ctx, m.client, api.QuoteQuery{Page: m.quotes.page, Limit: quotePageSize})
}

func (m Model) handleQuotePage(msg quotePageMsg) (tea.Model, tea.Cmd) {
	m.quotes.loading = false
	if msg.err != nil {
		if api.IsAuth(msg.err) {
			return m, m.authFailure(msg.err)
		}
		m.store.RecordFailure(msg.err)
		m.quotes.message = msg.err.Error()
		log.Error("quote fetch failed", "error", msg.err)
		return m, nil
	}
	m.store.SetQuotes(msg.page.Data, msg.page.TotalQuotes)
	m.ensureQuoteGroups(msg.page.Data)
	if m.quotes.cursor >= len(msg.page.Data) {
		m.quotes.cursor = 0
	}
	return m, nil
}

func (m Model) handleQuoteSaved(msg quoteSavedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil && api.IsAuth(msg.err) {
		return m, m.authFailure(msg.err)
	}

	g, ok := m.quotes.groups[msg.groupID]
	if !ok {
		log.Debug("dropping stale quote save reply", "group", msg.groupID)
		return m, nil
	}
	if msg.err != nil {
		g.Resolve(nil, msg.err)
		m.store.RecordFailure(msg.err)
		return m, nil
	}

	g.Resolve(nil, nil)
	if m.screen != ScreenQuotes {
		return m, nil
	}
	m.quotes.notice = "Saved"
	return m.refetchQuotes()
}

func (m Model) renderQuotes() string {
	snap := m.store.Snapshot()

	var b strings.Builder
	b.WriteString(m.theme.Header.Render("Quotes"))
	b.WriteString("\n\n")

	if m.quotes.loading {
		b.WriteString(m.theme.Muted.Render("Fetching quotes..."))
		b.WriteString("\n")
		return b.String()
	}
	if m.quotes.message != "" {
		b.WriteString(m.theme.Error.Render(m.quotes.message))
		b.WriteString("\n\n")
	}
	if len(snap.Quotes) == 0 {
		b.WriteString(m.theme.Muted.Render("No quotes."))
		b.WriteString("\n")
		return b.String()
	}

	for i, qd := range snap.Quotes {
		b.WriteString(m.renderQuoteCard(i, qd))
		b.WriteString("\n")
	}

	if m.quotes.notice != "" {
		b.WriteString(m.theme.Success.Render(m.quotes.notice))
		b.WriteString("\n")
	}
	b.WriteString(m.theme.Muted.Render(pageStatus(m.quotes.page, snap.QuoteTotal, quotePageSize)))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderQuoteCard(i int, qd api.QuoteDetail) string {
	q := qd.Quote
	focused := i == m.quotes.cursor

	var b strings.Builder
	title := fmt.Sprintf("#%d  %s  %s", q.QuoteID, orDash(q.ClientName), q.StatusLabel())
	if focused {
		b.WriteString(m.theme.Selected.Render(title))
	} else {
		b.WriteString(m.theme.Header.Render(title))
	}
	b.WriteString("\n")

	b.WriteString(m.theme.Label.Render(pad("Route", 14)))
	b.WriteString(m.theme.Value.Render(fmt.Sprintf("%s -> %s", orDash(q.DepartureAddress), orDash(q.ArrivalAddress))))
	b.WriteString("\n")
	if q.ClientNote != "" {
		b.WriteString(m.theme.Label.Render(pad("Client Note", 14)))
		b.WriteString(m.theme.Value.Render(q.ClientNote))
		b.WriteString("\n")
	}
	b.WriteString(m.theme.Label.Render(pad("Cargo", 14)))
	b.WriteString(m.theme.Value.Render(fmt.Sprintf("%d items, %.1f kg, %.2f m³", len(qd.CargoItems), qd.TotalWeight, qd.TotalVolume)))
	b.WriteString("\n")

	b.WriteString(m.renderQuoteRow(i, quoteRowPrice, "Price", m.quotes.groups[priceGroupID(q.QuoteID)], "price"))
	b.WriteString(m.renderQuoteRow(i, quoteRowNote, "Admin Note", m.quotes.groups[noteGroupID(q.QuoteID)], "admin_note"))
	return b.String()
}

func (m Model) renderQuoteRow(quoteIdx, row int, label string, g *editor.Group, field string) string {
	if g == nil {
		return ""
	}
	focused := quoteIdx == m.quotes.cursor && row == m.quotes.row

	var b strings.Builder
	b.WriteString(m.theme.Label.Render(pad(label, 14)))

	if focused && m.quotes.typing {
		b.WriteString(m.quotes.input.View())
	} else {
		value := orDash(g.Get(field))
		switch {
		case g.Mode() == editor.ModeSaving:
			b.WriteString(m.theme.Badge.Render("saving"))
			b.WriteString(" " + m.theme.Muted.Render(value))
		case g.Mode() == editor.ModeEditing:
			b.WriteString(m.theme.Editing.Render(value + " *"))
		case focused:
			b.WriteString(m.theme.Selected.Render(value))
		default:
			b.WriteString(m.theme.Value.Render(value))
		}
	}
	if msg := g.Message(); msg != "" {
		b.WriteString("  " + m.theme.Error.Render(msg))
	}
	b.WriteString("\n")
	return b.String()
}

func (m Model) quoteHints() string {
	if g := m.focusedQuoteGroup(); g != nil {
		switch g.Mode() {
		case editor.ModeEditing:
			return "enter edit value · ctrl+s save · esc discard"
		case editor.ModeSaving:
			return "saving..."
		}
	}
	return "j/k move · tab price/note · e edit · [/] page · r refresh · esc menu"
}
