// Package ui provides the terminal console for the DeepClear admin backend.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. One root Model owns the active screen, the
// shared list cache (state.Store), and the authenticated session; each screen
// keeps its own sub-state struct and contributes key handling, message
// handling, and rendering from its own file.
//
// # Package Structure
//
//   - app.go: root Model, screen dispatch, messages, commands, and Run
//   - theme.go: lipgloss styles
//   - menu.go: department-filtered main menu
//   - tickets.go: truck ticket list with filters and paging
//   - ticket_detail.go: the ticket field editor (field group + array rows)
//   - quotes.go: quote cards with per-quote price and admin note editing
//   - create_ticket.go: ticket creation form
//   - create_quote.go: two-step quote creation (route, then cargo items)
//
// # Editing Model
//
// Screens never mutate records directly. Each editable surface is an
// editor.Group: view mode renders the baseline, edit mode renders the draft,
// and a save moves the group into saving mode until the reply arrives as a
// message. Replies carry the group id; replies for a group the user has left
// behind resolve nothing. Field-level permission comes from policy.FieldGate
// over the session's department, so a carrier admin sees the same screens
// with most fields locked.
//
// # Network Flow
//
// Every fetch and save is a tea.Cmd calling the api.Service, so the event
// loop never blocks on the network. Any api.AuthError quits the program;
// Run then clears the stored session and reports that a new login is needed.
//
// # Key Bindings
//
//   - j/k: move selection
//   - enter: open details, or edit the focused value
//   - e: enter edit mode
//   - a/d: add or remove an array row (ticket detail, edit mode)
//   - ctrl+s: save
//   - esc: cancel edit, or go back
//   - [ and ]: previous and next page
//   - f: edit list filters
//   - r: refetch
//   - ctrl+c: quit
package ui
