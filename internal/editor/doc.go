// Package editor is the field-group edit lifecycle shared by every screen
// that mutates records.
//
// A Group owns one independently toggleable cluster of fields and walks a
// three-state machine: view (baseline shown read-only), editing (draft
// exposed for mutation), saving (one request in flight, draft frozen).
// Submitting validates required fields, saving resolves to either a new
// server-confirmed baseline or back to editing with the draft intact, and
// cancel always restores the baseline. A second submit while a save is in
// flight is a no-op, which is what keeps each group to a single request at a
// time.
//
// ArrayField layers per-index add/remove/update on top of a Group for
// list-valued fields whose transport form is a single comma-joined string.
//
// The package performs no I/O. Screens run the returned draft through the
// API client and feed the result back with Resolve.
package editor
