package editor

import (
	"fmt"
	"strings"
)

// listSeparator is the wire form's delimiter: list-valued ticket fields
// (PARS codes, transaction numbers) travel as one comma-joined string.
const listSeparator = ","

// SplitList expands a transport value into editable rows. An empty source
// value becomes a single empty row rather than an empty list, so the screen
// always has at least one row to type into. That asymmetry with JoinList is
// deliberate and matches the stored data.
func SplitList(value string) []string {
	return strings.Split(value, listSeparator)
}

// JoinList flattens rows back into the transport form. An empty or nil slice
// joins to "".
func JoinList(rows []string) string {
	return strings.Join(rows, listSeparator)
}

// ArrayField edits one list-valued field of an owning Group. Rows are kept
// expanded for per-index mutation; every change is flattened back through
// the owner's draft, so the transport form never drifts from what the rows
// show. Mutations are only legal while the owner is in edit mode and the
// field passes the owner's policy gate.
type ArrayField struct {
	owner *Group
	field string
	rows  []string
}

// AttachArrayField binds an ArrayField to one field of a group, expanding
// the field's current value into rows.
func AttachArrayField(owner *Group, field string) *ArrayField {
	return &ArrayField{
		owner: owner,
		field: field,
		rows:  SplitList(owner.Get(field)),
	}
}

// Field returns the owned field name.
func (a *ArrayField) Field() string { return a.field }

// Rows returns a copy of the current rows.
func (a *ArrayField) Rows() []string {
	return append([]string(nil), a.rows...)
}

// Len returns the number of rows.
func (a *ArrayField) Len() int { return len(a.rows) }

// Reset re-expands the rows from the owner's current value. Screens call it
// after the owner changes mode (begin edit, cancel, save) so the rows track
// the draft or baseline the owner now exposes.
func (a *ArrayField) Reset() {
	a.rows = SplitList(a.owner.Get(a.field))
}

// Add appends one empty row.
func (a *ArrayField) Add() error {
	if err := a.checkEditable(); err != nil {
		return err
	}
	a.rows = append(a.rows, "")
	return a.flush()
}

// Remove deletes the row at index, preserving the order of the rest.
func (a *ArrayField) Remove(index int) error {
	if err := a.checkEditable(); err != nil {
		return err
	}
	if index < 0 || index >= len(a.rows) {
		return fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, index, len(a.rows))
	}
	a.rows = append(a.rows[:index], a.rows[index+1:]...)
	return a.flush()
}

// Update replaces the row at index in place.
func (a *ArrayField) Update(index int, value string) error {
	if err := a.checkEditable(); err != nil {
		return err
	}
	if index < 0 || index >= len(a.rows) {
		return fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, index, len(a.rows))
	}
	a.rows[index] = value
	return a.flush()
}

func (a *ArrayField) checkEditable() error {
	if a.owner.Mode() != ModeEditing {
		return ErrNotEditing
	}
	if !a.owner.Editable(a.field) {
		return fmt.Errorf("%w: %s", ErrFieldNotEditable, a.field)
	}
	return nil
}

func (a *ArrayField) flush() error {
	return a.owner.Set(a.field, JoinList(a.rows))
}
