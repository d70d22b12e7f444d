package editor

import (
	"fmt"
	"strings"
)

// Mode is the lifecycle state of a field group.
type Mode int

const (
	// ModeView renders baseline values read-only.
	ModeView Mode = iota
	// ModeEditing exposes the draft for mutation.
	ModeEditing
	// ModeSaving has a request in flight; the draft is frozen.
	ModeSaving
)

// String returns a display label for the mode.
func (m Mode) String() string {
	switch m {
	case ModeEditing:
		return "editing"
	case ModeSaving:
		return "saving"
	default:
		return "view"
	}
}

// Values maps field names to their string form. Drafts and baselines are
// always cloned at ownership boundaries so callers cannot alias group state.
type Values map[string]string

// Clone returns an independent copy.
func (v Values) Clone() Values {
	dup := make(Values, len(v))
	for k, val := range v {
		dup[k] = val
	}
	return dup
}

// Group tracks the view/edit/save lifecycle of one independently toggleable
// field cluster: its draft, its last server-confirmed baseline, and the
// policy gate deciding which fields may change.
type Group struct {
	id       string
	fields   []string
	required map[string]struct{}
	editable func(field string) bool

	mode     Mode
	draft    Values
	baseline Values
	message  string
}

// Config describes a Group before it is created.
type Config struct {
	// ID identifies the group for save-result routing; it must be unique
	// within a screen.
	ID string
	// Fields lists the field names the group owns, in render order.
	Fields []string
	// Required names the fields that must be non-empty before a submit is
	// allowed through.
	Required []string
	// Editable is the policy gate for a single field, evaluated as if the
	// group were in edit mode. Nil means every field is editable.
	Editable func(field string) bool
	// Baseline seeds the last known-good values. Missing fields default to
	// the empty string.
	Baseline Values
}

// NewGroup builds a Group in view mode over the given baseline.
func NewGroup(cfg Config) *Group {
	required := make(map[string]struct{}, len(cfg.Required))
	for _, f := range cfg.Required {
		required[f] = struct{}{}
	}

	baseline := make(Values, len(cfg.Fields))
	for _, f := range cfg.Fields {
		baseline[f] = cfg.Baseline[f]
	}

	editable := cfg.Editable
	if editable == nil {
		editable = func(string) bool { return true }
	}

	return &Group{
		id:       cfg.ID,
		fields:   append([]string(nil), cfg.Fields...),
		required: required,
		editable: editable,
		mode:     ModeView,
		draft:    baseline.Clone(),
		baseline: baseline,
	}
}

// ID returns the group identifier.
func (g *Group) ID() string { return g.id }

// Mode returns the current lifecycle state.
func (g *Group) Mode() Mode { return g.mode }

// Fields returns the group's field names in render order.
func (g *Group) Fields() []string {
	return append([]string(nil), g.fields...)
}

// Message returns the current inline validation or save-failure message.
func (g *Group) Message() string { return g.message }

// SetMessage replaces the inline message.
func (g *Group) SetMessage(msg string) { g.message = msg }

// Editable reports whether the named field may be mutated right now: the
// group must be in edit mode and the field must pass the policy gate.
func (g *Group) Editable(field string) bool {
	return g.mode == ModeEditing && g.editable(field)
}

// CanEdit reports whether entering edit mode would make at least one field
// mutable. Screens use it to decide whether to render an edit affordance at
// all.
func (g *Group) CanEdit() bool {
	for _, f := range g.fields {
		if g.editable(f) {
			return true
		}
	}
	return false
}

// BeginEdit moves View -> Editing, seeding the draft from the baseline. The
// transition is refused when no field would be editable or when the group is
// not in view mode.
func (g *Group) BeginEdit() bool {
	if g.mode != ModeView || !g.CanEdit() {
		return false
	}
	g.draft = g.baseline.Clone()
	g.mode = ModeEditing
	g.message = ""
	return true
}

// Cancel discards the draft and returns to view mode. While a save is in
// flight the group stays in saving mode; the only exits from there are the
// save result itself.
func (g *Group) Cancel() {
	if g.mode != ModeEditing {
		return
	}
	g.draft = g.baseline.Clone()
	g.mode = ModeView
	g.message = ""
}

// Set writes one draft field. It fails when the group is not editing or the
// field does not pass the policy gate.
func (g *Group) Set(field, value string) error {
	if g.mode != ModeEditing {
		return ErrNotEditing
	}
	if !g.editable(field) {
		return fmt.Errorf("%w: %s", ErrFieldNotEditable, field)
	}
	g.draft[field] = value
	return nil
}

// Get returns the value a screen should render: the draft while the group is
// editing or saving, the baseline otherwise.
func (g *Group) Get(field string) string {
	if g.mode == ModeView {
		return g.baseline[field]
	}
	return g.draft[field]
}

// Baseline returns a copy of the last server-confirmed values.
func (g *Group) Baseline() Values {
	return g.baseline.Clone()
}

// Draft returns a copy of the in-progress values.
func (g *Group) Draft() Values {
	return g.draft.Clone()
}

// Submit attempts Editing -> Saving. On success the cloned draft is returned
// as the payload to send. A submit while already saving is a no-op (nil,
// false): the single in-flight request per group is enforced here, not in
// the transport. A submit that fails required-field validation stays in
// edit mode with an inline message.
func (g *Group) Submit() (Values, bool) {
	switch g.mode {
	case ModeSaving:
		return nil, false
	case ModeView:
		return nil, false
	}

	if missing := g.missingRequired(); len(missing) > 0 {
		g.message = "Required: " + strings.Join(missing, ", ")
		return nil, false
	}

	g.mode = ModeSaving
	g.message = ""
	return g.draft.Clone(), true
}

// Resolve completes a save. On success the server's canonical record becomes
// the new baseline (the server is the source of truth, not the client draft)
// and the group collapses to view mode. On failure the draft is kept intact,
// the group returns to edit mode, and the error message is surfaced for the
// user to retry or cancel. Resolve on a group that is not saving is ignored,
// which makes duplicate or stray replies harmless.
func (g *Group) Resolve(record Values, err error) {
	if g.mode != ModeSaving {
		return
	}
	if err != nil {
		g.mode = ModeEditing
		g.message = err.Error()
		return
	}

	if record == nil {
		record = g.draft
	}
	merged := g.baseline.Clone()
	for _, f := range g.fields {
		if v, ok := record[f]; ok {
			merged[f] = v
		} else {
			merged[f] = g.draft[f]
		}
	}
	g.baseline = merged
	g.draft = merged.Clone()
	g.mode = ModeView
	g.message = ""
}

// Rebase replaces the baseline with a freshly fetched server record. It
// only applies in view mode: a draft in progress or a save in flight keeps
// its own values until the edit resolves. Fields absent from the record keep
// their current baseline.
func (g *Group) Rebase(record Values) {
	if g.mode != ModeView {
		return
	}
	for _, f := range g.fields {
		if v, ok := record[f]; ok {
			g.baseline[f] = v
		}
	}
	g.draft = g.baseline.Clone()
}

func (g *Group) missingRequired() []string {
	var missing []string
	for _, f := range g.fields {
		if _, ok := g.required[f]; !ok {
			continue
		}
		if strings.TrimSpace(g.draft[f]) == "" {
			missing = append(missing, f)
		}
	}
	return missing
}
