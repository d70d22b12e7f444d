package policy

// Department identifies the organizational role of an authenticated admin.
// The wire value comes back from /admin/login as a bare integer; anything
// outside the known set is normalized to the most restrictive profile.
type Department int

const (
	// DeptNone means the admin has no department restriction.
	DeptNone Department = 0
	// DeptOffice is the office profile; it edits everything.
	DeptOffice Department = 1
	// DeptCarrier is the carrier profile; it edits only allow-listed fields.
	DeptCarrier Department = 2
)

// Normalize collapses unknown department values to DeptCarrier. Authorization
// data we do not recognize must resolve to the restrictive profile, never to
// open access.
func (d Department) Normalize() Department {
	switch d {
	case DeptNone, DeptOffice, DeptCarrier:
		return d
	default:
		return DeptCarrier
	}
}

// Restricted reports whether the department is limited to an allow-list.
func (d Department) Restricted() bool {
	return d.Normalize() == DeptCarrier
}

// String returns a display label for the department.
func (d Department) String() string {
	switch d.Normalize() {
	case DeptOffice:
		return "Office"
	case DeptCarrier:
		return "Carrier"
	default:
		return "Unrestricted"
	}
}

// AllowList is the fixed set of field names a restricted department may edit
// on a given screen. The zero value allows nothing.
type AllowList struct {
	fields map[string]struct{}
}

// NewAllowList builds an AllowList from field names.
func NewAllowList(fields ...string) AllowList {
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return AllowList{fields: set}
}

// Contains reports whether the field is a member of the allow-list.
func (l AllowList) Contains(field string) bool {
	_, ok := l.fields[field]
	return ok
}

// Len returns the number of allow-listed fields.
func (l AllowList) Len() int {
	return len(l.fields)
}

// TicketAllowList is the carrier-department allow-list for truck ticket
// records.
var TicketAllowList = NewAllowList(
	"carrier_name",
	"ein_number",
	"scac_number",
	"pars",
	"transaction_number",
	"supportor",
	"load_number",
	"poe",
	"cost_price",
)

// QuoteAllowList gates the quote screens. Carriers never reach them, so the
// restricted profile edits nothing there.
var QuoteAllowList = NewAllowList()

// IsEditable decides whether a single field may be mutated right now. Outside
// edit mode nothing is editable. In edit mode an unrestricted department edits
// every field; a restricted (or unrecognized) department edits only fields on
// the screen's allow-list.
func IsEditable(dept Department, allow AllowList, field string, editing bool) bool {
	if !editing {
		return false
	}
	if !dept.Restricted() {
		return true
	}
	return allow.Contains(field)
}

// FieldGate binds the policy to one department and allow-list, answering for
// edit mode. Editor groups layer their own view/edit mode check on top, so
// the gate only captures the department dimension.
func FieldGate(dept Department, allow AllowList) func(string) bool {
	return func(field string) bool {
		return IsEditable(dept, allow, field, true)
	}
}

// CanManageQuotes reports whether the department sees the quote screens.
// Mirrors the menu filtering for carriers.
func CanManageQuotes(dept Department) bool {
	return !dept.Restricted()
}

// CanCreateTickets reports whether the department may create truck tickets.
func CanCreateTickets(dept Department) bool {
	return !dept.Restricted()
}

// CanProvisionAccounts reports whether the department may create admin or
// client accounts.
func CanProvisionAccounts(dept Department) bool {
	return !dept.Restricted()
}
