package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, DeptNone, DeptNone.Normalize())
	assert.Equal(t, DeptOffice, DeptOffice.Normalize())
	assert.Equal(t, DeptCarrier, DeptCarrier.Normalize())

	for _, unknown := range []Department{-1, 3, 7, 99} {
		assert.Equal(t, DeptCarrier, unknown.Normalize(), "department %d must fail closed", unknown)
	}
}

func TestIsEditable_ViewModeAlwaysFalse(t *testing.T) {
	fields := []string{"carrier_name", "pickup_address", "quote_price", "nonexistent"}
	for _, dept := range []Department{DeptNone, DeptOffice, DeptCarrier, Department(42)} {
		for _, field := range fields {
			assert.False(t, IsEditable(dept, TicketAllowList, field, false),
				"dept=%d field=%s must be read-only outside edit mode", dept, field)
		}
	}
}

func TestIsEditable_UnrestrictedDepartments(t *testing.T) {
	for _, dept := range []Department{DeptNone, DeptOffice} {
		assert.True(t, IsEditable(dept, TicketAllowList, "pickup_address", true))
		assert.True(t, IsEditable(dept, TicketAllowList, "anything_at_all", true))
	}
}

func TestIsEditable_CarrierAllowList(t *testing.T) {
	allowed := []string{
		"carrier_name", "ein_number", "scac_number", "pars",
		"transaction_number", "supportor", "load_number", "poe", "cost_price",
	}
	for _, field := range allowed {
		assert.True(t, IsEditable(DeptCarrier, TicketAllowList, field, true), "field %s", field)
	}

	denied := []string{
		"pickup_address", "delivery_address", "quote_price", "container_number",
		"gps_link", "truck_number", "trailer_number", "supportor_code",
	}
	for _, field := range denied {
		assert.False(t, IsEditable(DeptCarrier, TicketAllowList, field, true), "field %s", field)
	}
}

func TestIsEditable_UnknownDepartmentMatchesCarrier(t *testing.T) {
	fields := []string{
		"carrier_name", "pars", "cost_price",
		"pickup_address", "quote_price", "made_up_field",
	}
	for _, dept := range []Department{Department(3), Department(-5), Department(1000)} {
		for _, field := range fields {
			want := IsEditable(DeptCarrier, TicketAllowList, field, true)
			got := IsEditable(dept, TicketAllowList, field, true)
			assert.Equal(t, want, got, "dept=%d field=%s must behave like Carrier", dept, field)
		}
	}
}

func TestAllowList(t *testing.T) {
	l := NewAllowList("a", "b")
	require.Equal(t, 2, l.Len())
	assert.True(t, l.Contains("a"))
	assert.False(t, l.Contains("c"))

	var zero AllowList
	assert.False(t, zero.Contains("a"), "zero allow-list permits nothing")
	assert.Equal(t, 0, zero.Len())
}

func TestFieldGate(t *testing.T) {
	gate := FieldGate(DeptCarrier, TicketAllowList)
	assert.True(t, gate("pars"))
	assert.False(t, gate("pickup_address"))

	open := FieldGate(DeptOffice, TicketAllowList)
	assert.True(t, open("pickup_address"))
}

func TestMenuGating(t *testing.T) {
	for _, dept := range []Department{DeptNone, DeptOffice} {
		assert.True(t, CanManageQuotes(dept))
		assert.True(t, CanCreateTickets(dept))
		assert.True(t, CanProvisionAccounts(dept))
	}
	for _, dept := range []Department{DeptCarrier, Department(9)} {
		assert.False(t, CanManageQuotes(dept))
		assert.False(t, CanCreateTickets(dept))
		assert.False(t, CanProvisionAccounts(dept))
	}
}

func TestDepartmentString(t *testing.T) {
	assert.Equal(t, "Unrestricted", DeptNone.String())
	assert.Equal(t, "Office", DeptOffice.String())
	assert.Equal(t, "Carrier", DeptCarrier.String())
	assert.Equal(t, "Carrier", Department(12).String())
}
