package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicket_EditValuesApplyEditsRoundTrip(t *testing.T) {
	ticket := Ticket{
		MainID:          5,
		TruckTicketID:   9,
		TruckDetailsID:  3,
		ReferenceNumber: "REF100",
		CarrierName:     "ACME",
		PickupAddress:   "100 King St W",
		PARS:            "A,B",
	}

	values := ticket.EditValues()
	assert.Equal(t, "ACME", values["carrier_name"])
	assert.Equal(t, "A,B", values["pars"])
	assert.Len(t, values, len(TicketEditFields))

	values["carrier_name"] = "Northern"
	updated := ticket.ApplyEdits(values)
	assert.Equal(t, "Northern", updated.CarrierName)
	assert.Equal(t, int64(5), updated.MainID, "identity fields survive edits")
	assert.Equal(t, "REF100", updated.ReferenceNumber)
	assert.Equal(t, "ACME", ticket.CarrierName, "receiver is not mutated")
}

func TestTicketEditFieldsCoverEditValues(t *testing.T) {
	values := Ticket{}.EditValues()
	for _, f := range TicketEditFields {
		_, ok := values[f]
		assert.True(t, ok, "field %s missing from EditValues", f)
	}
}

func TestQuote_Labels(t *testing.T) {
	assert.Equal(t, "Pending", Quote{Status: 0}.StatusLabel())
	assert.Equal(t, "Got Quote Price", Quote{Status: 1}.StatusLabel())
	assert.Equal(t, "Unknown", Quote{Status: 9}.StatusLabel())

	assert.Equal(t, "Pallet", CargoItem{CargoType: 1}.TypeLabel())
	assert.Equal(t, "Box", CargoItem{CargoType: 2}.TypeLabel())
	assert.Equal(t, "Crate", CargoItem{CargoType: 3}.TypeLabel())
	assert.Equal(t, "Unknown", CargoItem{}.TypeLabel())
}

func TestQuote_PriceString(t *testing.T) {
	assert.Equal(t, "", Quote{}.PriceString())
	price := 450.5
	assert.Equal(t, "450.5", Quote{Price: &price}.PriceString())
}

func TestParsePrice(t *testing.T) {
	got, err := ParsePrice(" 450.50 ")
	require.NoError(t, err)
	assert.Equal(t, 450.50, got)

	var vErr *ValidationError
	_, err = ParsePrice("")
	require.ErrorAs(t, err, &vErr)
	_, err = ParsePrice("abc")
	require.ErrorAs(t, err, &vErr)
}
