package api

import (
	"strconv"
	"strings"

	"github.com/deepclear/manifest/internal/editor"
)

// LoginRequest is the payload for /admin/login.
type LoginRequest struct {
	AdminName     string `json:"admin_name"`
	AdminPassword string `json:"admin_password"`
}

// LoginResult is the claims payload returned on successful login.
type LoginResult struct {
	AdminName  string `json:"adminName"`
	AdminID    int64  `json:"adminId"`
	Department int    `json:"department"`
	Token      string `json:"token"`
}

// CreateUserRequest provisions an admin or client account. Department is
// optional; nil means unrestricted.
type CreateUserRequest struct {
	Name       string `json:"name"`
	Password   string `json:"password"`
	Department *int   `json:"department"`
}

// CreatedAdmin echoes the provisioned admin account.
type CreatedAdmin struct {
	AdminID   int64  `json:"adminId"`
	AdminName string `json:"adminName"`
}

// CreatedClient echoes the provisioned client account.
type CreatedClient struct {
	ClientID   int64  `json:"clientId"`
	ClientName string `json:"clientName"`
}

// ClientAccount is one entry of the /admin/getUsers listing, used to pick a
// client when creating a ticket.
type ClientAccount struct {
	ClientID   int64  `json:"client_id"`
	ClientName string `json:"client_name"`
}

// Ticket is a truck ticket record. List responses carry the ticket id as
// truck_ticket_id; the update endpoint wants the same value renamed to
// truck_id, which UploadTicket handles.
type Ticket struct {
	MainID              int64  `json:"main_id,omitempty"`
	TruckTicketID       int64  `json:"truck_ticket_id,omitempty"`
	TruckDetailsID      int64  `json:"truck_details_id,omitempty"`
	ReferenceNumber     string `json:"reference_number,omitempty"`
	ClientID            int64  `json:"client_id,omitempty"`
	ClientName          string `json:"client_name,omitempty"`
	ContainerNumber     string `json:"container_number"`
	PickupAddress       string `json:"pickup_address"`
	DeliveryAddress     string `json:"delivery_address"`
	CarrierName         string `json:"carrier_name"`
	EINNumber           string `json:"ein_number"`
	SCACNumber          string `json:"scac_number"`
	PickupTime          string `json:"pickup_time"`
	LoadNumber          string `json:"load_number"`
	TruckNumber         string `json:"truck_number"`
	TrailerNumber       string `json:"trailer_number"`
	POE                 string `json:"poe"`
	CrossBorderLocation string `json:"cross_border_location"`
	QuotePrice          string `json:"quote_price"`
	CostPrice           string `json:"cost_price"`
	Supportor           string `json:"supportor"`
	SupportorCode       string `json:"supportor_code"`
	GPSLink             string `json:"gps_link"`
	PARS                string `json:"pars"`
	TransactionNumber   string `json:"transaction_number"`
	MainCreateDate      string `json:"main_create_date,omitempty"`
}

// TicketEditFields lists the ticket fields exposed by the detail editor, in
// render order. Identity fields (main_id, reference_number) are read-only and
// not part of the group.
var TicketEditFields = []string{
	"container_number",
	"pickup_address",
	"delivery_address",
	"carrier_name",
	"ein_number",
	"scac_number",
	"pickup_time",
	"load_number",
	"truck_number",
	"trailer_number",
	"poe",
	"cross_border_location",
	"quote_price",
	"cost_price",
	"supportor",
	"supportor_code",
	"gps_link",
	"pars",
	"transaction_number",
}

// EditValues flattens the ticket's editable fields for a field group.
func (t Ticket) EditValues() editor.Values {
	return editor.Values{
		"container_number":      t.ContainerNumber,
		"pickup_address":        t.PickupAddress,
		"delivery_address":      t.DeliveryAddress,
		"carrier_name":          t.CarrierName,
		"ein_number":            t.EINNumber,
		"scac_number":           t.SCACNumber,
		"pickup_time":           t.PickupTime,
		"load_number":           t.LoadNumber,
		"truck_number":          t.TruckNumber,
		"trailer_number":        t.TrailerNumber,
		"poe":                   t.POE,
		"cross_border_location": t.CrossBorderLocation,
		"quote_price":           t.QuotePrice,
		"cost_price":            t.CostPrice,
		"supportor":             t.Supportor,
		"supportor_code":        t.SupportorCode,
		"gps_link":              t.GPSLink,
		"pars":                  t.PARS,
		"transaction_number":    t.TransactionNumber,
	}
}

// ApplyEdits returns a copy of the ticket with draft values written over the
// editable fields. Identity fields are carried from the receiver untouched.
func (t Ticket) ApplyEdits(v editor.Values) Ticket {
	out := t
	out.ContainerNumber = v["container_number"]
	out.PickupAddress = v["pickup_address"]
	out.DeliveryAddress = v["delivery_address"]
	out.CarrierName = v["carrier_name"]
	out.EINNumber = v["ein_number"]
	out.SCACNumber = v["scac_number"]
	out.PickupTime = v["pickup_time"]
	out.LoadNumber = v["load_number"]
	out.TruckNumber = v["truck_number"]
	out.TrailerNumber = v["trailer_number"]
	out.POE = v["poe"]
	out.CrossBorderLocation = v["cross_border_location"]
	out.QuotePrice = v["quote_price"]
	out.CostPrice = v["cost_price"]
	out.Supportor = v["supportor"]
	out.SupportorCode = v["supportor_code"]
	out.GPSLink = v["gps_link"]
	out.PARS = v["pars"]
	out.TransactionNumber = v["transaction_number"]
	return out
}

// TicketQuery filters /admin/fetchTruckTickets. Zero page/limit use the
// server defaults. Empty filter strings are omitted from the request.
type TicketQuery struct {
	ReferenceNumber   string `json:"reference_number,omitempty"`
	MainID            string `json:"main_id,omitempty"`
	ContainerNumber   string `json:"container_number,omitempty"`
	TransactionNumber string `json:"transaction_number,omitempty"`
	Status            string `json:"status,omitempty"`
	Page              int    `json:"page,omitempty"`
	Limit             int    `json:"limit,omitempty"`
}

// TicketPage is one page of ticket results.
type TicketPage struct {
	Data  []Ticket `json:"data"`
	Total int      `json:"total"`
}

// CreatedTicket carries the reference number assigned to a new ticket.
type CreatedTicket struct {
	ReferenceNumber string `json:"reference_number"`
}

// Quote is the quote half of a quote detail. The arrival address wire name
// preserves the backend's spelling.
type Quote struct {
	QuoteID          int64    `json:"quote_id"`
	ClientID         int64    `json:"client_id"`
	ClientName       string   `json:"client_name"`
	DepartureAddress string   `json:"departure_address"`
	ArrivalAddress   string   `json:"arrvial_address"`
	ClientNote       string   `json:"client_note"`
	AdminNote        string   `json:"admin_note"`
	Price            *float64 `json:"price"`
	Status           int      `json:"status"`
}

// StatusLabel returns the display label for the quote status.
func (q Quote) StatusLabel() string {
	switch q.Status {
	case 0:
		return "Pending"
	case 1:
		return "Got Quote Price"
	default:
		return "Unknown"
	}
}

// PriceString renders the price for editing; a null price is the empty
// string.
func (q Quote) PriceString() string {
	if q.Price == nil {
		return ""
	}
	return strconv.FormatFloat(*q.Price, 'f', -1, 64)
}

// CargoItem is one cargo line of a quote.
type CargoItem struct {
	CargoID   int64   `json:"cargo_id"`
	CargoType int     `json:"cargo_type"`
	Number    *int    `json:"number"`
	Length    float64 `json:"length"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Weight    float64 `json:"weight"`
	Note      string  `json:"note"`
}

// TypeLabel returns the display label for the cargo container type.
func (c CargoItem) TypeLabel() string {
	switch c.CargoType {
	case 1:
		return "Pallet"
	case 2:
		return "Box"
	case 3:
		return "Crate"
	default:
		return "Unknown"
	}
}

// QuoteDetail is one entry of /admin/getQuoteDetails.
type QuoteDetail struct {
	Quote       Quote       `json:"quote"`
	CargoItems  []CargoItem `json:"cargoItems"`
	TotalWeight float64     `json:"totalWeight"`
	TotalVolume float64     `json:"totalVolume"`
}

// QuoteQuery filters /admin/getQuoteDetails.
type QuoteQuery struct {
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	ClientName string `json:"clientName,omitempty"`
	ClientID   string `json:"clientId,omitempty"`
}

// QuotePage is one page of quote results.
type QuotePage struct {
	Data        []QuoteDetail `json:"data"`
	TotalQuotes int           `json:"totalQuotes"`
}

// QuoteUpdate is a partial update of one quote: price and/or admin note.
// Nil fields are omitted so the server only touches what was edited.
type QuoteUpdate struct {
	QuoteID   int64    `json:"quote_id"`
	Price     *float64 `json:"price,omitempty"`
	AdminNote *string  `json:"admin_note,omitempty"`
}

// ParsePrice converts an edited price string into the wire form. An empty
// string is a validation error; the original screen refused to save one.
func ParsePrice(s string) (float64, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, &ValidationError{Field: "price", Reason: "enter a valid number"}
	}
	price, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, &ValidationError{Field: "price", Reason: "enter a valid number"}
	}
	return price, nil
}

// CargoItemRequest is one cargo line of a quote creation.
type CargoItemRequest struct {
	CargoType int     `json:"cargo_type"`
	Number    *int    `json:"number"`
	Length    float64 `json:"length"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Weight    float64 `json:"weight"`
	CargoNote string  `json:"cargoNote"`
}

// QuoteRequest creates a quote on behalf of a client. Note the creation
// endpoint spells arrival_address correctly even though listings do not.
type QuoteRequest struct {
	ClientID         int64              `json:"client_id"`
	DepartureAddress string             `json:"departure_address"`
	ArrivalAddress   string             `json:"arrival_address"`
	QuoteNote        string             `json:"quote_note"`
	CargoItems       []CargoItemRequest `json:"cargo_items"`
}
