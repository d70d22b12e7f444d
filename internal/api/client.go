package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service is the surface of the DeepClear backend the console uses. It is
// implemented by *Client and can be substituted in tests.
type Service interface {
	Login(ctx context.Context, name, password string) (LoginResult, error)
	CreateAdmin(ctx context.Context, req CreateUserRequest) (CreatedAdmin, error)
	CreateClient(ctx context.Context, req CreateUserRequest) (CreatedClient, error)
	ListClients(ctx context.Context) ([]ClientAccount, error)
	CreateQuote(ctx context.Context, req QuoteRequest) error
	QuoteDetails(ctx context.Context, query QuoteQuery) (QuotePage, error)
	UpdateQuote(ctx context.Context, update QuoteUpdate) error
	CreateTicket(ctx context.Context, ticket Ticket) (CreatedTicket, error)
	FetchTickets(ctx context.Context, query TicketQuery) (TicketPage, error)
	UploadTicket(ctx context.Context, ticket Ticket) error
}

// Ensure Client implements Service at compile time.
var _ Service = (*Client)(nil)

// Client talks to the DeepClear REST API. Every endpoint is a JSON POST.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	token     string
}

const (
	defaultBaseURL   = "https://deepclear.ca/api"
	defaultUserAgent = "manifest/0.1"
	defaultTimeout   = 10 * time.Second
)

// NewClient builds a Client for the given API base URL; empty uses the
// production default. A non-positive timeout uses the default.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: timeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// SetToken attaches the session token to subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Login authenticates an admin. It is the only call that does not carry a
// session token.
func (c *Client) Login(ctx context.Context, name, password string) (LoginResult, error) {
	if strings.TrimSpace(name) == "" {
		return LoginResult{}, &ValidationError{Field: "admin_name", Reason: "admin name is required"}
	}
	if password == "" {
		return LoginResult{}, &ValidationError{Field: "admin_password", Reason: "password is required"}
	}
	var result LoginResult
	err := c.post(ctx, "/admin/login", LoginRequest{AdminName: name, AdminPassword: password}, &result)
	if err != nil {
		return LoginResult{}, err
	}
	return result, nil
}

// CreateAdmin provisions an admin account.
func (c *Client) CreateAdmin(ctx context.Context, req CreateUserRequest) (CreatedAdmin, error) {
	if err := validateCreateUser(req); err != nil {
		return CreatedAdmin{}, err
	}
	body := map[string]any{
		"admin_name":     req.Name,
		"admin_password": req.Password,
		"department":     req.Department,
	}
	var created CreatedAdmin
	if err := c.post(ctx, "/admin/create", body, &created); err != nil {
		return CreatedAdmin{}, err
	}
	return created, nil
}

// CreateClient provisions a client account.
func (c *Client) CreateClient(ctx context.Context, req CreateUserRequest) (CreatedClient, error) {
	if err := validateCreateUser(req); err != nil {
		return CreatedClient{}, err
	}
	body := map[string]any{
		"client_name":     req.Name,
		"client_password": req.Password,
		"department":      req.Department,
	}
	var created CreatedClient
	if err := c.post(ctx, "/client/create", body, &created); err != nil {
		return CreatedClient{}, err
	}
	return created, nil
}

// ListClients returns the client accounts for the ticket-creation dropdown.
func (c *Client) ListClients(ctx context.Context) ([]ClientAccount, error) {
	var payload struct {
		Data []ClientAccount `json:"data"`
	}
	if err := c.post(ctx, "/admin/getUsers", struct{}{}, &payload); err != nil {
		return nil, err
	}
	return payload.Data, nil
}

// CreateQuote files a quote for a client.
func (c *Client) CreateQuote(ctx context.Context, req QuoteRequest) error {
	if req.ClientID == 0 {
		return &ValidationError{Field: "client_id", Reason: "client is required"}
	}
	if len(req.CargoItems) == 0 {
		return &ValidationError{Field: "cargo_items", Reason: "add at least one cargo item"}
	}
	return c.post(ctx, "/client/createQuote", req, nil)
}

// QuoteDetails returns one page of quotes, optionally filtered by client.
func (c *Client) QuoteDetails(ctx context.Context, query QuoteQuery) (QuotePage, error) {
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}
	var page QuotePage
	if err := c.post(ctx, "/admin/getQuoteDetails", query, &page); err != nil {
		return QuotePage{}, err
	}
	return page, nil
}

// UpdateQuote applies a partial update (price and/or admin note) to one
// quote.
func (c *Client) UpdateQuote(ctx context.Context, update QuoteUpdate) error {
	if update.QuoteID == 0 {
		return &ValidationError{Field: "quote_id", Reason: "quote id is required"}
	}
	if update.Price == nil && update.AdminNote == nil {
		return &ValidationError{Reason: "nothing to update"}
	}
	return c.post(ctx, "/admin/updateClientQuote", update, nil)
}

// CreateTicket files a new truck ticket and returns its reference number.
func (c *Client) CreateTicket(ctx context.Context, ticket Ticket) (CreatedTicket, error) {
	if ticket.ClientID == 0 {
		return CreatedTicket{}, &ValidationError{Field: "client_id", Reason: "client is required"}
	}
	if strings.TrimSpace(ticket.PickupAddress) == "" {
		return CreatedTicket{}, &ValidationError{Field: "pickup_address", Reason: "pickup address is required"}
	}
	if strings.TrimSpace(ticket.DeliveryAddress) == "" {
		return CreatedTicket{}, &ValidationError{Field: "delivery_address", Reason: "delivery address is required"}
	}
	var created CreatedTicket
	if err := c.post(ctx, "/admin/createTruckTicket", ticket, &created); err != nil {
		return CreatedTicket{}, err
	}
	return created, nil
}

// FetchTickets returns one page of tickets matching the query.
func (c *Client) FetchTickets(ctx context.Context, query TicketQuery) (TicketPage, error) {
	var page TicketPage
	if err := c.post(ctx, "/admin/fetchTruckTickets", query, &page); err != nil {
		return TicketPage{}, err
	}
	return page, nil
}

// UploadTicket updates an existing ticket. The record's list-form id
// (truck_ticket_id) is sent as truck_id, which is the name the update
// endpoint expects. main_id, truck_id and truck_details_id must all be
// present or the server rejects the update; checking here saves the round
// trip.
func (c *Client) UploadTicket(ctx context.Context, ticket Ticket) error {
	if ticket.MainID == 0 || ticket.TruckTicketID == 0 || ticket.TruckDetailsID == 0 {
		return &ValidationError{Reason: "missing required fields: main_id, truck_id, or truck_details_id"}
	}

	payload := map[string]any{
		"main_id":               ticket.MainID,
		"truck_id":              ticket.TruckTicketID,
		"truck_details_id":      ticket.TruckDetailsID,
		"reference_number":      ticket.ReferenceNumber,
		"client_id":             ticket.ClientID,
		"client_name":           ticket.ClientName,
		"container_number":      ticket.ContainerNumber,
		"pickup_address":        ticket.PickupAddress,
		"delivery_address":      ticket.DeliveryAddress,
		"carrier_name":          ticket.CarrierName,
		"ein_number":            ticket.EINNumber,
		"scac_number":           ticket.SCACNumber,
		"pickup_time":           ticket.PickupTime,
		"load_number":           ticket.LoadNumber,
		"truck_number":          ticket.TruckNumber,
		"trailer_number":        ticket.TrailerNumber,
		"poe":                   ticket.POE,
		"cross_border_location": ticket.CrossBorderLocation,
		"quote_price":           ticket.QuotePrice,
		"cost_price":            ticket.CostPrice,
		"supportor":             ticket.Supportor,
		"supportor_code":        ticket.SupportorCode,
		"gps_link":              ticket.GPSLink,
		"pars":                  ticket.PARS,
		"transaction_number":    ticket.TransactionNumber,
	}
	return c.post(ctx, "/admin/uploadTruckTickets", payload, nil)
}

func validateCreateUser(req CreateUserRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return &ValidationError{Field: "name", Reason: "name is required"}
	}
	if req.Password == "" {
		return &ValidationError{Field: "password", Reason: "password is required"}
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, body, dest any) error {
	encoded, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	reqURL := *c.baseURL
	reqURL.Path = c.baseURL.Path + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL.String(), bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return &AuthError{Status: resp.StatusCode, Message: decodeErrorBody(resp.Body)}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &ServerError{Status: resp.StatusCode, Message: decodeErrorBody(resp.Body)}
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return &MalformedResponseError{Err: err}
	}
	return nil
}

// decodeErrorBody extracts the {error} message from a failure response; an
// unreadable body yields "" and the status-derived message is used instead.
func decodeErrorBody(body io.Reader) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return ""
	}
	return strings.TrimSpace(payload.Error)
}

func parseBaseURL(base string) (*url.URL, error) {
	trimmed := strings.TrimSpace(base)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_base %q: %w", base, err)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
