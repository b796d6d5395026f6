// Package storeapi talks to the store REST API that owns persisted bills,
// orders, invoices and debts. Responses are normalized into ledger types at
// this boundary.
package storeapi

//go:generate mockgen -package=mocks -destination=mocks/client_mock.go . Client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"

	"github.com/sangkips/backoffice-api/pkg/apperror"
	"github.com/sangkips/backoffice-api/pkg/ledger"
	"github.com/sangkips/backoffice-api/pkg/pagination"
)

// DebtsResource is the endpoint key for customer debts.
const DebtsResource = "customer_debts"

const maxErrorBody = 64 << 10

// ServerTotals are the figures the store computed for a record.
type ServerTotals struct {
	Subtotal       decimal.Decimal      `json:"subtotal"`
	TaxAmount      decimal.Decimal      `json:"tax_amount"`
	DiscountAmount decimal.Decimal      `json:"discount_amount"`
	TotalAmount    decimal.Decimal      `json:"total_amount"`
	AmountPaid     decimal.Decimal      `json:"amount_paid"`
	AmountDue      decimal.Decimal      `json:"amount_due"`
	Status         ledger.PaymentStatus `json:"payment_status"`
}

// BillRecord is a bill as stored upstream.
type BillRecord struct {
	Bill     ledger.Bill      `json:"bill"`
	Payments []ledger.Payment `json:"payments"`
	Server   ServerTotals     `json:"server_totals"`
}

// BillSummary is one row of a bill listing.
type BillSummary struct {
	ID        string       `json:"id"`
	Number    string       `json:"number,omitempty"`
	Kind      ledger.Kind  `json:"kind"`
	Party     ledger.Party `json:"party"`
	IssueDate time.Time    `json:"issue_date"`
	ItemCount int          `json:"item_count"`
	Totals    ServerTotals `json:"totals"`
}

// DebtRecord is a customer debt as stored upstream.
type DebtRecord struct {
	Debt     ledger.Debt      `json:"debt"`
	Payments []ledger.Payment `json:"payments"`
	Server   ServerTotals     `json:"server_totals"`
}

// ListParams filter a listing.
type ListParams struct {
	Page    int
	PerPage int
	Search  string
	Status  ledger.PaymentStatus
	PartyID string
}

// Key identifies the page and filters, so that only a repeat of the same
// query supersedes an earlier one.
func (p ListParams) Key() string {
	return fmt.Sprintf("%d/%d/%s/%s/%q", p.Page, p.PerPage, p.Status, p.PartyID, p.Search)
}

// Client is the store API surface the service depends on.
type Client interface {
	ListBills(ctx context.Context, kind ledger.Kind, params ListParams) (*pagination.PaginatedResult[BillSummary], error)
	GetBill(ctx context.Context, kind ledger.Kind, id string) (*BillRecord, error)
	CreateBill(ctx context.Context, bill ledger.Bill) (*BillRecord, error)
	UpdateBill(ctx context.Context, bill ledger.Bill) (*BillRecord, error)
	RecordBillPayment(ctx context.Context, kind ledger.Kind, id string, payment ledger.Payment) (*BillRecord, error)
	ListDebts(ctx context.Context, params ListParams) (*pagination.PaginatedResult[DebtRecord], error)
	GetDebt(ctx context.Context, id string) (*DebtRecord, error)
	RecordDebtPayment(ctx context.Context, id string, payment ledger.Payment) (*DebtRecord, error)
}

// Config configures the HTTP client.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// Endpoints maps a bill kind (or DebtsResource) to its path below BaseURL.
	Endpoints map[string]string
}

type httpClient struct {
	baseURL   string
	timeout   time.Duration
	endpoints map[string]string
	http      *http.Client
	log       *slog.Logger
}

// NewClient returns a Client for the store API. Requests are attempted once;
// failures are reported to the caller and never retried here.
func NewClient(cfg Config, hc *http.Client) Client {
	if hc == nil {
		hc = &http.Client{}
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &httpClient{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		timeout:   cfg.Timeout,
		endpoints: cfg.Endpoints,
		http:      hc,
		log:       slog.With("module", "storeapi"),
	}
}

type tokenKey struct{}

// WithToken attaches the caller's bearer token so it is forwarded upstream.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFrom returns the bearer token attached with WithToken.
func TokenFrom(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

func (c *httpClient) path(resource string, segments ...string) (string, error) {
	base, ok := c.endpoints[resource]
	if !ok || base == "" {
		return "", apperror.NewBadRequestError(fmt.Sprintf("unknown resource %q", resource))
	}
	p := c.baseURL + "/" + strings.Trim(base, "/")
	for _, s := range segments {
		p += "/" + url.PathEscape(s)
	}
	return p, nil
}

// do sends one request and returns the parsed body of a 2xx response.
func (c *httpClient) do(ctx context.Context, method, endpoint string, query url.Values, payload interface{}) (gjson.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return gjson.Result{}, fmt.Errorf("storeapi: encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("storeapi: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := TokenFrom(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("store api unreachable", "method", method, "url", endpoint, "error", err)
		if errors.Is(err, context.Canceled) {
			return gjson.Result{}, err
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return gjson.Result{}, apperror.ErrUpstreamTimeout
		}
		return gjson.Result{}, apperror.ErrUpstreamFailed
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
	if err != nil {
		return gjson.Result{}, apperror.ErrUpstreamFailed
	}
	c.log.Debug("store api call", "method", method, "url", endpoint, "status", resp.StatusCode, "latency", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if len(raw) > maxErrorBody {
			raw = raw[:maxErrorBody]
		}
		msg := errorMessage(raw)
		c.log.Warn("store api rejected request", "method", method, "url", endpoint, "status", resp.StatusCode, "message", msg)
		return gjson.Result{}, apperror.NewUpstreamError(resp.StatusCode, msg)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return gjson.Result{}, nil
	}
	if !gjson.ValidBytes(raw) {
		return gjson.Result{}, apperror.NewUpstreamError(http.StatusBadGateway, "Store API returned an invalid response")
	}
	return gjson.ParseBytes(raw), nil
}

func listQuery(params ListParams) url.Values {
	q := url.Values{}
	if params.Page > 0 {
		q.Set("page", strconv.Itoa(params.Page))
	}
	if params.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(params.PerPage))
		q.Set("limit", strconv.Itoa(params.PerPage))
	}
	if params.Search != "" {
		q.Set("search", params.Search)
	}
	if params.Status != "" {
		q.Set("payment_status", string(params.Status))
	}
	if params.PartyID != "" {
		q.Set("party_id", params.PartyID)
	}
	return q
}

func pageOf(params ListParams, total int64) *pagination.Pagination {
	return pagination.NewPagination(params.Page, params.PerPage, total)
}

func (c *httpClient) ListBills(ctx context.Context, kind ledger.Kind, params ListParams) (*pagination.PaginatedResult[BillSummary], error) {
	endpoint, err := c.path(string(kind))
	if err != nil {
		return nil, err
	}
	res, err := c.do(ctx, http.MethodGet, endpoint, listQuery(params), nil)
	if err != nil {
		return nil, err
	}

	rows, total := decodeList(res)
	items := make([]BillSummary, 0, len(rows))
	for _, row := range rows {
		items = append(items, decodeBillSummary(row, kind))
	}
	return pagination.NewPaginatedResult(items, pageOf(params, total)), nil
}

func (c *httpClient) GetBill(ctx context.Context, kind ledger.Kind, id string) (*BillRecord, error) {
	endpoint, err := c.path(string(kind), id)
	if err != nil {
		return nil, err
	}
	res, err := c.do(ctx, http.MethodGet, endpoint, nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeBill(res, kind), nil
}

func (c *httpClient) CreateBill(ctx context.Context, bill ledger.Bill) (*BillRecord, error) {
	endpoint, err := c.path(string(bill.Kind))
	if err != nil {
		return nil, err
	}
	res, err := c.do(ctx, http.MethodPost, endpoint, nil, encodeBill(bill))
	if err != nil {
		return nil, err
	}
	return decodeBill(res, bill.Kind), nil
}

func (c *httpClient) UpdateBill(ctx context.Context, bill ledger.Bill) (*BillRecord, error) {
	if bill.ID == "" {
		return nil, apperror.NewBadRequestError("bill id is required")
	}
	endpoint, err := c.path(string(bill.Kind), bill.ID)
	if err != nil {
		return nil, err
	}
	res, err := c.do(ctx, http.MethodPut, endpoint, nil, encodeBill(bill))
	if err != nil {
		return nil, err
	}
	return decodeBill(res, bill.Kind), nil
}

func (c *httpClient) RecordBillPayment(ctx context.Context, kind ledger.Kind, id string, payment ledger.Payment) (*BillRecord, error) {
	endpoint, err := c.path(string(kind), id, "payments")
	if err != nil {
		return nil, err
	}
	res, err := c.do(ctx, http.MethodPost, endpoint, nil, encodePayment(payment))
	if err != nil {
		return nil, err
	}
	return decodeBill(res, kind), nil
}

func (c *httpClient) ListDebts(ctx context.Context, params ListParams) (*pagination.PaginatedResult[DebtRecord], error) {
	endpoint, err := c.path(DebtsResource)
	if err != nil {
		return nil, err
	}
	res, err := c.do(ctx, http.MethodGet, endpoint, listQuery(params), nil)
	if err != nil {
		return nil, err
	}

	rows, total := decodeList(res)
	items := make([]DebtRecord, 0, len(rows))
	for _, row := range rows {
		items = append(items, *decodeDebt(row))
	}
	return pagination.NewPaginatedResult(items, pageOf(params, total)), nil
}

func (c *httpClient) GetDebt(ctx context.Context, id string) (*DebtRecord, error) {
	endpoint, err := c.path(DebtsResource, id)
	if err != nil {
		return nil, err
	}
	res, err := c.do(ctx, http.MethodGet, endpoint, nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeDebt(res), nil
}

func (c *httpClient) RecordDebtPayment(ctx context.Context, id string, payment ledger.Payment) (*DebtRecord, error) {
	endpoint, err := c.path(DebtsResource, id, "payments")
	if err != nil {
		return nil, err
	}
	res, err := c.do(ctx, http.MethodPost, endpoint, nil, encodePayment(payment))
	if err != nil {
		return nil, err
	}
	return decodeDebt(res), nil
}
