package request

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/sangkips/backoffice-api/internal/application/service"
	"github.com/sangkips/backoffice-api/pkg/apperror"
	"github.com/sangkips/backoffice-api/pkg/ledger"
	"github.com/sangkips/backoffice-api/pkg/pagination"
	"github.com/sangkips/backoffice-api/pkg/storeapi"
)

var dateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05", "02/01/2006"}

// FormValue is a numeric form field. Forms send numbers as JSON numbers or
// as strings, possibly empty; the raw text is kept for coercion.
type FormValue string

func (v *FormValue) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*v = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = FormValue(s)
		return nil
	}
	*v = FormValue(b)
	return nil
}

// LineItemRequest is one row of the bill form.
type LineItemRequest struct {
	ProductID       string    `json:"product_id"`
	Description     string    `json:"description"`
	ProductNameEn   string    `json:"product_name_en"`
	ProductNameAr   string    `json:"product_name_ar"`
	Quantity        FormValue `json:"quantity"`
	UnitPrice       FormValue `json:"unit_price"`
	DiscountPercent FormValue `json:"discount_percent"`
}

// BillRequest represents a bill create, update or preview request
type BillRequest struct {
	PartyID        string            `json:"party_id"`
	PartyName      string            `json:"party_name"`
	PartyPhone     string            `json:"party_phone"`
	BillNumber     string            `json:"bill_number"`
	BillDate       string            `json:"bill_date"`
	Notes          string            `json:"notes"`
	Items          []LineItemRequest `json:"items"`
	TaxAmount      FormValue         `json:"tax_amount"`
	DiscountAmount FormValue         `json:"discount_amount"`
}

// ToBill coerces the form into a bill of the given kind. Only an
// unreadable date is an error here; everything else is left to validation.
func (r *BillRequest) ToBill(kind ledger.Kind) (ledger.Bill, error) {
	issued, err := parseDate("bill_date", r.BillDate)
	if err != nil {
		return ledger.Bill{}, err
	}

	bill := ledger.Bill{
		Number:         strings.TrimSpace(r.BillNumber),
		Kind:           kind,
		Party:          ledger.Party{ID: r.PartyID, Name: strings.TrimSpace(r.PartyName), Phone: strings.TrimSpace(r.PartyPhone)},
		IssueDate:      issued,
		Notes:          r.Notes,
		Items:          make([]ledger.LineItem, 0, len(r.Items)),
		TaxAmount:      ledger.CoerceAmount(string(r.TaxAmount)),
		DiscountAmount: ledger.CoerceAmount(string(r.DiscountAmount)),
	}
	for _, item := range r.Items {
		bill.Items = append(bill.Items, ledger.LineItem{
			ProductID:       item.ProductID,
			Description:     strings.TrimSpace(item.Description),
			ProductNameEn:   item.ProductNameEn,
			ProductNameAr:   item.ProductNameAr,
			Quantity:        ledger.CoerceQuantity(string(item.Quantity)),
			UnitPrice:       ledger.CoerceUnitPrice(string(item.UnitPrice)),
			DiscountPercent: ledger.CoerceDiscountPercent(string(item.DiscountPercent)),
		})
	}
	return bill, nil
}

// PaymentRequest represents a payment against a bill or debt
type PaymentRequest struct {
	Amount        FormValue `json:"amount"`
	PaymentMethod string    `json:"payment_method"`
	PaymentDate   string    `json:"payment_date"`
	Notes         string    `json:"notes"`
}

// ToInput coerces the form into a payment input.
func (r *PaymentRequest) ToInput() (service.PaymentInput, error) {
	paid, err := parseDate("payment_date", r.PaymentDate)
	if err != nil {
		return service.PaymentInput{}, err
	}
	return service.PaymentInput{
		Amount:      ledger.CoerceAmount(string(r.Amount)),
		Method:      r.PaymentMethod,
		PaymentDate: paid,
		Notes:       r.Notes,
	}, nil
}

// ListFilterRequest represents bill and debt listing parameters
type ListFilterRequest struct {
	Search        string `form:"search"`
	PaymentStatus string `form:"payment_status"`
	PartyID       string `form:"party_id"`
	Page          int    `form:"page"`
	PerPage       int    `form:"per_page"`
}

// ToParams validates the filter and applies pagination defaults.
func (r *ListFilterRequest) ToParams() (storeapi.ListParams, error) {
	p := pagination.PaginationParams{Page: r.Page, PerPage: r.PerPage}
	p.Validate()

	params := storeapi.ListParams{
		Page:    p.Page,
		PerPage: p.PerPage,
		Search:  strings.TrimSpace(r.Search),
		PartyID: r.PartyID,
	}
	if r.PaymentStatus != "" {
		status := ledger.PaymentStatus(strings.ToLower(strings.TrimSpace(r.PaymentStatus)))
		if !status.IsValid() {
			return params, apperror.NewValidationError([]apperror.FieldError{
				{Field: "payment_status", Message: "Payment status must be one of unpaid, partial, paid"},
			})
		}
		params.Status = status
	}
	return params, nil
}

// DraftFilterRequest represents draft listing parameters
type DraftFilterRequest struct {
	Kind    string `form:"kind"`
	Search  string `form:"search"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}

func parseDate(field, raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, apperror.NewValidationError([]apperror.FieldError{
		{Field: field, Message: "Date must be formatted as YYYY-MM-DD"},
	})
}
