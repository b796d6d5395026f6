package storeapi

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"

	"github.com/sangkips/backoffice-api/pkg/ledger"
)

// The store API has answered in both camelCase and snake_case, with related
// records either flattened or nested. Every field is read through an ordered
// list of candidate paths so the rest of the service sees one shape.
var (
	idPaths          = []string{"id", "_id", "uuid"}
	numberPaths      = []string{"billNumber", "bill_number", "invoiceNumber", "invoice_number", "orderNumber", "order_number", "number", "reference"}
	datePaths        = []string{"billDate", "bill_date", "invoiceDate", "invoice_date", "orderDate", "order_date", "date", "createdAt", "created_at"}
	notesPaths       = []string{"notes", "note", "description"}
	itemsPaths       = []string{"items", "lineItems", "line_items", "products"}
	paymentsPaths    = []string{"payments", "paymentHistory", "payment_history"}
	taxPaths         = []string{"taxAmount", "tax_amount", "tax"}
	billDiscPaths    = []string{"discountAmount", "discount_amount", "discount"}
	subtotalPaths    = []string{"subtotal", "subTotal", "sub_total"}
	totalPaths       = []string{"totalAmount", "total_amount", "total"}
	debtTotalPaths   = []string{"totalDebt", "total_debt", "debtAmount", "debt_amount", "amount", "totalAmount", "total_amount"}
	paidPaths        = []string{"amountPaid", "amount_paid", "paidAmount", "paid_amount", "totalPaid", "total_paid", "paid"}
	duePaths         = []string{"amountDue", "amount_due", "remainingAmount", "remaining_amount", "remaining", "due"}
	statusPaths      = []string{"paymentStatus", "payment_status", "status"}
	itemDescPaths    = []string{"description", "name", "productName", "product_name"}
	itemNameEnPaths  = []string{"productNameEn", "product_name_en", "product.nameEn", "product.name_en", "product.name"}
	itemNameArPaths  = []string{"productNameAr", "product_name_ar", "product.nameAr", "product.name_ar"}
	itemProductPaths = []string{"productId", "product_id", "product.id"}
	itemQtyPaths     = []string{"quantity", "qty"}
	itemPricePaths   = []string{"unitPrice", "unit_price", "price"}
	itemDiscPaths    = []string{"discountPercent", "discount_percent", "discount"}
	payAmountPaths   = []string{"amount", "paymentAmount", "payment_amount"}
	payMethodPaths   = []string{"paymentMethod", "payment_method", "method"}
	payDatePaths     = []string{"paymentDate", "payment_date", "date", "createdAt", "created_at"}
	listItemsPaths   = []string{"data.items", "data.data", "data.rows", "data", "items", "rows", "results"}
	listTotalPaths   = []string{"meta.total", "pagination.total", "data.pagination.total", "data.meta.total", "data.total", "total", "count"}
)

// partyPaths returns the candidate paths for the counterparty of a bill kind.
func partyPaths(role, field string) []string {
	camel := role + strings.ToUpper(field[:1]) + field[1:]
	snake := role + "_" + field
	paths := []string{camel, snake, role + "." + field}
	if field == "id" {
		camel = role + "Id"
		paths = []string{camel, snake, role + ".id", role + "._id"}
	}
	if role != "customer" {
		paths = append(paths, partyPaths("customer", field)...)
	}
	if field == "name" {
		paths = append(paths, "partyName", "party_name", "party.name", "name")
	}
	if field == "phone" {
		paths = append(paths, "party.phone", "phone")
	}
	return paths
}

func pick(r gjson.Result, paths ...string) gjson.Result {
	for _, p := range paths {
		v := r.Get(p)
		if v.Exists() && v.Type != gjson.Null {
			return v
		}
	}
	return gjson.Result{}
}

func str(r gjson.Result, paths ...string) string {
	v := pick(r, paths...)
	if !v.Exists() {
		return ""
	}
	return strings.TrimSpace(v.String())
}

// amount reads a number or numeric string exactly, without a float detour.
func amount(r gjson.Result, paths ...string) (decimal.Decimal, bool) {
	v := pick(r, paths...)
	var raw string
	switch v.Type {
	case gjson.Number:
		raw = v.Raw
	case gjson.String:
		raw = strings.TrimSpace(v.Str)
	default:
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

func amountOrZero(r gjson.Result, paths ...string) decimal.Decimal {
	d, _ := amount(r, paths...)
	return d
}

var timeLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02", "02/01/2006"}

func date(r gjson.Result, paths ...string) time.Time {
	s := str(r, paths...)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// unwrap strips the {"data": {...}} envelope used by some endpoints.
func unwrap(r gjson.Result) gjson.Result {
	if d := r.Get("data"); d.IsObject() {
		if inner := d.Get("data"); inner.IsObject() {
			return inner
		}
		return d
	}
	for _, key := range []string{"bill", "order", "invoice", "debt"} {
		if v := r.Get(key); v.IsObject() {
			return v
		}
	}
	return r
}

func decodeParty(r gjson.Result, role string) ledger.Party {
	return ledger.Party{
		ID:    str(r, partyPaths(role, "id")...),
		Name:  str(r, partyPaths(role, "name")...),
		Phone: str(r, partyPaths(role, "phone")...),
	}
}

func decodeItem(r gjson.Result) ledger.LineItem {
	qty := 1
	if v := pick(r, itemQtyPaths...); v.Exists() {
		qty = ledger.CoerceQuantity(v.String())
	}
	item := ledger.LineItem{
		ProductID:       str(r, itemProductPaths...),
		Description:     str(r, itemDescPaths...),
		ProductNameEn:   str(r, itemNameEnPaths...),
		ProductNameAr:   str(r, itemNameArPaths...),
		Quantity:        qty,
		UnitPrice:       amountOrZero(r, itemPricePaths...),
		DiscountPercent: amountOrZero(r, itemDiscPaths...),
	}
	return item
}

func decodePayments(r gjson.Result) []ledger.Payment {
	var out []ledger.Payment
	pick(r, paymentsPaths...).ForEach(func(_, p gjson.Result) bool {
		method, ok := ledger.ParsePaymentMethod(str(p, payMethodPaths...))
		if !ok {
			method = ledger.MethodOther
		}
		out = append(out, ledger.Payment{
			ID:          str(p, idPaths...),
			Amount:      amountOrZero(p, payAmountPaths...),
			Method:      method,
			PaymentDate: date(p, payDatePaths...),
			Notes:       str(p, "notes", "note"),
		})
		return true
	})
	return out
}

// decodeServerTotals reads the figures the store computed. Missing figures
// are derived from what is present so the struct is always complete.
func decodeServerTotals(r gjson.Result, total decimal.Decimal, payments []ledger.Payment) ServerTotals {
	st := ServerTotals{
		Subtotal:       amountOrZero(r, subtotalPaths...),
		TaxAmount:      amountOrZero(r, taxPaths...),
		DiscountAmount: amountOrZero(r, billDiscPaths...),
		TotalAmount:    total,
	}

	paid, ok := amount(r, paidPaths...)
	if !ok {
		paid = ledger.SumPayments(payments)
	}
	st.AmountPaid = paid

	due, ok := amount(r, duePaths...)
	if !ok {
		due = ledger.AmountDue(total, paid)
	}
	st.AmountDue = due

	status, ok := ledger.ParsePaymentStatus(str(r, statusPaths...))
	if !ok {
		status = ledger.DeriveStatus(total, paid)
	}
	st.Status = status
	return st
}

func decodeBill(r gjson.Result, kind ledger.Kind) *BillRecord {
	r = unwrap(r)
	bill := ledger.Bill{
		ID:             str(r, idPaths...),
		Number:         str(r, numberPaths...),
		Kind:           kind,
		Party:          decodeParty(r, kind.PartyRole()),
		IssueDate:      date(r, datePaths...),
		Notes:          str(r, "notes", "note"),
		TaxAmount:      amountOrZero(r, taxPaths...),
		DiscountAmount: amountOrZero(r, billDiscPaths...),
	}

	pick(r, itemsPaths...).ForEach(func(_, v gjson.Result) bool {
		bill.Items = append(bill.Items, decodeItem(v))
		return true
	})

	payments := decodePayments(r)
	total, ok := amount(r, totalPaths...)
	if !ok {
		total = bill.Totals().TotalAmount
	}
	return &BillRecord{
		Bill:     bill,
		Payments: payments,
		Server:   decodeServerTotals(r, total, payments),
	}
}

func decodeBillSummary(r gjson.Result, kind ledger.Kind) BillSummary {
	rec := decodeBill(r, kind)
	return BillSummary{
		ID:        rec.Bill.ID,
		Number:    rec.Bill.Number,
		Kind:      kind,
		Party:     rec.Bill.Party,
		IssueDate: rec.Bill.IssueDate,
		ItemCount: len(rec.Bill.Items),
		Totals:    rec.Server,
	}
}

func decodeDebt(r gjson.Result) *DebtRecord {
	r = unwrap(r)
	payments := decodePayments(r)
	total := amountOrZero(r, debtTotalPaths...)
	return &DebtRecord{
		Debt: ledger.Debt{
			ID:        str(r, idPaths...),
			Party:     decodeParty(r, "customer"),
			TotalDebt: total,
			IssueDate: date(r, datePaths...),
			Notes:     str(r, notesPaths...),
		},
		Payments: payments,
		Server:   decodeServerTotals(r, total, payments),
	}
}

// decodeList returns the array of records and the total count, accepting a
// bare array or any of the known list envelopes.
func decodeList(r gjson.Result) ([]gjson.Result, int64) {
	items := r
	if !r.IsArray() {
		items = pick(r, listItemsPaths...)
	}
	if !items.IsArray() {
		return nil, 0
	}
	list := items.Array()

	total := int64(len(list))
	if v := pick(r, listTotalPaths...); v.Type == gjson.Number {
		total = v.Int()
	}
	return list, total
}

// errorMessage extracts a human-readable message from an error body.
func errorMessage(body []byte) string {
	if !gjson.ValidBytes(body) {
		return ""
	}
	r := gjson.ParseBytes(body)
	return str(r, "message", "error.message", "error", "errors.0.message", "errors.0", "detail")
}
