// Package invoice lays out bills and debts for printing in English or
// Arabic. It formats figures produced by package ledger and never derives
// amounts of its own.
package invoice

import (
	"strconv"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/sangkips/backoffice-api/pkg/ledger"
)

const dateLayout = "02/01/2006"

// StoreInfo is the letterhead printed at the top of every document.
type StoreInfo struct {
	Name    string
	Address string
	Phone   string
	TaxID   string
}

// Options control a single render. Everything that affects the output is
// passed here so identical options give identical documents.
type Options struct {
	Language Language
	Store    StoreInfo
	// Currency is an ISO 4217 code; empty means ILS.
	Currency string
	// Now is the fallback issue date for bills that have none.
	Now time.Time
	// AutoPrint opens the browser print dialog when the HTML loads.
	AutoPrint bool
}

// Field is a labelled value.
type Field struct {
	Label string
	Value string
}

// Figure is one line of the totals block.
type Figure struct {
	Label  string
	Value  string
	Strong bool
}

// Columns holds the localized item table headers.
type Columns struct {
	Item      string
	Quantity  string
	UnitPrice string
	Discount  string
	Total     string
}

// Row is one printed item line.
type Row struct {
	Name      string
	Quantity  int
	UnitPrice string
	Discount  string
	Total     string
}

// PaymentTable lists the payments recorded so far.
type PaymentTable struct {
	Title  string
	Date   string
	Method string
	Amount string
	Notes  string
	Rows   []PaymentRow
}

// PaymentRow is one printed payment.
type PaymentRow struct {
	Date   string
	Method string
	Amount string
	Notes  string
}

// Document is the localized, fully formatted view of a bill or debt.
type Document struct {
	Lang Language
	Dir  string
	// StartAlign is the reading-start edge; EndAlign is where money columns sit.
	StartAlign   string
	EndAlign     string
	Title        string
	Store        StoreInfo
	StoreTaxID   Field
	Meta         []Field
	Columns      Columns
	ShowDiscount bool
	Rows         []Row
	Figures      []Figure
	Status       Field
	Payments     *PaymentTable
	Notes        Field
	Footer       string
	AutoPrint    bool
}

// Render lays out a bill with its payments. Totals come from the ledger
// aggregator.
func Render(bill ledger.Bill, payments []ledger.Payment, opts Options) *Document {
	return RenderStatement(bill, bill.Statement(payments), payments, opts)
}

// RenderStatement lays out a bill using an already derived statement.
func RenderStatement(bill ledger.Bill, st ledger.Statement, payments []ledger.Payment, opts Options) *Document {
	l := labelsFor(opts.Language)
	doc := newDocument(opts, l, l.titles[string(bill.Kind)])
	cur := currency(opts)

	issued := bill.IssueDate
	if issued.IsZero() {
		issued = opts.Now
	}
	if bill.Number != "" {
		doc.Meta = append(doc.Meta, Field{Label: l.billNumber, Value: bill.Number})
	}
	doc.Meta = append(doc.Meta, Field{Label: l.date, Value: formatDate(issued)})
	doc.Meta = append(doc.Meta, partyFields(l, bill.Kind.PartyRole(), bill.Party)...)

	for _, line := range st.Totals.Lines {
		if !line.DiscountPercent.IsZero() {
			doc.ShowDiscount = true
		}
		doc.Rows = append(doc.Rows, Row{
			Name:      DisplayName(line.LineItem, doc.Lang, l.product),
			Quantity:  line.Quantity,
			UnitPrice: formatMoney(line.UnitPrice, cur),
			Discount:  line.DiscountPercent.String() + "%",
			Total:     formatMoney(line.TotalPrice, cur),
		})
	}

	doc.Figures = append(doc.Figures, Figure{Label: l.subtotal, Value: formatMoney(st.Totals.Subtotal, cur)})
	if !st.Totals.TaxAmount.IsZero() {
		doc.Figures = append(doc.Figures, Figure{Label: l.tax, Value: formatMoney(st.Totals.TaxAmount, cur)})
	}
	if !st.Totals.DiscountAmount.IsZero() {
		doc.Figures = append(doc.Figures, Figure{Label: l.discount, Value: "-" + formatMoney(st.Totals.DiscountAmount, cur)})
	}
	doc.Figures = append(doc.Figures, balanceFigures(l, st.Balance, cur)...)

	doc.Status = Field{Label: l.status, Value: l.statuses[st.Balance.Status]}
	doc.Payments = paymentTable(l, payments, cur)
	if bill.Notes != "" {
		doc.Notes = Field{Label: l.notes, Value: bill.Notes}
	}
	return doc
}

// RenderDebt lays out a customer debt, which has no item table.
func RenderDebt(debt ledger.Debt, payments []ledger.Payment, opts Options) *Document {
	return RenderDebtBalance(debt, debt.Balance(payments), payments, opts)
}

// RenderDebtBalance lays out a debt using an already derived balance.
func RenderDebtBalance(debt ledger.Debt, bal ledger.Balance, payments []ledger.Payment, opts Options) *Document {
	l := labelsFor(opts.Language)
	doc := newDocument(opts, l, l.titles[titleDebt])
	cur := currency(opts)

	issued := debt.IssueDate
	if issued.IsZero() {
		issued = opts.Now
	}
	doc.Meta = append(doc.Meta, Field{Label: l.date, Value: formatDate(issued)})
	doc.Meta = append(doc.Meta, partyFields(l, "customer", debt.Party)...)
	doc.Figures = balanceFigures(l, bal, cur)
	doc.Status = Field{Label: l.status, Value: l.statuses[bal.Status]}
	doc.Payments = paymentTable(l, payments, cur)
	if debt.Notes != "" {
		doc.Notes = Field{Label: l.notes, Value: debt.Notes}
	}
	return doc
}

// DisplayName picks the item name for lang: the product name in that
// language, the product name in the other language, the free-text
// description, then placeholder.
func DisplayName(item ledger.LineItem, lang Language, placeholder string) string {
	names := []string{item.ProductNameEn, item.ProductNameAr}
	if lang == Arabic {
		names = []string{item.ProductNameAr, item.ProductNameEn}
	}
	for _, candidate := range append(names, item.Description) {
		if s := strings.TrimSpace(candidate); s != "" {
			return s
		}
	}
	return placeholder
}

func newDocument(opts Options, l labels, title string) *Document {
	lang := opts.Language
	if _, ok := translations[lang]; !ok {
		lang = English
	}
	doc := &Document{
		Lang:       lang,
		Dir:        lang.Direction(),
		StartAlign: "left",
		EndAlign:   "right",
		Title:      title,
		Store:      opts.Store,
		Columns: Columns{
			Item:      l.item,
			Quantity:  l.quantity,
			UnitPrice: l.unitPrice,
			Discount:  l.discountPct,
			Total:     l.lineTotal,
		},
		Footer:    l.thankYou,
		AutoPrint: opts.AutoPrint,
	}
	if lang.Direction() == "rtl" {
		doc.StartAlign, doc.EndAlign = "right", "left"
	}
	if opts.Store.TaxID != "" {
		doc.StoreTaxID = Field{Label: l.taxID, Value: opts.Store.TaxID}
	}
	return doc
}

func partyFields(l labels, role string, p ledger.Party) []Field {
	fields := []Field{{Label: l.party[role], Value: p.Name}}
	if p.Phone != "" {
		fields = append(fields, Field{Label: l.phone, Value: p.Phone})
	}
	return fields
}

func balanceFigures(l labels, b ledger.Balance, cur string) []Figure {
	return []Figure{
		{Label: l.total, Value: formatMoney(b.TotalAmount, cur), Strong: true},
		{Label: l.paid, Value: formatMoney(b.AmountPaid, cur)},
		{Label: l.due, Value: formatMoney(b.AmountDue, cur), Strong: true},
	}
}

func paymentTable(l labels, payments []ledger.Payment, cur string) *PaymentTable {
	if len(payments) == 0 {
		return nil
	}
	t := &PaymentTable{
		Title:  l.payments,
		Date:   l.date,
		Method: l.method,
		Amount: l.lineTotal,
		Notes:  l.notes,
	}
	for _, p := range payments {
		method, ok := l.methods[p.Method]
		if !ok {
			method = string(p.Method)
		}
		t.Rows = append(t.Rows, PaymentRow{
			Date:   formatDate(p.PaymentDate),
			Method: method,
			Amount: formatMoney(p.Amount, cur),
			Notes:  p.Notes,
		})
	}
	return t
}

func currency(opts Options) string {
	if opts.Currency == "" {
		return money.ILS
	}
	return strings.ToUpper(opts.Currency)
}

// formatMoney renders an amount with its currency symbol, e.g. ₪1,250.00.
func formatMoney(amount decimal.Decimal, code string) string {
	minor := ledger.Round2(amount).Shift(2).IntPart()
	return money.New(minor, code).Display()
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
