package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sangkips/backoffice-api/pkg/invoice"
	"github.com/sangkips/backoffice-api/pkg/ledger"
	"github.com/sangkips/backoffice-api/pkg/printer"
)

// PrintConfig holds the letterhead and receipt layout settings.
type PrintConfig struct {
	Store           invoice.StoreInfo
	Currency        string
	DefaultLanguage invoice.Language
	CharWidth       int
	CodePage        int
}

// PrintService renders bills and debts as printable documents and sends
// them to the thermal printer.
type PrintService struct {
	printer printer.Printer
	billing *BillingService
	debts   *DebtService
	cfg     PrintConfig
	now     func() time.Time
	log     *slog.Logger
}

// NewPrintService creates a new print service.
func NewPrintService(p printer.Printer, billing *BillingService, debts *DebtService, cfg PrintConfig) *PrintService {
	if cfg.DefaultLanguage == "" {
		cfg.DefaultLanguage = invoice.English
	}
	return &PrintService{
		printer: p,
		billing: billing,
		debts:   debts,
		cfg:     cfg,
		now:     time.Now,
		log:     slog.With("module", "printer"),
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *PrintService) GetStatus(ctx context.Context) *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printer.Kind() != "none",
		Connected:  s.printer.IsConnected(ctx),
		Type:       s.printer.Kind(),
	}
}

// Language resolves a requested language against the configured default.
func (s *PrintService) Language(raw string) invoice.Language {
	return invoice.ParseLanguage(raw, s.cfg.DefaultLanguage)
}

// RenderBill lays out a stored bill for the browser.
func (s *PrintService) RenderBill(ctx context.Context, kind ledger.Kind, id string, lang invoice.Language, autoPrint bool) (*invoice.Document, error) {
	view, err := s.billing.GetBill(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	opts := s.options(lang)
	opts.AutoPrint = autoPrint
	return invoice.RenderStatement(view.Bill, view.Statement, view.Payments, opts), nil
}

// RenderDebt lays out a stored debt for the browser.
func (s *PrintService) RenderDebt(ctx context.Context, id string, lang invoice.Language, autoPrint bool) (*invoice.Document, error) {
	view, err := s.debts.GetDebt(ctx, id)
	if err != nil {
		return nil, err
	}
	opts := s.options(lang)
	opts.AutoPrint = autoPrint
	return invoice.RenderDebtBalance(view.Debt, view.Balance, view.Payments, opts), nil
}

// PrintBill prints a stored bill on the thermal printer. The document is
// returned even when printing fails so the caller can fall back to HTML.
func (s *PrintService) PrintBill(ctx context.Context, kind ledger.Kind, id string, lang invoice.Language) (*invoice.Document, error) {
	doc, err := s.RenderBill(ctx, kind, id, lang, false)
	if err != nil {
		return nil, err
	}
	if err := s.printer.Print(ctx, s.receipt(doc)); err != nil {
		s.log.Error("printer error", "kind", kind, "id", id, "error", err)
		return doc, fmt.Errorf("failed to print receipt: %w", err)
	}
	return doc, nil
}

// TestPrint sends a sample bill to the printer.
// Returns the document so the handler can return it as JSON when the printer is disabled.
func (s *PrintService) TestPrint(ctx context.Context, lang invoice.Language) (*invoice.Document, error) {
	bill := ledger.Bill{
		Number: "TEST-001",
		Kind:   ledger.KindCustomerBill,
		Party:  ledger.Party{Name: "Printer Test"},
		Items: []ledger.LineItem{
			{Description: "Test Item 1", ProductNameAr: "صنف تجريبي 1", Quantity: 1, UnitPrice: decimal.NewFromInt(10)},
			{Description: "Test Item 2", ProductNameAr: "صنف تجريبي 2", Quantity: 2, UnitPrice: decimal.NewFromInt(5)},
		},
	}
	doc := invoice.Render(bill, nil, s.options(lang))
	if err := s.printer.Print(ctx, s.receipt(doc)); err != nil {
		return doc, fmt.Errorf("test print failed: %w", err)
	}
	return doc, nil
}

func (s *PrintService) options(lang invoice.Language) invoice.Options {
	if lang == "" {
		lang = s.cfg.DefaultLanguage
	}
	return invoice.Options{
		Language: lang,
		Store:    s.cfg.Store,
		Currency: s.cfg.Currency,
		Now:      s.now(),
	}
}

// receipt converts a document into ESC/POS bytes.
func (s *PrintService) receipt(doc *invoice.Document) []byte {
	p := printer.NewDocument(s.cfg.CharWidth)
	if doc.Dir == "rtl" && s.cfg.CodePage > 0 {
		p.SelectCodePage(byte(s.cfg.CodePage))
	}
	doc.WriteESCPOS(p)
	return p.Bytes()
}
