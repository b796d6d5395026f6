package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/backoffice-api/pkg/invoice"
	"github.com/sangkips/backoffice-api/pkg/ledger"
	"github.com/sangkips/backoffice-api/pkg/printer"
)

type recordingPrinter struct {
	data [][]byte
	err  error
}

func (p *recordingPrinter) Print(_ context.Context, data []byte) error {
	p.data = append(p.data, data)
	return p.err
}

func (p *recordingPrinter) IsConnected(context.Context) bool { return p.err == nil }

func (p *recordingPrinter) Kind() string { return "network" }

func (p *recordingPrinter) Close() error { return nil }

func newPrintService(t *testing.T, p printer.Printer) *PrintService {
	t.Helper()
	billing, store, _ := newBillingService(t)
	debts, _ := newDebtService(t)

	bill := sampleBill()
	bill.ID = "b-1"
	bill.IssueDate = fixedNow
	bill.Items[0].ProductNameAr = "أرز"
	store.EXPECT().GetBill(gomock.Any(), ledger.KindCustomerBill, "b-1").Return(record(bill), nil).AnyTimes()

	svc := NewPrintService(p, billing, debts, PrintConfig{
		Store:     invoice.StoreInfo{Name: "Al Noor"},
		Currency:  "ILS",
		CharWidth: 32,
		CodePage:  22,
	})
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestPrintService_GetStatus(t *testing.T) {
	svc := newPrintService(t, printer.NewNullPrinter())
	status := svc.GetStatus(context.Background())
	assert.False(t, status.Configured)
	assert.False(t, status.Connected)
	assert.Equal(t, "none", status.Type)
}

func TestPrintService_RenderBill(t *testing.T) {
	svc := newPrintService(t, printer.NewNullPrinter())

	doc, err := svc.RenderBill(callerCtx(), ledger.KindCustomerBill, "b-1", svc.Language("ar-PS,ar;q=0.9"), true)
	require.NoError(t, err)
	assert.Equal(t, invoice.Arabic, doc.Lang)
	assert.Equal(t, "rtl", doc.Dir)
	assert.Equal(t, "أرز", doc.Rows[0].Name)
	assert.True(t, doc.AutoPrint)

	var buf bytes.Buffer
	require.NoError(t, doc.WriteHTML(&buf))
	assert.Contains(t, buf.String(), `dir="rtl"`)
	assert.Contains(t, buf.String(), "window.print()")
}

func TestPrintService_PrintBill(t *testing.T) {
	t.Run("when_arabic_should_select_code_page", func(t *testing.T) {
		p := &recordingPrinter{}
		svc := newPrintService(t, p)

		_, err := svc.PrintBill(callerCtx(), ledger.KindCustomerBill, "b-1", invoice.Arabic)
		require.NoError(t, err)
		require.Len(t, p.data, 1)
		assert.True(t, bytes.Contains(p.data[0], []byte{printer.ESC, 't', 22}))
	})

	t.Run("when_english_should_not_select_code_page", func(t *testing.T) {
		p := &recordingPrinter{}
		svc := newPrintService(t, p)

		_, err := svc.PrintBill(callerCtx(), ledger.KindCustomerBill, "b-1", invoice.English)
		require.NoError(t, err)
		assert.False(t, bytes.Contains(p.data[0], []byte{printer.ESC, 't', 22}))
		assert.True(t, strings.Contains(string(p.data[0]), "Layla"))
	})

	t.Run("when_printer_fails_should_still_return_document", func(t *testing.T) {
		p := &recordingPrinter{err: errors.New("paper out")}
		svc := newPrintService(t, p)

		doc, err := svc.PrintBill(callerCtx(), ledger.KindCustomerBill, "b-1", invoice.English)
		assert.Error(t, err)
		require.NotNil(t, doc)
		assert.Equal(t, "ltr", doc.Dir)
	})
}

func TestPrintService_TestPrint(t *testing.T) {
	p := &recordingPrinter{}
	svc := newPrintService(t, p)

	doc, err := svc.TestPrint(context.Background(), invoice.English)
	require.NoError(t, err)
	require.Len(t, doc.Rows, 2)
	assert.Len(t, p.data, 1)
}
