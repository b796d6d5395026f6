package routes

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/sangkips/backoffice-api/internal/application/service"
	"github.com/sangkips/backoffice-api/internal/config"
	infraRepo "github.com/sangkips/backoffice-api/internal/infrastructure/repository"
	"github.com/sangkips/backoffice-api/internal/presentation/http/handler"
	"github.com/sangkips/backoffice-api/pkg/apperror"
	"github.com/sangkips/backoffice-api/pkg/invoice"
	"github.com/sangkips/backoffice-api/pkg/ledger"
	"github.com/sangkips/backoffice-api/pkg/pagination"
	"github.com/sangkips/backoffice-api/pkg/printer"
	"github.com/sangkips/backoffice-api/pkg/storeapi"
	"github.com/sangkips/backoffice-api/pkg/storeapi/mocks"
)

const billJSON = `{
	"party_name": "Layla",
	"bill_date": "2024-03-05",
	"items": [
		{"description": "rice", "quantity": "2", "unit_price": "10", "discount_percent": 10},
		{"description": "oil", "quantity": 1, "unit_price": 5}
	],
	"tax_amount": "2",
	"discount_amount": 1
}`

type testServer struct {
	router *gin.Engine
	store  *mocks.MockClient
	drafts *infraRepo.FakeDraftRepo
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	store := mocks.NewMockClient(gomock.NewController(t))
	drafts := &infraRepo.FakeDraftRepo{}
	seq := storeapi.NewSequencer()

	billing := service.NewBillingService(store, drafts, node, seq)
	debts := service.NewDebtService(store, seq)
	printing := service.NewPrintService(printer.NewNullPrinter(), billing, debts, service.PrintConfig{
		Store:           invoice.StoreInfo{Name: "Al Noor"},
		Currency:        "ILS",
		DefaultLanguage: invoice.English,
		CharWidth:       32,
	})

	router := Setup(&Handlers{
		Bill:    handler.NewBillHandler(billing),
		Debt:    handler.NewDebtHandler(debts),
		Draft:   handler.NewDraftHandler(service.NewDraftService(drafts, billing)),
		Printer: handler.NewPrinterHandler(printing),
	}, &Deps{
		Cfg:             &config.Config{App: config.AppConfig{Name: "backoffice-api"}},
		IdempotencyRepo: &infraRepo.FakeIdempotencyRepo{},
	})

	return &testServer{router: router, store: store, drafts: drafts}
}

func (s *testServer) do(method, path, body string, headers ...string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set("Authorization", "Bearer session-1")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func amount(w *httptest.ResponseRecorder, path string) string {
	return decimal.RequireFromString(gjson.Get(w.Body.String(), path).String()).StringFixed(2)
}

// stored echoes a bill back the way the store would persist it.
func stored(id string, payments ...ledger.Payment) func(context.Context, ledger.Bill) (*storeapi.BillRecord, error) {
	return func(_ context.Context, bill ledger.Bill) (*storeapi.BillRecord, error) {
		bill.ID = id
		totals := bill.Totals()
		paid := ledger.SumPayments(payments)
		return &storeapi.BillRecord{
			Bill:     bill,
			Payments: payments,
			Server: storeapi.ServerTotals{
				Subtotal:    totals.Subtotal,
				TotalAmount: totals.TotalAmount,
				AmountPaid:  paid,
				AmountDue:   ledger.AmountDue(totals.TotalAmount, paid),
				Status:      ledger.DeriveStatus(totals.TotalAmount, paid),
			},
		}, nil
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", gjson.Get(w.Body.String(), "status").String())
}

func TestPreviewRoute(t *testing.T) {
	s := newTestServer(t)

	t.Run("when_form_values_are_strings_should_coerce_and_total", func(t *testing.T) {
		w := s.do(http.MethodPost, "/api/v1/bills/preview", billJSON)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.True(t, gjson.Get(w.Body.String(), "data.valid").Bool())
		assert.Equal(t, "23.00", amount(w, "data.totals.subtotal"))
		assert.Equal(t, "24.00", amount(w, "data.totals.total_amount"))
	})

	t.Run("when_kind_unknown_should_return_400", func(t *testing.T) {
		w := s.do(http.MethodPost, "/api/v1/bills/preview?kind=receipts", billJSON)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCreateBillRoute(t *testing.T) {
	t.Run("when_store_accepts_should_return_201_with_statement", func(t *testing.T) {
		s := newTestServer(t)
		s.store.EXPECT().CreateBill(gomock.Any(), gomock.Any()).DoAndReturn(stored("b-1"))

		w := s.do(http.MethodPost, "/api/v1/bills/trader_bills", billJSON)

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		body := w.Body.String()
		assert.Equal(t, "b-1", gjson.Get(body, "data.bill.id").String())
		assert.Equal(t, "trader_bills", gjson.Get(body, "data.bill.kind").String())
		assert.Equal(t, "24.00", amount(w, "data.statement.balance.amount_due"))
		assert.Equal(t, "unpaid", gjson.Get(body, "data.statement.balance.payment_status").String())
	})

	t.Run("when_bill_has_no_items_should_return_422_without_calling_store", func(t *testing.T) {
		s := newTestServer(t)

		w := s.do(http.MethodPost, "/api/v1/bills/customer_bills", `{"party_name":"Layla","items":[]}`)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.NotEmpty(t, gjson.Get(w.Body.String(), "errors").Array())
	})

	t.Run("when_store_rejects_should_return_saved_draft", func(t *testing.T) {
		s := newTestServer(t)
		s.store.EXPECT().CreateBill(gomock.Any(), gomock.Any()).
			Return(nil, apperror.NewUpstreamError(http.StatusBadGateway, "store unavailable"))

		w := s.do(http.MethodPost, "/api/v1/bills/customer_bills", billJSON)

		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.NotEmpty(t, gjson.Get(w.Body.String(), "data.reference").String())
		assert.Equal(t, 1, s.drafts.Len())

		list := s.do(http.MethodGet, "/api/v1/drafts", "")
		require.Equal(t, http.StatusOK, list.Code)
		assert.Equal(t, int64(1), gjson.Get(list.Body.String(), "data.pagination.total").Int())
	})

	t.Run("when_kind_unknown_should_return_400", func(t *testing.T) {
		s := newTestServer(t)
		w := s.do(http.MethodPost, "/api/v1/bills/receipts", billJSON)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRecordPaymentRoute(t *testing.T) {
	bill := ledger.Bill{
		ID:    "b-7",
		Kind:  ledger.KindCustomerBill,
		Party: ledger.Party{Name: "Layla"},
		Items: []ledger.LineItem{{Description: "rice", Quantity: 1, UnitPrice: decimal.NewFromInt(100)}},
	}

	t.Run("when_key_missing_should_return_400", func(t *testing.T) {
		s := newTestServer(t)
		w := s.do(http.MethodPost, "/api/v1/bills/customer_bills/b-7/payments", `{"amount":"30","payment_method":"cash"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("when_retried_with_same_key_should_record_once", func(t *testing.T) {
		s := newTestServer(t)
		paid := ledger.Payment{Amount: decimal.NewFromInt(30), Method: ledger.MethodCash}
		s.store.EXPECT().RecordBillPayment(gomock.Any(), ledger.KindCustomerBill, "b-7", gomock.Any()).
			DoAndReturn(func(ctx context.Context, _ ledger.Kind, _ string, _ ledger.Payment) (*storeapi.BillRecord, error) {
				return stored("b-7", paid)(ctx, bill)
			}).Times(1)

		body := `{"amount":"30","payment_method":"Cash"}`
		first := s.do(http.MethodPost, "/api/v1/bills/customer_bills/b-7/payments", body, "Idempotency-Key", "pay-1")
		second := s.do(http.MethodPost, "/api/v1/bills/customer_bills/b-7/payments", body, "Idempotency-Key", "pay-1")

		require.Equal(t, http.StatusCreated, first.Code, first.Body.String())
		assert.Equal(t, http.StatusCreated, second.Code)
		assert.Equal(t, "true", second.Header().Get("X-Idempotency-Replayed"))
		assert.Equal(t, "70.00", amount(first, "data.bill.statement.balance.amount_due"))
		assert.Equal(t, "partial", gjson.Get(first.Body.String(), "data.bill.statement.balance.payment_status").String())
	})

	t.Run("when_payment_exceeds_due_should_accept_with_warning", func(t *testing.T) {
		s := newTestServer(t)
		paid := ledger.Payment{Amount: decimal.NewFromInt(150), Method: ledger.MethodCard}
		s.store.EXPECT().RecordBillPayment(gomock.Any(), ledger.KindCustomerBill, "b-7", gomock.Any()).
			DoAndReturn(func(ctx context.Context, _ ledger.Kind, _ string, _ ledger.Payment) (*storeapi.BillRecord, error) {
				return stored("b-7", paid)(ctx, bill)
			})

		w := s.do(http.MethodPost, "/api/v1/bills/customer_bills/b-7/payments", `{"amount":150,"payment_method":"card"}`, "Idempotency-Key", "pay-3")

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		body := w.Body.String()
		assert.True(t, gjson.Get(body, "data.receipt.overpaid").Bool())
		assert.Equal(t, "50.00", amount(w, "data.receipt.excess"))
		assert.Equal(t, "0.00", amount(w, "data.bill.statement.balance.amount_due"))
		assert.Equal(t, "paid", gjson.Get(body, "data.bill.statement.balance.payment_status").String())
		assert.Contains(t, gjson.Get(body, "warnings.0").String(), "50.00")
	})

	t.Run("when_amount_not_positive_should_return_422", func(t *testing.T) {
		s := newTestServer(t)
		w := s.do(http.MethodPost, "/api/v1/bills/customer_bills/b-7/payments", `{"amount":"0","payment_method":"cash"}`, "Idempotency-Key", "pay-2")
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestGetBillRoute(t *testing.T) {
	t.Run("when_store_totals_disagree_should_warn", func(t *testing.T) {
		s := newTestServer(t)
		bill := ledger.Bill{
			ID:    "b-4",
			Kind:  ledger.KindWholesalerOrder,
			Party: ledger.Party{Name: "Al Quds Wholesale"},
			Items: []ledger.LineItem{{Description: "flour", Quantity: 3, UnitPrice: decimal.NewFromInt(20)}},
		}
		s.store.EXPECT().GetBill(gomock.Any(), ledger.KindWholesalerOrder, "b-4").Return(&storeapi.BillRecord{
			Bill: bill,
			Server: storeapi.ServerTotals{
				Subtotal:    decimal.NewFromInt(60),
				TotalAmount: decimal.NewFromInt(65),
			},
		}, nil)

		w := s.do(http.MethodGet, "/api/v1/bills/wholesaler_orders/b-4", "")

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		body := w.Body.String()
		assert.Equal(t, "60.00", amount(w, "data.statement.totals.total_amount"))
		assert.Contains(t, gjson.Get(body, "warnings.0").String(), "total_amount")
		assert.Equal(t, "total_amount", gjson.Get(body, "data.drift.0").String())
	})
}

func TestListRoutes(t *testing.T) {
	t.Run("when_status_filter_unknown_should_return_422", func(t *testing.T) {
		s := newTestServer(t)
		w := s.do(http.MethodGet, "/api/v1/bills/customer_bills?payment_status=settled", "")
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("when_store_lists_debts_should_return_balances", func(t *testing.T) {
		s := newTestServer(t)
		debt := ledger.Debt{ID: "d-1", Party: ledger.Party{Name: "Omar"}, TotalDebt: decimal.NewFromInt(100)}
		s.store.EXPECT().ListDebts(gomock.Any(), gomock.Any()).Return(&pagination.PaginatedResult[storeapi.DebtRecord]{
			Items: []storeapi.DebtRecord{{
				Debt:     debt,
				Payments: []ledger.Payment{{Amount: decimal.NewFromInt(40), Method: ledger.MethodCash}},
				Server:   storeapi.ServerTotals{TotalAmount: decimal.NewFromInt(100), AmountPaid: decimal.NewFromInt(40)},
			}},
			Pagination: pagination.NewPagination(1, 20, 1),
		}, nil)

		w := s.do(http.MethodGet, "/api/v1/debts", "")

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "60.00", amount(w, "data.items.0.balance.amount_due"))
		assert.Equal(t, "partial", gjson.Get(w.Body.String(), "data.items.0.balance.payment_status").String())
	})
}

func TestPrintRoutes(t *testing.T) {
	bill := ledger.Bill{
		ID:    "b-9",
		Kind:  ledger.KindCustomerBill,
		Party: ledger.Party{Name: "Layla"},
		Items: []ledger.LineItem{{Description: "rice", ProductNameAr: "أرز", Quantity: 2, UnitPrice: decimal.NewFromInt(10)}},
	}

	t.Run("when_arabic_requested_should_render_rtl_html", func(t *testing.T) {
		s := newTestServer(t)
		s.store.EXPECT().GetBill(gomock.Any(), ledger.KindCustomerBill, "b-9").
			DoAndReturn(func(ctx context.Context, _ ledger.Kind, _ string) (*storeapi.BillRecord, error) {
				return stored("b-9")(ctx, bill)
			})

		w := s.do(http.MethodGet, "/api/v1/bills/customer_bills/b-9/print?lang=ar", "")

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, w.Body.String(), `dir="rtl"`)
		assert.Contains(t, w.Body.String(), "أرز")
	})

	t.Run("when_autoprint_not_given_should_print_on_load", func(t *testing.T) {
		s := newTestServer(t)
		s.store.EXPECT().GetBill(gomock.Any(), ledger.KindCustomerBill, "b-9").
			DoAndReturn(func(ctx context.Context, _ ledger.Kind, _ string) (*storeapi.BillRecord, error) {
				return stored("b-9")(ctx, bill)
			})

		w := s.do(http.MethodGet, "/api/v1/bills/customer_bills/b-9/print", "")

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), "window.print()")
	})

	t.Run("when_autoprint_disabled_should_not_print_on_load", func(t *testing.T) {
		s := newTestServer(t)
		s.store.EXPECT().GetBill(gomock.Any(), ledger.KindCustomerBill, "b-9").
			DoAndReturn(func(ctx context.Context, _ ledger.Kind, _ string) (*storeapi.BillRecord, error) {
				return stored("b-9")(ctx, bill)
			})

		w := s.do(http.MethodGet, "/api/v1/bills/customer_bills/b-9/print?autoprint=false", "")

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.NotContains(t, w.Body.String(), "window.print()")
	})

	t.Run("when_debt_printed_should_print_on_load", func(t *testing.T) {
		s := newTestServer(t)
		s.store.EXPECT().GetDebt(gomock.Any(), "d-3").Return(&storeapi.DebtRecord{
			Debt:   ledger.Debt{ID: "d-3", Party: ledger.Party{Name: "Omar"}, TotalDebt: decimal.NewFromInt(80)},
			Server: storeapi.ServerTotals{TotalAmount: decimal.NewFromInt(80)},
		}, nil)

		w := s.do(http.MethodGet, "/api/v1/debts/d-3/print", "")

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), "window.print()")
	})

	t.Run("when_accept_language_is_arabic_should_use_it", func(t *testing.T) {
		s := newTestServer(t)
		s.store.EXPECT().GetBill(gomock.Any(), ledger.KindCustomerBill, "b-9").
			DoAndReturn(func(ctx context.Context, _ ledger.Kind, _ string) (*storeapi.BillRecord, error) {
				return stored("b-9")(ctx, bill)
			})

		w := s.do(http.MethodGet, "/api/v1/bills/customer_bills/b-9/print", "", "Accept-Language", "ar-PS,ar;q=0.9")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `dir="rtl"`)
	})

	t.Run("when_language_unsupported_should_return_400", func(t *testing.T) {
		s := newTestServer(t)
		w := s.do(http.MethodGet, "/api/v1/bills/customer_bills/b-9/print?lang=fr", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("when_bill_missing_should_return_store_error", func(t *testing.T) {
		s := newTestServer(t)
		s.store.EXPECT().GetBill(gomock.Any(), ledger.KindCustomerBill, "nope").
			Return(nil, apperror.NewNotFoundError("Bill"))

		w := s.do(http.MethodGet, "/api/v1/bills/customer_bills/nope/print", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("when_printer_disabled_should_return_document", func(t *testing.T) {
		s := newTestServer(t)
		s.store.EXPECT().GetBill(gomock.Any(), ledger.KindCustomerBill, "b-9").
			DoAndReturn(func(ctx context.Context, _ ledger.Kind, _ string) (*storeapi.BillRecord, error) {
				return stored("b-9")(ctx, bill)
			})

		w := s.do(http.MethodPost, "/api/v1/bills/customer_bills/b-9/print", `{"lang":"en"}`)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.False(t, gjson.Get(w.Body.String(), "warnings").Exists())
		assert.True(t, gjson.Get(w.Body.String(), "data.document").Exists())
	})

	t.Run("printer_status_should_report_unconfigured", func(t *testing.T) {
		s := newTestServer(t)
		w := s.do(http.MethodGet, "/api/v1/printer/status", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.False(t, gjson.Get(w.Body.String(), "data.configured").Bool())
	})
}

func TestDraftRoutes(t *testing.T) {
	t.Run("when_id_malformed_should_return_400", func(t *testing.T) {
		s := newTestServer(t)
		w := s.do(http.MethodGet, "/api/v1/drafts/not-a-uuid", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("when_retry_succeeds_should_remove_draft", func(t *testing.T) {
		s := newTestServer(t)
		gomock.InOrder(
			s.store.EXPECT().CreateBill(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection reset")),
			s.store.EXPECT().CreateBill(gomock.Any(), gomock.Any()).DoAndReturn(stored("b-2")),
		)

		rejected := s.do(http.MethodPost, "/api/v1/bills/customer_bills", billJSON)
		require.Equal(t, http.StatusInternalServerError, rejected.Code, rejected.Body.String())
		id := gjson.Get(rejected.Body.String(), "data.id").String()
		require.NotEmpty(t, id)

		w := s.do(http.MethodPost, "/api/v1/drafts/"+id+"/retry", "")

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		assert.Equal(t, "b-2", gjson.Get(w.Body.String(), "data.bill.id").String())
		assert.Equal(t, 0, s.drafts.Len())

		gone := s.do(http.MethodGet, "/api/v1/drafts/"+id, "")
		assert.Equal(t, http.StatusNotFound, gone.Code)
	})
}
