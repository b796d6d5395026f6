package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/sangkips/backoffice-api/internal/domain/entity"
	"github.com/sangkips/backoffice-api/internal/domain/repository"
	infraRepo "github.com/sangkips/backoffice-api/internal/infrastructure/repository"
	"github.com/sangkips/backoffice-api/pkg/apperror"
	"github.com/sangkips/backoffice-api/pkg/ledger"
	"github.com/sangkips/backoffice-api/pkg/pagination"
	"github.com/sangkips/backoffice-api/pkg/storeapi"
)

// BillingService handles bill-related operations. Persisted bills live in
// the store API; totals and balances are always re-derived locally.
type BillingService struct {
	store     storeapi.Client
	draftRepo repository.DraftRepository
	node      *snowflake.Node
	sequencer *storeapi.Sequencer
	now       func() time.Time
	log       *slog.Logger
}

// NewBillingService creates a new billing service
func NewBillingService(
	store storeapi.Client,
	draftRepo repository.DraftRepository,
	node *snowflake.Node,
	sequencer *storeapi.Sequencer,
) *BillingService {
	return &BillingService{
		store:     store,
		draftRepo: draftRepo,
		node:      node,
		sequencer: sequencer,
		now:       time.Now,
		log:       slog.With("module", "billing"),
	}
}

// BillPreview is the live calculation shown while a bill is edited.
type BillPreview struct {
	Totals   ledger.Totals         `json:"totals"`
	Valid    bool                  `json:"valid"`
	Problems []apperror.FieldError `json:"problems,omitempty"`
}

// BillView is a stored bill together with its locally derived statement.
type BillView struct {
	Bill      ledger.Bill           `json:"bill"`
	Payments  []ledger.Payment      `json:"payments"`
	Statement ledger.Statement      `json:"statement"`
	Server    storeapi.ServerTotals `json:"server_totals"`
	// Drift names the figures where the store disagrees with the local
	// calculation.
	Drift []string `json:"drift,omitempty"`
}

// PaymentInput is a payment as entered on the form.
type PaymentInput struct {
	Amount      decimal.Decimal
	Method      string
	PaymentDate time.Time
	Notes       string
}

// BillPaymentResult reports a recorded bill payment.
type BillPaymentResult struct {
	Receipt ledger.Receipt `json:"receipt"`
	Bill    *BillView      `json:"bill"`
}

// Preview aggregates the bill and reports every problem that would block
// submission. It never fails.
func (s *BillingService) Preview(bill ledger.Bill) *BillPreview {
	preview := &BillPreview{Totals: bill.Totals(), Valid: true}
	if err := bill.Validate(); err != nil {
		preview.Valid = false
		preview.Problems = apperror.GetAppError(err).Errors
	}
	return preview
}

// ListBills fetches one page of bills. A newer listing of the same kind,
// page and filters by the same caller supersedes one still in flight.
func (s *BillingService) ListBills(ctx context.Context, kind ledger.Kind, params storeapi.ListParams) (*pagination.PaginatedResult[storeapi.BillSummary], error) {
	res, err := storeapi.Latest(ctx, s.sequencer, viewKey(ctx, "bills", string(kind), params.Key()),
		func(ctx context.Context) (*pagination.PaginatedResult[storeapi.BillSummary], error) {
			return s.store.ListBills(ctx, kind, params)
		})
	if err != nil {
		return nil, mapSuperseded(err)
	}
	return res, nil
}

// GetBill fetches a bill and recomputes its statement.
func (s *BillingService) GetBill(ctx context.Context, kind ledger.Kind, id string) (*BillView, error) {
	res, err := storeapi.Latest(ctx, s.sequencer, viewKey(ctx, "bill", string(kind), id),
		func(ctx context.Context) (*storeapi.BillRecord, error) {
			return s.store.GetBill(ctx, kind, id)
		})
	if err != nil {
		return nil, mapSuperseded(err)
	}
	return s.view(res), nil
}

// SubmitBill validates and creates a bill. When the store rejects it the
// form is kept as a draft and returned with the error.
func (s *BillingService) SubmitBill(ctx context.Context, bill ledger.Bill) (*BillView, error) {
	bill.ID = ""
	if err := s.prepare(&bill); err != nil {
		return nil, err
	}

	rec, err := s.store.CreateBill(ctx, bill)
	if err != nil {
		return nil, s.keepDraft(ctx, bill, err)
	}
	s.log.Info("bill created", "kind", bill.Kind, "id", rec.Bill.ID)
	return s.view(rec), nil
}

// UpdateBill validates and replaces an existing bill.
func (s *BillingService) UpdateBill(ctx context.Context, bill ledger.Bill) (*BillView, error) {
	if bill.ID == "" {
		return nil, apperror.NewBadRequestError("Bill id is required")
	}
	if err := s.prepare(&bill); err != nil {
		return nil, err
	}

	rec, err := s.store.UpdateBill(ctx, bill)
	if err != nil {
		return nil, s.keepDraft(ctx, bill, err)
	}
	s.log.Info("bill updated", "kind", bill.Kind, "id", bill.ID)
	return s.view(rec), nil
}

// RecordPayment appends a payment to a bill. Paying more than is due is
// allowed and flagged on the receipt.
func (s *BillingService) RecordPayment(ctx context.Context, kind ledger.Kind, id string, input PaymentInput) (*BillPaymentResult, error) {
	payment, err := newPayment(input, s.now)
	if err != nil {
		return nil, err
	}

	rec, err := s.store.RecordBillPayment(ctx, kind, id, payment)
	if err != nil {
		return nil, err
	}

	view := s.view(rec)
	receipt, err := settle(view.Statement.Balance, payment)
	if err != nil {
		return nil, err
	}
	if receipt.Overpaid {
		s.log.Warn("bill overpaid", "kind", kind, "id", id, "excess", receipt.Excess.StringFixed(2))
	}
	return &BillPaymentResult{Receipt: receipt, Bill: view}, nil
}

// resubmit sends a preserved draft again. The draft is removed once the
// store accepts it; otherwise its last error is refreshed.
func (s *BillingService) resubmit(ctx context.Context, draft *entity.BillDraft) (*BillView, error) {
	var bill ledger.Bill
	if err := json.Unmarshal(draft.Payload, &bill); err != nil {
		return nil, apperror.NewAppError(http.StatusInternalServerError, "Draft payload is unreadable")
	}
	bill.Kind = ledger.Kind(draft.Kind)
	bill.ID = draft.BillID
	if err := s.prepare(&bill); err != nil {
		return nil, err
	}

	var rec *storeapi.BillRecord
	var err error
	if bill.ID == "" {
		rec, err = s.store.CreateBill(ctx, bill)
	} else {
		rec, err = s.store.UpdateBill(ctx, bill)
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		draft.Attempts++
		draft.LastError, draft.LastStatus = upstreamReason(err)
		if uerr := s.draftRepo.Update(ctx, draft); uerr != nil {
			s.log.Error("failed to update draft", "reference", draft.Reference, "error", uerr)
		}
		return nil, withDraft(err, draft)
	}

	if err := s.draftRepo.Delete(ctx, draft.ID); err != nil {
		s.log.Error("failed to delete draft", "reference", draft.Reference, "error", err)
	}
	s.log.Info("draft resubmitted", "reference", draft.Reference, "id", rec.Bill.ID)
	return s.view(rec), nil
}

func (s *BillingService) prepare(bill *ledger.Bill) error {
	if _, ok := ledger.ParseKind(string(bill.Kind)); !ok {
		return apperror.NewBadRequestError("Unknown bill kind")
	}
	if bill.IssueDate.IsZero() {
		bill.IssueDate = s.now()
	}
	return bill.Validate()
}

// newPayment normalizes a form payment. The method defaults to cash and the
// date to today.
func newPayment(input PaymentInput, now func() time.Time) (ledger.Payment, error) {
	method, ok := ledger.ParsePaymentMethod(input.Method)
	if !ok {
		return ledger.Payment{}, ledger.ErrUnknownPaymentMethod
	}
	payment := ledger.Payment{
		Amount:      ledger.Round2(input.Amount),
		Method:      method,
		PaymentDate: input.PaymentDate,
		Notes:       input.Notes,
	}
	if payment.PaymentDate.IsZero() {
		payment.PaymentDate = now()
	}
	return payment, payment.Validate()
}

func (s *BillingService) keepDraft(ctx context.Context, bill ledger.Bill, cause error) error {
	if errors.Is(cause, context.Canceled) {
		return cause
	}

	payload, err := json.Marshal(bill)
	if err != nil {
		s.log.Error("failed to encode draft", "error", err)
		return cause
	}
	caller, _ := infraRepo.GetCaller(ctx)
	draft := &entity.BillDraft{
		Reference: s.node.Generate().String(),
		Caller:    caller,
		Kind:      string(bill.Kind),
		BillID:    bill.ID,
		PartyName: bill.Party.Name,
		Payload:   datatypes.JSON(payload),
		Attempts:  1,
	}
	draft.LastError, draft.LastStatus = upstreamReason(cause)

	if err := s.draftRepo.Create(ctx, draft); err != nil {
		s.log.Error("failed to save draft", "kind", bill.Kind, "error", err)
		return cause
	}
	s.log.Warn("store rejected bill, draft kept", "kind", bill.Kind, "reference", draft.Reference, "status", draft.LastStatus)
	return withDraft(cause, draft)
}

func (s *BillingService) view(rec *storeapi.BillRecord) *BillView {
	paid := rec.Server.AmountPaid
	if len(rec.Payments) > 0 {
		paid = ledger.SumPayments(rec.Payments)
	}
	v := &BillView{
		Bill:      rec.Bill,
		Payments:  rec.Payments,
		Statement: ledger.NewStatement(rec.Bill.Totals(), paid),
		Server:    rec.Server,
	}
	if v.Payments == nil {
		v.Payments = []ledger.Payment{}
	}

	v.Drift = drift(v.Statement, rec.Server)
	if len(v.Drift) > 0 {
		s.log.Warn("store totals differ from local calculation",
			"kind", rec.Bill.Kind, "id", rec.Bill.ID, "fields", v.Drift)
	}
	return v
}

// drift lists the figures where the store disagrees with st. Figures the
// store did not send are not compared.
func drift(st ledger.Statement, server storeapi.ServerTotals) []string {
	var fields []string
	check := func(name string, local, remote decimal.Decimal, sent bool) {
		if sent && !ledger.Round2(local).Equal(ledger.Round2(remote)) {
			fields = append(fields, name)
		}
	}
	check("subtotal", st.Totals.Subtotal, server.Subtotal, !server.Subtotal.IsZero())
	check("total_amount", st.Totals.TotalAmount, server.TotalAmount, true)
	check("amount_paid", st.Balance.AmountPaid, server.AmountPaid, true)
	return fields
}

// settle records payment on a ledger opened at the balance before it, so
// the receipt reflects a payment already included in bal.
func settle(bal ledger.Balance, payment ledger.Payment) (ledger.Receipt, error) {
	return ledger.OpenLedger(bal.TotalAmount, bal.AmountPaid.Sub(payment.Amount)).Record(payment)
}

func viewKey(ctx context.Context, parts ...string) string {
	caller, _ := infraRepo.GetCaller(ctx)
	key := caller
	for _, p := range parts {
		key += "|" + p
	}
	return key
}

func mapSuperseded(err error) error {
	if errors.Is(err, storeapi.ErrSuperseded) {
		return apperror.ErrRequestSuperseded
	}
	return err
}

func upstreamReason(err error) (string, int) {
	appErr := apperror.GetAppError(err)
	return appErr.Message, appErr.Code
}

func withDraft(err error, draft *entity.BillDraft) error {
	return apperror.GetAppError(err).WithData(draft)
}
