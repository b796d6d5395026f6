package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/sangkips/backoffice-api/pkg/ledger"
	"github.com/sangkips/backoffice-api/pkg/pagination"
	"github.com/sangkips/backoffice-api/pkg/storeapi"
)

// DebtService handles customer debts. A debt follows the same payment
// rules as a bill but its total is entered directly.
type DebtService struct {
	store     storeapi.Client
	sequencer *storeapi.Sequencer
	now       func() time.Time
	log       *slog.Logger
}

// NewDebtService creates a new debt service
func NewDebtService(store storeapi.Client, sequencer *storeapi.Sequencer) *DebtService {
	return &DebtService{
		store:     store,
		sequencer: sequencer,
		now:       time.Now,
		log:       slog.With("module", "debts"),
	}
}

// DebtView is a stored debt with its locally derived balance.
type DebtView struct {
	Debt     ledger.Debt           `json:"debt"`
	Payments []ledger.Payment      `json:"payments"`
	Balance  ledger.Balance        `json:"balance"`
	Server   storeapi.ServerTotals `json:"server_totals"`
	Drift    []string              `json:"drift,omitempty"`
}

// DebtPaymentResult reports a recorded debt payment.
type DebtPaymentResult struct {
	Receipt ledger.Receipt `json:"receipt"`
	Debt    *DebtView      `json:"debt"`
}

// ListDebts fetches one page of debts.
func (s *DebtService) ListDebts(ctx context.Context, params storeapi.ListParams) (*pagination.PaginatedResult[DebtView], error) {
	res, err := storeapi.Latest(ctx, s.sequencer, viewKey(ctx, "debts", params.Key()),
		func(ctx context.Context) (*pagination.PaginatedResult[storeapi.DebtRecord], error) {
			return s.store.ListDebts(ctx, params)
		})
	if err != nil {
		return nil, mapSuperseded(err)
	}
	return pagination.MapResult(res, func(rec storeapi.DebtRecord) DebtView {
		return *debtView(&rec)
	}), nil
}

// GetDebt fetches a debt and recomputes its balance.
func (s *DebtService) GetDebt(ctx context.Context, id string) (*DebtView, error) {
	res, err := storeapi.Latest(ctx, s.sequencer, viewKey(ctx, "debt", id),
		func(ctx context.Context) (*storeapi.DebtRecord, error) {
			return s.store.GetDebt(ctx, id)
		})
	if err != nil {
		return nil, mapSuperseded(err)
	}

	v := debtView(res)
	if len(v.Drift) > 0 {
		s.log.Warn("store totals differ from local calculation", "id", id, "fields", v.Drift)
	}
	return v, nil
}

// RecordPayment appends a payment to a debt.
func (s *DebtService) RecordPayment(ctx context.Context, id string, input PaymentInput) (*DebtPaymentResult, error) {
	payment, err := newPayment(input, s.now)
	if err != nil {
		return nil, err
	}

	rec, err := s.store.RecordDebtPayment(ctx, id, payment)
	if err != nil {
		return nil, err
	}

	v := debtView(rec)
	receipt, err := settle(v.Balance, payment)
	if err != nil {
		return nil, err
	}
	if receipt.Overpaid {
		s.log.Warn("debt overpaid", "id", id, "excess", receipt.Excess.StringFixed(2))
	}
	return &DebtPaymentResult{Receipt: receipt, Debt: v}, nil
}

func debtView(rec *storeapi.DebtRecord) *DebtView {
	paid := rec.Server.AmountPaid
	if len(rec.Payments) > 0 {
		paid = ledger.SumPayments(rec.Payments)
	}
	v := &DebtView{
		Debt:     rec.Debt,
		Payments: rec.Payments,
		Balance:  ledger.NewBalance(rec.Debt.TotalDebt, paid),
		Server:   rec.Server,
	}
	if v.Payments == nil {
		v.Payments = []ledger.Payment{}
	}
	if !ledger.Round2(paid).Equal(ledger.Round2(rec.Server.AmountPaid)) {
		v.Drift = append(v.Drift, "amount_paid")
	}
	return v
}
