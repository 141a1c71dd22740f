package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/carenotes/internal/domain"
	"github.com/spec-kit/carenotes/internal/events"
	"github.com/spec-kit/carenotes/internal/repository"
	apperrors "github.com/spec-kit/carenotes/pkg/util"
)

// FinanceService handles pocket money disbursements.
type FinanceService struct {
	pocketMoney repository.PocketMoneyRepository
	children    repository.ChildRepository
	dispatcher  events.Dispatcher
}

// DisbursementInput describes a pocket money payment.
type DisbursementInput struct {
	ChildID     string
	WeekNumber  int
	Year        int
	AmountPence int64
	Method      domain.DisbursementMethod
	DisbursedBy string
}

// NewFinanceService constructs the service.
func NewFinanceService(pocketMoney repository.PocketMoneyRepository, children repository.ChildRepository, dispatcher events.Dispatcher) *FinanceService {
	return &FinanceService{
		pocketMoney: pocketMoney,
		children:    children,
		dispatcher:  dispatcher,
	}
}

// DisbursePocketMoney records one weekly payment. A second disbursement for
// the same child, week and year is rejected.
func (s *FinanceService) DisbursePocketMoney(ctx context.Context, input DisbursementInput) (*domain.PocketMoneyDisbursement, error) {
	if input.WeekNumber < 1 || input.WeekNumber > 53 {
		return nil, apperrors.NewValidationError("week number must be between 1 and 53", nil)
	}
	if input.Year < 2000 {
		return nil, apperrors.NewValidationError("year invalid", nil)
	}
	if input.AmountPence <= 0 {
		return nil, apperrors.NewValidationError("amount must be positive", nil)
	}
	if _, err := s.children.GetByID(ctx, input.ChildID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("child", map[string]any{"child_id": input.ChildID})
		}
		return nil, apperrors.MapError(err)
	}

	if existing, err := s.pocketMoney.GetByChildWeek(ctx, input.ChildID, input.WeekNumber, input.Year); err == nil && existing != nil {
		return nil, apperrors.NewConflict("pocket money already disbursed for this week", map[string]any{
			"disbursement_id": existing.ID,
		})
	} else if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	disbursement := &domain.PocketMoneyDisbursement{
		ChildID:     input.ChildID,
		WeekNumber:  input.WeekNumber,
		Year:        input.Year,
		AmountPence: input.AmountPence,
		Method:      input.Method,
		DisbursedBy: input.DisbursedBy,
	}
	if disbursement.Method == "" {
		disbursement.Method = domain.DisburseCash
	}
	if err := s.pocketMoney.Create(ctx, disbursement); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishDisbursed(ctx, disbursement)
	return disbursement, nil
}

// ListDisbursements returns a child's payments for one year, ordered by week.
func (s *FinanceService) ListDisbursements(ctx context.Context, childID string, year int) ([]domain.PocketMoneyDisbursement, error) {
	disbursements, err := s.pocketMoney.ListByChildYear(ctx, childID, year)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return disbursements, nil
}

// YearTotalPence sums a child's disbursements for one year.
func (s *FinanceService) YearTotalPence(ctx context.Context, childID string, year int) (int64, error) {
	disbursements, err := s.ListDisbursements(ctx, childID, year)
	if err != nil {
		return 0, err
	}
	var total int64
	for _, d := range disbursements {
		total += d.AmountPence
	}
	return total, nil
}

func (s *FinanceService) publishDisbursed(ctx context.Context, d *domain.PocketMoneyDisbursement) {
	if s.dispatcher == nil {
		return
	}
	actorID := d.DisbursedBy
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventPocketMoneyDisbursed,
		SubjectID: d.ID,
		Actor:     events.Actor{StaffID: &actorID},
		Timestamp: time.Now(),
		Payload: events.PocketMoneyDisbursedPayload{
			ChildID:     d.ChildID,
			WeekNumber:  d.WeekNumber,
			Year:        d.Year,
			AmountPence: d.AmountPence,
		},
	})
}
