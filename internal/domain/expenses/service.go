package expenses

import (
	"context"
	"errors"
	"strings"
	"time"

	"expense-ledger-go/internal/domain/split"
	"expense-ledger-go/pkg/logger"

	"github.com/google/uuid"
)

type Service struct {
	repo     Repository
	calc     *split.Calculator
	cache    SheetCache
	recorder Recorder
	log      logger.Logger
	now      func() time.Time
}

type Option func(*Service)

func WithSheetCache(cache SheetCache) Option {
	return func(s *Service) {
		if cache != nil {
			s.cache = cache
		}
	}
}

func WithRecorder(recorder Recorder) Option {
	return func(s *Service) {
		if recorder != nil {
			s.recorder = recorder
		}
	}
}

func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

func NewService(repo Repository, calc *split.Calculator, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		calc:     calc,
		cache:    noopSheetCache{},
		recorder: noopRecorder{},
		log:      logger.Nop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateExpense validates the request, computes every share and stores the
// expense together with its shares in a single transaction. Nothing is
// written when any step fails.
func (s *Service) CreateExpense(ctx context.Context, input CreateExpenseInput) (*Expense, error) {
	computed, err := s.calc.Calculate(input.Amount, input.Method, input.Participants)
	if err != nil {
		s.reject(err)
		return nil, err
	}

	expense := Expense{
		ID:          uuid.NewString(),
		UserID:      input.UserID,
		Amount:      input.Amount,
		Method:      input.Method,
		Description: strings.TrimSpace(input.Description),
		CreatedAt:   s.now().UTC(),
	}

	shares := make([]Share, 0, len(computed))
	userIDs := make([]string, 0, len(computed))
	for i, share := range computed {
		shares = append(shares, Share{
			ID:         uuid.NewString(),
			ExpenseID:  expense.ID,
			UserID:     share.UserID,
			AmountOwed: share.AmountOwed,
			Percentage: share.Percentage,
			Position:   i,
		})
		userIDs = append(userIDs, share.UserID)
	}

	err = s.repo.Transaction(ctx, func(tx Repository) error {
		count, err := tx.CountUsersByIDs(ctx, userIDs)
		if err != nil {
			return err
		}
		if count != int64(len(userIDs)) {
			return ErrParticipantNotFound
		}

		if err := tx.CreateExpense(ctx, &expense); err != nil {
			return err
		}

		for i := range shares {
			if err := tx.CreateShare(ctx, &shares[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.reject(err)
		return nil, err
	}

	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Error("balance sheet cache invalidation failed", "error", err, "expense_id", expense.ID)
	}
	s.recorder.ExpenseCreated(expense.Method)

	expense.Shares = shares
	return &expense, nil
}

func (s *Service) GetExpense(ctx context.Context, expenseID string) (*Expense, error) {
	if strings.TrimSpace(expenseID) == "" {
		return nil, ErrExpenseNotFound
	}
	return s.repo.GetExpenseByID(ctx, expenseID)
}

func (s *Service) ListExpensesByUser(ctx context.Context, userID string) ([]Expense, error) {
	return s.repo.ListExpensesByUser(ctx, userID)
}

func (s *Service) ListExpenses(ctx context.Context) ([]Expense, error) {
	return s.repo.ListExpenses(ctx)
}

func (s *Service) reject(err error) {
	var validationErr *split.ValidationError
	switch {
	case errors.As(err, &validationErr):
		s.recorder.ExpenseRejected(validationErr.Code())
	case errors.Is(err, ErrParticipantNotFound):
		s.recorder.ExpenseRejected("participant_not_found")
	default:
		s.recorder.ExpenseRejected("storage_error")
	}
}
