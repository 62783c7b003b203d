package balance

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"expense-ledger-go/pkg/logger"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

type Service struct {
	repo     Repository
	currency *money.Currency
	scale    int32
	cache    Cache
	cacheTTL time.Duration
	log      logger.Logger
	now      func() time.Time
}

type Option func(*Service)

// WithCache stores computed sheets in cache for ttl.
func WithCache(cache Cache, ttl time.Duration) Option {
	return func(s *Service) {
		if cache != nil && ttl > 0 {
			s.cache = cache
			s.cacheTTL = ttl
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

func NewService(repo Repository, currency string, opts ...Option) (*Service, error) {
	code := strings.ToUpper(strings.TrimSpace(currency))
	cur := money.GetCurrency(code)
	if cur == nil {
		return nil, fmt.Errorf("unknown currency %q", currency)
	}

	s := &Service{
		repo:     repo,
		currency: cur,
		scale:    int32(cur.Fraction),
		cache:    noopCache{},
		log:      logger.Nop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Sheet aggregates what every user paid and owes. Users that neither own an
// expense nor owe a share are left out.
func (s *Service) Sheet(ctx context.Context) (*Sheet, error) {
	generation, err := s.cache.Generation(ctx)
	cacheable := err == nil
	if err != nil {
		s.log.Warn("balance sheet cache generation read failed", "error", err)
	} else {
		cached, ok, err := s.cache.Get(ctx)
		if err != nil {
			s.log.Warn("balance sheet cache read failed", "error", err)
		}
		if ok && cached != nil {
			return cached, nil
		}
	}

	paid, err := s.repo.TotalsPaid(ctx)
	if err != nil {
		return nil, fmt.Errorf("totals paid: %w", err)
	}
	owed, err := s.repo.TotalsOwed(ctx)
	if err != nil {
		return nil, fmt.Errorf("totals owed: %w", err)
	}
	items, err := s.repo.ListExpenses(ctx)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}

	entries := make(map[string]*Entry)
	entryFor := func(userID, userName string) *Entry {
		entry, ok := entries[userID]
		if !ok {
			entry = &Entry{
				UserID:             userID,
				UserName:           userName,
				TotalExpense:       decimal.Zero,
				TotalOwed:          decimal.Zero,
				IndividualExpenses: []ExpenseItem{},
			}
			entries[userID] = entry
		}
		return entry
	}

	for _, total := range paid {
		entryFor(total.UserID, total.UserName).TotalExpense = total.Total.Round(s.scale)
	}
	for _, total := range owed {
		entryFor(total.UserID, total.UserName).TotalOwed = total.Total.Round(s.scale)
	}
	for _, item := range items {
		entry, ok := entries[item.UserID]
		if !ok {
			continue
		}
		item.Amount = item.Amount.Round(s.scale)
		entry.IndividualExpenses = append(entry.IndividualExpenses, item)
	}

	sheet := Sheet{
		Currency:    s.currency.Code,
		GeneratedAt: s.now().UTC(),
		Entries:     make([]Entry, 0, len(entries)),
	}
	for _, entry := range entries {
		entry.NetBalance = entry.TotalExpense.Sub(entry.TotalOwed)
		sheet.Entries = append(sheet.Entries, *entry)
	}
	sort.Slice(sheet.Entries, func(i, j int) bool {
		if sheet.Entries[i].UserName != sheet.Entries[j].UserName {
			return sheet.Entries[i].UserName < sheet.Entries[j].UserName
		}
		return sheet.Entries[i].UserID < sheet.Entries[j].UserID
	})

	if cacheable {
		if err := s.cache.Set(ctx, generation, sheet, s.cacheTTL); err != nil {
			s.log.Warn("balance sheet cache write failed", "error", err)
		}
	}

	return &sheet, nil
}

// Export writes the balance sheet to w, one row per owned expense.
func (s *Service) Export(ctx context.Context, format Format, w io.Writer) error {
	sheet, err := s.Sheet(ctx)
	if err != nil {
		return err
	}

	switch format {
	case FormatCSV:
		return writeCSV(w, *sheet, s.scale)
	case FormatXLSX:
		return writeXLSX(w, *sheet, s.currency)
	default:
		return ErrUnsupportedFormat
	}
}
