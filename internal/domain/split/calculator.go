package split

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

const (
	DefaultCurrency = "USD"

	// PercentScale is the number of decimal places kept for percentages.
	PercentScale int32 = 2

	// MaxScale is the finest minor unit the ledger stores; amount columns are
	// numeric(12,2).
	MaxScale int32 = 2

	minEqualParticipants = 2
)

var (
	hundred = decimal.NewFromInt(100)

	// MaxAmount is the largest total that fits numeric(12,2).
	MaxAmount = decimal.RequireFromString("9999999999.99")
)

// Participant is one raw entry of an expense request. AmountOwed is required
// by the exact method and Percentage by the percentage method.
type Participant struct {
	UserID     string
	AmountOwed *decimal.Decimal
	Percentage *decimal.Decimal
}

// Share is the computed obligation of one participant.
type Share struct {
	UserID     string
	AmountOwed decimal.Decimal
	Percentage decimal.Decimal
}

// Calculator turns an expense total into per-participant shares. Amounts are
// kept at the minor unit of the configured currency.
type Calculator struct {
	currency string
	scale    int32
}

func NewCalculator(currency string) (*Calculator, error) {
	code := strings.ToUpper(strings.TrimSpace(currency))
	if code == "" {
		code = DefaultCurrency
	}
	cur := money.GetCurrency(code)
	if cur == nil {
		return nil, fmt.Errorf("unknown currency %q", currency)
	}
	if int32(cur.Fraction) > MaxScale {
		return nil, fmt.Errorf("currency %s has %d decimal places, at most %d are supported", cur.Code, cur.Fraction, MaxScale)
	}
	return &Calculator{currency: cur.Code, scale: int32(cur.Fraction)}, nil
}

func (c *Calculator) Currency() string {
	return c.currency
}

// Scale is the number of decimal places of the currency minor unit.
func (c *Calculator) Scale() int32 {
	return c.scale
}

// Calculate returns one share per participant, in input order. On success the
// amounts sum to total and the percentages sum to 100.
func (c *Calculator) Calculate(total decimal.Decimal, method Method, participants []Participant) ([]Share, error) {
	if !total.IsPositive() {
		return nil, invalid(ErrNonPositiveAmount)
	}
	if total.GreaterThan(MaxAmount) {
		return nil, invalid(ErrAmountOutOfRange)
	}
	if !fits(total, c.scale) {
		return nil, invalid(ErrInvalidPrecision)
	}
	if !method.Valid() {
		return nil, invalid(ErrInvalidMethod)
	}
	if len(participants) == 0 {
		return nil, invalid(ErrNoParticipants)
	}
	if err := checkParticipants(participants); err != nil {
		return nil, err
	}

	switch method {
	case MethodEqual:
		return c.equal(total, participants)
	case MethodExact:
		return c.exact(total, participants)
	default:
		return c.percentage(total, participants)
	}
}

func (c *Calculator) equal(total decimal.Decimal, participants []Participant) ([]Share, error) {
	if len(participants) < minEqualParticipants {
		return nil, invalid(ErrInsufficientParticipants)
	}

	count := decimal.NewFromInt(int64(len(participants)))
	amounts := allocate(repeat(total, len(participants)), count, total, c.scale)
	percents := allocate(repeat(hundred, len(participants)), count, hundred, PercentScale)

	return buildShares(participants, amounts, percents), nil
}

func (c *Calculator) exact(total decimal.Decimal, participants []Participant) ([]Share, error) {
	amounts := make([]decimal.Decimal, len(participants))
	sum := decimal.Zero
	for i, participant := range participants {
		if participant.AmountOwed == nil {
			return nil, invalidFor(ErrMissingField, participant.UserID)
		}
		amount := *participant.AmountOwed
		if amount.IsNegative() {
			return nil, invalidFor(ErrNegativeValue, participant.UserID)
		}
		if !fits(amount, c.scale) {
			return nil, invalidFor(ErrInvalidPrecision, participant.UserID)
		}
		amounts[i] = amount
		sum = sum.Add(amount)
	}
	if !sum.Equal(total) {
		return nil, invalid(ErrSumMismatch)
	}

	numerators := make([]decimal.Decimal, len(amounts))
	for i, amount := range amounts {
		numerators[i] = amount.Mul(hundred)
	}
	percents := allocate(numerators, total, hundred, PercentScale)

	return buildShares(participants, amounts, percents), nil
}

func (c *Calculator) percentage(total decimal.Decimal, participants []Participant) ([]Share, error) {
	percents := make([]decimal.Decimal, len(participants))
	sum := decimal.Zero
	for i, participant := range participants {
		if participant.Percentage == nil {
			return nil, invalidFor(ErrMissingField, participant.UserID)
		}
		percent := *participant.Percentage
		if percent.IsNegative() {
			return nil, invalidFor(ErrNegativeValue, participant.UserID)
		}
		if !fits(percent, PercentScale) {
			return nil, invalidFor(ErrInvalidPrecision, participant.UserID)
		}
		percents[i] = percent
		sum = sum.Add(percent)
	}
	if !sum.Equal(hundred) {
		return nil, invalid(ErrSumMismatch)
	}

	numerators := make([]decimal.Decimal, len(percents))
	for i, percent := range percents {
		numerators[i] = percent.Mul(total)
	}
	amounts := allocate(numerators, hundred, total, c.scale)

	return buildShares(participants, amounts, percents), nil
}

func checkParticipants(participants []Participant) error {
	seen := make(map[string]struct{}, len(participants))
	for _, participant := range participants {
		if participant.UserID == "" {
			return invalid(ErrMissingField)
		}
		if _, ok := seen[participant.UserID]; ok {
			return invalidFor(ErrDuplicateParticipant, participant.UserID)
		}
		seen[participant.UserID] = struct{}{}
	}
	return nil
}

func buildShares(participants []Participant, amounts, percents []decimal.Decimal) []Share {
	shares := make([]Share, len(participants))
	for i, participant := range participants {
		shares[i] = Share{
			UserID:     participant.UserID,
			AmountOwed: amounts[i],
			Percentage: percents[i],
		}
	}
	return shares
}

func repeat(value decimal.Decimal, n int) []decimal.Decimal {
	values := make([]decimal.Decimal, n)
	for i := range values {
		values[i] = value
	}
	return values
}

func fits(value decimal.Decimal, scale int32) bool {
	return value.Equal(value.Truncate(scale))
}
