package split

import (
	"errors"
	"fmt"
)

var (
	ErrNoParticipants           = errors.New("no participants")
	ErrInsufficientParticipants = errors.New("insufficient participants")
	ErrMissingField             = errors.New("missing field")
	ErrSumMismatch              = errors.New("sum mismatch")
	ErrInvalidMethod            = errors.New("invalid method")
	ErrNonPositiveAmount        = errors.New("amount must be positive")
	ErrAmountOutOfRange         = errors.New("amount out of range")
	ErrDuplicateParticipant     = errors.New("duplicate participant")
	ErrNegativeValue            = errors.New("negative value")
	ErrInvalidPrecision         = errors.New("invalid precision")
)

var codes = map[error]string{
	ErrNoParticipants:           "no_participants",
	ErrInsufficientParticipants: "insufficient_participants",
	ErrMissingField:             "missing_field",
	ErrSumMismatch:              "sum_mismatch",
	ErrInvalidMethod:            "invalid_method",
	ErrNonPositiveAmount:        "non_positive_amount",
	ErrAmountOutOfRange:         "amount_out_of_range",
	ErrDuplicateParticipant:     "duplicate_participant",
	ErrNegativeValue:            "negative_value",
	ErrInvalidPrecision:         "invalid_precision",
}

// ValidationError is a caller-correctable rejection of an expense request.
// It unwraps to one of the Err* sentinels above.
type ValidationError struct {
	Err         error
	Participant string
}

func (e *ValidationError) Error() string {
	if e.Participant == "" {
		return e.Err.Error()
	}
	if e.Err == ErrDuplicateParticipant {
		return fmt.Sprintf("%s %s", e.Err, e.Participant)
	}
	return fmt.Sprintf("%s for participant %s", e.Err, e.Participant)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Code is a stable machine-readable identifier of the rejection reason.
func (e *ValidationError) Code() string {
	if code, ok := codes[e.Err]; ok {
		return code
	}
	return "validation_error"
}

// IsValidation reports whether err carries a ValidationError.
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

func invalid(err error) error {
	return &ValidationError{Err: err}
}

func invalidFor(err error, participant string) error {
	return &ValidationError{Err: err, Participant: participant}
}
