package handler

import (
	"errors"
	"net/http"

	expensesdomain "expense-ledger-go/internal/domain/expenses"
	"expense-ledger-go/internal/domain/split"
	"expense-ledger-go/internal/transport/httpserver/middleware"

	"github.com/shopspring/decimal"
)

type participantRequest struct {
	UserID     string           `json:"user_id" validate:"required,uuid"`
	AmountOwed *decimal.Decimal `json:"amount_owed"`
	Percentage *decimal.Decimal `json:"percentage"`
}

// createExpenseRequest takes the split entries as "participants"; "details"
// is accepted as an alias.
type createExpenseRequest struct {
	Amount       *decimal.Decimal     `json:"amount" validate:"required"`
	Method       string               `json:"method" validate:"required"`
	Description  string               `json:"description" validate:"max=500"`
	Participants []participantRequest `json:"participants" validate:"omitempty,dive"`
	Details      []participantRequest `json:"details" validate:"omitempty,dive"`
}

// normalize rewrites participant ids to canonical lowercase form so the uuid
// rule sees them the way storage will.
func (req *createExpenseRequest) normalize() {
	for i := range req.Participants {
		req.Participants[i].UserID = normalizeUUID(req.Participants[i].UserID)
	}
	for i := range req.Details {
		req.Details[i].UserID = normalizeUUID(req.Details[i].UserID)
	}
}

func (h *Handlers) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	req.normalize()
	if msg := h.validator.Struct(req); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", msg)
		return
	}

	method, err := split.ParseMethod(req.Method)
	if err != nil {
		h.writeSplitError(w, r, err, user.ID)
		return
	}

	entries := req.Participants
	if len(entries) == 0 {
		entries = req.Details
	}
	participants := make([]split.Participant, 0, len(entries))
	for _, entry := range entries {
		participants = append(participants, split.Participant{
			UserID:     entry.UserID,
			AmountOwed: entry.AmountOwed,
			Percentage: entry.Percentage,
		})
	}

	created, err := h.Expenses.CreateExpense(r.Context(), expensesdomain.CreateExpenseInput{
		UserID:       user.ID,
		Amount:       *req.Amount,
		Method:       method,
		Description:  req.Description,
		Participants: participants,
	})
	if err != nil {
		switch {
		case split.IsValidation(err):
			h.writeSplitError(w, r, err, user.ID)
		case errors.Is(err, expensesdomain.ErrParticipantNotFound):
			h.logger(r).BusinessError("expenses.create: participant not found", err, "user_id", user.ID)
			writeError(w, http.StatusNotFound, "participant_not_found", err.Error())
		default:
			h.logger(r).InternalError("expenses.create: create expense failed", err, "user_id", user.ID)
			writeInternalError(w)
		}
		return
	}

	writeJSON(w, http.StatusCreated, h.toExpenseResponse(*created))
}

func (h *Handlers) ListMyExpenses(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	items, err := h.Expenses.ListExpensesByUser(r.Context(), user.ID)
	if err != nil {
		h.logger(r).InternalError("expenses.list: list expenses failed", err, "user_id", user.ID)
		writeInternalError(w)
		return
	}

	writeJSON(w, http.StatusOK, h.toExpenseList(items))
}

// ListUserExpenses only serves the caller's own expenses.
func (h *Handlers) ListUserExpenses(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	userID, ok := uuidParam(r, "user_id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid user id")
		return
	}
	if userID != user.ID {
		writeError(w, http.StatusForbidden, "forbidden", "you do not have permission to access this user's expenses")
		return
	}

	items, err := h.Expenses.ListExpensesByUser(r.Context(), userID)
	if err != nil {
		h.logger(r).InternalError("expenses.list_user: list expenses failed", err, "user_id", userID)
		writeInternalError(w)
		return
	}

	writeJSON(w, http.StatusOK, h.toExpenseList(items))
}

func (h *Handlers) GetExpense(w http.ResponseWriter, r *http.Request) {
	expenseID, ok := uuidParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid expense id")
		return
	}

	expense, err := h.Expenses.GetExpense(r.Context(), expenseID)
	if err != nil {
		if errors.Is(err, expensesdomain.ErrExpenseNotFound) {
			writeError(w, http.StatusNotFound, "expense_not_found", "expense not found")
			return
		}
		h.logger(r).InternalError("expenses.get: get expense failed", err, "expense_id", expenseID)
		writeInternalError(w)
		return
	}

	writeJSON(w, http.StatusOK, h.toExpenseResponse(*expense))
}

func (h *Handlers) writeSplitError(w http.ResponseWriter, r *http.Request, err error, userID string) {
	var validationErr *split.ValidationError
	if !errors.As(err, &validationErr) {
		h.logger(r).InternalError("expenses.create: unexpected split error", err, "user_id", userID)
		writeInternalError(w)
		return
	}
	h.logger(r).BusinessError("expenses.create: rejected", err, "user_id", userID, "reason", validationErr.Code())
	writeError(w, http.StatusUnprocessableEntity, validationErr.Code(), validationErr.Error())
}
