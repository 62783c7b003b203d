package handler

import (
	"errors"
	"net/http"
	"strings"

	userdomain "expense-ledger-go/internal/domain/user"
	"expense-ledger-go/internal/transport/httpserver/middleware"
)

type registerRequest struct {
	Email        string `json:"email" validate:"required,email,max=255"`
	Name         string `json:"name" validate:"required,max=255"`
	MobileNumber string `json:"mobile_number" validate:"omitempty,max=15"`
	Password     string `json:"password" validate:"required,min=8,max=72"`
}

type tokenRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func (h *Handlers) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if msg := h.validator.Struct(req); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", msg)
		return
	}

	user, err := h.Users.Register(r.Context(), userdomain.RegisterInput{
		Email:        req.Email,
		Name:         req.Name,
		MobileNumber: req.MobileNumber,
		Password:     req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, userdomain.ErrEmailTaken):
			h.logger(r).BusinessError("users.register: email taken", err)
			writeError(w, http.StatusConflict, "email_taken", err.Error())
		case errors.Is(err, userdomain.ErrWeakPassword):
			writeError(w, http.StatusUnprocessableEntity, "validation_error", err.Error())
		default:
			h.logger(r).InternalError("users.register: register failed", err)
			writeInternalError(w)
		}
		return
	}

	writeJSON(w, http.StatusCreated, toUserResponse(*user))
}

// IssueToken accepts the OAuth2 password form (username, password) or the
// same fields as JSON.
func (h *Handlers) IssueToken(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "invalid form body")
			return
		}
		req.Username = r.PostForm.Get("username")
		req.Password = r.PostForm.Get("password")
	}
	if msg := h.validator.Struct(req); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", msg)
		return
	}

	user, err := h.Users.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, userdomain.ErrInvalidCredentials) {
			h.logger(r).BusinessError("auth.token: invalid credentials", err)
			w.Header().Set("WWW-Authenticate", "Bearer")
			writeError(w, http.StatusUnauthorized, "invalid_credentials", err.Error())
			return
		}
		h.logger(r).InternalError("auth.token: authenticate failed", err)
		writeInternalError(w)
		return
	}

	token, err := h.Tokens.Generate(user.ID, user.Email)
	if err != nil {
		h.logger(r).InternalError("auth.token: sign failed", err, "user_id", user.ID)
		writeInternalError(w)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (h *Handlers) AuthMe(w http.ResponseWriter, r *http.Request) {
	current, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	user, err := h.Users.GetUser(r.Context(), current.ID)
	if err != nil {
		h.logger(r).InternalError("auth.me: get user failed", err, "user_id", current.ID)
		writeInternalError(w)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(*user))
}

func (h *Handlers) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := uuidParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid user id")
		return
	}

	user, err := h.Users.GetUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, userdomain.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "user_not_found", "user not found")
			return
		}
		h.logger(r).InternalError("users.get: get user failed", err, "user_id", userID)
		writeInternalError(w)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(*user))
}
