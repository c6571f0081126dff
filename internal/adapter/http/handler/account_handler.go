package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/verax/ledger/internal/adapter/http/dto"
	"github.com/verax/ledger/internal/usecase"
)

// AccountService defines the behavior needed by AccountHandler.
type AccountService interface {
	CreateAccount(ctx context.Context, accountID string) error
	Deposit(ctx context.Context, accountID string, amount int64) error
	GetBalance(ctx context.Context, accountID string) (*usecase.BalanceOutput, error)
}

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	accountUC AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountUC AccountService) *AccountHandler {
	return &AccountHandler{accountUC: accountUC}
}

// Create creates a new account.
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if msg := req.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg, nil)
		return
	}

	if err := h.accountUC.CreateAccount(r.Context(), req.AccountID); err != nil {
		writeError(w, mapDomainError(err), "failed to create account", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.AccountResponse{AccountID: req.AccountID})
}

// Deposit adds funds to an account.
func (h *AccountHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", nil)
		return
	}

	var req dto.DepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if msg := req.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg, nil)
		return
	}

	if err := h.accountUC.Deposit(r.Context(), id, req.Amount); err != nil {
		writeError(w, mapDomainError(err), "failed to deposit", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.StatusResponse{Status: "deposited"})
}

// GetBalance retrieves an account's balance and transaction counts.
func (h *AccountHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", nil)
		return
	}

	out, err := h.accountUC.GetBalance(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get balance", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceFromOutput(out))
}
