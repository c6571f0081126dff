package dto

import "github.com/verax/ledger/internal/usecase"

// ErrorResponse represents an API error. Code carries the machine-readable
// domain error code when one applies.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// AccountResponse represents a created account.
type AccountResponse struct {
	AccountID string `json:"account_id"`
}

// BalanceResponse represents an account balance query result.
type BalanceResponse struct {
	AccountID string `json:"account_id"`
	Balance   int64  `json:"balance"`
	Formatted string `json:"formatted"`
	Deposits  int64  `json:"deposits"`
	Transfers int64  `json:"transfers"`
}

// BalanceFromOutput converts a use case balance result to a response.
func BalanceFromOutput(out *usecase.BalanceOutput) *BalanceResponse {
	return &BalanceResponse{
		AccountID: out.AccountID,
		Balance:   out.Balance,
		Formatted: out.Formatted,
		Deposits:  out.Deposits,
		Transfers: out.Transfers,
	}
}

// StatusResponse acknowledges a mutation that returns no body of its own.
type StatusResponse struct {
	Status string `json:"status"`
}
