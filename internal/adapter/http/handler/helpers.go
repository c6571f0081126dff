package handler

import (
	"encoding/json"
	"net/http"

	"github.com/verax/ledger/internal/adapter/http/dto"
	"github.com/verax/ledger/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response, carrying the domain error code when
// err is a domain error.
func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := dto.ErrorResponse{Error: message}
	if err != nil {
		resp.Code = string(domain.KindOf(err))
		resp.Message = err.Error()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

// mapDomainError maps domain error kinds to HTTP status codes.
func mapDomainError(err error) int {
	switch domain.KindOf(err) {
	case domain.KindAccountNotFound:
		return http.StatusNotFound
	case domain.KindAccountAlreadyExists:
		return http.StatusConflict
	case domain.KindAccountInvalid,
		domain.KindAmountInvalid,
		domain.KindTransferInvalidDestination:
		return http.StatusBadRequest
	case domain.KindTransferInsufficientFunds:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
