package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/verax/ledger/internal/adapter/http/dto"
)

// TransferService defines the behavior needed by TransferHandler.
type TransferService interface {
	Transfer(ctx context.Context, originID, destinationID string, amount int64) error
}

// TransferHandler handles transfer-related HTTP requests.
type TransferHandler struct {
	transferUC TransferService
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(transferUC TransferService) *TransferHandler {
	return &TransferHandler{transferUC: transferUC}
}

// Create executes a transfer between two accounts.
func (h *TransferHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if msg := req.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg, nil)
		return
	}

	if err := h.transferUC.Transfer(r.Context(), req.OriginID, req.DestinationID, req.Amount); err != nil {
		writeError(w, mapDomainError(err), "failed to transfer", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.StatusResponse{Status: "transferred"})
}
