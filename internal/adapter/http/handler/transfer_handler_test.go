package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/verax/ledger/internal/adapter/http/dto"
	"github.com/verax/ledger/internal/domain"
)

type transferServiceStub struct {
	transferFn func(ctx context.Context, originID, destinationID string, amount int64) error
}

func (s *transferServiceStub) Transfer(ctx context.Context, originID, destinationID string, amount int64) error {
	return s.transferFn(ctx, originID, destinationID, amount)
}

func TestTransferHandler_Create_Success(t *testing.T) {
	var gotOrigin, gotDest string
	var gotAmount int64

	h := NewTransferHandler(&transferServiceStub{
		transferFn: func(ctx context.Context, originID, destinationID string, amount int64) error {
			gotOrigin, gotDest, gotAmount = originID, destinationID, amount
			return nil
		},
	})

	body, _ := json.Marshal(dto.TransferRequest{OriginID: "origin", DestinationID: "destination", Amount: 200})
	req := httptest.NewRequest(http.MethodPost, "/transfers", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotOrigin != "origin" || gotDest != "destination" || gotAmount != 200 {
		t.Fatalf("expected transfer of 200 from origin to destination, got %d from %q to %q", gotAmount, gotOrigin, gotDest)
	}
}

func TestTransferHandler_Create_MissingFields(t *testing.T) {
	h := NewTransferHandler(&transferServiceStub{
		transferFn: func(ctx context.Context, originID, destinationID string, amount int64) error {
			t.Fatal("service must not be called")
			return nil
		},
	})

	body, _ := json.Marshal(dto.TransferRequest{OriginID: "origin", Amount: 200})
	req := httptest.NewRequest(http.MethodPost, "/transfers", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestTransferHandler_Create_DomainErrors(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{
			name:           "insufficient funds",
			err:            domain.NewError(domain.KindTransferInsufficientFunds, "insufficient funds"),
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:           "invalid destination",
			err:            domain.NewError(domain.KindTransferInvalidDestination, "invalid target account"),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "origin not found",
			err:            domain.NewError(domain.KindAccountNotFound, "account not found"),
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "storage failure",
			err:            domain.StorageError("update account", context.DeadlineExceeded),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewTransferHandler(&transferServiceStub{
				transferFn: func(ctx context.Context, originID, destinationID string, amount int64) error {
					return tt.err
				},
			})

			body, _ := json.Marshal(dto.TransferRequest{OriginID: "origin", DestinationID: "destination", Amount: 200})
			req := httptest.NewRequest(http.MethodPost, "/transfers", bytes.NewReader(body))
			rec := httptest.NewRecorder()

			h.Create(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Fatalf("expected %d, got %d", tt.expectedStatus, rec.Code)
			}
		})
	}
}
