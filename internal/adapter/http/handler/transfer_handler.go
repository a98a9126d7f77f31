package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/payrail/payrail/internal/adapter/http/dto"
	"github.com/payrail/payrail/internal/adapter/http/middleware"
	"github.com/payrail/payrail/internal/domain"
	"github.com/payrail/payrail/internal/usecase"
)

// TransferService defines the behavior needed by TransferHandler.
type TransferService interface {
	Send(ctx context.Context, input usecase.SendInput) (*domain.Transfer, error)
	ListTransfers(ctx context.Context, input usecase.ListTransfersInput) ([]*domain.Transfer, int64, error)
	GetTransfer(ctx context.Context, viewerID, reference string) (*domain.Transfer, error)
}

// TransferHandler handles transfer-related HTTP requests.
type TransferHandler struct {
	transferUC TransferService
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(transferUC TransferService) *TransferHandler {
	return &TransferHandler{transferUC: transferUC}
}

// Send moves money from the authenticated user to another user.
func (h *TransferHandler) Send(w http.ResponseWriter, r *http.Request) {
	sender, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.SendTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	transfer, err := h.transferUC.Send(r.Context(), req.ToUseCaseInput(sender.ID))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to send transfer", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.TransferFromDomain(transfer))
}

// List lists the authenticated user's transfers, newest first. An
// optional date range is half-open: from is inclusive, to exclusive.
func (h *TransferHandler) List(w http.ResponseWriter, r *http.Request) {
	viewer, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	req := dto.ListTransfersRequest{
		From:   parseTimeQuery(r, "from"),
		To:     parseTimeQuery(r, "to"),
		Limit:  parseIntQuery(r, "limit", 20),
		Offset: parseIntQuery(r, "offset", 0),
	}

	transfers, total, err := h.transferUC.ListTransfers(r.Context(), req.ToUseCaseInput(viewer.ID))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list transfers", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransferListResponse{
		Transfers: dto.TransfersFromDomain(transfers),
		Total:     total,
		Limit:     req.Limit,
		Offset:    req.Offset,
	})
}

// Get retrieves one of the authenticated user's transfers by reference.
func (h *TransferHandler) Get(w http.ResponseWriter, r *http.Request) {
	viewer, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	reference := chi.URLParam(r, "reference")
	if reference == "" {
		writeError(w, http.StatusBadRequest, "missing transfer reference", "")
		return
	}

	transfer, err := h.transferUC.GetTransfer(r.Context(), viewer.ID, reference)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get transfer", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.TransferFromDomain(transfer))
}
