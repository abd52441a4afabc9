package api

import (
	// Go Internal Packages
	"context"
	"encoding/json"
	"net/http"

	// Local Packages
	errors "tx-guard/errors"
	models "tx-guard/models"
	transactions "tx-guard/services/transactions"

	// External Packages
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type TransactionCreator interface {
	Create(ctx context.Context, input transactions.CreateTransactionInput, meta transactions.RequestMetadata) (models.TransactionView, error)
}

type TransactionQueries interface {
	GetTransaction(ctx context.Context, externalID string) (models.TransactionView, error)
	TransferTypes(ctx context.Context) ([]models.TransferType, error)
	Statuses(ctx context.Context) ([]models.TransactionStatus, error)
}

type Handler struct {
	Creator TransactionCreator
	Queries TransactionQueries
	Logger  *zap.Logger
}

func NewHandler(creator TransactionCreator, queries TransactionQueries, logger *zap.Logger) *Handler {
	return &Handler{Creator: creator, Queries: queries, Logger: logger}
}

// CreateTransaction handles POST /transactions
func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var input transactions.CreateTransactionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.writeError(w, r, errors.InvalidBodyErr(err))
		return
	}

	view, err := h.Creator.Create(r.Context(), input, requestMetadata(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, view)
}

// GetTransaction handles GET /transactions/{id}
func (h *Handler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	view, err := h.Queries.GetTransaction(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, view)
}

func (h *Handler) ListTransferTypes(w http.ResponseWriter, r *http.Request) {
	tts, err := h.Queries.TransferTypes(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, tts)
}

func (h *Handler) ListStatuses(w http.ResponseWriter, r *http.Request) {
	statuses, err := h.Queries.Statuses(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, statuses)
}

func Health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func requestMetadata(r *http.Request) transactions.RequestMetadata {
	return transactions.RequestMetadata{
		Authorization: r.Header.Get("Authorization"),
		RequestID:     r.Header.Get("Request-ID"),
		RequestDate:   r.Header.Get("Request-Date"),
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.Logger.Warn("failed to write response", zap.Error(err))
	}
}
