package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/nyssa-notify/internal/application/relay"
	"github.com/nyssa-notify/internal/domain"
	"github.com/nyssa-notify/internal/metrics"
	"go.uber.org/zap"
)

const maxChatBody = 1 << 20

// Response texts callers match on. The missing-parameters text names four
// fields although only userId and tenantId are required.
const (
	msgMethodNotAllowed  = "Method Not Allowed"
	msgInvalidBody       = "Invalid JSON body"
	msgMissingParameters = "Missing required parameters: userId, imageUrl, groupId, or tenantId"
	msgUpstreamInvalid   = "Failed to get a valid response from the LangChain API"
)

// ChatHandler relays chat prompts to the hosted chat service.
type ChatHandler struct {
	svc relay.Service
	log *zap.Logger
}

func NewChatHandler(svc relay.Service, log *zap.Logger) *ChatHandler {
	return &ChatHandler{svc: svc, log: log}
}

func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		metrics.RelayRequests.WithLabelValues(metrics.OutcomeRejected).Inc()
		writeText(w, http.StatusMethodNotAllowed, msgMethodNotAllowed)
		return
	}

	var req domain.ChatRequest
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxChatBody)).Decode(&req)
	if err != nil && !errors.Is(err, io.EOF) {
		metrics.RelayRequests.WithLabelValues(metrics.OutcomeRejected).Inc()
		writeText(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	res, err := h.svc.Chat(r.Context(), req)
	switch {
	case err == nil:
		metrics.RelayRequests.WithLabelValues(metrics.OutcomeSuccess).Inc()
		writeJSON(w, http.StatusOK, res)
	case errors.Is(err, domain.ErrBadRequest):
		metrics.RelayRequests.WithLabelValues(metrics.OutcomeRejected).Inc()
		writeText(w, http.StatusBadRequest, msgMissingParameters)
	case errors.Is(err, domain.ErrUpstream):
		metrics.RelayRequests.WithLabelValues(metrics.OutcomeFailed).Inc()
		h.log.Warn("chat api returned no valid response", zap.String("userId", req.UserID))
		writeText(w, http.StatusInternalServerError, msgUpstreamInvalid)
	default:
		metrics.RelayRequests.WithLabelValues(metrics.OutcomeFailed).Inc()
		h.log.Error("chat relay failed", zap.String("userId", req.UserID), zap.Error(err))
		writeText(w, http.StatusInternalServerError, "Error: "+err.Error())
	}
}
