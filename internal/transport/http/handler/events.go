package handler

import (
	"encoding/json"
	"net/http"

	"github.com/nyssa-notify/internal/domain"
	"github.com/nyssa-notify/internal/transport/stream"
	"go.uber.org/zap"
)

const maxEventBody = 1 << 20

// EventHandler accepts structured-mode CloudEvents pushed over HTTP, the
// dispatcher's trigger when it runs outside Lambda.
type EventHandler struct {
	svc stream.Dispatcher
	log *zap.Logger
}

func NewEventHandler(svc stream.Dispatcher, log *zap.Logger) *EventHandler {
	return &EventHandler{svc: svc, log: log}
}

type cloudEvent struct {
	domain.ChangeEvent
	RawData json.RawMessage `json:"data,omitempty"`
}

// Receive acknowledges every decodable event with 204, whatever the dispatch
// outcome, so the sender does not redeliver.
func (h *EventHandler) Receive(w http.ResponseWriter, r *http.Request) {
	var ce cloudEvent
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxEventBody)).Decode(&ce); err != nil {
		writeError(w, http.StatusBadRequest, "invalid cloud event")
		return
	}
	ev := ce.ChangeEvent
	ev.Data = string(ce.RawData)
	if ev.Subject == "" {
		ev.Subject = r.Header.Get("Ce-Subject")
	}
	outcome := h.svc.Dispatch(r.Context(), ev)
	h.log.Debug("event dispatched", zap.String("eventId", ev.ID), zap.String("outcome", string(outcome)))
	w.WriteHeader(http.StatusNoContent)
}
