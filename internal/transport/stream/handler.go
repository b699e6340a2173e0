package stream

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/nyssa-notify/internal/application/dispatch"
	"github.com/nyssa-notify/internal/domain"
	"go.uber.org/zap"
)

// Dispatcher handles one change event.
type Dispatcher interface {
	Dispatch(ctx context.Context, ev domain.ChangeEvent) dispatch.Outcome
}

// Handler adapts DynamoDB Streams batches delivered to Lambda into change
// events for the dispatcher. Only INSERT records are forwarded, so the
// dispatcher's own status update never triggers another pass.
type Handler struct {
	svc     Dispatcher
	keyName string
	log     *zap.Logger
}

func NewHandler(svc Dispatcher, keyName string, log *zap.Logger) *Handler {
	return &Handler{svc: svc, keyName: keyName, log: log}
}

// Handle processes the batch record by record and always succeeds, so Lambda
// never retries a batch.
func (h *Handler) Handle(ctx context.Context, e events.DynamoDBEvent) error {
	for _, rec := range e.Records {
		if rec.EventName != string(events.DynamoDBOperationTypeInsert) {
			h.log.Debug("ignoring stream record", zap.String("eventId", rec.EventID), zap.String("eventName", rec.EventName))
			continue
		}
		ev := ToChangeEvent(rec, h.keyName)
		outcome := h.svc.Dispatch(ctx, ev)
		h.log.Debug("stream record dispatched", zap.String("eventId", rec.EventID), zap.String("outcome", string(outcome)))
	}
	return nil
}

// ToChangeEvent builds a change event whose subject is
// "documents/<table>/<key>". The subject is empty when the record carries no
// string key named keyName.
func ToChangeEvent(rec events.DynamoDBEventRecord, keyName string) domain.ChangeEvent {
	ev := domain.ChangeEvent{
		ID:     rec.EventID,
		Source: rec.EventSourceArn,
		Type:   "aws.dynamodb." + strings.ToLower(rec.EventName),
		Time:   rec.Change.ApproximateCreationDateTime.Time,
	}
	if ev.Source == "" {
		ev.Source = rec.EventSource
	}
	if raw, err := json.Marshal(rec); err == nil {
		ev.Data = string(raw)
	}
	if key, ok := rec.Change.Keys[keyName]; ok && key.DataType() == events.DataTypeString && key.String() != "" {
		ev.Subject = "documents/" + tableFromARN(rec.EventSourceArn) + "/" + key.String()
	}
	return ev
}

// tableFromARN extracts the table name from a stream ARN such as
// arn:aws:dynamodb:us-east-1:123456789012:table/notifications/stream/2026-01-01T00:00:00.000.
func tableFromARN(arn string) string {
	_, rest, ok := strings.Cut(arn, ":table/")
	if !ok {
		return "table"
	}
	name, _, _ := strings.Cut(rest, "/")
	return name
}
