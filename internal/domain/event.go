package domain

import (
	"strings"
	"time"
)

// ChangeEvent is the transport-neutral form of a "document created" trigger.
// Field names follow the CloudEvents attribute names.
type ChangeEvent struct {
	ID      string    `json:"id" dynamodbav:"id"`
	Source  string    `json:"source" dynamodbav:"source"`
	Type    string    `json:"type" dynamodbav:"type"`
	Subject string    `json:"subject,omitempty" dynamodbav:"subject"`
	Time    time.Time `json:"time,omitempty" dynamodbav:"time"`
	Data    string    `json:"data,omitempty" dynamodbav:"data"`
}

// DocumentID returns the last path segment of the subject. It is "" when the
// event has no subject or the subject ends with a slash.
func (e ChangeEvent) DocumentID() string {
	return e.Subject[strings.LastIndex(e.Subject, "/")+1:]
}
