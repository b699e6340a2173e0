package domain

import "time"

// ErrorRecord is an append-only entry in the errors table describing a failed
// dispatch together with the event that triggered it.
type ErrorRecord struct {
	ID           string      `json:"id" dynamodbav:"id"`
	FunctionName string      `json:"functionName" dynamodbav:"functionName"`
	Message      string      `json:"message" dynamodbav:"message"`
	Event        ChangeEvent `json:"event" dynamodbav:"event"`
	CreatedAt    time.Time   `json:"createdAt" dynamodbav:"createdAt"`
}
