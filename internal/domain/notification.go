package domain

import "time"

// NotificationStatusSent is written twice: by the chat relay when the record
// is created and again by the dispatcher after delivery.
const NotificationStatusSent = "sent"

type Notification struct {
	NotificationID string     `json:"notificationId" dynamodbav:"notificationId"`
	Category       string     `json:"category" dynamodbav:"category"`
	Type           string     `json:"type" dynamodbav:"type"`
	CreatedBy      string     `json:"createdBy" dynamodbav:"createdBy"`
	From           string     `json:"from" dynamodbav:"from"`
	UserID         string     `json:"userId" dynamodbav:"userId"`
	TenantID       string     `json:"tenantId" dynamodbav:"tenantId"`
	Message        string     `json:"message" dynamodbav:"message"`
	Deeplink       string     `json:"deeplink" dynamodbav:"deeplink"`
	IsUrgent       bool       `json:"isUrgent" dynamodbav:"isUrgent"`
	IsOffline      bool       `json:"isOffline" dynamodbav:"isOffline"`
	Status         string     `json:"status" dynamodbav:"status"`
	EditedBy       *string    `json:"editedBy" dynamodbav:"editedBy"`
	DateCreated    time.Time  `json:"dateCreated" dynamodbav:"dateCreated"`
	SentAt         *time.Time `json:"sentAt" dynamodbav:"sentAt"`
	DateEdited     *time.Time `json:"dateEdited" dynamodbav:"dateEdited"`
	ReadAt         *time.Time `json:"readAt" dynamodbav:"readAt"`
}

// Deliverable holds the fields a notification must carry before it can be
// pushed. Kept separate from Notification so records written by other systems
// with partial data still load.
type Deliverable struct {
	UserID  string `validate:"required"`
	Message string `validate:"required"`
	Type    string `validate:"required"`
}

func (n *Notification) Deliverable() Deliverable {
	return Deliverable{UserID: n.UserID, Message: n.Message, Type: n.Type}
}
