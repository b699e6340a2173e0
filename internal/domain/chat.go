package domain

// ChatRequest is the inbound chat relay body. Only userId and tenantId are
// enforced; the remaining fields have defaults.
type ChatRequest struct {
	UserID   string `json:"userId" validate:"required"`
	TenantID string `json:"tenantId" validate:"required"`
	Prompt   string `json:"prompt"`
	ImageURL string `json:"imageUrl"`
	ThreadID string `json:"threadId"`
	GroupID  string `json:"groupId"`
}

// ChatResult is what the relay returns to its caller on success.
type ChatResult struct {
	Success        bool   `json:"success"`
	ThreadID       string `json:"threadId"`
	Response       string `json:"response"`
	NotificationID string `json:"notificationId"`
}
