package dispatch

import (
	"strconv"

	"github.com/nyssa-notify/internal/domain"
)

// ComposePush builds the push payload for n: the notification type is the
// title, the message the body, and the data block repeats the fields the
// client app routes on. Booleans are sent as "true"/"false".
func ComposePush(n *domain.Notification) domain.PushMessage {
	return domain.PushMessage{
		Title: n.Type,
		Body:  n.Message,
		Data: map[string]string{
			"deeplink":  n.Deeplink,
			"tenantId":  n.TenantID,
			"type":      n.Type,
			"category":  n.Category,
			"isUrgent":  strconv.FormatBool(n.IsUrgent),
			"isOffline": strconv.FormatBool(n.IsOffline),
			"message":   n.Message,
		},
		Android: domain.AndroidOptions{
			Priority:  "high",
			Sound:     "default",
			ChannelID: "default",
		},
		APNS: domain.APNSOptions{Sound: "default"},
	}
}
