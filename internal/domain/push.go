package domain

// PushMessage is a platform-neutral push payload. The SNS sender renders it
// into FCM and APNs documents.
type PushMessage struct {
	Title   string
	Body    string
	Data    map[string]string
	Android AndroidOptions
	APNS    APNSOptions
}

type AndroidOptions struct {
	Priority  string
	Sound     string
	ChannelID string
}

type APNSOptions struct {
	Sound string
}
