package domain

// UserProfile is the subset of a user document the dispatcher reads. The
// users table is owned by another system.
type UserProfile struct {
	UserID       string `json:"userId" dynamodbav:"userId"`
	FCMToken     string `json:"fcmToken" dynamodbav:"fcmToken"`
	FCMTokeniPad string `json:"fcmTokeniPad" dynamodbav:"fcmTokeniPad"`
}

// DeviceTokens returns the push tokens to deliver to, primary first.
// The iPad token is included only when set.
func (u *UserProfile) DeviceTokens() []string {
	if u.FCMToken == "" {
		return nil
	}
	tokens := []string{u.FCMToken}
	if u.FCMTokeniPad != "" {
		tokens = append(tokens, u.FCMTokeniPad)
	}
	return tokens
}
