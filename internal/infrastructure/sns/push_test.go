package sns

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/nyssa-notify/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSNS struct{ mock.Mock }

func (m *mockSNS) CreatePlatformEndpoint(ctx context.Context, in *sns.CreatePlatformEndpointInput, _ ...func(*sns.Options)) (*sns.CreatePlatformEndpointOutput, error) {
	args := m.Called(ctx, in)
	if out, _ := args.Get(0).(*sns.CreatePlatformEndpointOutput); out != nil {
		return out, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSNS) Publish(ctx context.Context, in *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	args := m.Called(ctx, in)
	if out, _ := args.Get(0).(*sns.PublishOutput); out != nil {
		return out, args.Error(1)
	}
	return nil, args.Error(1)
}

func sampleMessage() domain.PushMessage {
	return domain.PushMessage{
		Title: "Nyssa",
		Body:  "hello!",
		Data: map[string]string{
			"deeplink": "https://www.nysaa.ai/chat/G1",
			"isUrgent": "false",
			"message":  "hello!",
		},
		Android: domain.AndroidOptions{Priority: "high", Sound: "default", ChannelID: "default"},
		APNS:    domain.APNSOptions{Sound: "default"},
	}
}

func TestSend_RegistersEndpointAndPublishes(t *testing.T) {
	m := &mockSNS{}
	m.On("CreatePlatformEndpoint", mock.Anything, mock.MatchedBy(func(in *sns.CreatePlatformEndpointInput) bool {
		return *in.Token == "tok-1" && *in.PlatformApplicationArn == "arn:app"
	})).Return(&sns.CreatePlatformEndpointOutput{EndpointArn: aws.String("arn:endpoint")}, nil)
	m.On("Publish", mock.Anything, mock.MatchedBy(func(in *sns.PublishInput) bool {
		return *in.TargetArn == "arn:endpoint" && *in.MessageStructure == "json"
	})).Return(&sns.PublishOutput{}, nil)

	s := NewPushSender(m, "arn:app")
	require.NoError(t, s.Send(context.Background(), "tok-1", sampleMessage()))
	m.AssertExpectations(t)
}

func TestSend_EmptyToken(t *testing.T) {
	m := &mockSNS{}
	err := NewPushSender(m, "arn:app").Send(context.Background(), "", sampleMessage())
	assert.Error(t, err)
	m.AssertNotCalled(t, "CreatePlatformEndpoint", mock.Anything, mock.Anything)
}

func TestSend_EndpointFailure(t *testing.T) {
	m := &mockSNS{}
	m.On("CreatePlatformEndpoint", mock.Anything, mock.Anything).Return(nil, errors.New("invalid token"))
	err := NewPushSender(m, "arn:app").Send(context.Background(), "tok-1", sampleMessage())
	assert.ErrorContains(t, err, "invalid token")
	m.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestSend_PublishFailure(t *testing.T) {
	m := &mockSNS{}
	m.On("CreatePlatformEndpoint", mock.Anything, mock.Anything).Return(&sns.CreatePlatformEndpointOutput{EndpointArn: aws.String("arn:endpoint")}, nil)
	m.On("Publish", mock.Anything, mock.Anything).Return(nil, errors.New("endpoint disabled"))
	err := NewPushSender(m, "arn:app").Send(context.Background(), "tok-1", sampleMessage())
	assert.ErrorContains(t, err, "endpoint disabled")
}

func TestRenderMessage(t *testing.T) {
	out, err := renderMessage(sampleMessage())
	require.NoError(t, err)

	var envelope map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &envelope))
	assert.Equal(t, "hello!", envelope["default"])

	var gcm struct {
		FCMV1Message struct {
			Message struct {
				Notification struct{ Title, Body string } `json:"notification"`
				Data         map[string]string            `json:"data"`
				Android      struct {
					Priority     string `json:"priority"`
					Notification struct {
						Sound                string `json:"sound"`
						ChannelID            string `json:"channel_id"`
						NotificationPriority string `json:"notification_priority"`
					} `json:"notification"`
				} `json:"android"`
				APNS struct {
					Payload struct {
						APS struct {
							Sound string `json:"sound"`
						} `json:"aps"`
					} `json:"payload"`
				} `json:"apns"`
			} `json:"message"`
		} `json:"fcmV1Message"`
	}
	require.NoError(t, json.Unmarshal([]byte(envelope["GCM"]), &gcm))
	msg := gcm.FCMV1Message.Message
	assert.Equal(t, "Nyssa", msg.Notification.Title)
	assert.Equal(t, "hello!", msg.Notification.Body)
	assert.Equal(t, "https://www.nysaa.ai/chat/G1", msg.Data["deeplink"])
	assert.Equal(t, "high", msg.Android.Priority)
	assert.Equal(t, "default", msg.Android.Notification.Sound)
	assert.Equal(t, "default", msg.Android.Notification.ChannelID)
	assert.Equal(t, "PRIORITY_HIGH", msg.Android.Notification.NotificationPriority)
	assert.Equal(t, "default", msg.APNS.Payload.APS.Sound)

	var apns map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(envelope["APNS"]), &apns))
	aps := apns["aps"].(map[string]interface{})
	assert.Equal(t, "default", aps["sound"])
	assert.Equal(t, "false", apns["isUrgent"])
}
