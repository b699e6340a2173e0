package sns

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/nyssa-notify/internal/config"
	"github.com/nyssa-notify/internal/domain"
)

// API is the subset of *sns.Client the push sender calls.
type API interface {
	CreatePlatformEndpoint(ctx context.Context, in *sns.CreatePlatformEndpointInput, optFns ...func(*sns.Options)) (*sns.CreatePlatformEndpointOutput, error)
	Publish(ctx context.Context, in *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// PushSender delivers push messages to device tokens through an SNS
// platform application (FCM and APNs credentials live on the application).
type PushSender struct {
	client         API
	applicationARN string
}

func NewPushSender(client API, applicationARN string) *PushSender {
	return &PushSender{client: client, applicationARN: applicationARN}
}

// NewClient creates an SNS client for cfg.SNSRegion, honouring the LocalStack
// endpoint override.
func NewClient(ctx context.Context, cfg *config.Config) (*sns.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.SNSRegion),
	}
	if cfg.AWSAccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config for SNS: %w", err)
	}
	clientOpts := []func(*sns.Options){}
	if cfg.AWSEndpointURL != "" {
		clientOpts = append(clientOpts, func(o *sns.Options) {
			o.BaseEndpoint = aws.String(cfg.AWSEndpointURL)
		})
	}
	return sns.NewFromConfig(awsCfg, clientOpts...), nil
}

// Send registers token as a platform endpoint and publishes msg to it.
// CreatePlatformEndpoint returns the existing endpoint for a known token.
func (s *PushSender) Send(ctx context.Context, token string, msg domain.PushMessage) error {
	if token == "" {
		return errors.New("push: empty device token")
	}
	ep, err := s.client.CreatePlatformEndpoint(ctx, &sns.CreatePlatformEndpointInput{
		PlatformApplicationArn: aws.String(s.applicationARN),
		Token:                  aws.String(token),
	})
	if err != nil {
		return fmt.Errorf("push: register endpoint: %w", err)
	}
	body, err := renderMessage(msg)
	if err != nil {
		return err
	}
	_, err = s.client.Publish(ctx, &sns.PublishInput{
		TargetArn:        ep.EndpointArn,
		Message:          aws.String(body),
		MessageStructure: aws.String("json"),
	})
	if err != nil {
		return fmt.Errorf("push: publish: %w", err)
	}
	return nil
}

type fcmMessage struct {
	Notification fcmNotification   `json:"notification"`
	Data         map[string]string `json:"data,omitempty"`
	Android      fcmAndroid        `json:"android"`
	APNS         fcmAPNS           `json:"apns"`
}

type fcmNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type fcmAndroid struct {
	Priority     string                 `json:"priority"`
	Notification fcmAndroidNotification `json:"notification"`
}

type fcmAndroidNotification struct {
	Sound                string `json:"sound,omitempty"`
	ChannelID            string `json:"channel_id,omitempty"`
	NotificationPriority string `json:"notification_priority,omitempty"`
}

type fcmAPNS struct {
	Payload apnsPayload `json:"payload"`
}

type apnsPayload struct {
	APS apsDict `json:"aps"`
}

type apsDict struct {
	Alert *apsAlert `json:"alert,omitempty"`
	Sound string    `json:"sound,omitempty"`
}

type apsAlert struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// renderMessage builds the per-protocol JSON document SNS expects when
// MessageStructure is "json": a "default" body plus GCM (FCM v1) and APNS.
func renderMessage(msg domain.PushMessage) (string, error) {
	fcm := fcmMessage{
		Notification: fcmNotification{Title: msg.Title, Body: msg.Body},
		Data:         msg.Data,
		Android: fcmAndroid{
			Priority: msg.Android.Priority,
			Notification: fcmAndroidNotification{
				Sound:     msg.Android.Sound,
				ChannelID: msg.Android.ChannelID,
			},
		},
		APNS: fcmAPNS{Payload: apnsPayload{APS: apsDict{Sound: msg.APNS.Sound}}},
	}
	if msg.Android.Priority == "high" {
		fcm.Android.Notification.NotificationPriority = "PRIORITY_HIGH"
	}
	gcm, err := json.Marshal(map[string]interface{}{
		"fcmV1Message": map[string]interface{}{"message": fcm},
	})
	if err != nil {
		return "", fmt.Errorf("push: encode GCM payload: %w", err)
	}

	apns := map[string]interface{}{
		"aps": apsDict{
			Alert: &apsAlert{Title: msg.Title, Body: msg.Body},
			Sound: msg.APNS.Sound,
		},
	}
	for k, v := range msg.Data {
		if k != "aps" {
			apns[k] = v
		}
	}
	apnsJSON, err := json.Marshal(apns)
	if err != nil {
		return "", fmt.Errorf("push: encode APNS payload: %w", err)
	}

	out, err := json.Marshal(map[string]string{
		"default": msg.Body,
		"GCM":     string(gcm),
		"APNS":    string(apnsJSON),
	})
	if err != nil {
		return "", fmt.Errorf("push: encode message: %w", err)
	}
	return string(out), nil
}
