// internal/common/aws/sns.go
package aws

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
)

// PublishAPI is the part of the SNS client the publisher needs.
type PublishAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// FeedbackEvent describes a message the parser could not route, so the
// rule tables can be extended from real traffic.
type FeedbackEvent struct {
	CorrelationID  string    `json:"correlationId"`
	Text           string    `json:"text"`
	NormalizedText string    `json:"normalizedText"`
	Language       string    `json:"language"`
	IsMixed        bool      `json:"isMixed"`
	Reason         string    `json:"reason"`
	Timestamp      time.Time `json:"timestamp"`
}

type FeedbackPublisher struct {
	client   PublishAPI
	topicARN string
}

// NewFeedbackPublisher loads the default AWS credential chain for region.
func NewFeedbackPublisher(ctx context.Context, region, topicARN string) (*FeedbackPublisher, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewFeedbackPublisherWithClient(sns.NewFromConfig(cfg), topicARN), nil
}

func NewFeedbackPublisherWithClient(client PublishAPI, topicARN string) *FeedbackPublisher {
	return &FeedbackPublisher{client: client, topicARN: topicARN}
}

// Publish sends ev and returns the SNS message id.
func (p *FeedbackPublisher) Publish(ctx context.Context, ev FeedbackEvent) (string, error) {
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now().UTC()
	}
	body, err := json.Marshal(ev)
	if err != nil {
		return "", fmt.Errorf("encode feedback event: %w", err)
	}

	out, err := p.client.Publish(ctx, &sns.PublishInput{
		TopicArn: awssdk.String(p.topicARN),
		Message:  awssdk.String(string(body)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"eventType": {DataType: awssdk.String("String"), StringValue: awssdk.String("nlu.unrecognized_command")},
			"language":  {DataType: awssdk.String("String"), StringValue: awssdk.String(ev.Language)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("sns publish: %w", err)
	}
	return awssdk.ToString(out.MessageId), nil
}
