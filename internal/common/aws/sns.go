// internal/common/aws/sns.go
package aws

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
	"golang.org/x/time/rate"
)

// SNSAPI is the part of the SNS client the SMS sender uses.
type SNSAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

func NewSNSClient(cfg awssdk.Config) *sns.Client {
	return sns.NewFromConfig(cfg)
}

// SMSSender publishes transactional SMS through SNS, throttled by a token bucket.
type SMSSender struct {
	api      SNSAPI
	senderID string
	limiter  *rate.Limiter
}

func NewSMSSender(api SNSAPI, senderID string, perSecond float64, burst int) *SMSSender {
	return &SMSSender{
		api:      api,
		senderID: senderID,
		limiter:  rate.NewLimiter(rate.Limit(perSecond), burst),
	}
}

// Send waits for a token, then publishes text to phone and returns the message id.
func (s *SMSSender) Send(ctx context.Context, phone, text string) (string, error) {
	if phone == "" {
		return "", ErrNoRecipient
	}
	if err := s.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("sms rate limit: %w", err)
	}

	attrs := map[string]types.MessageAttributeValue{
		"AWS.SNS.SMS.SMSType": {DataType: awssdk.String("String"), StringValue: awssdk.String("Transactional")},
	}
	if s.senderID != "" {
		attrs["AWS.SNS.SMS.SenderID"] = types.MessageAttributeValue{
			DataType:    awssdk.String("String"),
			StringValue: awssdk.String(s.senderID),
		}
	}

	out, err := s.api.Publish(ctx, &sns.PublishInput{
		PhoneNumber:       awssdk.String(phone),
		Message:           awssdk.String(text),
		MessageAttributes: attrs,
	})
	if err != nil {
		return "", fmt.Errorf("sns publish: %w", err)
	}
	return awssdk.ToString(out.MessageId), nil
}
