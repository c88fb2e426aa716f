// internal/common/aws/ses.go
package aws

import (
	"context"
	"errors"
	"fmt"
	"time"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/sony/gobreaker/v2"

	"career-workers/internal/common/logger"
)

var ErrNoRecipient = errors.New("recipient is required")

// SESAPI is the part of the SES client the mailer uses.
type SESAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// LoadConfig loads the default AWS credential chain for region.
func LoadConfig(ctx context.Context, region string) (awssdk.Config, error) {
	return config.LoadDefaultConfig(ctx, config.WithRegion(region))
}

func NewSESClient(cfg awssdk.Config) *ses.Client {
	return ses.NewFromConfig(cfg)
}

// BreakerSettings configures the circuit breaker in front of SES.
type BreakerSettings struct {
	MaxFailures uint32
	OpenTimeout time.Duration
	Interval    time.Duration
}

// Mailer sends plain-text emails through SES behind a circuit breaker.
type Mailer struct {
	api    SESAPI
	from   string
	cb     *gobreaker.CircuitBreaker[*ses.SendEmailOutput]
	logger logger.Logger
}

func NewMailer(api SESAPI, from string, bs BreakerSettings, log logger.Logger) *Mailer {
	settings := gobreaker.Settings{
		Name:        "ses-mailer",
		MaxRequests: 1,
		Interval:    bs.Interval,
		Timeout:     bs.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= bs.MaxFailures
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warn("circuit breaker state changed", map[string]interface{}{
				"name": name,
				"from": from.String(),
				"to":   to.String(),
			})
		},
	}
	return &Mailer{
		api:    api,
		from:   from,
		cb:     gobreaker.NewCircuitBreaker[*ses.SendEmailOutput](settings),
		logger: log,
	}
}

// Send delivers one email and returns the SES message id.
func (m *Mailer) Send(ctx context.Context, to, subject, body string) (string, error) {
	if to == "" {
		return "", ErrNoRecipient
	}

	input := &ses.SendEmailInput{
		Source:      awssdk.String(m.from),
		Destination: &types.Destination{ToAddresses: []string{to}},
		Message: &types.Message{
			Subject: &types.Content{Data: awssdk.String(subject), Charset: awssdk.String("UTF-8")},
			Body: &types.Body{
				Text: &types.Content{Data: awssdk.String(body), Charset: awssdk.String("UTF-8")},
			},
		},
	}

	out, err := m.cb.Execute(func() (*ses.SendEmailOutput, error) {
		return m.api.SendEmail(ctx, input)
	})
	if err != nil {
		return "", fmt.Errorf("ses send: %w", err)
	}
	return awssdk.ToString(out.MessageId), nil
}

// State reports the breaker state, e.g. "closed" or "open".
func (m *Mailer) State() string {
	return m.cb.State().String()
}
