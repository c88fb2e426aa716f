// internal/common/aws/aws_test.go
package aws

import (
	"context"
	"errors"
	"testing"
	"time"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"career-workers/internal/common/logger"
)

type mockSES struct {
	mock.Mock
}

func (m *mockSES) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*ses.SendEmailOutput)
	return out, args.Error(1)
}

type mockSNS struct {
	mock.Mock
}

func (m *mockSNS) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*sns.PublishOutput)
	return out, args.Error(1)
}

// ==========================
// Mailer Tests
// ==========================

func TestMailer_Send(t *testing.T) {
	api := new(mockSES)
	api.On("SendEmail", mock.Anything, mock.MatchedBy(func(in *ses.SendEmailInput) bool {
		return awssdk.ToString(in.Source) == "reports@careers.example" &&
			in.Destination.ToAddresses[0] == "student@example.com" &&
			awssdk.ToString(in.Message.Subject.Data) == "Your career report" &&
			awssdk.ToString(in.Message.Body.Text.Data) == "body"
	})).Return(&ses.SendEmailOutput{MessageId: awssdk.String("msg-1")}, nil)

	m := NewMailer(api, "reports@careers.example", BreakerSettings{MaxFailures: 3, OpenTimeout: time.Minute}, logger.NewTestLogger(t))
	id, err := m.Send(context.Background(), "student@example.com", "Your career report", "body")
	require.NoError(t, err)
	assert.Equal(t, "msg-1", id)
	api.AssertExpectations(t)
}

func TestMailer_NoRecipient(t *testing.T) {
	m := NewMailer(new(mockSES), "from@x", BreakerSettings{MaxFailures: 1}, logger.NewNoOpLogger())
	_, err := m.Send(context.Background(), "", "s", "b")
	assert.ErrorIs(t, err, ErrNoRecipient)
}

func TestMailer_BreakerOpens(t *testing.T) {
	api := new(mockSES)
	api.On("SendEmail", mock.Anything, mock.Anything).Return(nil, errors.New("throttled")).Times(2)

	m := NewMailer(api, "from@x", BreakerSettings{MaxFailures: 2, OpenTimeout: time.Minute}, logger.NewTestLogger(t))
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := m.Send(ctx, "a@b.c", "s", "b")
		require.Error(t, err)
	}
	assert.Equal(t, "open", m.State())

	_, err := m.Send(ctx, "a@b.c", "s", "b")
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	api.AssertNumberOfCalls(t, "SendEmail", 2)
}

// ==========================
// SMS Tests
// ==========================

func TestSMSSender_Send(t *testing.T) {
	api := new(mockSNS)
	api.On("Publish", mock.Anything, mock.MatchedBy(func(in *sns.PublishInput) bool {
		_, hasSender := in.MessageAttributes["AWS.SNS.SMS.SenderID"]
		return awssdk.ToString(in.PhoneNumber) == "+919900000000" && hasSender
	})).Return(&sns.PublishOutput{MessageId: awssdk.String("sms-1")}, nil)

	s := NewSMSSender(api, "CAREER", 10, 1)
	id, err := s.Send(context.Background(), "+919900000000", "report ready")
	require.NoError(t, err)
	assert.Equal(t, "sms-1", id)
	api.AssertExpectations(t)
}

func TestSMSSender_RateLimitHonoursContext(t *testing.T) {
	api := new(mockSNS)
	api.On("Publish", mock.Anything, mock.Anything).Return(&sns.PublishOutput{MessageId: awssdk.String("sms")}, nil)

	s := NewSMSSender(api, "", 0.001, 1)
	_, err := s.Send(context.Background(), "+1", "first")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = s.Send(ctx, "+1", "second")
	assert.Error(t, err)
	api.AssertNumberOfCalls(t, "Publish", 1)
}

func TestSMSSender_PublishError(t *testing.T) {
	api := new(mockSNS)
	api.On("Publish", mock.Anything, mock.Anything).Return(nil, errors.New("opted out"))

	_, err := NewSMSSender(api, "", 10, 1).Send(context.Background(), "+1", "x")
	assert.ErrorContains(t, err, "opted out")

	_, err = NewSMSSender(api, "", 10, 1).Send(context.Background(), "", "x")
	assert.ErrorIs(t, err, ErrNoRecipient)
}
