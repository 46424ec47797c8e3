package notify

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dental-jobs/internal/common/logger"
	"dental-jobs/internal/models"
)

// ==========================
// Mock Services
// ==========================

type MockSESService struct {
	SendEmailFunc func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

func (m *MockSESService) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	return m.SendEmailFunc(ctx, params, optFns...)
}

type MockSNSService struct {
	PublishFunc func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

func (m *MockSNSService) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	return m.PublishFunc(ctx, params, optFns...)
}

type countingSink struct {
	name  string
	err   error
	calls atomic.Int32
}

func (s *countingSink) Name() string { return s.name }

func (s *countingSink) Deliver(ctx context.Context, n models.Notification) error {
	s.calls.Add(1)
	return s.err
}

// hangingSink blocks until its context ends.
type hangingSink struct {
	done chan error
}

func (s *hangingSink) Name() string { return "sns" }

func (s *hangingSink) Deliver(ctx context.Context, n models.Notification) error {
	<-ctx.Done()
	s.done <- ctx.Err()
	return ctx.Err()
}

func moved() models.Notification {
	return models.Notification{
		Level:     models.LevelSuccess,
		Message:   "Aisha has moved to Offer",
		Subject:   "a1",
		Operation: "move-candidate",
		CreatedAt: time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC),
	}
}

// ==========================
// Recorder & fan-out
// ==========================

func TestRecorder_FillsIDAndTime(t *testing.T) {
	r := NewRecorder()
	r.Notify(context.Background(), models.Notification{Message: "one"})
	r.Notify(context.Background(), models.Notification{ID: "fixed", Message: "two"})

	got := r.Notifications()
	require.Len(t, got, 2)
	assert.NotEmpty(t, got[0].ID)
	assert.False(t, got[0].CreatedAt.IsZero())
	assert.Equal(t, "fixed", got[1].ID)

	got[0].Message = "changed"
	assert.Equal(t, "one", r.Notifications()[0].Message)
}

func TestFanout_SkipsNil(t *testing.T) {
	a, b := NewRecorder(), NewRecorder()
	var d *Dispatcher

	assert.NotPanics(t, func() {
		Fanout{a, nil, d, b}.Notify(context.Background(), moved())
	})
	assert.Len(t, a.Notifications(), 1)
	assert.Len(t, b.Notifications(), 1)
}

func TestDispatcher_LevelFilterAndErrors(t *testing.T) {
	failing := &countingSink{name: "sns", err: errors.New("throttled")}
	ok := &countingSink{name: "email"}
	d := NewDispatcher(logger.NewTestLogger(t), []models.NotificationLevel{models.LevelSuccess}, failing, ok)

	d.Notify(context.Background(), moved())
	d.Notify(context.Background(), models.Notification{Level: models.LevelError, Message: "Failed to move Aisha. Please try again."})
	d.Wait()

	assert.Equal(t, int32(1), failing.calls.Load())
	assert.Equal(t, int32(1), ok.calls.Load())
	assert.True(t, d.Enabled())
	assert.False(t, NewDispatcher(logger.NewNoOpLogger(), nil).Enabled())
}

func TestDispatcher_DeliveryDetachedFromCaller(t *testing.T) {
	sink := &hangingSink{done: make(chan error, 1)}
	d := NewDispatcher(logger.NewTestLogger(t), nil, sink).WithTimeout(50 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	returned := make(chan struct{})
	go func() {
		d.Notify(ctx, moved())
		close(returned)
	}()

	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("Notify blocked on a hanging sink")
	}

	cancel()
	d.Wait()
	assert.ErrorIs(t, <-sink.done, context.DeadlineExceeded)
}

// ==========================
// AWS sinks
// ==========================

func TestSNSSink_Deliver(t *testing.T) {
	var published *sns.PublishInput
	client := &MockSNSService{
		PublishFunc: func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
			published = params
			return &sns.PublishOutput{}, nil
		},
	}

	err := NewSNSSink(client, "arn:aws:sns:ap-southeast-1:123:pipeline").Deliver(context.Background(), moved())
	require.NoError(t, err)
	require.NotNil(t, published)

	assert.Equal(t, "arn:aws:sns:ap-southeast-1:123:pipeline", *published.TopicArn)
	assert.Equal(t, "[success] move-candidate", *published.Subject)
	assert.Contains(t, *published.Message, `"message":"Aisha has moved to Offer"`)
	assert.Equal(t, "move-candidate", *published.MessageAttributes["operation"].StringValue)
}

func TestSNSSink_Error(t *testing.T) {
	client := &MockSNSService{
		PublishFunc: func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
			return nil, errors.New("AuthorizationError")
		},
	}
	err := NewSNSSink(client, "arn").Deliver(context.Background(), moved())
	assert.ErrorContains(t, err, "AuthorizationError")
}

func TestSESSink_Deliver(t *testing.T) {
	var sent *ses.SendEmailInput
	client := &MockSESService{
		SendEmailFunc: func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			sent = params
			return &ses.SendEmailOutput{}, nil
		},
	}

	sink := NewSESSink(client, "noreply@dentaljobs.example", []string{"hr@clinic.example"})
	require.NoError(t, sink.Deliver(context.Background(), moved()))
	require.NotNil(t, sent)

	assert.Equal(t, "noreply@dentaljobs.example", *sent.Source)
	assert.Equal(t, []string{"hr@clinic.example"}, sent.Destination.ToAddresses)
	body := *sent.Message.Body.Text.Data
	assert.Contains(t, body, "Aisha has moved to Offer")
	assert.Contains(t, body, "Record: a1")
}

func TestSESSink_NoRecipientsIsNoop(t *testing.T) {
	client := &MockSESService{
		SendEmailFunc: func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			t.Fatal("SendEmail should not be called")
			return nil, nil
		},
	}
	assert.NoError(t, NewSESSink(client, "noreply@dentaljobs.example", nil).Deliver(context.Background(), moved()))
}
