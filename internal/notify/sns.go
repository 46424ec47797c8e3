package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"dental-jobs/internal/common/aws"
	"dental-jobs/internal/models"
)

// SNSSink publishes each notification as JSON to a topic.
type SNSSink struct {
	client   aws.SNSService
	topicARN string
}

func NewSNSSink(client aws.SNSService, topicARN string) *SNSSink {
	return &SNSSink{client: client, topicARN: topicARN}
}

func (s *SNSSink) Name() string { return "sns" }

func (s *SNSSink) Deliver(ctx context.Context, n models.Notification) error {
	body, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}
	in := aws.TopicMessage(s.topicARN, subjectFor(n), string(body), map[string]string{
		"level":     string(n.Level),
		"operation": n.Operation,
	})
	if _, err := s.client.Publish(ctx, in); err != nil {
		return fmt.Errorf("sns publish: %w", err)
	}
	return nil
}

// subjectFor stays under the 100 character SNS subject limit.
func subjectFor(n models.Notification) string {
	subject := fmt.Sprintf("[%s] %s", n.Level, n.Operation)
	if len(subject) > 100 {
		subject = subject[:100]
	}
	return subject
}
