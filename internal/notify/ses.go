package notify

import (
	"context"
	"fmt"
	"strings"

	"dental-jobs/internal/common/aws"
	"dental-jobs/internal/models"
)

// SESSink mails each notification to a fixed recipient list.
type SESSink struct {
	client     aws.SESService
	from       string
	recipients []string
}

func NewSESSink(client aws.SESService, from string, recipients []string) *SESSink {
	return &SESSink{client: client, from: from, recipients: recipients}
}

func (s *SESSink) Name() string { return "email" }

func (s *SESSink) Deliver(ctx context.Context, n models.Notification) error {
	if len(s.recipients) == 0 {
		return nil
	}

	var body strings.Builder
	body.WriteString(n.Message)
	body.WriteString("\n\n")
	fmt.Fprintf(&body, "Operation: %s\n", n.Operation)
	if n.Subject != "" {
		fmt.Fprintf(&body, "Record: %s\n", n.Subject)
	}
	if !n.CreatedAt.IsZero() {
		fmt.Fprintf(&body, "At: %s\n", n.CreatedAt.Format("2006-01-02 15:04:05 MST"))
	}

	in := aws.TextEmail(s.from, s.recipients, subjectFor(n), body.String())
	if _, err := s.client.SendEmail(ctx, in); err != nil {
		return fmt.Errorf("ses send: %w", err)
	}
	return nil
}
