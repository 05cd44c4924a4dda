// internal/common/aws/ses.go
package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// SESAPI is the slice of the SES client used here, extracted for tests.
type SESAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SESClient delivers the license report as a plain-text email.
type SESClient struct {
	client  SESAPI
	from    string
	to      []string
	subject string
}

func NewSESClient(ctx context.Context, region, from string, to []string, subject string) (*SESClient, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &SESClient{
		client:  ses.NewFromConfig(cfg),
		from:    from,
		to:      to,
		subject: subject,
	}, nil
}

// NewSESClientWithAPI wires a prebuilt SES API, used by tests.
func NewSESClientWithAPI(api SESAPI, from string, to []string, subject string) *SESClient {
	return &SESClient{client: api, from: from, to: to, subject: subject}
}

// Channel identifies this notifier in logs and metrics.
func (s *SESClient) Channel() string {
	return "email"
}

// Notify sends the message body to the configured recipients.
func (s *SESClient) Notify(ctx context.Context, message string) error {
	_, err := s.client.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: s.to,
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(s.subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(message)},
			},
		},
		Source: aws.String(s.from),
	})
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
