// internal/common/aws/ses_test.go
package aws

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSES struct {
	input *ses.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &ses.SendEmailOutput{}, nil
}

func TestNotify_SendsPlainTextEmail(t *testing.T) {
	api := &fakeSES{}
	client := NewSESClientWithAPI(api, "it@example.com", []string{"ops@example.com"}, "Adobe License Report")

	err := client.Notify(context.Background(), "Acrobat Pro: 2 of 316 Licenses")
	require.NoError(t, err)

	require.NotNil(t, api.input)
	assert.Equal(t, "it@example.com", *api.input.Source)
	assert.Equal(t, []string{"ops@example.com"}, api.input.Destination.ToAddresses)
	assert.Equal(t, "Adobe License Report", *api.input.Message.Subject.Data)
	assert.Equal(t, "Acrobat Pro: 2 of 316 Licenses", *api.input.Message.Body.Text.Data)
	assert.Nil(t, api.input.Message.Body.Html)
}

func TestNotify_SendFailure(t *testing.T) {
	api := &fakeSES{err: errors.New("throttled")}
	client := NewSESClientWithAPI(api, "it@example.com", []string{"ops@example.com"}, "Adobe License Report")

	err := client.Notify(context.Background(), "summary")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to send email")
}

func TestSESChannel(t *testing.T) {
	client := NewSESClientWithAPI(&fakeSES{}, "", nil, "")
	assert.Equal(t, "email", client.Channel())
}
