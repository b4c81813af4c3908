package services

import (
	"bookcatalog_server/structs"
	"context"
	"errors"
	"testing"

	"github.com/resend/resend-go/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	sent []*resend.SendEmailRequest
	err  error
}

func (s *recordingSender) SendWithContext(_ context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.sent = append(s.sent, params)
	return &resend.SendEmailResponse{Id: "msg_1"}, nil
}

func newTestEmailService(sender *recordingSender) *EmailService {
	cfg := testConfig()
	cfg.Email = &structs.EmailConfig{From: "Books <no-reply@books.test>"}
	es := NewEmailService(testLogger(), cfg)
	if sender != nil {
		es.sender = sender
	}
	return es
}

func TestSendActivationEmail(t *testing.T) {
	sender := &recordingSender{}
	es := newTestEmailService(sender)

	err := es.SendActivationEmail(context.Background(), "a@b.c", "http://books.test/api/accounts/register/activate/abc/?x=1&y=2")
	require.NoError(t, err)
	require.Len(t, sender.sent, 1)

	msg := sender.sent[0]
	assert.Equal(t, []string{"a@b.c"}, msg.To)
	assert.Equal(t, "Books <no-reply@books.test>", msg.From)
	assert.Equal(t, "Activate your account", msg.Subject)
	assert.Contains(t, msg.Text, "http://books.test/api/accounts/register/activate/abc/?x=1&y=2")
	assert.Contains(t, msg.Html, "activate/abc/?x=1&amp;y=2")
}

func TestSendEmailWrapsProviderError(t *testing.T) {
	es := newTestEmailService(&recordingSender{err: errors.New("rate limited")})

	err := es.SendActivationEmail(context.Background(), "a@b.c", "u")
	assert.ErrorContains(t, err, "rate limited")
}

func TestSendEmailWithoutApiKeyOnlyLogs(t *testing.T) {
	es := newTestEmailService(nil)
	assert.NoError(t, es.SendActivationEmail(context.Background(), "a@b.c", "u"))
}
