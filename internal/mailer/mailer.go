package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/noteshq/notes-api/internal/logger"
)

var (
	// ErrRecipientNotFound is returned when the delivery provider reports
	// that the recipient address does not exist.
	ErrRecipientNotFound = errors.New("recipient not found")

	// ErrSendFailed covers every other delivery failure.
	ErrSendFailed = errors.New("failed to send email")
)

const verificationSubject = "Verify your email"

const verificationTemplate = `
<div style="font-family: sans-serif">
	<h2>Verify your email</h2>
	<p>Use the code below to verify your email address. It expires in a few minutes.</p>
	<p style="font-size: 28px; letter-spacing: 6px"><strong>{{.Code}}</strong></p>
	<p>If you did not sign up, you can safely ignore this message.</p>
</div>`

const passwordResetSubject = "Reset your password"

const passwordResetTemplate = `
<div style="font-family: sans-serif">
	<h2>Reset your password</h2>
	<p>Use the token below to reset your password. It expires in one hour.</p>
	<p style="font-size: 20px"><strong>{{.Token}}</strong></p>
	<p>If you did not request a reset, you can safely ignore this message.</p>
</div>`

var (
	verificationTmpl  = template.Must(template.New("verification-code").Parse(verificationTemplate))
	passwordResetTmpl = template.Must(template.New("password-reset").Parse(passwordResetTemplate))
)

// Mailer delivers transactional emails through a Resend-compatible REST API.
type Mailer struct {
	baseURL string
	apiKey  string
	from    string
	client  *http.Client
}

// New creates a Mailer. from is used as the sender address on every email.
func New(baseURL, apiKey, from string) *Mailer {
	return &Mailer{
		baseURL: baseURL,
		apiKey:  apiKey,
		from:    from,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// SendVerificationCode emails a one-time verification code. The plaintext
// code exists only in this message.
func (m *Mailer) SendVerificationCode(ctx context.Context, to, code string) error {
	var body bytes.Buffer
	if err := verificationTmpl.Execute(&body, struct{ Code string }{Code: code}); err != nil {
		return fmt.Errorf("failed to render verification email: %w", err)
	}
	return m.send(ctx, to, verificationSubject, body.String())
}

// SendPasswordReset emails a password reset token.
func (m *Mailer) SendPasswordReset(ctx context.Context, to, token string) error {
	var body bytes.Buffer
	if err := passwordResetTmpl.Execute(&body, struct{ Token string }{Token: token}); err != nil {
		return fmt.Errorf("failed to render password reset email: %w", err)
	}
	return m.send(ctx, to, passwordResetSubject, body.String())
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type apiError struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

func (m *Mailer) send(ctx context.Context, to, subject, html string) error {
	payload, err := json.Marshal(sendRequest{
		From:    m.from,
		To:      []string{to},
		Subject: subject,
		HTML:    html,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSendFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/emails", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSendFailed, err)
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		logger.Log.Errorw("email request failed", "to", to, "subject", subject, "error", err)
		return fmt.Errorf("%w: %w", ErrSendFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		logger.Log.Infow("email sent", "to", to, "subject", subject)
		return nil
	}

	var apiErr apiError
	if err := json.NewDecoder(resp.Body).Decode(&apiErr); err != nil {
		logger.Log.Errorw("email rejected", "to", to, "status", resp.StatusCode)
		return fmt.Errorf("%w: status %d", ErrSendFailed, resp.StatusCode)
	}

	logger.Log.Errorw("email rejected", "to", to, "status", resp.StatusCode, "name", apiErr.Name, "message", apiErr.Message)

	if apiErr.Name == "not_found" {
		return fmt.Errorf("%w: %s", ErrRecipientNotFound, apiErr.Message)
	}
	return fmt.Errorf("%w: %s", ErrSendFailed, apiErr.Message)
}
