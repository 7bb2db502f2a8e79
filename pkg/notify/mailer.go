// Package notify renders release notifications and delivers them through an email API
package notify

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater/v2"

	"github.com/umputun/changewatch/pkg/config"
)

// ErrNotConfigured returned when sending without api credentials
var ErrNotConfigured = errors.New("mail api is not configured")

// Attachment is a file attached to an email
type Attachment struct {
	Filename string
	MimeType string
	Data     []byte
}

// Message is a single email
type Message struct {
	To          []string
	Subject     string
	TextBody    string
	HTMLBody    string
	Attachments []Attachment
}

// Mailer sends email through SMTP2GO-compatible JSON API
type Mailer struct {
	config config.MailConfig
	client *http.Client
	delay  time.Duration
}

type sendRequest struct {
	APIKey      string           `json:"api_key"`
	To          []string         `json:"to"`
	Sender      string           `json:"sender"`
	Subject     string           `json:"subject"`
	TextBody    string           `json:"text_body"`
	HTMLBody    string           `json:"html_body"`
	Attachments []sendAttachment `json:"attachments,omitempty"`
}

type sendAttachment struct {
	Filename string `json:"filename"`
	Fileblob string `json:"fileblob"` // base64
	MimeType string `json:"mimetype"`
}

type sendResponse struct {
	RequestID string `json:"request_id"`
	Data      struct {
		Succeeded int    `json:"succeeded"`
		Failed    int    `json:"failed"`
		EmailID   string `json:"email_id"`
		Error     string `json:"error"`
	} `json:"data"`
}

// NewMailer makes a mail API client
func NewMailer(cfg config.MailConfig) *Mailer {
	return &Mailer{config: cfg, client: &http.Client{Timeout: cfg.Timeout}, delay: 500 * time.Millisecond}
}

// Send delivers the message, retrying transport and api failures up to configured attempts
func (m *Mailer) Send(ctx context.Context, msg Message) error {
	if m.config.APIKey == "" || m.config.Endpoint == "" {
		return ErrNotConfigured
	}
	if len(msg.To) == 0 {
		return fmt.Errorf("no recipients")
	}

	req := sendRequest{
		APIKey:   m.config.APIKey,
		To:       msg.To,
		Sender:   m.config.Sender,
		Subject:  msg.Subject,
		TextBody: msg.TextBody,
		HTMLBody: msg.HTMLBody,
	}
	for _, a := range msg.Attachments {
		req.Attachments = append(req.Attachments, sendAttachment{
			Filename: a.Filename,
			Fileblob: base64.StdEncoding.EncodeToString(a.Data),
			MimeType: a.MimeType,
		})
	}
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	attempts := max(m.config.Retries, 1)
	attempt := 0
	err = repeater.NewBackoff(attempts, m.delay, repeater.WithMaxDelay(5*time.Second)).Do(ctx, func() error {
		attempt++
		if sendErr := m.post(ctx, body); sendErr != nil {
			log.Printf("[WARN] mail send attempt %d/%d failed: %v", attempt, attempts, sendErr)
			return sendErr
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to send email after %d attempts: %w", attempt, err)
	}
	log.Printf("[INFO] email %q sent to %v", msg.Subject, msg.To)
	return nil
}

func (m *Mailer) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.config.Endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("api request failed with status %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}

	var response sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if response.Data.Failed > 0 || response.Data.Error != "" {
		return fmt.Errorf("api rejected email %s: %s", response.RequestID, response.Data.Error)
	}
	return nil
}
