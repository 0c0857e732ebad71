package services

import (
	"fmt"
	"log"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/ayushwahile/cloth-store-backend/internal/config"
)

// SMSSender delivers one-time codes to customer phones. Handlers depend
// on this interface so tests can substitute a recorder.
type SMSSender interface {
	Send(to, body string) error
}

// TwilioSMS sends SMS messages through the Twilio REST API.
type TwilioSMS struct {
	client *twilio.RestClient
	from   string
}

// NewTwilioSMS constructs a TwilioSMS from configuration.
func NewTwilioSMS(cfg *config.Config) (*TwilioSMS, error) {
	if cfg.TwilioAccountSID == "" || cfg.TwilioAuthToken == "" || cfg.TwilioFrom == "" {
		return nil, fmt.Errorf("missing Twilio credentials in configuration")
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.TwilioAccountSID,
		Password: cfg.TwilioAuthToken,
	})

	return &TwilioSMS{client: client, from: cfg.TwilioFrom}, nil
}

// LogSMS writes messages to the process log instead of sending them.
// Used when Twilio credentials are not configured.
type LogSMS struct{}

// Send logs the message and reports success.
func (LogSMS) Send(to, body string) error {
	log.Printf("[SMS] (not configured) to=%s body=%q", to, body)
	return nil
}

// Send delivers a single SMS message. Indian numbers are dialed with
// the +91 country prefix.
func (t *TwilioSMS) Send(to, body string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetFrom(t.from)
	params.SetTo("+91" + to)
	params.SetBody(body)

	resp, err := t.client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("twilio send failed: %w", err)
	}

	if resp.ErrorCode != nil && *resp.ErrorCode != 0 {
		return fmt.Errorf("twilio error %d: %s", *resp.ErrorCode, *resp.ErrorMessage)
	}

	if resp.Sid != nil {
		log.Printf("[SMS] message sent, SID: %s", *resp.Sid)
	}
	return nil
}
