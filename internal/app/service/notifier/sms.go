package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/subtrackr/subtrackr/pkg/config"
)

const twilioAPIBase = "https://api.twilio.com/2010-04-01"

// TwilioSender delivers reminder SMS through the Twilio REST API.
type TwilioSender struct {
	accountSID string
	authToken  string
	from       string
	baseURL    string
	client     *http.Client
}

// NewSMSSender builds the SMS channel from config. Twilio account SIDs
// always start with "AC"; anything else is treated as unconfigured.
func NewSMSSender(cfg *config.Config, log *zap.SugaredLogger) SMSSender {
	c := cfg.Twilio
	if !strings.HasPrefix(c.AccountSID, "AC") || c.AuthToken == "" || c.FromNumber == "" {
		log.Warnw("twilio not configured, sms notifications disabled")
		return disabledSMS{}
	}
	return &TwilioSender{
		accountSID: c.AccountSID,
		authToken:  c.AuthToken,
		from:       c.FromNumber,
		baseURL:    twilioAPIBase,
		client:     &http.Client{Timeout: 30 * time.Second},
	}
}

func (t *TwilioSender) SendSMS(ctx context.Context, to, body string) error {
	form := url.Values{}
	form.Set("To", to)
	form.Set("From", t.from)
	form.Set("Body", body)

	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", t.baseURL, t.accountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build twilio request: %w", err)
	}
	req.SetBasicAuth(t.accountSID, t.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("twilio request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("twilio rejected message: %s", twilioErrorDetail(resp.Body, resp.StatusCode))
	}
	return nil
}

func twilioErrorDetail(body io.Reader, status int) string {
	var payload struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	}
	if err := json.NewDecoder(io.LimitReader(body, 4096)).Decode(&payload); err == nil && payload.Message != "" {
		return fmt.Sprintf("%s (code %d)", payload.Message, payload.Code)
	}
	return fmt.Sprintf("http status %d", status)
}
