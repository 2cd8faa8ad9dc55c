package notifier

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/subtrackr/subtrackr/pkg/config"
)

func twilioTestSender(baseURL string) *TwilioSender {
	return &TwilioSender{
		accountSID: "ACtest",
		authToken:  "token",
		from:       "+15550000000",
		baseURL:    baseURL,
		client:     &http.Client{Timeout: time.Second},
	}
}

func TestNewSMSSender_DisabledWithoutCredentials(t *testing.T) {
	cfg := &config.Config{}
	sender := NewSMSSender(cfg, zap.NewNop().Sugar())

	err := sender.SendSMS(context.Background(), "+15551234567", "hi")
	require.ErrorIs(t, err, ErrChannelNotConfigured)
}

func TestNewSMSSender_RejectsNonTwilioSID(t *testing.T) {
	cfg := &config.Config{}
	cfg.Twilio.AccountSID = "not-a-sid"
	cfg.Twilio.AuthToken = "token"
	cfg.Twilio.FromNumber = "+15550000000"

	sender := NewSMSSender(cfg, zap.NewNop().Sugar())
	require.ErrorIs(t, sender.SendSMS(context.Background(), "+15551234567", "hi"), ErrChannelNotConfigured)
}

func TestTwilioSender_SendSMS(t *testing.T) {
	var gotPath, gotTo, gotFrom, gotBody string
	var gotUser, gotPass string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUser, gotPass, _ = r.BasicAuth()
		require.NoError(t, r.ParseForm())
		gotTo = r.PostForm.Get("To")
		gotFrom = r.PostForm.Get("From")
		gotBody = r.PostForm.Get("Body")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"sid":"SM123"}`))
	}))
	defer srv.Close()

	sender := twilioTestSender(srv.URL)
	err := sender.SendSMS(context.Background(), "+15551234567", "Netflix due today")
	require.NoError(t, err)

	require.Equal(t, "/Accounts/ACtest/Messages.json", gotPath)
	require.Equal(t, "ACtest", gotUser)
	require.Equal(t, "token", gotPass)
	require.Equal(t, "+15551234567", gotTo)
	require.Equal(t, "+15550000000", gotFrom)
	require.Equal(t, "Netflix due today", gotBody)
}

func TestTwilioSender_APIErrorIncludesDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"code":21211,"message":"Invalid 'To' Phone Number"}`))
	}))
	defer srv.Close()

	err := twilioTestSender(srv.URL).SendSMS(context.Background(), "bogus", "hi")
	require.Error(t, err)
	require.Contains(t, err.Error(), "Invalid 'To' Phone Number")
	require.Contains(t, err.Error(), "21211")
}

func TestTwilioSender_NonJSONErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("upstream down"))
	}))
	defer srv.Close()

	err := twilioTestSender(srv.URL).SendSMS(context.Background(), "+15551234567", "hi")
	require.Error(t, err)
	require.Contains(t, err.Error(), "http status 503")
}
