package mailx_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/hdnotes/pkg/mailx"
	"github.com/aussiebroadwan/hdnotes/pkg/slogx"
	"github.com/stretchr/testify/require"
)

var branding = mailx.Branding{
	From:    "no-reply@hdnotes.test",
	AppName: "HD App",
	TTL:     10 * time.Minute,
}

func TestRenderBodies(t *testing.T) {
	d := branding.Data("004211", "Ada")
	require.Equal(t, 10, d.Minutes)

	text, err := mailx.RenderText(d)
	require.NoError(t, err)
	require.Contains(t, text, "Hello Ada!")
	require.Contains(t, text, "004211")
	require.Contains(t, text, "10 minutes")

	html, err := mailx.RenderHTML(d)
	require.NoError(t, err)
	require.Contains(t, html, "<h2>Hello Ada!</h2>")
	require.Contains(t, html, "004211")
}

func TestRenderEscapesName(t *testing.T) {
	html, err := mailx.RenderHTML(branding.Data("123456", "<script>"))
	require.NoError(t, err)
	require.NotContains(t, html, "<script>")
}

func TestAnonymousGreeting(t *testing.T) {
	text, err := mailx.RenderText(branding.Data("123456", ""))
	require.NoError(t, err)
	require.Contains(t, text, "Hello there!")
}

func TestSubject(t *testing.T) {
	require.Equal(t, "Your OTP for HD App", branding.Subject())
}

func TestMessage(t *testing.T) {
	msg, err := branding.Message("ada@example.com", "987654", "Ada")
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = msg.WriteTo(&buf)
	require.NoError(t, err)

	raw := buf.String()
	require.Contains(t, raw, "Subject: Your OTP for HD App")
	require.Contains(t, raw, "<ada@example.com>")
	require.Contains(t, raw, "text/html")
	require.Contains(t, raw, "text/plain")
}

func TestMessageRejectsBadRecipient(t *testing.T) {
	_, err := branding.Message("not an address", "987654", "Ada")
	require.ErrorIs(t, err, mailx.ErrDelivery)
}

func TestNewSMTPSender(t *testing.T) {
	_, err := mailx.NewSMTPSender(mailx.SMTPConfig{Port: 25}, branding)
	require.Error(t, err)

	_, err = mailx.NewSMTPSender(mailx.SMTPConfig{Host: "localhost", Port: 25, TLS: "sometimes"}, branding)
	require.Error(t, err)

	s, err := mailx.NewSMTPSender(mailx.SMTPConfig{Host: "localhost", Port: 1025, TLS: "none"}, branding)
	require.NoError(t, err)
	require.NotNil(t, s)
}

func TestLogSender(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	ctx := slogx.WithContext(context.Background(), logger)

	require.NoError(t, mailx.NewLogSender(branding).SendCode(ctx, "ada@example.com", "000123", "Ada"))

	var line map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &line))
	require.Equal(t, "ada@example.com", line["to"])
	require.Equal(t, "000123", line["code"])
}
