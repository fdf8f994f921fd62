package mailx

import (
	"context"
	"log/slog"

	"github.com/aussiebroadwan/hdnotes/pkg/slogx"
)

// LogSender writes codes to the log instead of sending mail. Only meant
// for local development.
type LogSender struct {
	branding Branding
}

// NewLogSender returns a development sender.
func NewLogSender(b Branding) *LogSender {
	return &LogSender{branding: b}
}

func (s *LogSender) SendCode(ctx context.Context, to, code, name string) error {
	body, err := RenderText(s.branding.Data(code, name))
	if err != nil {
		return err
	}

	slogx.FromContext(ctx).Warn("mail delivery disabled, logging code",
		slog.String("to", to),
		slog.String("subject", s.branding.Subject()),
		slog.String("code", code),
		slog.Int("body_bytes", len(body)),
	)
	return nil
}
