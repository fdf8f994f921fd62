package mailx

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/wneessen/go-mail"
)

// SMTPConfig describes the outbound relay.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string

	// TLS is one of "mandatory", "opportunistic" or "none".
	TLS string

	Timeout time.Duration
}

// SMTPSender delivers code emails through an SMTP relay.
type SMTPSender struct {
	client   *mail.Client
	branding Branding
}

// NewSMTPSender builds a sender. No connection is made until the first send.
func NewSMTPSender(cfg SMTPConfig, b Branding) (*SMTPSender, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("mailx: smtp host is required")
	}

	policy, err := tlsPolicy(cfg.TLS)
	if err != nil {
		return nil, err
	}

	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPortPolicy(policy),
	}
	if cfg.Timeout > 0 {
		opts = append(opts, mail.WithTimeout(cfg.Timeout))
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("mailx: create smtp client: %w", err)
	}

	return &SMTPSender{client: client, branding: b}, nil
}

// SendCode renders and sends one code email.
func (s *SMTPSender) SendCode(ctx context.Context, to, code, name string) error {
	msg, err := s.branding.Message(to, code, name)
	if err != nil {
		return err
	}

	if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}
	return nil
}

// Message composes the MIME message for one code email: HTML body with a
// plain text alternative.
func (b Branding) Message(to, code, name string) (*mail.Msg, error) {
	data := b.Data(code, name)

	msg := mail.NewMsg()
	if err := msg.From(b.From); err != nil {
		return nil, fmt.Errorf("mailx: invalid sender %q: %w", b.From, err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("%w: invalid recipient: %v", ErrDelivery, err)
	}
	msg.Subject(b.Subject())
	msg.SetDate()
	msg.SetMessageID()

	if err := msg.SetBodyHTMLTemplate(htmlTmpl, data); err != nil {
		return nil, fmt.Errorf("mailx: render html: %w", err)
	}
	if err := msg.AddAlternativeTextTemplate(textTmpl, data); err != nil {
		return nil, fmt.Errorf("mailx: render text: %w", err)
	}
	return msg, nil
}

func tlsPolicy(s string) (mail.TLSPolicy, error) {
	switch strings.ToLower(s) {
	case "", "mandatory":
		return mail.TLSMandatory, nil
	case "opportunistic":
		return mail.TLSOpportunistic, nil
	case "none":
		return mail.NoTLS, nil
	default:
		return mail.NoTLS, fmt.Errorf("mailx: unknown smtp tls policy %q", s)
	}
}
