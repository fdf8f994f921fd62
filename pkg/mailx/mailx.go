// Package mailx delivers one-time codes to users by email.
package mailx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
	"time"
)

// ErrDelivery wraps every failure to hand a message to the transport.
var ErrDelivery = errors.New("mailx: delivery failed")

// Sender is the mail sink used by the OTP issuer.
type Sender interface {
	SendCode(ctx context.Context, to, code, name string) error
}

// Branding controls what the code email looks like.
type Branding struct {
	From    string
	AppName string
	TTL     time.Duration
}

// CodeEmail is the data every template renders against.
type CodeEmail struct {
	AppName string
	Name    string
	Code    string
	Minutes int
}

var (
	htmlTmpl = htmltemplate.Must(htmltemplate.New("code.html").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: sans-serif;">
  <h2>Hello {{.Name}}!</h2>
  <p>Your one-time password for {{.AppName}} is:</p>
  <p style="font-size: 28px; font-weight: bold; letter-spacing: 4px;">{{.Code}}</p>
  <p>This code expires in {{.Minutes}} minutes. If you did not request it, ignore this email.</p>
</body>
</html>
`))

	textTmpl = texttemplate.Must(texttemplate.New("code.txt").Parse(`Hello {{.Name}}!

Your one-time password for {{.AppName}} is: {{.Code}}

This code expires in {{.Minutes}} minutes. If you did not request it, ignore this email.
`))
)

// Subject returns the subject line for a code email.
func (b Branding) Subject() string {
	return "Your OTP for " + b.AppName
}

// Data builds the template data for one email. An empty name greets
// "there".
func (b Branding) Data(code, name string) CodeEmail {
	if name == "" {
		name = "there"
	}
	return CodeEmail{
		AppName: b.AppName,
		Name:    name,
		Code:    code,
		Minutes: int(b.TTL.Round(time.Minute) / time.Minute),
	}
}

// RenderText renders the plain text body.
func RenderText(d CodeEmail) (string, error) {
	var buf bytes.Buffer
	if err := textTmpl.Execute(&buf, d); err != nil {
		return "", fmt.Errorf("mailx: render text: %w", err)
	}
	return buf.String(), nil
}

// RenderHTML renders the HTML body.
func RenderHTML(d CodeEmail) (string, error) {
	var buf bytes.Buffer
	if err := htmlTmpl.Execute(&buf, d); err != nil {
		return "", fmt.Errorf("mailx: render html: %w", err)
	}
	return buf.String(), nil
}
