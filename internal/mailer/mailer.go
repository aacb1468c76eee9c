package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"regexp"
	"strings"
)

var addressRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func ValidAddress(addr string) bool {
	return addressRe.MatchString(addr)
}

// Sender delivers one HTML email. The jobs worker depends on this interface
// so dispatch can be tested without a live relay.
type Sender interface {
	Send(ctx context.Context, to, subject, html string) error
}

// SMTPSender sends through a standard SMTP relay with LOGIN/PLAIN auth and
// STARTTLS negotiated by net/smtp when the server offers it.
type SMTPSender struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

var _ Sender = (*SMTPSender)(nil)

func (s *SMTPSender) Send(_ context.Context, to, subject, html string) error {
	addr := fmt.Sprintf("%s:%d", s.Host, s.Port)
	auth := smtp.PlainAuth("", s.Username, s.Password, s.Host)
	msg := BuildMessage(s.From, to, subject, html)
	return smtp.SendMail(addr, auth, s.From, []string{to}, msg)
}

// BuildMessage assembles an RFC 5322 HTML message with UTF-8 headers, so
// Arabic subjects and bodies survive the relay.
func BuildMessage(from, to, subject, html string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(html)
	b.WriteString("\r\n")
	return []byte(b.String())
}
