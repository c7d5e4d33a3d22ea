// Package mailer delivers transactional email over SMTP.
package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/NapaConcierge/concierge-api/internal/types"
	"github.com/NapaConcierge/concierge-api/internal/utils"
)

// Sender is the outbound email boundary. Report delivery is the only
// caller today.
type Sender interface {
	Send(ctx context.Context, to, subject, htmlBody, textBody string) error
	Configured() bool
}

// SMTPMailer sends multipart (HTML + plain text) mail through a single
// configured relay.
type SMTPMailer struct {
	host     string
	port     string
	user     string
	password string
	from     string
}

func NewSMTPMailer(host, port, user, password, from string) *SMTPMailer {
	return &SMTPMailer{
		host:     host,
		port:     port,
		user:     user,
		password: password,
		from:     from,
	}
}

// Configured reports whether a relay is set up; broadcast endpoints skip
// delivery when it is not.
func (m *SMTPMailer) Configured() bool {
	return strings.TrimSpace(m.host) != "" && strings.TrimSpace(m.from) != ""
}

// Send delivers one message. The dial and the whole SMTP conversation run
// under the request context; failures wrap types.ErrDelivery.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, htmlBody, textBody string) error {
	if !m.Configured() {
		return fmt.Errorf("%w: smtp relay not configured", types.ErrDelivery)
	}

	addr := net.JoinHostPort(m.host, m.port)
	dialer := &net.Dialer{Timeout: 15 * time.Second}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("%w: dial %s: %v", types.ErrDelivery, addr, err)
	}

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, m.host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("%w: smtp handshake: %v", types.ErrDelivery, err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: m.host}); err != nil {
			return fmt.Errorf("%w: starttls: %v", types.ErrDelivery, err)
		}
	}

	if m.user != "" {
		auth := smtp.PlainAuth("", m.user, m.password, m.host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("%w: smtp auth: %v", types.ErrDelivery, err)
		}
	}

	if err := client.Mail(m.from); err != nil {
		return fmt.Errorf("%w: mail from: %v", types.ErrDelivery, err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("%w: rcpt to: %v", types.ErrDelivery, err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("%w: smtp data: %v", types.ErrDelivery, err)
	}
	msg := BuildMessage(m.from, to, subject, htmlBody, textBody)
	if _, err := w.Write([]byte(msg)); err != nil {
		return fmt.Errorf("%w: write body: %v", types.ErrDelivery, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("%w: close body: %v", types.ErrDelivery, err)
	}

	if err := client.Quit(); err != nil {
		utils.Zlog.Warn("SMTP quit failed after accepted message", zap.Error(err))
	}

	utils.Zlog.Info("Email delivered", zap.String("to", to), zap.String("subject", subject))
	return nil
}

const mimeBoundary = "concierge-report-boundary"

// BuildMessage assembles a multipart/alternative MIME message with plain
// text first so simple clients fall back cleanly.
func BuildMessage(from, to, subject, htmlBody, textBody string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "From: %s\r\n", from)
	fmt.Fprintf(&sb, "To: %s\r\n", to)
	fmt.Fprintf(&sb, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	sb.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&sb, "Content-Type: multipart/alternative; boundary=%q\r\n", mimeBoundary)
	sb.WriteString("\r\n")

	fmt.Fprintf(&sb, "--%s\r\n", mimeBoundary)
	sb.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	sb.WriteString(textBody)
	sb.WriteString("\r\n")

	fmt.Fprintf(&sb, "--%s\r\n", mimeBoundary)
	sb.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
	sb.WriteString(htmlBody)
	sb.WriteString("\r\n")

	fmt.Fprintf(&sb, "--%s--\r\n", mimeBoundary)
	return sb.String()
}
