package mail

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net"
	"net/smtp"
	"strings"
	"time"
)

// Message is one outbound HTML email.
type Message struct {
	From    string
	To      string
	Subject string
	HTML    string
}

// Transport delivers a single message. Errors carry the transport's own
// message, which the email queue stores verbatim.
type Transport interface {
	Send(ctx context.Context, msg Message) error
}

var smtpSendMail = sendMail

// sendMail is smtp.SendMail bound to ctx: the dial honours ctx, the
// connection deadline follows ctx's deadline and cancelation aborts the
// conversation.
func sendMail(ctx context.Context, addr string, a smtp.Auth, from string, to []string, msg []byte) error {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("smtp: invalid address %q: %w", addr, err)
	}

	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			return err
		}
	}
	stop := context.AfterFunc(ctx, func() {
		_ = conn.SetDeadline(time.Now())
	})
	defer stop()

	c, err := smtp.NewClient(conn, host)
	if err != nil {
		return err
	}
	defer c.Close()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: host}); err != nil {
			return err
		}
	}
	if a != nil {
		if ok, _ := c.Extension("AUTH"); !ok {
			return errors.New("smtp: server doesn't support AUTH")
		}
		if err := c.Auth(a); err != nil {
			return err
		}
	}
	if err := c.Mail(from); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := c.Rcpt(rcpt); err != nil {
			return err
		}
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return c.Quit()
}

// SMTPClient wraps net/smtp to provide a simple interface for sending emails.
type SMTPClient struct {
	host string
	port int
	user string
	pass string
	from string
}

// NewSMTPClient creates a new SMTPClient with the given SMTP server configuration.
func NewSMTPClient(host string, port int, user, pass, from string) *SMTPClient {
	return &SMTPClient{
		host: host,
		port: port,
		user: user,
		pass: pass,
		from: from,
	}
}

// Send delivers msg. An empty msg.From falls back to the configured sender.
func (c *SMTPClient) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	from := msg.From
	if from == "" {
		from = c.from
	}
	return c.SendFrom(ctx, envelopeAddress(from), from, msg.To, msg.Subject, msg.HTML)
}

// SendFrom delivers an HTML email with distinct envelope and header senders.
// Authentication is skipped when no credentials are configured; a half
// configured pair is rejected.
func (c *SMTPClient) SendFrom(ctx context.Context, envelopeFrom, headerFrom, to, subject, body string) error {
	if envelopeFrom == "" {
		return errors.New("smtp: sender address is empty")
	}

	var auth smtp.Auth
	switch {
	case c.user != "" && c.pass != "":
		auth = smtp.PlainAuth("", c.user, c.pass, c.host)
	case c.user != "" || c.pass != "":
		return errors.New("smtp: incomplete credentials, both user and password are required")
	}

	addr := fmt.Sprintf("%s:%d", c.host, c.port)

	headers := fmt.Sprintf(
		"From: %s\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=\"UTF-8\"\r\n"+
			"\r\n",
		headerFrom, to, mime.QEncoding.Encode("utf-8", subject),
	)

	return smtpSendMail(ctx, addr, auth, envelopeFrom, []string{to}, []byte(headers+body))
}

// envelopeAddress extracts the bare address from "Name <addr>".
func envelopeAddress(from string) string {
	if i := strings.LastIndex(from, "<"); i >= 0 {
		if j := strings.LastIndex(from, ">"); j > i {
			return strings.TrimSpace(from[i+1 : j])
		}
	}
	return strings.TrimSpace(from)
}

// LogTransport is used when SMTP is not configured. It logs and succeeds.
type LogTransport struct{}

func (LogTransport) Send(ctx context.Context, msg Message) error {
	slog.InfoContext(ctx, "smtp disabled, email not delivered", "to", msg.To, "subject", msg.Subject)
	return nil
}
