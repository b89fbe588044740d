// Package mailer sends the transactional email triggered by contact form
// submissions: an alert to the site owner and an acknowledgement to the
// sender. Delivery is best-effort; the message is already persisted when
// either email goes out, and a failed send is only logged.
package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/aria-creative/vitrine/internal/config"
	"github.com/aria-creative/vitrine/internal/model"
)

const sendTimeout = 10 * time.Second

// Mailer dispatches contact notifications over SMTP.
type Mailer interface {
	// NotifyContact sends the admin alert and the sender acknowledgement
	// concurrently and returns once both attempts finish.
	NotifyContact(ctx context.Context, msg *model.ContactMessage) error
	// Verify checks SMTP connectivity without sending anything.
	Verify(ctx context.Context) error
}

// SMTPMailer is the production Mailer backed by go-mail.
type SMTPMailer struct {
	cfg    config.SMTPConfig
	logger *slog.Logger
}

// New creates an SMTP mailer from configuration.
func New(cfg config.SMTPConfig, logger *slog.Logger) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, logger: logger}
}

func (m *SMTPMailer) client() (*mail.Client, error) {
	opts := []mail.Option{
		mail.WithPort(m.cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
		mail.WithTimeout(sendTimeout),
	}
	if m.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.cfg.Username),
			mail.WithPassword(m.cfg.Password),
		)
	}
	return mail.NewClient(m.cfg.Host, opts...)
}

// NotifyContact sends both notification emails. Each failure is logged and
// folded into the returned error; callers treat the whole thing as
// fire-and-forget.
func (m *SMTPMailer) NotifyContact(ctx context.Context, msg *model.ContactMessage) error {
	if !m.cfg.Enabled() {
		m.logger.Warn("smtp not configured, skipping contact notification", "message_id", msg.ID)
		return nil
	}

	admin, err := m.adminAlert(msg)
	if err != nil {
		return err
	}
	ack, err := m.acknowledgement(msg)
	if err != nil {
		return err
	}

	errCh := make(chan error, 2)
	for _, em := range []*mail.Msg{admin, ack} {
		go func(em *mail.Msg) {
			errCh <- m.send(ctx, em)
		}(em)
	}

	var failed int
	for i := 0; i < 2; i++ {
		if err := <-errCh; err != nil {
			failed++
			m.logger.Error("contact notification failed", "message_id", msg.ID, "error", err)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of 2 contact notifications failed", failed)
	}
	return nil
}

func (m *SMTPMailer) send(ctx context.Context, em *mail.Msg) error {
	c, err := m.client()
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()
	return c.DialAndSendWithContext(ctx, em)
}

// Verify dials the SMTP server and closes the connection again.
func (m *SMTPMailer) Verify(ctx context.Context) error {
	if !m.cfg.Enabled() {
		return fmt.Errorf("smtp is not configured")
	}
	c, err := m.client()
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()
	if err := c.DialWithContext(ctx); err != nil {
		return fmt.Errorf("smtp dial: %w", err)
	}
	return c.Close()
}

func (m *SMTPMailer) adminAlert(msg *model.ContactMessage) (*mail.Msg, error) {
	em := mail.NewMsg()
	if err := em.From(m.cfg.From); err != nil {
		return nil, fmt.Errorf("from address: %w", err)
	}
	to := m.cfg.NotifyTo
	if to == "" {
		to = m.cfg.From
	}
	if err := em.To(to); err != nil {
		return nil, fmt.Errorf("to address: %w", err)
	}
	if err := em.ReplyTo(msg.Email); err != nil {
		return nil, fmt.Errorf("reply-to address: %w", err)
	}
	em.Subject("[ARIA CREATIVE] Nouveau message: " + msg.Subject)
	em.SetBodyString(mail.TypeTextHTML, renderAdminAlert(msg))
	return em, nil
}

func (m *SMTPMailer) acknowledgement(msg *model.ContactMessage) (*mail.Msg, error) {
	em := mail.NewMsg()
	if err := em.From(m.cfg.From); err != nil {
		return nil, fmt.Errorf("from address: %w", err)
	}
	if err := em.To(msg.Email); err != nil {
		return nil, fmt.Errorf("to address: %w", err)
	}
	em.Subject("Confirmation de réception - Aria Creative")
	em.SetBodyString(mail.TypeTextHTML, renderAcknowledgement(msg))
	return em, nil
}
