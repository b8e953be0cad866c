package adapters

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"

	"courier_backend/internal/feature/sysconfig/domain/entity"
	"courier_backend/internal/feature/sysconfig/usecase"
)

// smtpChecker verifies SMTP settings by performing a real handshake:
// connect, EHLO, STARTTLS when offered, AUTH, QUIT. No message is sent.
type smtpChecker struct{}

// Compile-time check to ensure smtpChecker implements SMTPChecker.
var _ usecase.SMTPChecker = (*smtpChecker)(nil)

// NewSMTPChecker creates a new instance of smtpChecker.
func NewSMTPChecker() *smtpChecker {
	return &smtpChecker{}
}

// Check dials the configured server and authenticates.
func (s *smtpChecker) Check(ctx context.Context, cfg entity.SMTPConfig) error {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("smtp connect: %w", err)
	}

	client, err := smtp.NewClient(conn, cfg.Host)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer func() { _ = client.Quit() }()

	if cfg.Secure {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(&tls.Config{ServerName: cfg.Host}); err != nil {
				return fmt.Errorf("smtp starttls: %w", err)
			}
		}
	}

	auth := smtp.PlainAuth("", cfg.User, cfg.Password, cfg.Host)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}
	return nil
}
