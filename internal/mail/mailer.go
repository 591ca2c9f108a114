package mail

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strings"

	"github.com/cursinhoinsper/plataforma/internal/config"
)

// Mailer envia e-mails transacionais da plataforma.
type Mailer interface {
	SendSenhaInicial(ctx context.Context, destinatario, senha string) error
}

// SMTPMailer envia pelo servidor SMTP configurado, via TLS implícito.
type SMTPMailer struct {
	cfg config.SMTPConfig
}

// NewSMTPMailer devolve nil quando o SMTP não está configurado; o chamador
// trata mailer nulo como envio desabilitado.
func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	if !cfg.Enabled() {
		return nil
	}
	return &SMTPMailer{cfg: cfg}
}

// SendSenhaInicial envia a confirmação de inscrição com a senha inicial.
func (m *SMTPMailer) SendSenhaInicial(ctx context.Context, destinatario, senha string) error {
	if m == nil {
		return errors.New("smtp não configurado")
	}

	body := "Se você está recebendo esse email significa que você foi cadastrado na " +
		"plataforma do Cursinho. Segue aqui a sua senha: " + senha

	msg := strings.Join([]string{
		"From: " + m.cfg.From,
		"To: " + destinatario,
		"Subject: Cursinho - Confirmação de Inscrição",
		"Content-Type: text/plain; charset=utf-8",
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	dialer := &net.Dialer{}
	rawConn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("smtp dial: %w", err)
	}
	conn := tls.Client(rawConn, &tls.Config{ServerName: m.cfg.Host})

	client, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp client: %w", err)
	}
	defer client.Close()

	if m.cfg.Username != "" {
		auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}

	if err := client.Mail(m.cfg.From); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	if err := client.Rcpt(destinatario); err != nil {
		return fmt.Errorf("smtp rcpt: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write([]byte(msg)); err != nil {
		w.Close()
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp close: %w", err)
	}

	return client.Quit()
}
