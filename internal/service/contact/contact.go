// Package contact takes the public contact-form submissions and forwards
// them to the dealership inbox over SMTP. Field validation beyond "the
// form bound" is deliberately left to the form itself.
package contact

import (
	"crypto/tls"
	"fmt"
	"html"
	"net/smtp"

	"go.uber.org/zap"
)

// Message is one contact-form submission.
type Message struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Message string `json:"message" binding:"required"`
}

type Service struct {
	smtpHost string
	smtpPort string
	username string
	password string
	fromName string
	secure   bool
	inbox    string
	logger   *zap.Logger
}

func NewService(host, port, user, pass, fromName string, secure bool, inbox string, logger *zap.Logger) *Service {
	return &Service{
		smtpHost: host,
		smtpPort: port,
		username: user,
		password: pass,
		fromName: fromName,
		secure:   secure,
		inbox:    inbox,
		logger:   logger,
	}
}

// Submit logs the message and, when SMTP is configured, forwards it to the
// dealership inbox. Forwarding failures are logged, never surfaced to the
// visitor: the submission itself is accepted either way.
func (s *Service) Submit(m *Message) {
	s.logger.Info("contact form submission",
		zap.String("name", m.Name),
		zap.String("email", m.Email),
		zap.String("phone", m.Phone),
	)

	if s.smtpHost == "" || s.inbox == "" {
		return
	}

	body := fmt.Sprintf(
		"<p><b>Nome:</b> %s</p><p><b>Email:</b> %s</p><p><b>Telefone:</b> %s</p><p>%s</p>",
		html.EscapeString(m.Name),
		html.EscapeString(m.Email),
		html.EscapeString(m.Phone),
		html.EscapeString(m.Message),
	)

	go func() {
		if err := s.send(s.inbox, "Novo contato pelo site", body); err != nil {
			s.logger.Error("failed to forward contact message", zap.Error(err))
		}
	}()
}

// send delivers an HTML email. Port 465 uses implicit TLS, anything else
// goes through STARTTLS via smtp.SendMail.
func (s *Service) send(to, subject, bodyHTML string) error {
	from := fmt.Sprintf("%s <%s>", s.fromName, s.username)
	msg := []byte(
		fmt.Sprintf("From: %s\r\n", from) +
			fmt.Sprintf("To: %s\r\n", to) +
			fmt.Sprintf("Subject: %s\r\n", subject) +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/html; charset=\"utf-8\"\r\n" +
			"\r\n" +
			bodyHTML,
	)

	serverAddr := s.smtpHost + ":" + s.smtpPort

	if s.secure {
		tlsConfig := &tls.Config{ServerName: s.smtpHost}
		conn, err := tls.Dial("tcp", serverAddr, tlsConfig)
		if err != nil {
			return fmt.Errorf("tls dial failed: %w", err)
		}
		defer conn.Close()

		client, err := smtp.NewClient(conn, s.smtpHost)
		if err != nil {
			return fmt.Errorf("smtp client failed: %w", err)
		}
		defer client.Quit()

		auth := smtp.PlainAuth("", s.username, s.password, s.smtpHost)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("auth failed: %w", err)
		}
		return s.sendMail(client, to, msg)
	}

	auth := smtp.PlainAuth("", s.username, s.password, s.smtpHost)
	if err := smtp.SendMail(serverAddr, auth, s.username, []string{to}, msg); err != nil {
		return fmt.Errorf("send mail failed: %w", err)
	}
	return nil
}

func (s *Service) sendMail(client *smtp.Client, to string, msg []byte) error {
	if err := client.Mail(s.username); err != nil {
		return fmt.Errorf("MAIL FROM failed: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("RCPT TO failed: %w", err)
	}
	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("DATA failed: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("write failed: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close failed: %w", err)
	}
	return nil
}
