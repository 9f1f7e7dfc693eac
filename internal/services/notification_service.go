// Файл: internal/services/notification_service.go
package services

import (
	"fmt"
	"strings"

	"contact-system/internal/entities"
	"contact-system/pkg/config"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// NotificationServiceInterface - канал уведомлений о новых обращениях.
// Отправка в стиле "выстрелил и забыл": ошибки здесь никогда не должны
// ронять приём самого обращения.
type NotificationServiceInterface interface {
	Enabled() bool
	SendOperatorAlert(submission *entities.Submission, savedToDatabase bool, attachmentCount int) error
	SendRequesterReceipt(submission *entities.Submission, savedToDatabase bool) error
}

type SMTPNotificationService struct {
	cfg    config.SMTPConfig
	dialer *gomail.Dialer
	logger *zap.Logger
}

func NewSMTPNotificationService(cfg config.SMTPConfig, logger *zap.Logger) NotificationServiceInterface {
	return &SMTPNotificationService{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		logger: logger,
	}
}

func (s *SMTPNotificationService) Enabled() bool {
	return s.cfg.Host != ""
}

// SendOperatorAlert отправляет оператору сводку по обращению:
// поля формы, количество вложений, метаданные отправителя.
func (s *SMTPNotificationService) SendOperatorAlert(submission *entities.Submission, savedToDatabase bool, attachmentCount int) error {
	reference := submission.ID
	if !savedToDatabase {
		reference = "local backup only"
	}

	var b strings.Builder
	b.WriteString("<h2>New Contact Form Submission</h2>")
	fmt.Fprintf(&b, "<p><strong>Submission ID:</strong> %s</p>", reference)
	fmt.Fprintf(&b, "<p><strong>Name:</strong> %s</p>", submission.Name)
	fmt.Fprintf(&b, "<p><strong>Email:</strong> %s</p>", submission.Email)
	fmt.Fprintf(&b, "<p><strong>Subject:</strong> %s</p>", submission.Subject)
	fmt.Fprintf(&b, "<p><strong>Reason:</strong> %s</p>", submission.Reason)
	fmt.Fprintf(&b, "<p><strong>Message:</strong></p><div>%s</div>", strings.ReplaceAll(submission.Message, "\n", "<br>"))
	fmt.Fprintf(&b, "<p><strong>Submitted:</strong> %s</p>", submission.CreatedAt.Format("02 Jan 2006 15:04 MST"))
	if attachmentCount > 0 {
		fmt.Fprintf(&b, "<p><strong>Attachments:</strong> %d file(s)</p>", attachmentCount)
	}
	if submission.IPAddress.Valid {
		fmt.Fprintf(&b, "<p><strong>IP Address:</strong> %s</p>", submission.IPAddress.String)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", s.cfg.OperatorAddr)
	m.SetHeader("Subject", "New Contact Form Submission: "+submission.Subject)
	m.SetBody("text/html", b.String())

	return s.dialer.DialAndSend(m)
}

// SendRequesterReceipt отправляет отправителю подтверждение приёма
// с эхом его темы/сообщения и ссылочным идентификатором, если он присвоен.
func (s *SMTPNotificationService) SendRequesterReceipt(submission *entities.Submission, savedToDatabase bool) error {
	var b strings.Builder
	b.WriteString("<h2>Thank you for your message!</h2>")
	fmt.Fprintf(&b, "<p>Dear %s,</p>", submission.Name)
	b.WriteString("<p>We have received your message and will get back to you within 24 hours.</p>")
	if savedToDatabase {
		fmt.Fprintf(&b, "<p><strong>Your submission reference:</strong> <code>%s</code></p>", submission.ID)
	}
	fmt.Fprintf(&b, "<p><strong>Subject:</strong> %s</p>", submission.Subject)
	fmt.Fprintf(&b, "<p><strong>Message:</strong></p><div>%s</div>", strings.ReplaceAll(submission.Message, "\n", "<br>"))

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", submission.Email)
	m.SetHeader("Subject", "Thank you for contacting us")
	m.SetBody("text/html", b.String())

	return s.dialer.DialAndSend(m)
}

// mockNotificationService - реализация-заглушка, которая пишет в лог
// вместо реальной отправки. Используется, когда SMTP не сконфигурирован.
type mockNotificationService struct {
	logger *zap.Logger
}

func NewMockNotificationService(logger *zap.Logger) NotificationServiceInterface {
	return &mockNotificationService{logger: logger}
}

func (s *mockNotificationService) Enabled() bool { return false }

func (s *mockNotificationService) SendOperatorAlert(submission *entities.Submission, savedToDatabase bool, attachmentCount int) error {
	s.logger.Info("ИМИТАЦИЯ: письмо оператору",
		zap.String("subject", submission.Subject),
		zap.Int("attachmentCount", attachmentCount),
	)
	return nil
}

func (s *mockNotificationService) SendRequesterReceipt(submission *entities.Submission, savedToDatabase bool) error {
	s.logger.Info("ИМИТАЦИЯ: подтверждение отправителю",
		zap.String("кому", submission.Email),
	)
	return nil
}
