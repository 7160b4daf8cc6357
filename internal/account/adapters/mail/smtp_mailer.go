// Package mail реализует отправку писем учетных записей через SMTP.
package mail

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"

	"bookstore/internal/account/domain/entities"
	svc "bookstore/internal/account/ports/services"
	"bookstore/internal/config"
	"bookstore/pkg/logger"
)

// Константы для логирования.
const (
	msgSendingActivationEmail = "sending activation email"
	msgActivationEmailSent    = "activation email sent"

	errMsgSendEmail = "failed to send activation email"
)

const activationSubject = "bookstore account activation"

const activationBody = `<p>Dear %s,</p>
<p>Your bookstore account has been created, please click on the URL below to activate it:</p>
<p><a href="%s">%s</a></p>
<p>Regards,<br/>bookstore team</p>`

// Sender описывает используемое подмножество gomail.Dialer.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// ServiceSMTP реализует интерфейс MailService поверх SMTP.
type ServiceSMTP struct {
	dialer Sender
	from   string
}

// NewSMTP создает новый почтовый сервис из конфигурации.
func NewSMTP(cfg *config.MailConfig) svc.MailService {
	return &ServiceSMTP{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

// NewSMTPWithSender создает почтовый сервис с заданным отправителем.
func NewSMTPWithSender(sender Sender, from string) svc.MailService {
	return &ServiceSMTP{dialer: sender, from: from}
}

// SendActivationEmail отправляет письмо со ссылкой активации учетной записи.
func (s *ServiceSMTP) SendActivationEmail(ctx context.Context, user *entities.User, baseURL string) error {
	log := logger.Log(ctx).With(
		zap.String("service", "mail"),
		zap.String("login", user.Login),
	)
	log.Debug(ctx, msgSendingActivationEmail)

	activationURL := fmt.Sprintf("%s/api/activate?key=%s", baseURL, user.ActivationKey)

	name := user.FirstName
	if name == "" {
		name = user.Login
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", user.Email)
	m.SetHeader("Subject", activationSubject)
	m.SetBody("text/html", fmt.Sprintf(activationBody, name, activationURL, activationURL))

	if err := s.dialer.DialAndSend(m); err != nil {
		log.Error(ctx, errMsgSendEmail, zap.Error(err))
		return fmt.Errorf("%s: %w", errMsgSendEmail, err)
	}

	log.Info(ctx, msgActivationEmailSent)
	return nil
}
