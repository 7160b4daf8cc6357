package mail_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomail "gopkg.in/gomail.v2"

	"bookstore/internal/account/adapters/mail"
	"bookstore/internal/account/domain/entities"
)

type fakeSender struct {
	sent []*gomail.Message
	err  error
}

func (f *fakeSender) DialAndSend(m ...*gomail.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, m...)
	return nil
}

func TestSendActivationEmail(t *testing.T) {
	user := &entities.User{
		Login:         "johndoe",
		Email:         "john.doe@example.com",
		FirstName:     "John",
		ActivationKey: "activation-key-123",
	}

	t.Run("successful sending", func(t *testing.T) {
		sender := &fakeSender{}
		mailSvc := mail.NewSMTPWithSender(sender, "noreply@bookstore.example")

		err := mailSvc.SendActivationEmail(context.Background(), user, "http://localhost:8080")

		require.NoError(t, err)
		require.Len(t, sender.sent, 1)

		msg := sender.sent[0]
		assert.Equal(t, []string{"john.doe@example.com"}, msg.GetHeader("To"))
		assert.Equal(t, []string{"noreply@bookstore.example"}, msg.GetHeader("From"))
	})

	t.Run("dialer failure is wrapped", func(t *testing.T) {
		sender := &fakeSender{err: errors.New("smtp connection refused")}
		mailSvc := mail.NewSMTPWithSender(sender, "noreply@bookstore.example")

		err := mailSvc.SendActivationEmail(context.Background(), user, "http://localhost:8080")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to send activation email")
	})

	t.Run("login substitutes empty first name", func(t *testing.T) {
		sender := &fakeSender{}
		mailSvc := mail.NewSMTPWithSender(sender, "noreply@bookstore.example")

		anonymous := &entities.User{
			Login:         "janedoe",
			Email:         "jane.doe@example.com",
			ActivationKey: "key-456",
		}

		err := mailSvc.SendActivationEmail(context.Background(), anonymous, "http://localhost:8080")

		require.NoError(t, err)
		require.Len(t, sender.sent, 1)
	})
}
