package mailer

import (
	"gopkg.in/gomail.v2"
)

// Mailer отправляет письмо-уведомление
type Mailer interface {
	Send(from, to, subject, htmlBody string) error
}

type SMTPMailer struct {
	dialer *gomail.Dialer
}

func NewSMTPMailer(host string, port int, username, password string) *SMTPMailer {
	return &SMTPMailer{dialer: gomail.NewDialer(host, port, username, password)}
}

// Send собирает новое сообщение на каждый вызов: общий мутируемый
// черновик между отправками недопустим
func (m *SMTPMailer) Send(from, to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	return m.dialer.DialAndSend(msg)
}
