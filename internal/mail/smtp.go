// Copyright (c) 2026 Kritika. All rights reserved.
// Author: d.maksimov.dev@gmail.com

package mail

import (
	"fmt"
	"net/smtp"
	"strings"
)

// Deliverer performs the final hop of an outbound message. Implemented by
// [SMTPDeliverer] in production and by fakes in consumer tests.
type Deliverer interface {
	Deliver(message Message) error
}

// SMTPDeliverer sends messages through a plain SMTP relay.
type SMTPDeliverer struct {
	addr string
	from string
	auth smtp.Auth
}

// NewSMTPDeliverer configures delivery through the relay at addr
// ("host:port"). Username may be empty for an unauthenticated relay.
func NewSMTPDeliverer(addr, from, username, password string) *SMTPDeliverer {
	var auth smtp.Auth
	if username != "" {
		host := addr
		if i := strings.IndexByte(addr, ':'); i >= 0 {
			host = addr[:i]
		}
		auth = smtp.PlainAuth("", username, password, host)
	}

	return &SMTPDeliverer{addr: addr, from: from, auth: auth}
}

// Deliver implements [Deliverer] over net/smtp.
func (deliverer *SMTPDeliverer) Deliver(message Message) error {
	payload := encodeRFC822(deliverer.from, message)

	if err := smtp.SendMail(deliverer.addr, deliverer.auth, deliverer.from, []string{message.To}, payload); err != nil {
		return fmt.Errorf("mail: smtp delivery to %s failed: %w", message.To, err)
	}

	return nil
}

// encodeRFC822 renders the minimal header block plus body expected by
// smtp.SendMail. Confirmation-code mail is plain text only.
func encodeRFC822(from string, message Message) []byte {
	var builder strings.Builder
	builder.WriteString("From: " + from + "\r\n")
	builder.WriteString("To: " + message.To + "\r\n")
	builder.WriteString("Subject: " + message.Subject + "\r\n")
	builder.WriteString("MIME-Version: 1.0\r\n")
	builder.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	builder.WriteString("\r\n")
	builder.WriteString(message.Body)
	builder.WriteString("\r\n")
	return []byte(builder.String())
}
