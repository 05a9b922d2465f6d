// Package email renders and dispatches subscription lifecycle emails.
package email

import (
	"bytes"
	"context"
	"fmt"
	"text/template"

	"github.com/subhub/subhub/internal/domain"

	"go.uber.org/zap"
)

// Data is the variable set every template is rendered with.
type Data struct {
	Subscription      *domain.Subscription
	Order             *domain.Order
	Admin             bool
	AdditionalContent string
}

type Message struct {
	To      string
	Subject string
	Body    string
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// LogSender writes outgoing mail to the log. Used in development and as the
// default when no SMTP transport is wired up.
type LogSender struct {
	logger *zap.Logger
}

func NewLogSender(logger *zap.Logger) *LogSender { return &LogSender{logger: logger} }

func (s *LogSender) Send(_ context.Context, msg Message) error {
	s.logger.Info("email dispatched",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.Int("body_bytes", len(msg.Body)),
	)
	return nil
}

type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() (*Renderer, error) {
	t := template.New("email")
	for name, body := range templates {
		var err error
		t, err = t.New(name).Parse(body)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
	}
	return &Renderer{tmpl: t}, nil
}

// Render produces the subject and body for one template.
func (r *Renderer) Render(name string, data Data) (string, string, error) {
	subject, ok := subjects[name]
	if !ok {
		return "", "", fmt.Errorf("unknown email template %q", name)
	}

	var sb bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&sb, name, data); err != nil {
		return "", "", fmt.Errorf("render template %s: %w", name, err)
	}

	var subj bytes.Buffer
	st, err := template.New("subject").Parse(subject)
	if err != nil {
		return "", "", err
	}
	if err := st.Execute(&subj, data); err != nil {
		return "", "", err
	}
	return subj.String(), sb.String(), nil
}

// Mailer couples the renderer with a transport.
type Mailer struct {
	renderer *Renderer
	sender   Sender
	logger   *zap.Logger
}

func NewMailer(renderer *Renderer, sender Sender, logger *zap.Logger) *Mailer {
	return &Mailer{renderer: renderer, sender: sender, logger: logger}
}

func (m *Mailer) SendTemplate(ctx context.Context, name, to string, data Data) error {
	subject, body, err := m.renderer.Render(name, data)
	if err != nil {
		return err
	}
	if err := m.sender.Send(ctx, Message{To: to, Subject: subject, Body: body}); err != nil {
		m.logger.Error("email send failed",
			zap.String("template", name),
			zap.String("to", to),
			zap.Error(err),
		)
		return err
	}
	return nil
}
