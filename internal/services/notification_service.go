package services

import (
	"context"
	"fmt"

	"cardswap/internal/email"
	"cardswap/internal/logger"
	"cardswap/internal/metrics"
	"cardswap/internal/models"
	"cardswap/internal/workers"
)

// MailSettings - общие для обоих почтовых путей параметры отправителя
type MailSettings struct {
	Username string
	Password string
	From     string
	FromName string
}

func (m MailSettings) hasCredentials() bool {
	return m.Username != "" && m.Password != ""
}

func (m MailSettings) sender() string {
	if m.From != "" {
		return m.From
	}
	return m.Username
}

// NotificationQueue - очередь фоновой доставки писем
type NotificationQueue interface {
	Enqueue(job workers.NotificationJob) bool
}

// ============================================
// NOTIFICATION SERVICE
// ============================================

type NotificationService interface {
	// Enabled - заданы получатель и SMTP-логин/пароль
	Enabled() bool

	// NotifySubmission ставит письмо о новой заявке в очередь и сразу возвращается
	NotifySubmission(ctx context.Context, submission *models.Submission)
}

type notificationService struct {
	recipient string
	mail      MailSettings
	queue     NotificationQueue
	renderer  email.TemplateRenderer
}

func NewNotificationService(recipient string, mail MailSettings, queue NotificationQueue, renderer email.TemplateRenderer) NotificationService {
	if renderer == nil {
		renderer = email.NewDefaultTemplateManager()
	}
	return &notificationService{
		recipient: recipient,
		mail:      mail,
		queue:     queue,
		renderer:  renderer,
	}
}

func (s *notificationService) Enabled() bool {
	return s.recipient != "" && s.mail.hasCredentials() && s.queue != nil
}

func (s *notificationService) NotifySubmission(ctx context.Context, submission *models.Submission) {
	if !s.Enabled() {
		metrics.NotificationsTotal.WithLabelValues(workers.KindSubmission, metrics.ResultSkipped).Inc()
		return
	}

	msg, err := BuildSubmissionEmail(s.renderer, submission)
	if err != nil {
		logger.CtxWithError(ctx, "Failed to build notification email", err, "submission_id", submission.ID)
		return
	}
	msg.From = s.mail.sender()
	msg.FromName = s.mail.FromName
	msg.To = []string{s.recipient}

	if s.queue.Enqueue(workers.NotificationJob{Kind: workers.KindSubmission, Email: msg}) {
		logger.CtxInfo(ctx, "Notification queued", "submission_id", submission.ID)
	}
}

// BuildSubmissionEmail формирует тему и текст письма о заявке
func BuildSubmissionEmail(renderer email.TemplateRenderer, submission *models.Submission) (*email.Email, error) {
	body, err := renderer.Render(email.TemplateSubmission, email.TemplateData{
		"Name":      submission.Name,
		"Contact":   submission.Contact,
		"Brand":     submission.Brand,
		"Value":     submission.Value,
		"Code":      submission.Code,
		"Image":     submission.Image,
		"Timestamp": submission.Timestamp,
	})
	if err != nil {
		return nil, err
	}

	return &email.Email{
		Subject: fmt.Sprintf("New Cardswap submission from %s", submission.Name),
		Body:    body,
	}, nil
}
