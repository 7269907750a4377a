package services

import (
	"context"
	"fmt"

	"cardswap/internal/email"
	"cardswap/internal/logger"
	"cardswap/internal/metrics"
	"cardswap/internal/services/dto"
	"cardswap/internal/workers"
	"cardswap/pkg/apperrors"
)

// ContactService отправляет сообщения из контактной формы.
// Отправка синхронная: клиент получает результат доставки.
type ContactService interface {
	SendContactMessage(ctx context.Context, req *dto.ContactRequest) error
}

type contactService struct {
	receiver string
	mail     MailSettings
	provider email.Provider
	renderer email.TemplateRenderer
}

func NewContactService(receiver string, mail MailSettings, provider email.Provider, renderer email.TemplateRenderer) ContactService {
	if renderer == nil {
		renderer = email.NewDefaultTemplateManager()
	}
	return &contactService{
		receiver: receiver,
		mail:     mail,
		provider: provider,
		renderer: renderer,
	}
}

func (s *contactService) SendContactMessage(ctx context.Context, req *dto.ContactRequest) error {
	if s.receiver == "" || !s.mail.hasCredentials() || s.provider == nil {
		metrics.NotificationsTotal.WithLabelValues(workers.KindContact, metrics.ResultSkipped).Inc()
		return apperrors.ErrNotificationDisabled
	}

	body, err := s.renderer.Render(email.TemplateContact, email.TemplateData{
		"Name":    req.Name,
		"Email":   req.Email,
		"Message": req.Message,
	})
	if err != nil {
		return apperrors.InternalError(err)
	}

	msg := &email.Email{
		From:     s.mail.sender(),
		FromName: s.mail.FromName,
		To:       []string{s.receiver},
		ReplyTo:  req.Email,
		Subject:  fmt.Sprintf("New message from %s", req.Name),
		Body:     body,
	}

	if err := s.provider.Send(ctx, msg); err != nil {
		metrics.NotificationsTotal.WithLabelValues(workers.KindContact, metrics.ResultFailed).Inc()
		logger.CtxWithError(ctx, "Failed to send contact message", err)
		return apperrors.ErrEmailDelivery.WithError(err)
	}

	metrics.NotificationsTotal.WithLabelValues(workers.KindContact, metrics.ResultSent).Inc()
	logger.CtxInfo(ctx, "Contact message sent")
	return nil
}
