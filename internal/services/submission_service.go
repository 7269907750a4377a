package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"cardswap/internal/logger"
	"cardswap/internal/metrics"
	"cardswap/internal/models"
	"cardswap/internal/repositories"
	"cardswap/internal/services/dto"
	"cardswap/internal/storage"
	"cardswap/internal/validator"
	"cardswap/pkg/apperrors"
)

// ============================================
// SUBMISSION SERVICE
// ============================================

type SubmissionService interface {
	// Приём заявки: валидация, сохранение файла и записи, уведомление
	Submit(ctx context.Context, req *dto.SubmitRequest) (*models.Submission, error)

	// Все заявки, новые первыми
	List(ctx context.Context) ([]models.Submission, error)

	// Выгрузка хранилища в JSON
	Export(ctx context.Context, w io.Writer) error
}

// SubmissionNotifier получает сохранённую заявку; не должен блокировать
type SubmissionNotifier interface {
	NotifySubmission(ctx context.Context, submission *models.Submission)
}

type submissionService struct {
	store         repositories.SubmissionStore
	storage       storage.Storage
	validator     *validator.Validator
	ids           *IDGenerator
	notifier      SubmissionNotifier
	maxUploadSize int64
}

func NewSubmissionService(
	store repositories.SubmissionStore,
	storage storage.Storage,
	notifier SubmissionNotifier,
	ids *IDGenerator,
	maxUploadSize int64,
) SubmissionService {
	if ids == nil {
		ids = NewIDGenerator()
	}
	return &submissionService{
		store:         store,
		storage:       storage,
		validator:     validator.New(),
		ids:           ids,
		notifier:      notifier,
		maxUploadSize: maxUploadSize,
	}
}

func (s *submissionService) Submit(ctx context.Context, req *dto.SubmitRequest) (*models.Submission, error) {
	if err := s.validate(req); err != nil {
		metrics.SubmissionsTotal.WithLabelValues(metrics.ResultRejected).Inc()
		return nil, err
	}

	if req.Image != nil && req.Image.Size > s.maxUploadSize {
		metrics.SubmissionsTotal.WithLabelValues(metrics.ResultRejected).Inc()
		return nil, apperrors.ErrFileTooLarge
	}

	createdAt := s.ids.Next()

	submission := &models.Submission{
		ID:        models.SubmissionID(createdAt),
		Name:      req.Name,
		Contact:   req.Contact,
		Brand:     req.Brand,
		Value:     req.Value,
		Code:      req.Code,
		Timestamp: models.FormatTimestamp(createdAt),
	}

	if req.Image != nil {
		name, err := s.saveImage(ctx, createdAt.UnixMilli(), req)
		if err != nil {
			metrics.SubmissionsTotal.WithLabelValues(metrics.ResultFailed).Inc()
			return nil, apperrors.StorageError(err)
		}
		submission.Image = name
	}

	if err := s.store.Append(ctx, submission); err != nil {
		if submission.Image != "" {
			if delErr := s.storage.Delete(ctx, submission.Image); delErr != nil {
				logger.CtxWarn(ctx, "Failed to remove orphaned upload", "file", submission.Image, "error", delErr)
			}
		}
		metrics.SubmissionsTotal.WithLabelValues(metrics.ResultFailed).Inc()
		return nil, apperrors.StorageError(err)
	}

	metrics.SubmissionsTotal.WithLabelValues(metrics.ResultAccepted).Inc()
	logger.CtxInfo(ctx, "Submission received", "submission_id", submission.ID, "brand", submission.Brand, "has_image", submission.Image != "")

	if s.notifier != nil {
		s.notifier.NotifySubmission(ctx, submission)
	}

	return submission, nil
}

// validate: consent проверяется раньше остальных полей
func (s *submissionService) validate(req *dto.SubmitRequest) error {
	err := s.validator.Validate(req)
	if err == nil {
		return nil
	}

	var ve *validator.ValidationError
	if !errors.As(err, &ve) {
		return apperrors.InternalError(err)
	}
	if ve.Has("consent") {
		return apperrors.ErrConsentRequired.WithDetails(ve.Errors)
	}
	return apperrors.ErrMissingFields.WithDetails(ve.Errors)
}

func (s *submissionService) saveImage(ctx context.Context, millis int64, req *dto.SubmitRequest) (string, error) {
	file, err := req.Image.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	name := storage.UploadName(millis, req.Image.Filename)
	if err := s.storage.Save(ctx, name, file); err != nil {
		return "", fmt.Errorf("failed to save uploaded file: %w", err)
	}
	return name, nil
}

func (s *submissionService) List(ctx context.Context) ([]models.Submission, error) {
	submissions, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, apperrors.StorageError(err)
	}

	for i, j := 0, len(submissions)-1; i < j; i, j = i+1, j-1 {
		submissions[i], submissions[j] = submissions[j], submissions[i]
	}
	return submissions, nil
}

func (s *submissionService) Export(ctx context.Context, w io.Writer) error {
	if exporter, ok := s.store.(repositories.Exporter); ok {
		if err := exporter.Export(ctx, w); err != nil {
			return apperrors.StorageError(err)
		}
		return nil
	}

	submissions, err := s.store.ListAll(ctx)
	if err != nil {
		return apperrors.StorageError(err)
	}
	raw, err := json.MarshalIndent(submissions, "", "  ")
	if err != nil {
		return apperrors.InternalError(err)
	}
	if _, err := w.Write(raw); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}
