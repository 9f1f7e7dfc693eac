// Файл: internal/services/admin_service.go
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"contact-system/internal/dto"
	"contact-system/internal/entities"
	"contact-system/internal/repositories"
	apperrors "contact-system/pkg/errors"

	"go.uber.org/zap"
)

// AdminServiceInterface - административная витрина обращений:
// постраничный список с вложениями, смена статуса, выгрузка.
type AdminServiceInterface interface {
	ListSubmissions(ctx context.Context, limit, offset, page uint64) ([]dto.SubmissionResponseDTO, uint64, error)
	UpdateSubmissionStatus(ctx context.Context, payload dto.UpdateSubmissionStatusDTO) error
	ExportSubmissions(ctx context.Context) ([]dto.SubmissionResponseDTO, error)
}

type AdminService struct {
	repo           repositories.SubmissionRepositoryInterface
	attachmentRepo repositories.AttachmentRepositoryInterface
	cacheRepo      repositories.CacheRepositoryInterface
	cacheTTL       time.Duration
	logger         *zap.Logger
}

func NewAdminService(
	repo repositories.SubmissionRepositoryInterface,
	attachmentRepo repositories.AttachmentRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	cacheTTL time.Duration,
	logger *zap.Logger,
) AdminServiceInterface {
	return &AdminService{
		repo:           repo,
		attachmentRepo: attachmentRepo,
		cacheRepo:      cacheRepo,
		cacheTTL:       cacheTTL,
		logger:         logger,
	}
}

type cachedSubmissionsPage struct {
	List  []dto.SubmissionResponseDTO `json:"list"`
	Total uint64                      `json:"total"`
}

// ListSubmissions отдаёт страницу обращений с вложенными файлами.
// Кеш версионируется счётчиком: после каждой мутации старые ключи
// просто перестают запрашиваться и доживают свой TTL.
func (s *AdminService) ListSubmissions(ctx context.Context, limit, offset, page uint64) ([]dto.SubmissionResponseDTO, uint64, error) {
	version, errVer := s.cacheRepo.Get(ctx, SubmissionsCacheVersionKey)
	if errVer != nil {
		version = "0"
	}
	cacheKey := fmt.Sprintf("contact:submissions:v%s:p%d:l%d", version, page, limit)

	if cachedJSON, err := s.cacheRepo.Get(ctx, cacheKey); err == nil {
		var cached cachedSubmissionsPage
		if err := json.Unmarshal([]byte(cachedJSON), &cached); err == nil {
			s.logger.Debug("список обращений найден в кеше", zap.String("key", cacheKey))
			return cached.List, cached.Total, nil
		}
		s.logger.Warn("повреждённая запись в кеше списка обращений", zap.String("key", cacheKey))
	}

	submissions, total, err := s.repo.FindAll(ctx, limit, offset)
	if err != nil {
		s.logger.Error("не удалось получить список обращений", zap.Error(err))
		return nil, 0, err
	}

	list, err := s.attachSubmissionFiles(ctx, submissions)
	if err != nil {
		return nil, 0, err
	}

	if data, err := json.Marshal(cachedSubmissionsPage{List: list, Total: total}); err == nil {
		if err := s.cacheRepo.Set(ctx, cacheKey, string(data), s.cacheTTL); err != nil {
			s.logger.Warn("не удалось записать список обращений в кеш", zap.Error(err))
		}
	}

	return list, total, nil
}

func (s *AdminService) UpdateSubmissionStatus(ctx context.Context, payload dto.UpdateSubmissionStatusDTO) error {
	if err := s.repo.UpdateStatus(ctx, payload.SubmissionID, payload.Status); err != nil {
		if err != apperrors.ErrNotFound {
			s.logger.Error("не удалось обновить статус обращения",
				zap.String("submissionID", payload.SubmissionID), zap.Error(err))
		}
		return err
	}

	if _, err := s.cacheRepo.Incr(ctx, SubmissionsCacheVersionKey); err != nil {
		s.logger.Warn("не удалось инвалидировать кеш списка обращений", zap.Error(err))
	}
	return nil
}

// ExportSubmissions выгружает все обращения без пагинации (для xlsx-отчёта).
func (s *AdminService) ExportSubmissions(ctx context.Context) ([]dto.SubmissionResponseDTO, error) {
	submissions, _, err := s.repo.FindAll(ctx, 100000, 0)
	if err != nil {
		return nil, err
	}
	return s.attachSubmissionFiles(ctx, submissions)
}

func (s *AdminService) attachSubmissionFiles(ctx context.Context, submissions []entities.Submission) ([]dto.SubmissionResponseDTO, error) {
	ids := make([]string, 0, len(submissions))
	for _, sub := range submissions {
		ids = append(ids, sub.ID)
	}

	grouped, err := s.attachmentRepo.FindAllBySubmissionIDs(ctx, ids)
	if err != nil {
		s.logger.Error("не удалось получить вложения для страницы обращений", zap.Error(err))
		return nil, err
	}

	list := make([]dto.SubmissionResponseDTO, 0, len(submissions))
	for _, sub := range submissions {
		item := dto.SubmissionResponseDTO{
			ID:               sub.ID,
			Name:             sub.Name,
			Email:            sub.Email,
			Subject:          sub.Subject,
			Reason:           sub.Reason,
			Message:          sub.Message,
			Status:           sub.Status,
			IPAddress:        sub.IPAddress,
			UserAgent:        sub.UserAgent,
			AttachmentsCount: sub.AttachmentsCount,
			CreatedAt:        sub.CreatedAt.Format(time.RFC3339),
			UpdatedAt:        sub.UpdatedAt.Format(time.RFC3339),
			Attachments:      []dto.AttachmentResponseDTO{},
		}
		for _, a := range grouped[sub.ID] {
			item.Attachments = append(item.Attachments, dto.AttachmentResponseDTO{
				ID:           a.ID,
				OriginalName: a.OriginalName,
				PublicURL:    a.PublicURL,
				FileSize:     a.FileSize,
				MimeType:     a.MimeType,
				UploadedAt:   a.UploadedAt.Format(time.RFC3339),
			})
		}
		list = append(list, item)
	}
	return list, nil
}
