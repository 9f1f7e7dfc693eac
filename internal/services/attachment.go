package services

import (
	"context"

	"contact-system/internal/dto"
	"contact-system/internal/repositories"
	"contact-system/pkg/filestorage"

	"go.uber.org/zap"
)

// AttachmentServiceInterface определяет контракт для управления вложениями.
type AttachmentServiceInterface interface {
	GetAttachmentsBySubmissionID(ctx context.Context, submissionID string) ([]dto.AttachmentResponseDTO, error)
	DeleteAttachment(ctx context.Context, attachmentID uint64) error
}

type AttachmentService struct {
	repo        repositories.AttachmentRepositoryInterface
	fileStorage filestorage.FileStorageInterface
	logger      *zap.Logger
}

func NewAttachmentService(
	repo repositories.AttachmentRepositoryInterface,
	fileStorage filestorage.FileStorageInterface,
	logger *zap.Logger,
) AttachmentServiceInterface {
	return &AttachmentService{
		repo:        repo,
		fileStorage: fileStorage,
		logger:      logger,
	}
}

func (s *AttachmentService) GetAttachmentsBySubmissionID(ctx context.Context, submissionID string) ([]dto.AttachmentResponseDTO, error) {
	attachments, err := s.repo.FindAllBySubmissionID(ctx, submissionID)
	if err != nil {
		s.logger.Error("не удалось получить вложения обращения",
			zap.String("submissionID", submissionID), zap.Error(err))
		return nil, err
	}

	var attachmentsDTO []dto.AttachmentResponseDTO
	for _, a := range attachments {
		attachmentsDTO = append(attachmentsDTO, dto.AttachmentResponseDTO{
			ID:           a.ID,
			OriginalName: a.OriginalName,
			PublicURL:    a.PublicURL,
			FileSize:     a.FileSize,
			MimeType:     a.MimeType,
			UploadedAt:   a.UploadedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	return attachmentsDTO, nil
}

// DeleteAttachment удаляет вложение и из базы, и из хранилища файлов.
func (s *AttachmentService) DeleteAttachment(ctx context.Context, attachmentID uint64) error {
	attachment, err := s.repo.FindByID(ctx, attachmentID)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteAttachment(ctx, attachmentID); err != nil {
		s.logger.Error("не удалось удалить запись о вложении",
			zap.Uint64("attachmentID", attachmentID), zap.Error(err))
		return err
	}

	// Файл удаляем после записи: запись без файла хуже, чем файл без записи.
	if err := s.fileStorage.Delete(attachment.StoragePath); err != nil {
		s.logger.Warn("запись удалена, но файл остался в хранилище",
			zap.String("storagePath", attachment.StoragePath), zap.Error(err))
	}

	return nil
}
