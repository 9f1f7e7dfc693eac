// Файл: internal/services/submission.go
package services

import (
	"context"
	"mime/multipart"
	"time"

	"contact-system/config"
	"contact-system/internal/dto"
	"contact-system/internal/entities"
	"contact-system/internal/repositories"
	apperrors "contact-system/pkg/errors"
	"contact-system/pkg/fallback"
	"contact-system/pkg/filestorage"
	"contact-system/pkg/utils"

	"github.com/aarondl/null/v8"
	"go.uber.org/zap"
)

// Ключ версии кеша списка обращений. Каждая мутация (новое обращение,
// смена статуса) инкрементирует счётчик, делая закешированные страницы
// недостижимыми без перебора ключей.
const SubmissionsCacheVersionKey = "contact:submissions:ver"

const attachmentUploadContext = "contact_attachment"

// SubmissionServiceInterface - конвейер приёма обращения контактной формы.
type SubmissionServiceInterface interface {
	Ingest(ctx context.Context, payload dto.CreateSubmissionDTO, files []*multipart.FileHeader, meta dto.RequestMeta) (*dto.IngestResultDTO, error)
}

type SubmissionService struct {
	repo           repositories.SubmissionRepositoryInterface
	attachmentRepo repositories.AttachmentRepositoryInterface
	fileStorage    filestorage.FileStorageInterface
	fallbackStore  fallback.StoreInterface
	notifier       NotificationServiceInterface
	cacheRepo      repositories.CacheRepositoryInterface
	logger         *zap.Logger
}

func NewSubmissionService(
	repo repositories.SubmissionRepositoryInterface,
	attachmentRepo repositories.AttachmentRepositoryInterface,
	fileStorage filestorage.FileStorageInterface,
	fallbackStore fallback.StoreInterface,
	notifier NotificationServiceInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	logger *zap.Logger,
) SubmissionServiceInterface {
	return &SubmissionService{
		repo:           repo,
		attachmentRepo: attachmentRepo,
		fileStorage:    fileStorage,
		fallbackStore:  fallbackStore,
		notifier:       notifier,
		cacheRepo:      cacheRepo,
		logger:         logger,
	}
}

// Ingest проводит одно обращение через весь конвейер:
// сохранение с откатом на резервный файл, загрузка вложений,
// уведомления. Политика: обращение не должно потеряться, даже если
// основное хранилище лежит; частичные сбои вложений и почты нефатальны.
func (s *SubmissionService) Ingest(
	ctx context.Context,
	payload dto.CreateSubmissionDTO,
	files []*multipart.FileHeader,
	meta dto.RequestMeta,
) (*dto.IngestResultDTO, error) {
	now := time.Now().UTC()

	submission := &entities.Submission{
		Name:      payload.Name,
		Email:     payload.Email,
		Subject:   payload.Subject,
		Reason:    payload.Reason,
		Message:   payload.Message,
		Status:    entities.SubmissionStatusNew,
		IPAddress: null.NewString(meta.IPAddress, meta.IPAddress != ""),
		UserAgent: null.NewString(meta.UserAgent, meta.UserAgent != ""),
		CreatedAt: now,
	}

	// Шаг 1: основное хранилище, при отказе - резервный файл.
	savedToDatabase := true
	submissionID, err := s.repo.Create(ctx, submission)
	if err != nil {
		s.logger.Warn("не удалось сохранить обращение в основное хранилище, уходим в резервный файл",
			zap.Error(err))

		savedToDatabase = false
		if fbErr := s.appendFallback(submission, err.Error()); fbErr != nil {
			s.logger.Error("резервный файл тоже недоступен, обращение потеряно",
				zap.Error(fbErr))
			return nil, apperrors.ErrPersistenceFailure
		}

		// Слабый идентификатор для ответа: у резервной записи нет id.
		submissionID = now.Format(time.RFC3339)
	}
	submission.ID = submissionID

	// Шаг 2: вложения. Ключи скоупятся id обращения, поэтому грузим их
	// только после успешного сохранения в основное хранилище.
	attachmentCount := 0
	if savedToDatabase && len(files) > 0 {
		attachmentCount = s.processAttachments(ctx, submissionID, files)
	}

	// Шаг 3: уведомления. Не зависят от исхода шагов 1-2 и никогда
	// не роняют запрос: обращение к этому моменту уже записано.
	emailSent := false
	if s.notifier.Enabled() {
		emailSent = s.dispatchNotifications(submission, savedToDatabase, attachmentCount)
	}

	if savedToDatabase {
		if _, err := s.cacheRepo.Incr(ctx, SubmissionsCacheVersionKey); err != nil {
			s.logger.Warn("не удалось инвалидировать кеш списка обращений", zap.Error(err))
		}
	}

	return &dto.IngestResultDTO{
		SubmissionID:    submissionID,
		SavedToDatabase: savedToDatabase,
		EmailSent:       emailSent,
		AttachmentCount: attachmentCount,
	}, nil
}

func (s *SubmissionService) appendFallback(submission *entities.Submission, reason string) error {
	return s.fallbackStore.Append(fallback.Record{
		Name:            submission.Name,
		Email:           submission.Email,
		Subject:         submission.Subject,
		Reason:          submission.Reason,
		Message:         submission.Message,
		Status:          submission.Status,
		IPAddress:       submission.IPAddress.String,
		UserAgent:       submission.UserAgent.String,
		CreatedAt:       submission.CreatedAt,
		SavedToDatabase: false,
		FallbackReason:  reason,
	})
}

// processAttachments обрабатывает каждый файл независимо: сбой одного
// вложения не прерывает остальные и не откатывает родительское обращение.
// Возвращает количество успешно сохранённых вложений.
func (s *SubmissionService) processAttachments(ctx context.Context, submissionID string, files []*multipart.FileHeader) int {
	count := 0
	prefix := config.UploadContexts[attachmentUploadContext].PathPrefix + "/" + submissionID

	for _, fileHeader := range files {
		if fileHeader == nil || fileHeader.Size == 0 {
			continue
		}
		if err := s.processOneAttachment(ctx, submissionID, prefix, fileHeader); err != nil {
			s.logger.Warn("вложение пропущено",
				zap.String("submissionID", submissionID),
				zap.String("fileName", fileHeader.Filename),
				zap.Error(err))
			continue
		}
		count++
	}
	return count
}

func (s *SubmissionService) processOneAttachment(ctx context.Context, submissionID, prefix string, fileHeader *multipart.FileHeader) error {
	src, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	if err := utils.ValidateFile(fileHeader, src, attachmentUploadContext); err != nil {
		return err
	}

	storagePath, err := s.fileStorage.Save(src, fileHeader.Filename, prefix)
	if err != nil {
		return err
	}

	attachment := &entities.Attachment{
		SubmissionID: submissionID,
		OriginalName: fileHeader.Filename,
		StoragePath:  storagePath,
		PublicURL:    s.fileStorage.PublicURL(storagePath),
		FileSize:     fileHeader.Size,
		MimeType:     fileHeader.Header.Get("Content-Type"),
		UploadedAt:   time.Now().UTC(),
	}

	if _, err := s.attachmentRepo.Create(ctx, attachment); err != nil {
		// Бинарник уже лежит в хранилище, а записи о нём не будет -
		// подчищаем осиротевший файл.
		if delErr := s.fileStorage.Delete(storagePath); delErr != nil {
			s.logger.Warn("не удалось удалить осиротевший файл",
				zap.String("storagePath", storagePath), zap.Error(delErr))
		}
		return err
	}

	if err := s.repo.IncrementAttachmentsCount(ctx, submissionID); err != nil {
		s.logger.Warn("не удалось обновить счётчик вложений",
			zap.String("submissionID", submissionID), zap.Error(err))
	}
	return nil
}

// dispatchNotifications отправляет два письма: сводку оператору и
// подтверждение отправителю. true - только если ушли оба.
func (s *SubmissionService) dispatchNotifications(submission *entities.Submission, savedToDatabase bool, attachmentCount int) bool {
	sent := true

	if err := s.notifier.SendOperatorAlert(submission, savedToDatabase, attachmentCount); err != nil {
		s.logger.Warn("не удалось отправить письмо оператору", zap.Error(err))
		sent = false
	}

	if err := s.notifier.SendRequesterReceipt(submission, savedToDatabase); err != nil {
		s.logger.Warn("не удалось отправить подтверждение отправителю",
			zap.String("email", submission.Email), zap.Error(err))
		sent = false
	}

	return sent
}
