// Файл: internal/repositories/attachment_repository.go
package repositories

import (
	"context"
	"errors"

	"contact-system/internal/entities"
	apperrors "contact-system/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AttachmentRepositoryInterface interface {
	Create(ctx context.Context, attachment *entities.Attachment) (uint64, error)
	FindAllBySubmissionID(ctx context.Context, submissionID string) ([]entities.Attachment, error)
	FindAllBySubmissionIDs(ctx context.Context, submissionIDs []string) (map[string][]entities.Attachment, error)
	FindByID(ctx context.Context, id uint64) (*entities.Attachment, error)
	DeleteAttachment(ctx context.Context, id uint64) error
}

type attachmentRepository struct {
	storage *pgxpool.Pool
}

func NewAttachmentRepository(storage *pgxpool.Pool) AttachmentRepositoryInterface {
	return &attachmentRepository{
		storage: storage,
	}
}

// Create вставляет метаданные вложения. Вызывается строго после успешной
// загрузки бинарника в хранилище: запись без файла существовать не должна.
func (r *attachmentRepository) Create(ctx context.Context, attachment *entities.Attachment) (uint64, error) {
	query := `
		INSERT INTO contact_attachments
		(submission_id, original_name, storage_path, public_url, file_size, mime_type, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	var attachmentID uint64
	err := r.storage.QueryRow(ctx, query,
		attachment.SubmissionID, attachment.OriginalName, attachment.StoragePath,
		attachment.PublicURL, attachment.FileSize, attachment.MimeType, attachment.UploadedAt,
	).Scan(&attachmentID)
	return attachmentID, err
}

func (r *attachmentRepository) FindAllBySubmissionID(ctx context.Context, submissionID string) ([]entities.Attachment, error) {
	query := `
		SELECT id, submission_id, original_name, storage_path, public_url, file_size, mime_type, uploaded_at
		FROM contact_attachments
		WHERE submission_id = $1
		ORDER BY uploaded_at DESC`
	rows, err := r.storage.Query(ctx, query, submissionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAttachments(rows)
}

// FindAllBySubmissionIDs достаёт вложения сразу для страницы обращений,
// сгруппированные по идентификатору родителя.
func (r *attachmentRepository) FindAllBySubmissionIDs(ctx context.Context, submissionIDs []string) (map[string][]entities.Attachment, error) {
	if len(submissionIDs) == 0 {
		return map[string][]entities.Attachment{}, nil
	}

	query := `
		SELECT id, submission_id, original_name, storage_path, public_url, file_size, mime_type, uploaded_at
		FROM contact_attachments
		WHERE submission_id = ANY($1)
		ORDER BY uploaded_at DESC`
	rows, err := r.storage.Query(ctx, query, submissionIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	attachments, err := scanAttachments(rows)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]entities.Attachment, len(submissionIDs))
	for _, a := range attachments {
		grouped[a.SubmissionID] = append(grouped[a.SubmissionID], a)
	}
	return grouped, nil
}

func (r *attachmentRepository) FindByID(ctx context.Context, id uint64) (*entities.Attachment, error) {
	query := `
		SELECT id, submission_id, original_name, storage_path, public_url, file_size, mime_type, uploaded_at
		FROM contact_attachments
		WHERE id = $1`
	var a entities.Attachment
	err := r.storage.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.SubmissionID, &a.OriginalName, &a.StoragePath,
		&a.PublicURL, &a.FileSize, &a.MimeType, &a.UploadedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *attachmentRepository) DeleteAttachment(ctx context.Context, id uint64) error {
	query := "DELETE FROM contact_attachments WHERE id = $1"
	result, err := r.storage.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func scanAttachments(rows pgx.Rows) ([]entities.Attachment, error) {
	var attachments []entities.Attachment
	for rows.Next() {
		var a entities.Attachment
		if err := rows.Scan(
			&a.ID, &a.SubmissionID, &a.OriginalName, &a.StoragePath,
			&a.PublicURL, &a.FileSize, &a.MimeType, &a.UploadedAt,
		); err != nil {
			return nil, err
		}
		attachments = append(attachments, a)
	}
	return attachments, rows.Err()
}
