// Файл: internal/repositories/submission-repository.go
package repositories

import (
	"context"
	"errors"
	"fmt"

	"contact-system/internal/entities"
	apperrors "contact-system/pkg/errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SubmissionRepositoryInterface interface {
	Create(ctx context.Context, submission *entities.Submission) (string, error)
	FindAll(ctx context.Context, limit, offset uint64) ([]entities.Submission, uint64, error)
	FindByID(ctx context.Context, id string) (*entities.Submission, error)
	UpdateStatus(ctx context.Context, id string, status string) error
	IncrementAttachmentsCount(ctx context.Context, id string) error
}

type submissionRepository struct {
	storage *pgxpool.Pool
}

func NewSubmissionRepository(storage *pgxpool.Pool) SubmissionRepositoryInterface {
	return &submissionRepository{
		storage: storage,
	}
}

// Create вставляет обращение и возвращает идентификатор, присвоенный базой.
// created_at приходит из сервиса: метка времени ставится один раз при приёме.
func (r *submissionRepository) Create(ctx context.Context, submission *entities.Submission) (string, error) {
	query := `
		INSERT INTO contact_submissions
		(name, email, subject, reason, message, status, ip_address, user_agent, attachments_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
		RETURNING id`
	var submissionID string
	err := r.storage.QueryRow(ctx, query,
		submission.Name, submission.Email, submission.Subject, submission.Reason,
		submission.Message, submission.Status, submission.IPAddress, submission.UserAgent,
		submission.AttachmentsCount, submission.CreatedAt,
	).Scan(&submissionID)
	if err != nil {
		return "", err
	}
	return submissionID, nil
}

func (r *submissionRepository) FindAll(ctx context.Context, limit, offset uint64) ([]entities.Submission, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	baseSelect := psql.Select().From("contact_submissions s")

	countQuery, countArgs, err := baseSelect.Columns("COUNT(s.id)").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка сборки COUNT-запроса: %w", err)
	}
	var totalCount uint64
	if err = r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("ошибка выполнения COUNT-запроса: %w", err)
	}
	if totalCount == 0 {
		return []entities.Submission{}, 0, nil
	}

	mainQuery, mainArgs, err := baseSelect.Columns(
		"s.id", "s.name", "s.email", "s.subject", "COALESCE(s.reason, '')", "s.message",
		"s.status", "s.ip_address", "s.user_agent", "s.attachments_count",
		"s.created_at", "s.updated_at",
	).
		OrderBy("s.created_at DESC").
		Limit(limit).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка сборки основного запроса: %w", err)
	}

	rows, err := r.storage.Query(ctx, mainQuery, mainArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var submissions []entities.Submission
	for rows.Next() {
		var s entities.Submission
		if err := rows.Scan(
			&s.ID, &s.Name, &s.Email, &s.Subject, &s.Reason, &s.Message,
			&s.Status, &s.IPAddress, &s.UserAgent, &s.AttachmentsCount,
			&s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		submissions = append(submissions, s)
	}
	return submissions, totalCount, rows.Err()
}

func (r *submissionRepository) FindByID(ctx context.Context, id string) (*entities.Submission, error) {
	query := `
		SELECT id, name, email, subject, COALESCE(reason, ''), message, status,
		       ip_address, user_agent, attachments_count, created_at, updated_at
		FROM contact_submissions
		WHERE id = $1`
	var s entities.Submission
	err := r.storage.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.Name, &s.Email, &s.Subject, &s.Reason, &s.Message, &s.Status,
		&s.IPAddress, &s.UserAgent, &s.AttachmentsCount, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *submissionRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	query := `UPDATE contact_submissions SET status = $1, updated_at = now() WHERE id = $2`
	result, err := r.storage.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *submissionRepository) IncrementAttachmentsCount(ctx context.Context, id string) error {
	query := `UPDATE contact_submissions SET attachments_count = attachments_count + 1 WHERE id = $1`
	_, err := r.storage.Exec(ctx, query, id)
	return err
}
