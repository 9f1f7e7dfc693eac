package repositories

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"contact-system/internal/entities"
	apperrors "contact-system/pkg/errors"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Интеграционные тесты репозиториев. Запускаются против живой базы из
// TEST_DATABASE_URL; без неё пакет скипается, а не падает.
var testPool *pgxpool.Pool

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		os.Exit(m.Run())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err == nil {
		err = pool.Ping(ctx)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "тестовая база недоступна: %v\n", err)
		os.Exit(m.Run())
	}

	schema, err := os.ReadFile("testdata/schema.sql")
	if err != nil {
		fmt.Fprintf(os.Stderr, "не удалось прочитать схему: %v\n", err)
		os.Exit(1)
	}
	if _, err := pool.Exec(ctx, string(schema)); err != nil {
		fmt.Fprintf(os.Stderr, "не удалось применить схему: %v\n", err)
		os.Exit(1)
	}

	testPool = pool
	code := m.Run()
	pool.Close()
	os.Exit(code)
}

func requireDB(t *testing.T) {
	t.Helper()
	if testPool == nil {
		t.Skip("TEST_DATABASE_URL не задан, интеграционный тест пропущен")
	}
}

func seedSubmission(t *testing.T, repo SubmissionRepositoryInterface, subject string) string {
	t.Helper()
	id, err := repo.Create(context.Background(), &entities.Submission{
		Name:      "Ann",
		Email:     "ann@example.com",
		Subject:   subject,
		Reason:    "general-inquiry",
		Message:   "We need a writer",
		Status:    entities.SubmissionStatusNew,
		IPAddress: null.StringFrom("10.0.0.1"),
		UserAgent: null.StringFrom("curl/8.0"),
		CreatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)
	return id
}

func TestSubmissionRepository_CreateAndFindByID(t *testing.T) {
	requireDB(t)
	repo := NewSubmissionRepository(testPool)

	id := seedSubmission(t, repo, "create-and-find")
	require.NotEmpty(t, id, "база присваивает uuid при вставке")

	found, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "create-and-find", found.Subject)
	assert.Equal(t, entities.SubmissionStatusNew, found.Status)
	assert.Equal(t, "10.0.0.1", found.IPAddress.String)
	assert.Equal(t, 0, found.AttachmentsCount)
}

func TestSubmissionRepository_FindAll_Pagination(t *testing.T) {
	requireDB(t)
	repo := NewSubmissionRepository(testPool)

	for i := 0; i < 3; i++ {
		seedSubmission(t, repo, fmt.Sprintf("page-test-%d", i))
	}

	page, total, err := repo.FindAll(context.Background(), 2, 0)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, total, uint64(3))
	assert.Len(t, page, 2)

	// Сортировка: свежие обращения первыми
	if len(page) == 2 {
		assert.True(t, !page[0].CreatedAt.Before(page[1].CreatedAt))
	}
}

func TestSubmissionRepository_UpdateStatus(t *testing.T) {
	requireDB(t)
	repo := NewSubmissionRepository(testPool)

	id := seedSubmission(t, repo, "status-test")

	require.NoError(t, repo.UpdateStatus(context.Background(), id, entities.SubmissionStatusRead))

	found, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, entities.SubmissionStatusRead, found.Status)
}

func TestSubmissionRepository_UpdateStatus_NotFound(t *testing.T) {
	requireDB(t)
	repo := NewSubmissionRepository(testPool)

	err := repo.UpdateStatus(context.Background(), "00000000-0000-0000-0000-000000000000", entities.SubmissionStatusRead)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSubmissionRepository_IncrementAttachmentsCount(t *testing.T) {
	requireDB(t)
	repo := NewSubmissionRepository(testPool)

	id := seedSubmission(t, repo, "counter-test")

	require.NoError(t, repo.IncrementAttachmentsCount(context.Background(), id))
	require.NoError(t, repo.IncrementAttachmentsCount(context.Background(), id))

	found, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 2, found.AttachmentsCount)
}

func TestAttachmentRepository_CreateAndGroup(t *testing.T) {
	requireDB(t)
	submissionRepo := NewSubmissionRepository(testPool)
	attachmentRepo := NewAttachmentRepository(testPool)

	first := seedSubmission(t, submissionRepo, "attachments-first")
	second := seedSubmission(t, submissionRepo, "attachments-second")

	for i, parent := range []string{first, first, second} {
		_, err := attachmentRepo.Create(context.Background(), &entities.Attachment{
			SubmissionID: parent,
			OriginalName: fmt.Sprintf("doc-%d.pdf", i),
			StoragePath:  fmt.Sprintf("contact-attachments/%s/doc-%d.pdf", parent, i),
			PublicURL:    fmt.Sprintf("/uploads/contact-attachments/%s/doc-%d.pdf", parent, i),
			FileSize:     1024,
			MimeType:     "application/pdf",
			UploadedAt:   time.Now().UTC(),
		})
		require.NoError(t, err)
	}

	grouped, err := attachmentRepo.FindAllBySubmissionIDs(context.Background(), []string{first, second})
	require.NoError(t, err)
	assert.Len(t, grouped[first], 2)
	assert.Len(t, grouped[second], 1)
}

func TestAttachmentRepository_Delete(t *testing.T) {
	requireDB(t)
	submissionRepo := NewSubmissionRepository(testPool)
	attachmentRepo := NewAttachmentRepository(testPool)

	parent := seedSubmission(t, submissionRepo, "delete-test")
	id, err := attachmentRepo.Create(context.Background(), &entities.Attachment{
		SubmissionID: parent,
		OriginalName: "doc.pdf",
		StoragePath:  "contact-attachments/x/doc.pdf",
		PublicURL:    "/uploads/contact-attachments/x/doc.pdf",
		FileSize:     10,
		MimeType:     "application/pdf",
		UploadedAt:   time.Now().UTC(),
	})
	require.NoError(t, err)

	require.NoError(t, attachmentRepo.DeleteAttachment(context.Background(), id))

	_, err = attachmentRepo.FindByID(context.Background(), id)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	err = attachmentRepo.DeleteAttachment(context.Background(), id)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
