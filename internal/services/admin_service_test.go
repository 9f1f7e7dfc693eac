package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"contact-system/internal/dto"
	"contact-system/internal/entities"
	apperrors "contact-system/pkg/errors"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type listingRepo struct {
	fakeSubmissionRepo
	submissions  []entities.Submission
	findAllCalls int
	updateErr    error
	updated      []dto.UpdateSubmissionStatusDTO
}

func (r *listingRepo) FindAll(ctx context.Context, limit, offset uint64) ([]entities.Submission, uint64, error) {
	r.findAllCalls++
	return r.submissions, uint64(len(r.submissions)), nil
}

func (r *listingRepo) UpdateStatus(ctx context.Context, id, status string) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.updated = append(r.updated, dto.UpdateSubmissionStatusDTO{SubmissionID: id, Status: status})
	return nil
}

// memCache хранит значения по-настоящему: нужен для проверки
// версионирования ключей кеша.
type memCache struct {
	mu     sync.Mutex
	values map[string]string
	incrs  map[string]int64
}

func newMemCache() *memCache {
	return &memCache{values: map[string]string{}, incrs: map[string]int64{}}
}

func (c *memCache) Get(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.values[key]
	if !ok {
		return "", errors.New("cache miss")
	}
	return v, nil
}

func (c *memCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value.(string)
	return nil
}

func (c *memCache) Del(ctx context.Context, keys ...string) error { return nil }

func (c *memCache) Incr(ctx context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.incrs[key]++
	c.values[key] = time.Now().Format("20060102150405.000000000")
	return c.incrs[key], nil
}

func sampleSubmissions() []entities.Submission {
	now := time.Now().UTC()
	return []entities.Submission{
		{
			ID: "a1", Name: "Ann", Email: "ann@x.com", Subject: "First",
			Message: "hello", Status: entities.SubmissionStatusNew,
			IPAddress: null.StringFrom("10.0.0.1"),
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: "b2", Name: "Bob", Email: "bob@x.com", Subject: "Second",
			Message: "hi", Status: entities.SubmissionStatusRead,
			AttachmentsCount: 1,
			CreatedAt:        now, UpdatedAt: now,
		},
	}
}

func newAdminFixture(repo *listingRepo, cache *memCache) AdminServiceInterface {
	attRepo := &fakeAttachmentRepo{createErrFor: map[string]error{}}
	return NewAdminService(repo, attRepo, cache, time.Minute, zap.NewNop())
}

func TestAdminService_ListSubmissions(t *testing.T) {
	repo := &listingRepo{submissions: sampleSubmissions()}
	svc := newAdminFixture(repo, newMemCache())

	list, total, err := svc.ListSubmissions(context.Background(), 20, 0, 1)
	require.NoError(t, err)

	assert.Equal(t, uint64(2), total)
	require.Len(t, list, 2)
	assert.Equal(t, "a1", list[0].ID)
	assert.NotNil(t, list[0].Attachments, "вложения сериализуются как пустой массив, а не null")
}

func TestAdminService_ListSubmissions_CacheHit(t *testing.T) {
	repo := &listingRepo{submissions: sampleSubmissions()}
	svc := newAdminFixture(repo, newMemCache())

	_, _, err := svc.ListSubmissions(context.Background(), 20, 0, 1)
	require.NoError(t, err)
	_, total, err := svc.ListSubmissions(context.Background(), 20, 0, 1)
	require.NoError(t, err)

	assert.Equal(t, uint64(2), total)
	assert.Equal(t, 1, repo.findAllCalls, "вторая страница должна прийти из кеша")
}

func TestAdminService_UpdateStatus_InvalidatesCache(t *testing.T) {
	repo := &listingRepo{submissions: sampleSubmissions()}
	cache := newMemCache()
	svc := newAdminFixture(repo, cache)

	_, _, err := svc.ListSubmissions(context.Background(), 20, 0, 1)
	require.NoError(t, err)

	require.NoError(t, svc.UpdateSubmissionStatus(context.Background(), dto.UpdateSubmissionStatusDTO{
		SubmissionID: "a1",
		Status:       entities.SubmissionStatusReplied,
	}))
	require.Len(t, repo.updated, 1)

	// Версия сменилась: следующий запрос идёт мимо старого ключа в базу
	_, _, err = svc.ListSubmissions(context.Background(), 20, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.findAllCalls)
}

func TestAdminService_UpdateStatus_NotFound(t *testing.T) {
	repo := &listingRepo{updateErr: apperrors.ErrNotFound}
	svc := newAdminFixture(repo, newMemCache())

	err := svc.UpdateSubmissionStatus(context.Background(), dto.UpdateSubmissionStatusDTO{
		SubmissionID: "missing",
		Status:       entities.SubmissionStatusRead,
	})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestAdminService_ExportSubmissions(t *testing.T) {
	repo := &listingRepo{submissions: sampleSubmissions()}
	svc := newAdminFixture(repo, newMemCache())

	list, err := svc.ExportSubmissions(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
