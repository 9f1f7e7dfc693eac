// pkg/filestorage/local_filestorage.go

package filestorage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

type LocalFileStorage struct {
	basePath      string
	publicBaseURL string
}

func NewLocalFileStorage(basePath, publicBaseURL string) (FileStorageInterface, error) {
	if _, err := os.Stat(basePath); os.IsNotExist(err) {
		if err := os.MkdirAll(basePath, 0o755); err != nil {
			return nil, fmt.Errorf("не удалось создать директорию: %w", err)
		}
	}
	return &LocalFileStorage{
		basePath:      basePath,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
	}, nil
}

func (s *LocalFileStorage) Save(file io.Reader, originalFileName string, prefix string) (string, error) {
	// Уникальное имя внутри префикса: коллизии исключены даже при
	// одинаковых исходных именах файлов в одном обращении.
	ext := filepath.Ext(originalFileName)
	uniqueFileName := uuid.New().String() + ext

	fullDirPath := filepath.Join(s.basePath, prefix)
	if err := os.MkdirAll(fullDirPath, 0o755); err != nil {
		return "", err
	}

	dst, err := os.Create(filepath.Join(fullDirPath, uniqueFileName))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err = io.Copy(dst, file); err != nil {
		return "", err
	}

	return filepath.ToSlash(filepath.Join(prefix, uniqueFileName)), nil
}

func (s *LocalFileStorage) PublicURL(storagePath string) string {
	return s.publicBaseURL + "/" + strings.TrimPrefix(storagePath, "/")
}

func (s *LocalFileStorage) Delete(storagePath string) error {
	fullPath := filepath.Join(s.basePath, filepath.FromSlash(storagePath))

	// Если файла и так нет, считаем операцию успешной.
	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		return nil
	}

	return os.Remove(fullPath)
}
