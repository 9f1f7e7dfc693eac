package filestorage

import "io"

// FileStorageInterface определяет контракт для блоб-хранилища вложений.
// Ключ формируется хранилищем: он уникален и скоупится префиксом
// (идентификатором родительского обращения), чтобы исключить коллизии.
type FileStorageInterface interface {
	Save(file io.Reader, originalFileName string, prefix string) (storagePath string, err error)
	PublicURL(storagePath string) string
	Delete(storagePath string) error
}
