package utils

import (
	"bytes"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func header(name string, size int64) *multipart.FileHeader {
	return &multipart.FileHeader{Filename: name, Size: size}
}

func TestValidateFile_UnknownContext(t *testing.T) {
	content := bytes.NewReader([]byte("%PDF-1.4"))
	err := ValidateFile(header("doc.pdf", 8), content, "nonexistent")
	assert.Error(t, err)
}

func TestValidateFile_Oversize(t *testing.T) {
	content := bytes.NewReader([]byte("%PDF-1.4"))
	// Заявленный размер больше лимита в 10 МБ
	err := ValidateFile(header("huge.pdf", 11*1024*1024), content, "contact_attachment")
	assert.Error(t, err)
}

func TestValidateFile_AllowedPDF(t *testing.T) {
	content := bytes.NewReader([]byte("%PDF-1.4 minimal"))
	err := ValidateFile(header("doc.pdf", 16), content, "contact_attachment")
	require.NoError(t, err)

	// Указатель чтения возвращён в начало: дальше файл пойдёт в хранилище
	pos, err := content.Seek(0, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), pos)
}

func TestValidateFile_AllowedPlainText(t *testing.T) {
	content := bytes.NewReader([]byte("Just a plain note about the documentation project."))
	err := ValidateFile(header("note.txt", 50), content, "contact_attachment")
	assert.NoError(t, err)
}

func TestValidateFile_DisallowedBinary(t *testing.T) {
	// ELF-заголовок: http.DetectContentType даёт application/octet-stream
	content := bytes.NewReader([]byte{0x7f, 'E', 'L', 'F', 0x02, 0x01, 0x01, 0x00})
	err := ValidateFile(header("tool.bin", 8), content, "contact_attachment")
	assert.Error(t, err)
}

func TestValidateFile_SVGRejected(t *testing.T) {
	// SVG маскируется под text/plain, но ловится по сигнатуре
	content := bytes.NewReader([]byte(`<svg xmlns="http://www.w3.org/2000/svg"></svg>`))
	err := ValidateFile(header("img.svg", 46), content, "contact_attachment")
	assert.Error(t, err)
}

func TestValidateFile_ExtensionDoesNotMatter(t *testing.T) {
	// Расширение .pdf не спасает исполняемый файл: тип берётся из содержимого
	content := bytes.NewReader([]byte{0x7f, 'E', 'L', 'F', 0x02, 0x01, 0x01, 0x00})
	err := ValidateFile(header("report.pdf", 8), content, "contact_attachment")
	assert.Error(t, err)
}
