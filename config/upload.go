package config

type UploadConfig struct {
	AllowedMimeTypes []string
	MaxSizeMB        int64
	PathPrefix       string
}

var UploadContexts = map[string]UploadConfig{
	// Вложения контактной формы: лимит 10 МБ на файл,
	// допускаются только документы и изображения.
	"contact_attachment": {
		AllowedMimeTypes: []string{
			"application/pdf",
			"image/jpeg", "image/png", "image/gif", "image/webp",
			"text/plain; charset=utf-8",
			"application/zip",
		},
		MaxSizeMB:  10,
		PathPrefix: "contact-attachments",
	},
}
