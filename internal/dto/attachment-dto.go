package dto

type AttachmentResponseDTO struct {
	ID           uint64 `json:"id"`
	OriginalName string `json:"original_name"`
	PublicURL    string `json:"public_url"`
	FileSize     int64  `json:"file_size"`
	MimeType     string `json:"mime_type"`
	UploadedAt   string `json:"uploaded_at"`
}
