package entities

import "time"

type Attachment struct {
	ID           uint64    `db:"id"`
	SubmissionID string    `db:"submission_id"`
	OriginalName string    `db:"original_name"`
	StoragePath  string    `db:"storage_path"`
	PublicURL    string    `db:"public_url"`
	FileSize     int64     `db:"file_size"`
	MimeType     string    `db:"mime_type"`
	UploadedAt   time.Time `db:"uploaded_at"`
}
