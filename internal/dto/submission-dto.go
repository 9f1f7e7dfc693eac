package dto

import "github.com/aarondl/null/v8"

// CreateSubmissionDTO - нормализованные поля контактной формы.
// Валидируется до любых побочных эффектов: отсутствие обязательного
// поля отклоняет запрос целиком.
type CreateSubmissionDTO struct {
	Name    string `form:"name" json:"name" validate:"required"`
	Email   string `form:"email" json:"email" validate:"required,email"`
	Subject string `form:"subject" json:"subject" validate:"required"`
	Reason  string `form:"reason" json:"reason" validate:"omitempty,max=100"`
	Message string `form:"message" json:"message" validate:"required"`
}

// RequestMeta - метаданные вызывающей стороны, если они доступны.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

// IngestResultDTO - типизированный итог одной попытки приёма обращения.
type IngestResultDTO struct {
	SubmissionID    string `json:"submissionId"`
	SavedToDatabase bool   `json:"savedToDatabase"`
	EmailSent       bool   `json:"emailSent"`
	AttachmentCount int    `json:"attachmentCount"`
}

type UpdateSubmissionStatusDTO struct {
	SubmissionID string `json:"submissionId" validate:"required"`
	Status       string `json:"status" validate:"required,submission_status"`
}

type SubmissionResponseDTO struct {
	ID               string                  `json:"id"`
	Name             string                  `json:"name"`
	Email            string                  `json:"email"`
	Subject          string                  `json:"subject"`
	Reason           string                  `json:"reason,omitempty"`
	Message          string                  `json:"message"`
	Status           string                  `json:"status"`
	IPAddress        null.String             `json:"ip_address,omitempty"`
	UserAgent        null.String             `json:"user_agent,omitempty"`
	AttachmentsCount int                     `json:"attachments_count"`
	CreatedAt        string                  `json:"created_at"`
	UpdatedAt        string                  `json:"updated_at"`
	Attachments      []AttachmentResponseDTO `json:"attachments"`
}
