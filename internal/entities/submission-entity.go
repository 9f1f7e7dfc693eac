package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

// Статусы жизненного цикла обращения.
const (
	SubmissionStatusNew      = "new"
	SubmissionStatusRead     = "read"
	SubmissionStatusReplied  = "replied"
	SubmissionStatusArchived = "archived"
)

type Submission struct {
	ID               string      `db:"id"`
	Name             string      `db:"name"`
	Email            string      `db:"email"`
	Subject          string      `db:"subject"`
	Reason           string      `db:"reason"`
	Message          string      `db:"message"`
	Status           string      `db:"status"`
	IPAddress        null.String `db:"ip_address"`
	UserAgent        null.String `db:"user_agent"`
	AttachmentsCount int         `db:"attachments_count"`
	CreatedAt        time.Time   `db:"created_at"`
	UpdatedAt        time.Time   `db:"updated_at"`

	Attachments []Attachment `db:"-"` // заполняется вручную
}
