package model

import "time"

// MessageStatus is the triage state of a contact message. The values are the
// French labels the admin dashboard displays; they are stored verbatim.
type MessageStatus string

const (
	StatusNouveau MessageStatus = "NOUVEAU"
	StatusLu      MessageStatus = "LU"
	StatusTraite  MessageStatus = "TRAITE"
	StatusArchive MessageStatus = "ARCHIVE"
)

// MessageStatuses lists every valid triage status, in workflow order.
var MessageStatuses = []MessageStatus{StatusNouveau, StatusLu, StatusTraite, StatusArchive}

// Valid reports whether s is one of the enumerated triage statuses.
func (s MessageStatus) Valid() bool {
	switch s {
	case StatusNouveau, StatusLu, StatusTraite, StatusArchive:
		return true
	}
	return false
}

// ContactMessage is a message submitted through the public contact form.
// Content fields are immutable after creation; only the status changes.
type ContactMessage struct {
	ID        string        `json:"id" db:"id"`
	Name      string        `json:"name" db:"name"`
	Email     string        `json:"email" db:"email"`
	Company   string        `json:"company,omitempty" db:"company"`
	Subject   string        `json:"subject" db:"subject"`
	Message   string        `json:"message" db:"message"`
	Status    MessageStatus `json:"status" db:"status"`
	CreatedAt time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time     `json:"updatedAt" db:"updated_at"`
}

// ContactRequest is the payload of POST /api/contact.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Validate checks field lengths and formats, returning one error per
// offending field.
func (r *ContactRequest) Validate() FieldErrors {
	errs := FieldErrors{}
	checkLength(errs, "name", r.Name, 2, 100)
	if !validEmail(r.Email) {
		errs["email"] = "adresse email invalide"
	}
	if len(r.Company) > 100 {
		errs["company"] = "doit faire au plus 100 caractères"
	}
	checkLength(errs, "subject", r.Subject, 2, 200)
	checkLength(errs, "message", r.Message, 10, 1000)
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// MessageStats aggregates message counts per triage status.
type MessageStats struct {
	Total    int64                   `json:"total"`
	ByStatus map[MessageStatus]int64 `json:"byStatus"`
}
