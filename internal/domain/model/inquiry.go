//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxInquiryNameLen    = 120
	maxInquiryMessageLen = 4000
)

// Inquiry is a contact-form submission from the public site.
type Inquiry struct {
	ID        string     `json:"id"                   db:"id"`
	Name      string     `json:"name"                 db:"name"`
	Email     string     `json:"email"                db:"email"`
	Phone     *string    `json:"phone,omitempty"      db:"phone"`
	EventType *string    `json:"event_type,omitempty" db:"event_type"`
	EventDate *time.Time `json:"event_date,omitempty" db:"event_date"`
	Message   string     `json:"message"              db:"message"`
	Read      bool       `json:"read"                 db:"read"`
	CreatedAt time.Time  `json:"created_at"           db:"created_at"`
}

// InquiryStats aggregates inquiry counts for the dashboard.
type InquiryStats struct {
	Total     int `json:"total"      db:"total"`
	ThisMonth int `json:"this_month" db:"this_month"`
	Unread    int `json:"unread"     db:"unread"`
}

// CreateInquiryRequest carries a public contact-form submission.
type CreateInquiryRequest struct {
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     *string    `json:"phone,omitempty"`
	EventType *string    `json:"event_type,omitempty"`
	EventDate *time.Time `json:"event_date,omitempty"`
	Message   string     `json:"message"`
}

// Validate checks the submission.
func (r *CreateInquiryRequest) Validate() error {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return errors.New("name is required")
	}
	if utf8.RuneCountInString(name) > maxInquiryNameLen {
		return errors.New("name is too long")
	}
	email := strings.TrimSpace(r.Email)
	if email == "" || !strings.Contains(email, "@") {
		return errors.New("a valid email is required")
	}
	if strings.TrimSpace(r.Message) == "" {
		return errors.New("message is required")
	}
	if utf8.RuneCountInString(r.Message) > maxInquiryMessageLen {
		return errors.New("message is too long")
	}
	return nil
}
