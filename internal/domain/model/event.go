//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxEventTitleLen    = 200
	maxEventLocationLen = 255
)

// Event represents a planned or past event shown on the public site and
// managed from the back-office.
type Event struct {
	ID             string     `json:"id"                         db:"id"`
	Title          string     `json:"title"                      db:"title"`
	Description    string     `json:"description"                db:"description"`
	Location       string     `json:"location"                   db:"location"`
	EventDate      *time.Time `json:"event_date,omitempty"       db:"event_date"`
	CoverImagePath *string    `json:"cover_image_path,omitempty" db:"cover_image_path"`
	Published      bool       `json:"published"                  db:"published"`
	CreatedAt      time.Time  `json:"created_at"                 db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"                 db:"updated_at"`
}

// EventsListOptions controls paging and filtering for listing events.
// Sort supports "event_date" and "created_at"; Dir supports "asc"/"desc".
type EventsListOptions struct {
	Limit         int
	Offset        int
	PublishedOnly bool
	UpcomingOnly  bool
	Sort          string
	Dir           string
}

// CreateEventRequest carries fields for creating an event.
type CreateEventRequest struct {
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Location       string     `json:"location"`
	EventDate      *time.Time `json:"event_date,omitempty"`
	CoverImagePath *string    `json:"cover_image_path,omitempty"`
	Published      *bool      `json:"published,omitempty"`
}

// Validate checks the create request.
func (r *CreateEventRequest) Validate() error {
	title := strings.TrimSpace(r.Title)
	if title == "" {
		return errors.New("event title is required")
	}
	if utf8.RuneCountInString(title) > maxEventTitleLen {
		return errors.New("event title is too long")
	}
	if utf8.RuneCountInString(r.Location) > maxEventLocationLen {
		return errors.New("event location is too long")
	}
	return nil
}

// UpdateEventRequest carries optional fields for updating an event.
// Nil fields are left unchanged.
type UpdateEventRequest struct {
	Title          *string    `json:"title,omitempty"`
	Description    *string    `json:"description,omitempty"`
	Location       *string    `json:"location,omitempty"`
	EventDate      *time.Time `json:"event_date,omitempty"`
	CoverImagePath *string    `json:"cover_image_path,omitempty"`
	Published      *bool      `json:"published,omitempty"`
}

// Validate checks the update request.
func (r *UpdateEventRequest) Validate() error {
	if r.Title != nil {
		title := strings.TrimSpace(*r.Title)
		if title == "" {
			return errors.New("event title cannot be empty")
		}
		if utf8.RuneCountInString(title) > maxEventTitleLen {
			return errors.New("event title is too long")
		}
	}
	if r.Location != nil && utf8.RuneCountInString(*r.Location) > maxEventLocationLen {
		return errors.New("event location is too long")
	}
	return nil
}
