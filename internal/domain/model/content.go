//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
)

// Offering is one service the business offers (weddings, corporate, private).
type Offering struct {
	ID          string    `json:"id"                  db:"id"`
	Name        string    `json:"name"                db:"name"`
	Description string    `json:"description"         db:"description"`
	IconPath    *string   `json:"icon_path,omitempty" db:"icon_path"`
	SortOrder   int       `json:"sort_order"          db:"sort_order"`
	Active      bool      `json:"active"              db:"active"`
	CreatedAt   time.Time `json:"created_at"          db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"          db:"updated_at"`
}

// Validate checks offering fields before a write.
func (o *Offering) Validate() error {
	if strings.TrimSpace(o.Name) == "" {
		return errors.New("offering name is required")
	}
	return nil
}

// TeamMember is a person shown on the team page.
type TeamMember struct {
	ID        string    `json:"id"                   db:"id"`
	Name      string    `json:"name"                 db:"name"`
	Title     string    `json:"title"                db:"title"`
	Bio       string    `json:"bio"                  db:"bio"`
	PhotoPath *string   `json:"photo_path,omitempty" db:"photo_path"`
	SortOrder int       `json:"sort_order"           db:"sort_order"`
	Active    bool      `json:"active"               db:"active"`
	CreatedAt time.Time `json:"created_at"           db:"created_at"`
	UpdatedAt time.Time `json:"updated_at"           db:"updated_at"`
}

// Validate checks team member fields before a write.
func (m *TeamMember) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return errors.New("team member name is required")
	}
	return nil
}

// Testimonial is a client quote. Only approved testimonials are public.
type Testimonial struct {
	ID        string    `json:"id"                   db:"id"`
	Author    string    `json:"author"               db:"author"`
	Quote     string    `json:"quote"                db:"quote"`
	EventName *string   `json:"event_name,omitempty" db:"event_name"`
	Approved  bool      `json:"approved"             db:"approved"`
	CreatedAt time.Time `json:"created_at"           db:"created_at"`
}

// Validate checks testimonial fields before a write.
func (t *Testimonial) Validate() error {
	if strings.TrimSpace(t.Author) == "" {
		return errors.New("testimonial author is required")
	}
	if strings.TrimSpace(t.Quote) == "" {
		return errors.New("testimonial quote is required")
	}
	return nil
}

// SocialLink is one outbound social profile link. Platform is derived from
// the URL's registrable domain when not set explicitly.
type SocialLink struct {
	ID        string    `json:"id"         db:"id"`
	URL       string    `json:"url"        db:"url"`
	Label     string    `json:"label"      db:"label"`
	Platform  string    `json:"platform"   db:"platform"`
	SortOrder int       `json:"sort_order" db:"sort_order"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Validate checks social link fields before a write.
func (l *SocialLink) Validate() error {
	if strings.TrimSpace(l.URL) == "" {
		return errors.New("social link url is required")
	}
	return nil
}
