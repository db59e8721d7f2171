//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const maxAlbumTitleLen = 200

// Album groups gallery images, optionally tied to an event.
type Album struct {
	ID             string    `json:"id"                         db:"id"`
	Title          string    `json:"title"                      db:"title"`
	Description    string    `json:"description"                db:"description"`
	EventID        *string   `json:"event_id,omitempty"         db:"event_id"`
	CoverImagePath *string   `json:"cover_image_path,omitempty" db:"cover_image_path"`
	Published      bool      `json:"published"                  db:"published"`
	CreatedAt      time.Time `json:"created_at"                 db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"                 db:"updated_at"`
}

// GalleryImage is one image within an album. StoragePath is a bare object
// path; URL resolution happens at the view-model layer.
type GalleryImage struct {
	ID          string    `json:"id"           db:"id"`
	AlbumID     string    `json:"album_id"     db:"album_id"`
	StoragePath string    `json:"storage_path" db:"storage_path"`
	Caption     string    `json:"caption"      db:"caption"`
	SortOrder   int       `json:"sort_order"   db:"sort_order"`
	CreatedAt   time.Time `json:"created_at"   db:"created_at"`
}

// CreateAlbumRequest carries fields for creating an album.
type CreateAlbumRequest struct {
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	EventID        *string `json:"event_id,omitempty"`
	CoverImagePath *string `json:"cover_image_path,omitempty"`
	Published      *bool   `json:"published,omitempty"`
}

// Validate checks the create request.
func (r *CreateAlbumRequest) Validate() error {
	title := strings.TrimSpace(r.Title)
	if title == "" {
		return errors.New("album title is required")
	}
	if utf8.RuneCountInString(title) > maxAlbumTitleLen {
		return errors.New("album title is too long")
	}
	return nil
}

// UpdateAlbumRequest carries optional fields for updating an album.
type UpdateAlbumRequest struct {
	Title          *string `json:"title,omitempty"`
	Description    *string `json:"description,omitempty"`
	EventID        *string `json:"event_id,omitempty"`
	CoverImagePath *string `json:"cover_image_path,omitempty"`
	Published      *bool   `json:"published,omitempty"`
}

// Validate checks the update request.
func (r *UpdateAlbumRequest) Validate() error {
	if r.Title != nil {
		title := strings.TrimSpace(*r.Title)
		if title == "" {
			return errors.New("album title cannot be empty")
		}
		if utf8.RuneCountInString(title) > maxAlbumTitleLen {
			return errors.New("album title is too long")
		}
	}
	return nil
}

// AddGalleryImageRequest carries fields for attaching an image to an album.
type AddGalleryImageRequest struct {
	AlbumID     string `json:"album_id"`
	StoragePath string `json:"storage_path"`
	Caption     string `json:"caption"`
	SortOrder   int    `json:"sort_order"`
}

// Validate checks the add-image request.
func (r *AddGalleryImageRequest) Validate() error {
	if strings.TrimSpace(r.AlbumID) == "" {
		return errors.New("album_id is required")
	}
	if strings.TrimSpace(r.StoragePath) == "" {
		return errors.New("storage_path is required")
	}
	return nil
}
