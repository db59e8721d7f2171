//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
)

// Well-known setting keys. The settings table is a key/value store with
// upsert-by-key semantics; these constants name the keys the aggregator and
// admin panel read and write.
const (
	SettingContactEmail = "contact_email"
	SettingContactPhone = "contact_phone"
	SettingAddress      = "address"
	SettingLogoPath     = "logo_path"
	SettingHeroHeading  = "hero_heading"
	SettingHeroSubtext  = "hero_subtext"
	SettingAboutText    = "about_text"
)

// Setting is one key/value row of site text or contact configuration.
type Setting struct {
	Key       string    `json:"key"        db:"key"`
	Value     string    `json:"value"      db:"value"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// UpsertSettingRequest carries a setting write.
type UpsertSettingRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Validate checks the setting write.
func (r *UpsertSettingRequest) Validate() error {
	if strings.TrimSpace(r.Key) == "" {
		return errors.New("setting key is required")
	}
	return nil
}
