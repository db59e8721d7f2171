package data

import "errors"

// Shared sentinel errors for data-layer repositories.
var (
	ErrEventNotFound       = errors.New("event not found")
	ErrAlbumNotFound       = errors.New("album not found")
	ErrImageNotFound       = errors.New("gallery image not found")
	ErrOfferingNotFound    = errors.New("offering not found")
	ErrTeamMemberNotFound  = errors.New("team member not found")
	ErrTestimonialNotFound = errors.New("testimonial not found")
	ErrInquiryNotFound     = errors.New("inquiry not found")
	ErrSocialLinkNotFound  = errors.New("social link not found")
	ErrSettingNotFound     = errors.New("setting not found")
	ErrAdminUserNotFound   = errors.New("admin user not found")

	ErrAdminUserExists = errors.New("admin user already exists")
)
