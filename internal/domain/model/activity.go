//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import "time"

// ActivityKind names the entity kind an activity item came from.
type ActivityKind string

const (
	ActivityKindEvent       ActivityKind = "event"
	ActivityKindAlbum       ActivityKind = "album"
	ActivityKindInquiry     ActivityKind = "inquiry"
	ActivityKindTestimonial ActivityKind = "testimonial"
)

// ActivityItem is one row of the dashboard's recent-activity feed, merged
// across entity kinds and sorted by recency.
type ActivityItem struct {
	Kind       ActivityKind `json:"kind"`
	ID         string       `json:"id"`
	Title      string       `json:"title"`
	OccurredAt time.Time    `json:"occurred_at"`
	TimeAgo    string       `json:"time_ago"`
}
