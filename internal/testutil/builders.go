package testutil

import (
	"time"

	"github.com/marquee-events/marquee/internal/domain/model"
)

// EventRequestBuilder provides a fluent interface for building
// CreateEventRequest objects for testing.
type EventRequestBuilder struct {
	req *model.CreateEventRequest
}

// NewEventRequest creates a new EventRequestBuilder with sensible defaults.
func NewEventRequest() *EventRequestBuilder {
	return &EventRequestBuilder{
		req: &model.CreateEventRequest{
			Title:       "Test Event",
			Description: "An event created by tests",
			Location:    "Test Hall",
		},
	}
}

// WithTitle sets the event title.
func (b *EventRequestBuilder) WithTitle(title string) *EventRequestBuilder {
	b.req.Title = title
	return b
}

// WithLocation sets the event location.
func (b *EventRequestBuilder) WithLocation(location string) *EventRequestBuilder {
	b.req.Location = location
	return b
}

// WithEventDate sets the event date.
func (b *EventRequestBuilder) WithEventDate(t time.Time) *EventRequestBuilder {
	b.req.EventDate = &t
	return b
}

// Published marks the event as published.
func (b *EventRequestBuilder) Published() *EventRequestBuilder {
	b.req.Published = BoolPtr(true)
	return b
}

// Build returns the constructed request.
func (b *EventRequestBuilder) Build() *model.CreateEventRequest {
	return b.req
}

// InquiryRequestBuilder provides a fluent interface for building
// CreateInquiryRequest objects for testing.
type InquiryRequestBuilder struct {
	req *model.CreateInquiryRequest
}

// NewInquiryRequest creates a new InquiryRequestBuilder with sensible defaults.
func NewInquiryRequest() *InquiryRequestBuilder {
	return &InquiryRequestBuilder{
		req: &model.CreateInquiryRequest{
			Name:    "Test Client",
			Email:   "client@example.com",
			Message: "We would like to plan an event.",
		},
	}
}

// WithName sets the submitter name.
func (b *InquiryRequestBuilder) WithName(name string) *InquiryRequestBuilder {
	b.req.Name = name
	return b
}

// WithEmail sets the submitter email.
func (b *InquiryRequestBuilder) WithEmail(email string) *InquiryRequestBuilder {
	b.req.Email = email
	return b
}

// WithEventType sets the requested event type.
func (b *InquiryRequestBuilder) WithEventType(eventType string) *InquiryRequestBuilder {
	b.req.EventType = &eventType
	return b
}

// WithMessage sets the message body.
func (b *InquiryRequestBuilder) WithMessage(message string) *InquiryRequestBuilder {
	b.req.Message = message
	return b
}

// Build returns the constructed request.
func (b *InquiryRequestBuilder) Build() *model.CreateInquiryRequest {
	return b.req
}
