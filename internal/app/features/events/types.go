// internal/app/features/events/types.go
package events

import "github.com/dalemusser/gracehub/internal/app/features/teachings"

// eventFields is the event half of the create form.
type eventFields struct {
	Title       string `json:"title" validate:"required,max=200" label:"Title"`
	Description string `json:"description" validate:"required,max=5000" label:"Description"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02" label:"Date"`
	Time        string `json:"time" validate:"required,hhmm" label:"Time"`
	Location    string `json:"location" validate:"required,max=200" label:"Location"`
}

func (f eventFields) any() bool {
	return f.Title != "" || f.Description != "" || f.Date != "" || f.Time != "" || f.Location != ""
}

// teachingFields is the optional teaching half of the create form.
type teachingFields struct {
	TeachingText      string `json:"teachingText" validate:"max=20000" label:"Teaching text"`
	TeachingMediaType string `json:"teachingMediaType" validate:"omitempty,oneof=photo video audio" label:"Media type"`
	TeachingMediaURL  string `json:"teachingMediaUrl" validate:"omitempty,url" label:"Media URL"`
}

func (f teachingFields) present() bool {
	return f.TeachingText != "" || f.TeachingMediaURL != ""
}

// CreateEventInput creates an event, a teaching, or both at once.
type CreateEventInput struct {
	eventFields
	teachingFields
}

// UpdateEventInput replaces every event field and optionally the linked
// teaching's text.
type UpdateEventInput struct {
	ID           string `json:"id" validate:"required,objectid" label:"Event ID"`
	Title        string `json:"title" validate:"required,max=200" label:"Title"`
	Description  string `json:"description" validate:"required,max=5000" label:"Description"`
	Date         string `json:"date" validate:"required,datetime=2006-01-02" label:"Date"`
	Time         string `json:"time" validate:"required,hhmm" label:"Time"`
	Location     string `json:"location" validate:"required,max=200" label:"Location"`
	TeachingID   string `json:"teachingId" label:"Teaching ID"`
	TeachingText string `json:"teachingText" validate:"max=20000" label:"Teaching text"`
}

// EventView is an event as clients see it.
type EventView struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
	Time        string  `json:"time"`
	Location    string  `json:"location"`
	ImageURL    string  `json:"imageUrl"`
	TeachingID  *string `json:"teachingId,omitempty"`
}

// EventDetail is an event together with its linked teaching, if any.
type EventDetail struct {
	EventView
	Teaching *teachings.TeachingView `json:"teaching,omitempty"`
}
