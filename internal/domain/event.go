package domain

import (
	"context"
	"errors"
	"time"
)

// Shared sentinel errors.
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")
)

// Event lifecycle statuses. The only transition is upcoming -> completed,
// triggered by the owning organizer.
const (
	EventStatusUpcoming  = "upcoming"
	EventStatusCompleted = "completed"
)

// EventCategories is the fixed set of valid event categories.
var EventCategories = []string{"Campus Life", "Education", "Environment", "Welfare"}

// ValidEventCategory reports whether category is one of EventCategories.
func ValidEventCategory(category string) bool {
	for _, c := range EventCategories {
		if c == category {
			return true
		}
	}
	return false
}

// Event represents a volunteer event posted by an organizer.
// CurrentVolunteers always equals the number of confirmed registrations for
// the event; it is written only by the registration workflow.
// swagger:model Event
type Event struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Date              string    `json:"date"` // calendar day, YYYY-MM-DD
	Location          string    `json:"location"`
	Category          string    `json:"category"`
	MaxVolunteers     int       `json:"max_volunteers"`
	Description       string    `json:"description"`
	Tasks             string    `json:"tasks"`
	OrganizerID       string    `json:"organizer_id"`
	OrganizerName     string    `json:"organizer_name"`
	CurrentVolunteers int       `json:"current_volunteers"`
	ImageURL          string    `json:"image_url"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// EventFilter holds optional predicates for event listing. Zero values mean
// no filtering. LocationBucket is one of "KK", "Faculty", "Outdoors".
type EventFilter struct {
	Category       string
	LocationBucket string
	Search         string
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context) ([]*Event, error)
	ListByOrganizerID(ctx context.Context, organizerID string) ([]*Event, error)
	SetStatus(ctx context.Context, id, status string) error
}

// EventService defines organizer- and volunteer-facing event operations.
type EventService interface {
	CreateEvent(ctx context.Context, event *Event) error
	GetEventByID(ctx context.Context, eventID string) (*Event, error)
	// ListEvents returns events matching the filter, paginated, together with
	// the total match count.
	ListEvents(ctx context.Context, filter EventFilter, params PaginationParams) ([]*Event, int, error)
	ListEventsByOrganizer(ctx context.Context, organizerID string) ([]*Event, error)
	// CompleteEvent moves an upcoming event to completed. Only the owning
	// organizer may complete an event, and the transition is one-way.
	CompleteEvent(ctx context.Context, eventID, organizerID string) error
}
