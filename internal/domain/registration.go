package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for the registration workflow.
var (
	ErrAlreadyRegistered = errors.New("already requested to join this event")
	ErrQuotaFull         = errors.New("event quota is full")
)

// Registration statuses. Every registration starts as pending; organizers
// move it to confirmed or rejected. A confirmed registration may later be
// rejected, which releases its capacity slot.
const (
	RegistrationStatusPending   = "pending"
	RegistrationStatusConfirmed = "confirmed"
	RegistrationStatusRejected  = "rejected"
)

// Registration represents a volunteer's request to join an event.
//
// UserName, UserAvatar, EventTitle, EventDate and EventStatus are snapshots
// taken at join time for display; EventStatus is overwritten with the live
// event status (and HasFeedback computed) when listing a user's history.
// swagger:model Registration
type Registration struct {
	ID          string    `json:"id"`
	EventID     string    `json:"event_id"`
	UserID      string    `json:"user_id"`
	UserName    string    `json:"user_name"`
	UserAvatar  string    `json:"user_avatar"`
	JoinedAt    time.Time `json:"joined_at"`
	Status      string    `json:"status"`
	EventTitle  string    `json:"event_title"`
	EventDate   string    `json:"event_date"`
	EventStatus string    `json:"event_status"`
	HasFeedback bool      `json:"has_feedback"`
}

// NewRegistration returns a pending Registration with requester and event
// snapshots captured. ID is typically set by the repository on create.
func NewRegistration(eventID, userID, userName, userAvatar, eventTitle, eventDate, eventStatus string, joinedAt time.Time) *Registration {
	return &Registration{
		EventID:     eventID,
		UserID:      userID,
		UserName:    userName,
		UserAvatar:  userAvatar,
		JoinedAt:    joinedAt,
		Status:      RegistrationStatusPending,
		EventTitle:  eventTitle,
		EventDate:   eventDate,
		EventStatus: eventStatus,
	}
}

// RegistrationRepository defines storage operations for registrations.
type RegistrationRepository interface {
	Create(ctx context.Context, reg *Registration) error
	GetByID(ctx context.Context, id string) (*Registration, error)
	GetByEventAndUser(ctx context.Context, eventID, userID string) (*Registration, error)
	ListByEventID(ctx context.Context, eventID string) ([]*Registration, error)
	ListByUserID(ctx context.Context, userID string) ([]*Registration, error)
	CountConfirmedByEventID(ctx context.Context, eventID string) (int, error)
	// UpdateStatus writes the registration status and applies counterDelta to
	// the event's current_volunteers in a single transaction. A delta of +1 is
	// guarded by the event's capacity and fails with ErrQuotaFull when the
	// event is already full, rolling back the status write.
	UpdateStatus(ctx context.Context, registrationID, eventID, status string, counterDelta int) error
}

// RegistrationService defines the join/approval workflow.
type RegistrationService interface {
	// Join creates a pending registration for the user on the event.
	// Fails with ErrNotFound if the event does not exist, ErrAlreadyRegistered
	// if the user holds any registration for the event, and ErrQuotaFull if
	// confirmed registrations have reached the event's capacity.
	Join(ctx context.Context, eventID, userID string) (*Registration, error)
	// SetStatus moves a registration to confirmed or rejected on behalf of the
	// event's organizer, keeping the event's confirmed counter in sync.
	SetStatus(ctx context.Context, registrationID, newStatus, actorID string) error
	// ListForEvent returns all registrations for the event, any status.
	// Only the owning organizer may list them.
	ListForEvent(ctx context.Context, eventID, actorID string) ([]*Registration, error)
	// ListForUser returns the user's registrations, most recent first, with
	// EventStatus resolved against the live event and HasFeedback set.
	ListForUser(ctx context.Context, userID string) ([]*Registration, error)
}
