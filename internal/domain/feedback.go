package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for feedback operations.
var (
	ErrInvalidRating     = errors.New("rating must be between 1 and 5")
	ErrDuplicateFeedback = errors.New("feedback already submitted for this event")
)

// Feedback represents a post-event rating and comment. At most one feedback
// exists per (user, event) pair.
// swagger:model Feedback
type Feedback struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	UserID    string    `json:"user_id"`
	Rating    int       `json:"rating"` // 1-5
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// FeedbackFilter holds optional predicates for feedback listing. Both filters
// are optional and conjunctive when both are set.
type FeedbackFilter struct {
	UserID  string
	EventID string
}

// FeedbackRepository defines storage operations for feedback.
type FeedbackRepository interface {
	Create(ctx context.Context, fb *Feedback) error
	GetByEventAndUser(ctx context.Context, eventID, userID string) (*Feedback, error)
	List(ctx context.Context, filter FeedbackFilter) ([]*Feedback, error)
}

// FeedbackService defines the feedback workflow.
type FeedbackService interface {
	// Submit records feedback for the event. Fails with ErrInvalidRating when
	// rating is outside [1,5], ErrNotFound when the event does not exist, and
	// ErrDuplicateFeedback when the user already rated the event.
	Submit(ctx context.Context, eventID, userID string, rating int, comment string) (*Feedback, error)
	// AverageFor returns the arithmetic mean of the event's ratings rounded to
	// one decimal place, or 0 when the event has no feedback.
	AverageFor(ctx context.Context, eventID string) (float64, error)
	List(ctx context.Context, filter FeedbackFilter) ([]*Feedback, error)
}
