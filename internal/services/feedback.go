package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"campusvolunteer/internal/domain"
)

type feedbackService struct {
	feedbackRepo   domain.FeedbackRepository
	eventRepo      domain.EventRepository
	contextTimeout time.Duration
}

// NewFeedbackService creates a FeedbackService with the given repositories.
func NewFeedbackService(feedbackRepo domain.FeedbackRepository, eventRepo domain.EventRepository, timeout time.Duration) domain.FeedbackService {
	return &feedbackService{
		feedbackRepo:   feedbackRepo,
		eventRepo:      eventRepo,
		contextTimeout: timeout,
	}
}

func (s *feedbackService) Submit(ctx context.Context, eventID, userID string, rating int, comment string) (*domain.Feedback, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if rating < 1 || rating > 5 {
		return nil, domain.ErrInvalidRating
	}

	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	// One feedback per (user, event). The repository's unique index backs
	// this up against concurrent submissions.
	if _, err := s.feedbackRepo.GetByEventAndUser(ctx, eventID, userID); err == nil {
		return nil, domain.ErrDuplicateFeedback
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get feedback: %w", err)
	}

	fb := &domain.Feedback{
		EventID:   eventID,
		UserID:    userID,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: time.Now(),
	}
	if err := s.feedbackRepo.Create(ctx, fb); err != nil {
		if errors.Is(err, domain.ErrDuplicateFeedback) {
			return nil, domain.ErrDuplicateFeedback
		}
		return nil, fmt.Errorf("create feedback: %w", err)
	}
	return fb, nil
}

func (s *feedbackService) AverageFor(ctx context.Context, eventID string) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	feedbacks, err := s.feedbackRepo.List(ctx, domain.FeedbackFilter{EventID: eventID})
	if err != nil {
		return 0, fmt.Errorf("list feedbacks: %w", err)
	}
	if len(feedbacks) == 0 {
		return 0, nil
	}
	sum := 0
	for _, fb := range feedbacks {
		sum += fb.Rating
	}
	avg := float64(sum) / float64(len(feedbacks))
	return math.Round(avg*10) / 10, nil
}

func (s *feedbackService) List(ctx context.Context, filter domain.FeedbackFilter) ([]*domain.Feedback, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	feedbacks, err := s.feedbackRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list feedbacks: %w", err)
	}
	if feedbacks == nil {
		feedbacks = []*domain.Feedback{}
	}
	return feedbacks, nil
}
