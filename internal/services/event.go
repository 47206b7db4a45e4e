package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"campusvolunteer/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	userRepo       domain.UserRepository
	contextTimeout time.Duration
}

// NewEventService creates an EventService with the given repositories.
func NewEventService(eventRepo domain.EventRepository, userRepo domain.UserRepository, timeout time.Duration) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		userRepo:       userRepo,
		contextTimeout: timeout,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, event *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if event.OrganizerID == "" {
		return fmt.Errorf("event organizer is required")
	}
	if strings.TrimSpace(event.Title) == "" {
		return domain.ErrInvalidInput
	}
	if event.MaxVolunteers < 1 {
		return domain.ErrInvalidInput
	}
	if !domain.ValidEventCategory(event.Category) {
		return domain.ErrInvalidInput
	}
	if _, err := time.Parse("2006-01-02", event.Date); err != nil {
		return domain.ErrInvalidInput
	}

	organizer, err := s.userRepo.GetByID(ctx, event.OrganizerID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("get organizer: %w", err)
	}
	if organizer.Role != domain.RoleOrganizer {
		return domain.ErrForbidden
	}
	event.OrganizerName = organizer.Name

	// Counter and status are owned by the registration workflow; callers
	// cannot seed them.
	event.CurrentVolunteers = 0
	event.Status = domain.EventStatusUpcoming
	if event.ImageURL == "" {
		event.ImageURL = fmt.Sprintf("https://picsum.photos/400/200?random=%d", time.Now().UnixNano())
	}
	event.CreatedAt = time.Now()
	event.UpdatedAt = time.Now()

	return s.eventRepo.Create(ctx, event)
}

func (s *eventService) GetEventByID(ctx context.Context, eventID string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

// locationBuckets maps coarse location filters to the substrings that match
// them in the free-text location field.
var locationBuckets = map[string][]string{
	"KK":       {"KK", "College", "Nazrin"},
	"Faculty":  {"FCSIT", "Faculty", "Block"},
	"Outdoors": {"Tasik", "Rimba"},
}

func (s *eventService) ListEvents(ctx context.Context, filter domain.EventFilter, params domain.PaginationParams) ([]*domain.Event, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}

	filtered := make([]*domain.Event, 0, len(events))
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	for _, e := range events {
		if filter.Category != "" && e.Category != filter.Category {
			continue
		}
		if filter.LocationBucket != "" && !matchesLocationBucket(e.Location, filter.LocationBucket) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(e.Title), search) {
			continue
		}
		filtered = append(filtered, e)
	}

	total := len(filtered)
	start := params.Offset()
	if start > total {
		start = total
	}
	end := start + params.PageSize
	if params.PageSize <= 0 || end > total {
		end = total
	}
	return filtered[start:end], total, nil
}

func matchesLocationBucket(location, bucket string) bool {
	markers, ok := locationBuckets[bucket]
	if !ok {
		return false
	}
	for _, m := range markers {
		if strings.Contains(location, m) {
			return true
		}
	}
	return false
}

func (s *eventService) ListEventsByOrganizer(ctx context.Context, organizerID string) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.ListByOrganizerID(ctx, organizerID)
	if err != nil {
		return nil, fmt.Errorf("list organizer events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

func (s *eventService) CompleteEvent(ctx context.Context, eventID, organizerID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	if event.OrganizerID != organizerID {
		return domain.ErrForbidden
	}
	if event.Status == domain.EventStatusCompleted {
		// Completion is one-way and idempotent.
		return nil
	}
	if err := s.eventRepo.SetStatus(ctx, eventID, domain.EventStatusCompleted); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("set event status: %w", err)
	}
	return nil
}
