package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"campusvolunteer/internal/domain"
)

type registrationService struct {
	registrationRepo domain.RegistrationRepository
	eventRepo        domain.EventRepository
	userRepo         domain.UserRepository
	feedbackRepo     domain.FeedbackRepository
	emailService     domain.EmailService
	contextTimeout   time.Duration
}

// NewRegistrationService creates a RegistrationService with the given repositories.
func NewRegistrationService(
	registrationRepo domain.RegistrationRepository,
	eventRepo domain.EventRepository,
	userRepo domain.UserRepository,
	feedbackRepo domain.FeedbackRepository,
	emailService domain.EmailService,
	timeout time.Duration,
) domain.RegistrationService {
	return &registrationService{
		registrationRepo: registrationRepo,
		eventRepo:        eventRepo,
		userRepo:         userRepo,
		feedbackRepo:     feedbackRepo,
		emailService:     emailService,
		contextTimeout:   timeout,
	}
}

func (s *registrationService) Join(ctx context.Context, eventID, userID string) (*domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	// Any existing registration blocks a new request, regardless of status;
	// re-requesting after a rejection is not allowed.
	if _, err := s.registrationRepo.GetByEventAndUser(ctx, eventID, userID); err == nil {
		return nil, domain.ErrAlreadyRegistered
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get registration: %w", err)
	}

	// Only confirmed registrations consume capacity; pending requests don't.
	confirmed, err := s.registrationRepo.CountConfirmedByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("count confirmed registrations: %w", err)
	}
	if confirmed >= event.MaxVolunteers {
		return nil, domain.ErrQuotaFull
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	reg := domain.NewRegistration(
		eventID, userID, user.Name, user.AvatarURL,
		event.Title, event.Date, event.Status, time.Now(),
	)
	if err := s.registrationRepo.Create(ctx, reg); err != nil {
		return nil, fmt.Errorf("create registration: %w", err)
	}
	return reg, nil
}

func (s *registrationService) SetStatus(ctx context.Context, registrationID, newStatus, actorID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if newStatus != domain.RegistrationStatusConfirmed && newStatus != domain.RegistrationStatusRejected {
		return domain.ErrInvalidInput
	}

	reg, err := s.registrationRepo.GetByID(ctx, registrationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get registration: %w", err)
	}

	event, err := s.eventRepo.GetByID(ctx, reg.EventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	if event.OrganizerID != actorID {
		return domain.ErrForbidden
	}

	// The counter moves with the transition, not the absolute state:
	// only entering or leaving confirmed changes it.
	delta := 0
	switch {
	case reg.Status != domain.RegistrationStatusConfirmed && newStatus == domain.RegistrationStatusConfirmed:
		delta = 1
	case reg.Status == domain.RegistrationStatusConfirmed && newStatus == domain.RegistrationStatusRejected:
		delta = -1
	}

	if err := s.registrationRepo.UpdateStatus(ctx, reg.ID, reg.EventID, newStatus, delta); err != nil {
		if errors.Is(err, domain.ErrQuotaFull) {
			return domain.ErrQuotaFull
		}
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update registration status: %w", err)
	}

	// Notification is best-effort; a mail failure must not undo the transition.
	if delta == 1 {
		if volunteer, err := s.userRepo.GetByID(ctx, reg.UserID); err == nil {
			data := &domain.RegistrationApprovedEmailData{
				Email:      volunteer.Email,
				Name:       volunteer.Name,
				EventTitle: event.Title,
				EventDate:  event.Date,
			}
			if err := s.emailService.SendRegistrationApproved(ctx, data); err != nil {
				log.Printf("[REGISTRATION] Failed to send approval email to %s: %v", volunteer.Email, err)
			}
		}
	}

	return nil
}

func (s *registrationService) ListForEvent(ctx context.Context, eventID, actorID string) ([]*domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event.OrganizerID != actorID {
		return nil, domain.ErrForbidden
	}

	regs, err := s.registrationRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	if regs == nil {
		regs = []*domain.Registration{}
	}
	return regs, nil
}

func (s *registrationService) ListForUser(ctx context.Context, userID string) ([]*domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	regs, err := s.registrationRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	if len(regs) == 0 {
		return []*domain.Registration{}, nil
	}

	feedbacks, err := s.feedbackRepo.List(ctx, domain.FeedbackFilter{UserID: userID})
	if err != nil {
		return nil, fmt.Errorf("list feedbacks: %w", err)
	}
	rated := make(map[string]struct{}, len(feedbacks))
	for _, fb := range feedbacks {
		rated[fb.EventID] = struct{}{}
	}

	// Resolve the live event status; the snapshot on the registration may be
	// stale. Fetch events one by one with a memo (N+1, same trade-off as the
	// organizer dashboard: simple now, optimize if it ever shows up).
	eventsByID := make(map[string]*domain.Event)
	for _, reg := range regs {
		ev, ok := eventsByID[reg.EventID]
		if !ok {
			ev, err = s.eventRepo.GetByID(ctx, reg.EventID)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					// Event deleted but registration remains; fall back to upcoming.
					reg.EventStatus = domain.EventStatusUpcoming
					_, reg.HasFeedback = rated[reg.EventID]
					continue
				}
				return nil, fmt.Errorf("get event for registration: %w", err)
			}
			eventsByID[reg.EventID] = ev
		}
		reg.EventStatus = ev.Status
		_, reg.HasFeedback = rated[reg.EventID]
	}

	return regs, nil
}
