package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"campusvolunteer/internal/domain"
)

// memStore is a shared in-memory backing store for the repository mocks so
// workflow tests can observe cross-repository effects (e.g. the event counter
// moving with registration transitions).
type memStore struct {
	mu        sync.Mutex
	nextID    int
	users     map[string]*domain.User
	events    map[string]*domain.Event
	regs      map[string]*domain.Registration
	feedbacks map[string]*domain.Feedback
}

func newMemStore() *memStore {
	return &memStore{
		users:     make(map[string]*domain.User),
		events:    make(map[string]*domain.Event),
		regs:      make(map[string]*domain.Registration),
		feedbacks: make(map[string]*domain.Feedback),
	}
}

func (s *memStore) id(prefix string) string {
	s.nextID++
	return fmt.Sprintf("%s-%d", prefix, s.nextID)
}

type mockUserRepository struct {
	store *memStore
	err   error
}

func (m *mockUserRepository) Create(ctx context.Context, u *domain.User) error {
	if m.err != nil {
		return m.err
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	u.ID = m.store.id("user")
	m.store.users[u.ID] = u
	return nil
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	for _, u := range m.store.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	u, ok := m.store.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	cp.Bookmarks = append([]string(nil), u.Bookmarks...)
	return &cp, nil
}

func (m *mockUserRepository) AddBookmark(ctx context.Context, userID, eventID string) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	if u, ok := m.store.users[userID]; ok {
		u.Bookmarks = append(u.Bookmarks, eventID)
	}
	return nil
}

func (m *mockUserRepository) RemoveBookmark(ctx context.Context, userID, eventID string) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	if u, ok := m.store.users[userID]; ok {
		kept := u.Bookmarks[:0]
		for _, id := range u.Bookmarks {
			if id != eventID {
				kept = append(kept, id)
			}
		}
		u.Bookmarks = kept
	}
	return nil
}

type mockEventRepository struct {
	store *memStore
	err   error
}

func (m *mockEventRepository) Create(ctx context.Context, e *domain.Event) error {
	if m.err != nil {
		return m.err
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	e.ID = m.store.id("ev")
	m.store.events[e.ID] = e
	return nil
}

func (m *mockEventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	e, ok := m.store.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return e, nil
}

func (m *mockEventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	events := make([]*domain.Event, 0, len(m.store.events))
	for _, e := range m.store.events {
		events = append(events, e)
	}
	sort.Slice(events, func(i, j int) bool { return events[i].ID < events[j].ID })
	return events, nil
}

func (m *mockEventRepository) ListByOrganizerID(ctx context.Context, organizerID string) ([]*domain.Event, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	events := make([]*domain.Event, 0)
	for _, e := range m.store.events {
		if e.OrganizerID == organizerID {
			events = append(events, e)
		}
	}
	return events, nil
}

func (m *mockEventRepository) SetStatus(ctx context.Context, id, status string) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	e, ok := m.store.events[id]
	if !ok {
		return domain.ErrNotFound
	}
	e.Status = status
	return nil
}

type mockRegistrationRepository struct {
	store *memStore
	err   error
}

func (m *mockRegistrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	if m.err != nil {
		return m.err
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	reg.ID = m.store.id("reg")
	m.store.regs[reg.ID] = reg
	return nil
}

func (m *mockRegistrationRepository) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	reg, ok := m.store.regs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *reg
	return &copied, nil
}

func (m *mockRegistrationRepository) GetByEventAndUser(ctx context.Context, eventID, userID string) (*domain.Registration, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	for _, reg := range m.store.regs {
		if reg.EventID == eventID && reg.UserID == userID {
			return reg, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockRegistrationRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Registration, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	regs := make([]*domain.Registration, 0)
	for _, reg := range m.store.regs {
		if reg.EventID == eventID {
			regs = append(regs, reg)
		}
	}
	sort.Slice(regs, func(i, j int) bool { return regs[i].ID < regs[j].ID })
	return regs, nil
}

func (m *mockRegistrationRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Registration, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	regs := make([]*domain.Registration, 0)
	for _, reg := range m.store.regs {
		if reg.UserID == userID {
			copied := *reg
			regs = append(regs, &copied)
		}
	}
	// Most recent first, like the real repository.
	sort.Slice(regs, func(i, j int) bool { return regs[i].ID > regs[j].ID })
	return regs, nil
}

func (m *mockRegistrationRepository) CountConfirmedByEventID(ctx context.Context, eventID string) (int, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	count := 0
	for _, reg := range m.store.regs {
		if reg.EventID == eventID && reg.Status == domain.RegistrationStatusConfirmed {
			count++
		}
	}
	return count, nil
}

// UpdateStatus mirrors the transactional semantics of the real repository:
// the status write and counter delta apply together or not at all, and an
// increment past capacity fails with ErrQuotaFull.
func (m *mockRegistrationRepository) UpdateStatus(ctx context.Context, registrationID, eventID, status string, counterDelta int) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	reg, ok := m.store.regs[registrationID]
	if !ok {
		return domain.ErrNotFound
	}
	ev, ok := m.store.events[eventID]
	if !ok {
		return domain.ErrNotFound
	}
	switch counterDelta {
	case 1:
		if ev.CurrentVolunteers >= ev.MaxVolunteers {
			return domain.ErrQuotaFull
		}
		ev.CurrentVolunteers++
	case -1:
		if ev.CurrentVolunteers <= 0 {
			return domain.ErrNotFound
		}
		ev.CurrentVolunteers--
	}
	reg.Status = status
	return nil
}

type mockFeedbackRepository struct {
	store *memStore
	err   error
}

func (m *mockFeedbackRepository) Create(ctx context.Context, fb *domain.Feedback) error {
	if m.err != nil {
		return m.err
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	for _, existing := range m.store.feedbacks {
		if existing.EventID == fb.EventID && existing.UserID == fb.UserID {
			return domain.ErrDuplicateFeedback
		}
	}
	fb.ID = m.store.id("fb")
	m.store.feedbacks[fb.ID] = fb
	return nil
}

func (m *mockFeedbackRepository) GetByEventAndUser(ctx context.Context, eventID, userID string) (*domain.Feedback, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	for _, fb := range m.store.feedbacks {
		if fb.EventID == eventID && fb.UserID == userID {
			return fb, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockFeedbackRepository) List(ctx context.Context, filter domain.FeedbackFilter) ([]*domain.Feedback, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	feedbacks := make([]*domain.Feedback, 0)
	for _, fb := range m.store.feedbacks {
		if filter.UserID != "" && fb.UserID != filter.UserID {
			continue
		}
		if filter.EventID != "" && fb.EventID != filter.EventID {
			continue
		}
		feedbacks = append(feedbacks, fb)
	}
	sort.Slice(feedbacks, func(i, j int) bool { return feedbacks[i].ID < feedbacks[j].ID })
	return feedbacks, nil
}

type mockEmailService struct {
	sentResets    []*domain.PasswordResetEmailData
	sentApprovals []*domain.RegistrationApprovedEmailData
	err           error
}

func (m *mockEmailService) SendPasswordReset(ctx context.Context, data *domain.PasswordResetEmailData) error {
	if m.err != nil {
		return m.err
	}
	m.sentResets = append(m.sentResets, data)
	return nil
}

func (m *mockEmailService) SendRegistrationApproved(ctx context.Context, data *domain.RegistrationApprovedEmailData) error {
	if m.err != nil {
		return m.err
	}
	m.sentApprovals = append(m.sentApprovals, data)
	return nil
}

type mockTextGenerator struct {
	reply         string
	err           error
	lastSystem    string
	lastPrompt    string
	historyLength int
}

func (m *mockTextGenerator) Generate(ctx context.Context, systemInstruction string, history []domain.ChatMessage, prompt string) (string, error) {
	m.lastSystem = systemInstruction
	m.lastPrompt = prompt
	m.historyLength = len(history)
	if m.err != nil {
		return "", m.err
	}
	return m.reply, nil
}

type mockPasswordHasher struct{}

func (mockPasswordHasher) GenerateSalt() (string, error) { return "salt", nil }

func (mockPasswordHasher) Hash(salt, password string) (string, error) {
	return "hashed:" + salt + ":" + password, nil
}

func (mockPasswordHasher) Compare(hash, salt, password string) error {
	if hash != "hashed:"+salt+":"+password {
		return fmt.Errorf("password mismatch")
	}
	return nil
}

type mockTokenIssuer struct{ err error }

func (m *mockTokenIssuer) Issue(userID, email, role string, expiry time.Duration) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return "token-" + userID, nil
}
