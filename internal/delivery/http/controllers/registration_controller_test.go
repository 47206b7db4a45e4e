package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"campusvolunteer/internal/delivery/http/helpers"
	"campusvolunteer/internal/delivery/http/middleware"
	"campusvolunteer/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRegistrationService implements domain.RegistrationService for handler tests.
type fakeRegistrationService struct {
	joinReg      *domain.Registration
	joinErr      error
	setStatusErr error
	lastStatus   string
	lastActorID  string
	eventRegs    []*domain.Registration
	eventRegsErr error
	userRegs     []*domain.Registration
	userRegsErr  error
}

func (f *fakeRegistrationService) Join(ctx context.Context, eventID, userID string) (*domain.Registration, error) {
	if f.joinErr != nil {
		return nil, f.joinErr
	}
	return f.joinReg, nil
}

func (f *fakeRegistrationService) SetStatus(ctx context.Context, registrationID, newStatus, actorID string) error {
	f.lastStatus = newStatus
	f.lastActorID = actorID
	return f.setStatusErr
}

func (f *fakeRegistrationService) ListForEvent(ctx context.Context, eventID, actorID string) ([]*domain.Registration, error) {
	if f.eventRegsErr != nil {
		return nil, f.eventRegsErr
	}
	return f.eventRegs, nil
}

func (f *fakeRegistrationService) ListForUser(ctx context.Context, userID string) ([]*domain.Registration, error) {
	if f.userRegsErr != nil {
		return nil, f.userRegsErr
	}
	return f.userRegs, nil
}

func authedRequest(req *http.Request, userID string) *http.Request {
	return req.WithContext(middleware.SetUserID(req.Context(), userID))
}

func TestRegistrationController_JoinEvent(t *testing.T) {
	logger := testLogger()

	tests := []struct {
		name         string
		authed       bool
		fake         *fakeRegistrationService
		wantStatus   int
		wantBodyCode string
	}{
		{
			name:       "success",
			authed:     true,
			fake:       &fakeRegistrationService{joinReg: &domain.Registration{ID: "reg-1", Status: domain.RegistrationStatusPending}},
			wantStatus: http.StatusCreated,
		},
		{
			name:         "no auth",
			authed:       false,
			fake:         &fakeRegistrationService{},
			wantStatus:   http.StatusUnauthorized,
			wantBodyCode: helpers.ErrCodeUnauthorized,
		},
		{
			name:         "event not found",
			authed:       true,
			fake:         &fakeRegistrationService{joinErr: domain.ErrNotFound},
			wantStatus:   http.StatusNotFound,
			wantBodyCode: helpers.ErrCodeNotFound,
		},
		{
			name:         "already registered",
			authed:       true,
			fake:         &fakeRegistrationService{joinErr: domain.ErrAlreadyRegistered},
			wantStatus:   http.StatusConflict,
			wantBodyCode: helpers.ErrCodeConflict,
		},
		{
			name:         "quota full",
			authed:       true,
			fake:         &fakeRegistrationService{joinErr: domain.ErrQuotaFull},
			wantStatus:   http.StatusConflict,
			wantBodyCode: helpers.ErrCodeConflict,
		},
		{
			name:         "service error",
			authed:       true,
			fake:         &fakeRegistrationService{joinErr: assert.AnError},
			wantStatus:   http.StatusInternalServerError,
			wantBodyCode: helpers.ErrCodeInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewRegistrationController(logger, tt.fake)
			req := httptest.NewRequest(http.MethodPost, "http://test/events/ev-1/registrations", nil)
			req.SetPathValue("eventID", "ev-1")
			if tt.authed {
				req = authedRequest(req, "user-1")
			}
			rr := httptest.NewRecorder()

			ctrl.JoinEvent(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
			if tt.wantBodyCode != "" {
				require.NotNil(t, envelope.Error)
				assert.Equal(t, tt.wantBodyCode, envelope.Error.Code)
			} else {
				require.Nil(t, envelope.Error)
			}
		})
	}
}

func TestRegistrationController_UpdateRegistration(t *testing.T) {
	logger := testLogger()

	tests := []struct {
		name         string
		body         any
		fake         *fakeRegistrationService
		wantStatus   int
		wantBodyCode string
	}{
		{
			name:       "confirm",
			body:       UpdateRegistrationRequest{Status: domain.RegistrationStatusConfirmed},
			fake:       &fakeRegistrationService{},
			wantStatus: http.StatusOK,
		},
		{
			name:       "reject",
			body:       UpdateRegistrationRequest{Status: domain.RegistrationStatusRejected},
			fake:       &fakeRegistrationService{},
			wantStatus: http.StatusOK,
		},
		{
			name:         "invalid status",
			body:         UpdateRegistrationRequest{Status: "pending"},
			fake:         &fakeRegistrationService{},
			wantStatus:   http.StatusBadRequest,
			wantBodyCode: helpers.ErrCodeBadRequest,
		},
		{
			name:         "not owner",
			body:         UpdateRegistrationRequest{Status: domain.RegistrationStatusConfirmed},
			fake:         &fakeRegistrationService{setStatusErr: domain.ErrForbidden},
			wantStatus:   http.StatusForbidden,
			wantBodyCode: helpers.ErrCodeForbidden,
		},
		{
			name:         "registration not found",
			body:         UpdateRegistrationRequest{Status: domain.RegistrationStatusRejected},
			fake:         &fakeRegistrationService{setStatusErr: domain.ErrNotFound},
			wantStatus:   http.StatusNotFound,
			wantBodyCode: helpers.ErrCodeNotFound,
		},
		{
			name:         "quota full at confirm time",
			body:         UpdateRegistrationRequest{Status: domain.RegistrationStatusConfirmed},
			fake:         &fakeRegistrationService{setStatusErr: domain.ErrQuotaFull},
			wantStatus:   http.StatusConflict,
			wantBodyCode: helpers.ErrCodeConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewRegistrationController(logger, tt.fake)
			req := postJSON(t, "/registrations/reg-1", tt.body)
			req.SetPathValue("registrationID", "reg-1")
			req = authedRequest(req, "organizer-1")
			rr := httptest.NewRecorder()

			ctrl.UpdateRegistration(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "organizer-1", tt.fake.lastActorID)
			}
			if tt.wantBodyCode != "" {
				var envelope helpers.APIResponse
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
				require.NotNil(t, envelope.Error)
				assert.Equal(t, tt.wantBodyCode, envelope.Error.Code)
			}
		})
	}
}

func TestRegistrationController_ListEventRegistrations(t *testing.T) {
	logger := testLogger()

	t.Run("success", func(t *testing.T) {
		fake := &fakeRegistrationService{eventRegs: []*domain.Registration{{ID: "reg-1"}, {ID: "reg-2"}}}
		ctrl := NewRegistrationController(logger, fake)
		req := httptest.NewRequest(http.MethodGet, "http://test/events/ev-1/registrations", nil)
		req.SetPathValue("eventID", "ev-1")
		req = authedRequest(req, "organizer-1")
		rr := httptest.NewRecorder()

		ctrl.ListEventRegistrations(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var envelope helpers.APIResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
		data, ok := envelope.Data.([]any)
		require.True(t, ok)
		assert.Len(t, data, 2)
	})

	t.Run("forbidden for non-owner", func(t *testing.T) {
		ctrl := NewRegistrationController(logger, &fakeRegistrationService{eventRegsErr: domain.ErrForbidden})
		req := httptest.NewRequest(http.MethodGet, "http://test/events/ev-1/registrations", nil)
		req.SetPathValue("eventID", "ev-1")
		req = authedRequest(req, "other")
		rr := httptest.NewRecorder()

		ctrl.ListEventRegistrations(rr, req)

		require.Equal(t, http.StatusForbidden, rr.Code)
	})
}

func TestRegistrationController_ListMyRegistrations(t *testing.T) {
	logger := testLogger()
	fake := &fakeRegistrationService{userRegs: []*domain.Registration{{ID: "reg-1", HasFeedback: true}}}
	ctrl := NewRegistrationController(logger, fake)

	req := authedRequest(httptest.NewRequest(http.MethodGet, "http://test/users/me/registrations", nil), "user-1")
	rr := httptest.NewRecorder()

	ctrl.ListMyRegistrations(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var envelope helpers.APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
	require.Nil(t, envelope.Error)
}
