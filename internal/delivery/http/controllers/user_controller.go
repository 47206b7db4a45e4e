package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"campusvolunteer/internal/delivery/http/helpers"
	"campusvolunteer/internal/delivery/http/middleware"
	"campusvolunteer/internal/domain"
)

// BookmarksResponse is the response body for POST /users/me/bookmarks/{eventID}
type BookmarksResponse struct {
	Bookmarks []string `json:"bookmarks"`
}

// BadgesResponse is the response body for GET /users/me/badges
type BadgesResponse struct {
	Badges      []domain.Badge `json:"badges"`
	MeritPoints int            `json:"merit_points"`
}

// UserSuccessResponse is the success response envelope for GET /users/me (200).
type UserSuccessResponse struct {
	Data  *domain.User      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// BadgesSuccessResponse is the success response envelope for GET /users/me/badges (200).
type BadgesSuccessResponse struct {
	Data  BadgesResponse    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// UserController handles profile, bookmark, and badge endpoints.
type UserController struct {
	Logger        *slog.Logger
	Service       domain.UserService
	Registrations domain.RegistrationService
}

// NewUserController creates a UserController with the given logger and services.
func NewUserController(logger *slog.Logger, svc domain.UserService, regSvc domain.RegistrationService) *UserController {
	return &UserController{
		Logger:        logger,
		Service:       svc,
		Registrations: regSvc,
	}
}

// GetMe godoc
// @Summary Get current user
// @Description Returns the authenticated user's profile, including bookmarks. Requires Bearer token.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.UserSuccessResponse "data contains the user"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users/me [get]
func (c *UserController) GetMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	user, err := c.Service.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "user not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, user)
}

// ToggleBookmark godoc
// @Summary Toggle an event bookmark
// @Description Adds the event to the authenticated user's bookmarks if absent, removes it if present. Returns the resulting bookmark list. Requires Bearer token.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains the updated bookmarks"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users/me/bookmarks/{eventID} [post]
func (c *UserController) ToggleBookmark(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "event ID is required")
		return
	}
	bookmarks, err := c.Service.ToggleBookmark(r.Context(), userID, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "user not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, BookmarksResponse{Bookmarks: bookmarks})
}

// GetBadges godoc
// @Summary Get current user's badges and merit points
// @Description Computes the authenticated user's achievement badges and merit points from their completed, confirmed event history. Requires Bearer token.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.BadgesSuccessResponse "data contains badges and merit_points"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users/me/badges [get]
func (c *UserController) GetBadges(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	regs, err := c.Registrations.ListForUser(r.Context(), userID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, BadgesResponse{
		Badges:      domain.EvaluateBadges(regs),
		MeritPoints: domain.MeritPoints(regs),
	})
}
