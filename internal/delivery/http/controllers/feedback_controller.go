package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"campusvolunteer/internal/delivery/http/helpers"
	"campusvolunteer/internal/delivery/http/middleware"
	"campusvolunteer/internal/domain"
)

// SubmitFeedbackRequest is the request body for POST /events/{eventID}/feedback
type SubmitFeedbackRequest struct {
	Rating  int    `json:"rating"` // 1 to 5
	Comment string `json:"comment"`
}

// Validate implements Validator.
func (s SubmitFeedbackRequest) Validate() []string {
	var errs []string
	if s.Rating < 1 || s.Rating > 5 {
		errs = append(errs, "rating must be between 1 and 5")
	}
	return errs
}

// RatingResponse is the response body for GET /events/{eventID}/rating
type RatingResponse struct {
	EventID string  `json:"event_id"`
	Average float64 `json:"average"`
}

// FeedbackSuccessResponse is the success response envelope for POST /events/{eventID}/feedback (201).
type FeedbackSuccessResponse struct {
	Data  *domain.Feedback  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// FeedbackController handles feedback submission and rating endpoints.
type FeedbackController struct {
	Logger  *slog.Logger
	Service domain.FeedbackService
}

// NewFeedbackController creates a FeedbackController with the given logger and service.
func NewFeedbackController(logger *slog.Logger, svc domain.FeedbackService) *FeedbackController {
	return &FeedbackController{
		Logger:  logger,
		Service: svc,
	}
}

// SubmitFeedback godoc
// @Summary Submit feedback for an event
// @Description Stores the authenticated user's rating (1 to 5) and optional comment for the event. One feedback per user per event. Requires Bearer token.
// @Tags feedback
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param body body SubmitFeedbackRequest true "Feedback data"
// @Success 201 {object} controllers.FeedbackSuccessResponse "data contains the stored feedback"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/feedback [post]
func (c *FeedbackController) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req SubmitFeedbackRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	fb, err := c.Service.Submit(r.Context(), r.PathValue("eventID"), userID, req.Rating, req.Comment)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidRating):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "rating must be between 1 and 5")
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
		case errors.Is(err, domain.ErrDuplicateFeedback):
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "feedback already submitted for this event")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, fb)
}

// GetEventRating godoc
// @Summary Get an event's average rating
// @Description Returns the mean rating of all feedback for the event, rounded to one decimal place. Zero when the event has no feedback.
// @Tags feedback
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains event_id and average"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/rating [get]
func (c *FeedbackController) GetEventRating(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	avg, err := c.Service.AverageFor(r.Context(), eventID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, RatingResponse{EventID: eventID, Average: avg})
}

// ListFeedback godoc
// @Summary List feedback
// @Description Lists feedback entries, optionally filtered by event_id and/or user_id query parameters. Requires Bearer token.
// @Tags feedback
// @Produce json
// @Security BearerAuth
// @Param event_id query string false "Filter by event ID"
// @Param user_id query string false "Filter by user ID"
// @Success 200 {object} helpers.APIResponse "data contains the feedback entries"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /feedback [get]
func (c *FeedbackController) ListFeedback(w http.ResponseWriter, r *http.Request) {
	filter := domain.FeedbackFilter{
		EventID: r.URL.Query().Get("event_id"),
		UserID:  r.URL.Query().Get("user_id"),
	}
	feedbacks, err := c.Service.List(r.Context(), filter)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, feedbacks)
}
