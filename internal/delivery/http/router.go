package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"campusvolunteer/internal/delivery/http/controllers"
	"campusvolunteer/internal/delivery/http/middleware"
	"campusvolunteer/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(
	logger *slog.Logger,
	verifier domain.TokenVerifier,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	eventController *controllers.EventController,
	registrationController *controllers.RegistrationController,
	feedbackController *controllers.FeedbackController,
	assistantController *controllers.AssistantController,
) *http.ServeMux {
	mux := http.NewServeMux()
	requireAuth := middleware.RequireAuth(verifier, logger)

	// Auth
	mux.HandleFunc("POST /auth/signup", authController.SignUp)
	mux.HandleFunc("POST /auth/login", authController.Login)
	mux.HandleFunc("POST /auth/password-reset", authController.RequestPasswordReset)

	// Users
	mux.HandleFunc("GET /users/me", requireAuth(userController.GetMe))
	mux.HandleFunc("POST /users/me/bookmarks/{eventID}", requireAuth(userController.ToggleBookmark))
	mux.HandleFunc("GET /users/me/badges", requireAuth(userController.GetBadges))
	mux.HandleFunc("GET /users/me/events", requireAuth(eventController.ListMyEvents))
	mux.HandleFunc("GET /users/me/registrations", requireAuth(registrationController.ListMyRegistrations))

	// Events
	mux.HandleFunc("GET /events", eventController.ListEvents)
	mux.HandleFunc("POST /events", requireAuth(eventController.CreateEvent))
	mux.HandleFunc("GET /events/{eventID}", eventController.GetEvent)
	mux.HandleFunc("POST /events/{eventID}/complete", requireAuth(eventController.CompleteEvent))

	// Registrations
	mux.HandleFunc("POST /events/{eventID}/registrations", requireAuth(registrationController.JoinEvent))
	mux.HandleFunc("GET /events/{eventID}/registrations", requireAuth(registrationController.ListEventRegistrations))
	mux.HandleFunc("PATCH /registrations/{registrationID}", requireAuth(registrationController.UpdateRegistration))

	// Feedback
	mux.HandleFunc("POST /events/{eventID}/feedback", requireAuth(feedbackController.SubmitFeedback))
	mux.HandleFunc("GET /events/{eventID}/rating", feedbackController.GetEventRating)
	mux.HandleFunc("GET /feedback", requireAuth(feedbackController.ListFeedback))

	// Assistant
	mux.HandleFunc("POST /assistant/chat", requireAuth(assistantController.Chat))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
