package main

import (
	"database/sql"
	"net/http"
	"os"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"campusvolunteer/config"
	"campusvolunteer/internal/adapters/auth"
	emailadapter "campusvolunteer/internal/adapters/email"
	"campusvolunteer/internal/adapters/gemini"
	delivery "campusvolunteer/internal/delivery/http"
	"campusvolunteer/internal/delivery/http/controllers"
	"campusvolunteer/internal/delivery/http/middleware"
	"campusvolunteer/internal/repository/postgres"
	"campusvolunteer/internal/services"
)

const (
	serviceTimeout   = 10 * time.Second
	assistantTimeout = 30 * time.Second
	tokenExpiry      = 24 * time.Hour
)

// @title Campus Volunteer API
// @version 1.0
// @description Volunteer coordination backend for campus events: event publishing, join requests with organizer approval, feedback, badges, and an AI campus assistant.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("failed to ping database", "err", err)
		os.Exit(1)
	}

	userRepo := postgres.NewUserRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	registrationRepo := postgres.NewRegistrationRepository(db)
	feedbackRepo := postgres.NewFeedbackRepository(db)

	mailer, err := emailadapter.NewMailer(emailadapter.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: emailadapter.SESConfig{
			Region:          cfg.Email.SES.Region,
			AccessKeyID:     cfg.Email.SES.AccessKeyID,
			SecretAccessKey: cfg.Email.SES.SecretAccessKey,
		},
	})
	if err != nil {
		logger.Error("failed to create mailer", "err", err)
		os.Exit(1)
	}

	hasher := auth.NewBcryptHasher(bcrypt.DefaultCost)
	tokenIssuer := auth.NewJWTIssuer(cfg.JWTSecret)
	tokenVerifier := auth.NewJWTVerifier(cfg.JWTSecret)
	generator := gemini.NewClient(&http.Client{Timeout: assistantTimeout}, cfg.Assistant.APIKey, cfg.Assistant.Model)

	emailService := services.NewEmailService(mailer, emailadapter.NewTemplateRenderer())
	userService := services.NewUserService(userRepo, hasher, tokenIssuer, tokenExpiry, emailService)
	eventService := services.NewEventService(eventRepo, userRepo, serviceTimeout)
	registrationService := services.NewRegistrationService(registrationRepo, eventRepo, userRepo, feedbackRepo, emailService, serviceTimeout)
	feedbackService := services.NewFeedbackService(feedbackRepo, eventRepo, serviceTimeout)
	assistantService := services.NewAssistantService(eventRepo, generator, assistantTimeout)

	mux := delivery.NewRouter(
		logger,
		tokenVerifier,
		controllers.NewAuthController(logger, userService),
		controllers.NewUserController(logger, userService, registrationService),
		controllers.NewEventController(logger, eventService),
		controllers.NewRegistrationController(logger, registrationService),
		controllers.NewFeedbackController(logger, feedbackService),
		controllers.NewAssistantController(logger, assistantService),
	)

	handler := middleware.CORS(cfg.AllowedOrigins, middleware.LoggingMiddleware(logger, mux))

	addr := ":" + cfg.Port
	logger.Info("server listening", "addr", addr, "env", cfg.Environment)
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
