package services

import (
	"context"
	"fmt"
	"log"

	"campusvolunteer/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

// SendPasswordReset sends the password reset email using the "password_reset" template.
func (s *emailService) SendPasswordReset(ctx context.Context, data *domain.PasswordResetEmailData) error {
	if data == nil {
		return fmt.Errorf("password reset data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("password_reset", data)
	if err != nil {
		return fmt.Errorf("failed to render password_reset template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send password reset email: %w", err)
	}
	log.Printf("[EMAIL] Password reset email sent to %s", data.Email)
	return nil
}

// SendRegistrationApproved sends the approval notification using the "registration_approved" template.
func (s *emailService) SendRegistrationApproved(ctx context.Context, data *domain.RegistrationApprovedEmailData) error {
	if data == nil {
		return fmt.Errorf("registration approved data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("registration_approved", data)
	if err != nil {
		return fmt.Errorf("failed to render registration_approved template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send registration approved email: %w", err)
	}
	log.Printf("[EMAIL] Registration approved email sent to %s", data.Email)
	return nil
}
