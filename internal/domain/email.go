package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// PasswordResetEmailData holds data for the password reset email.
type PasswordResetEmailData struct {
	Email string
	Name  string
}

// RegistrationApprovedEmailData holds data for the approval notification email.
type RegistrationApprovedEmailData struct {
	Email      string
	Name       string
	EventTitle string
	EventDate  string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendPasswordReset(ctx context.Context, data *PasswordResetEmailData) error
	SendRegistrationApproved(ctx context.Context, data *RegistrationApprovedEmailData) error
}
