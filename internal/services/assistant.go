package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"campusvolunteer/internal/domain"
)

// Fixed assistant replies. The assistant never surfaces raw errors to students.
const (
	assistantNotConfiguredReply = "Error: GEMINI_API_KEY not found. Please configure your environment."
	assistantEmptyReply         = "I'm having trouble connecting to the campus network. Try again?"
	assistantOfflineReply       = "Sorry, I'm currently offline. Please check your connection."
)

type assistantService struct {
	eventRepo      domain.EventRepository
	generator      domain.TextGenerator
	contextTimeout time.Duration
}

// NewAssistantService creates an AssistantService backed by the given text generator.
func NewAssistantService(eventRepo domain.EventRepository, generator domain.TextGenerator, timeout time.Duration) domain.AssistantService {
	return &assistantService{
		eventRepo:      eventRepo,
		generator:      generator,
		contextTimeout: timeout,
	}
}

func (s *assistantService) Ask(ctx context.Context, prompt string, history []domain.ChatMessage) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.List(ctx)
	if err != nil {
		log.Printf("[ASSISTANT] Failed to load event context: %v", err)
		return assistantOfflineReply, nil
	}

	reply, err := s.generator.Generate(ctx, buildSystemInstruction(events), history, prompt)
	if err != nil {
		if errors.Is(err, domain.ErrAssistantNotConfigured) {
			return assistantNotConfiguredReply, nil
		}
		log.Printf("[ASSISTANT] Model call failed: %v", err)
		return assistantOfflineReply, nil
	}
	if strings.TrimSpace(reply) == "" {
		return assistantEmptyReply, nil
	}
	return reply, nil
}

func buildSystemInstruction(events []*domain.Event) string {
	var sb strings.Builder
	for _, e := range events {
		fmt.Fprintf(&sb, "- %s (%s) @ %s. Organized by %s. ID: %s\n", e.Title, e.Date, e.Location, e.OrganizerName, e.ID)
	}
	return fmt.Sprintf(`You are "UMission AI", a campus assistant specifically for Universiti Malaya (UM) students.
Your goal is to help students find volunteer opportunities on campus (Kolej Kediaman, Faculties, Rimba Ilmu, Tasik Varsiti, etc.).

Here is the live list of events currently happening at UM:
%s
Rules:
1. Only recommend events from the list above if asked about "current" opportunities.
2. If asked about locations, assume they are within the UM Campus (e.g., "DTC" = Dewan Tunku Canselor).
3. Be encouraging and student-friendly. Use terms like "Siswa/Siswi" or "Campus Community".
4. If an organizer asks for help, suggest ideas relevant to university SDG goals (Green Campus, Zero Waste, Food Security).`, sb.String())
}
