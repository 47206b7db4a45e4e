package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"campusvolunteer/internal/delivery/http/helpers"
	"campusvolunteer/internal/domain"
)

// ChatRequest is the request body for POST /assistant/chat
type ChatRequest struct {
	Message string               `json:"message"`
	History []domain.ChatMessage `json:"history"`
}

// Validate implements Validator.
func (c ChatRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Message) == "" {
		errs = append(errs, "message is required")
	}
	for _, m := range c.History {
		if m.Role != domain.ChatRoleUser && m.Role != domain.ChatRoleModel {
			errs = append(errs, "history roles must be \"user\" or \"model\"")
			break
		}
	}
	return errs
}

// ChatResponse is the response body for POST /assistant/chat
type ChatResponse struct {
	Reply string `json:"reply"`
}

// ChatSuccessResponse is the success response envelope for POST /assistant/chat (200).
type ChatSuccessResponse struct {
	Data  ChatResponse      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// AssistantController handles the campus assistant chat endpoint.
type AssistantController struct {
	Logger  *slog.Logger
	Service domain.AssistantService
}

// NewAssistantController creates an AssistantController with the given logger and service.
func NewAssistantController(logger *slog.Logger, svc domain.AssistantService) *AssistantController {
	return &AssistantController{
		Logger:  logger,
		Service: svc,
	}
}

// Chat godoc
// @Summary Chat with the campus assistant
// @Description Sends a message (with optional prior turns) to the campus assistant, which answers using the live event list. Model outages degrade to a fixed fallback reply rather than an error. Requires Bearer token.
// @Tags assistant
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ChatRequest true "Message and optional history"
// @Success 200 {object} controllers.ChatSuccessResponse "data contains the assistant reply"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /assistant/chat [post]
func (c *AssistantController) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	reply, err := c.Service.Ask(r.Context(), req.Message, req.History)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ChatResponse{Reply: reply})
}
