package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"campusvolunteer/internal/domain"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

type generateContentRequest struct {
	SystemInstruction *content  `json:"system_instruction,omitempty"`
	Contents          []content `json:"contents"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

type geminiClient struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
}

// NewClient returns a TextGenerator that calls the Gemini generateContent API.
func NewClient(client *http.Client, apiKey, model string) domain.TextGenerator {
	if client == nil {
		client = http.DefaultClient
	}
	return &geminiClient{
		client:  client,
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		model:   model,
	}
}

func (g *geminiClient) Generate(ctx context.Context, systemInstruction string, history []domain.ChatMessage, prompt string) (string, error) {
	if g.apiKey == "" {
		return "", domain.ErrAssistantNotConfigured
	}

	reqBody := generateContentRequest{
		SystemInstruction: &content{Parts: []part{{Text: systemInstruction}}},
	}
	for _, msg := range history {
		reqBody.Contents = append(reqBody.Contents, content{
			Role:  msg.Role,
			Parts: []part{{Text: msg.Text}},
		})
	}
	reqBody.Contents = append(reqBody.Contents, content{
		Role:  domain.ChatRoleUser,
		Parts: []part{{Text: prompt}},
	})

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call gemini: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini api returned status: %d", resp.StatusCode)
	}

	var data generateContentResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", fmt.Errorf("failed to decode gemini response: %w", err)
	}
	if len(data.Candidates) == 0 || len(data.Candidates[0].Content.Parts) == 0 {
		return "", nil
	}

	var text string
	for _, p := range data.Candidates[0].Content.Parts {
		text += p.Text
	}
	return text, nil
}
