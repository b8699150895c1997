package compose

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/kilianp07/meetsched/core/model"
	"github.com/kilianp07/meetsched/infra/logger"
)

// LLMComposer rewrites the template summary through an OpenAI-compatible
// chat completion endpoint. Any failure falls back to the template output
// so the engine never blocks on the language service.
type LLMComposer struct {
	endpoint string
	model    string
	client   *http.Client
	fallback TemplateComposer
	log      logger.Logger
}

func NewLLMComposer(cfg Config) *LLMComposer {
	cfg.SetDefaults()
	return &LLMComposer{
		endpoint: cfg.Endpoint,
		model:    cfg.Model,
		client:   &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		log:      logger.New("compose"),
	}
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

const systemPrompt = "You are a scheduling assistant. Rewrite the following " +
	"meeting decision as a short, friendly answer. Keep every date, time and " +
	"participant name exactly as given. Do not invent details."

func (c *LLMComposer) Compose(d model.Decision, participants []string) (string, error) {
	base, err := c.fallback.Compose(d, participants)
	if err != nil {
		return "", err
	}
	answer, err := c.rewrite(base)
	if err != nil {
		c.log.Warnf("llm composer unavailable, using template: %v", err)
		return base, nil
	}
	return answer, nil
}

func (c *LLMComposer) rewrite(summary string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: summary},
		},
	})
	if err != nil {
		return "", err
	}

	resp, err := c.client.Post(c.endpoint, "application/json", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat endpoint returned %s", resp.Status)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("chat endpoint returned no content")
	}
	return parsed.Choices[0].Message.Content, nil
}
