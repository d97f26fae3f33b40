package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/joshua-takyi/carnivalxperience/internal/models"
)

const SystemPrompt = "You are the CarnivalXperience concierge for the Calabar Carnival in Cross River State, Nigeria. " +
	"Help attendees with events, band parades, hotels, transport, safety and local culture. " +
	"Keep answers short and practical. For emergencies tell the user to use the in-app emergency button or call 112."

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Completer produces the next assistant turn for a conversation.
type Completer interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

// HTTPCompleter talks to an OpenAI compatible chat completions endpoint.
type HTTPCompleter struct {
	apiURL string
	apiKey string
	model  string
	client *http.Client
}

func NewHTTPCompleter(apiURL, apiKey, model string, timeout time.Duration) *HTTPCompleter {
	return &HTTPCompleter{
		apiURL: apiURL,
		apiKey: apiKey,
		model:  model,
		client: &http.Client{Timeout: timeout},
	}
}

type completionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type completionResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (h *HTTPCompleter) Complete(ctx context.Context, messages []Message) (string, error) {
	payload := completionRequest{
		Model:       h.model,
		Messages:    withSystemPrompt(messages),
		Temperature: 0.7,
		MaxTokens:   600,
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode completion request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.apiURL, bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("failed to build completion request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+h.apiKey)

	resp, err := h.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: completion: %v", models.ErrUpstream, err)
	}
	defer resp.Body.Close()

	var out completionResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 4<<20)).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: completion: undecodable response (status %d)", models.ErrUpstream, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		msg := http.StatusText(resp.StatusCode)
		if out.Error != nil && out.Error.Message != "" {
			msg = out.Error.Message
		}
		return "", fmt.Errorf("%w: completion: %s", models.ErrUpstream, msg)
	}
	if len(out.Choices) == 0 || strings.TrimSpace(out.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("%w: completion: empty reply", models.ErrUpstream)
	}
	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}

func withSystemPrompt(messages []Message) []Message {
	if len(messages) > 0 && messages[0].Role == "system" {
		return messages
	}
	out := make([]Message, 0, len(messages)+1)
	out = append(out, Message{Role: "system", Content: SystemPrompt})
	return append(out, messages...)
}

// Canned answers from a fixed topic list when no model is configured.
type Canned struct{}

var cannedTopics = []struct {
	keywords []string
	answer   string
}{
	{[]string{"emergency", "help", "danger", "police", "hurt"}, "If you are in danger use the emergency button in the Safety tab or call 112. Carnival marshals are stationed along the parade route."},
	{[]string{"hotel", "room", "stay", "book"}, "You can compare hotels in the Hotels tab and book a room there. Rooms near Millennium Park sell out first in December."},
	{[]string{"band", "vote"}, "Each attendee gets one band vote per carnival year. Open Bands to see this year's standings and cast yours."},
	{[]string{"parade", "route", "when", "schedule", "event"}, "The grand parade starts at Millennium Park on 26 December. Check Events for the full schedule and live updates."},
	{[]string{"lost", "missing", "family", "child"}, "Mark the person as missing in your family group so the safety team is alerted, and share your live location code with them."},
	{[]string{"food", "eat", "edikang", "afang"}, "Try edikang ikong and afang soup at Marian Road during the street food festival."},
}

func (Canned) Complete(ctx context.Context, messages []Message) (string, error) {
	var last string
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == "user" {
			last = strings.ToLower(messages[i].Content)
			break
		}
	}
	for _, t := range cannedTopics {
		for _, kw := range t.keywords {
			if strings.Contains(last, kw) {
				return t.answer, nil
			}
		}
	}
	return "Welcome to Carnival Calabar! Ask me about events, hotels, bands, safety or getting around the city.", nil
}
