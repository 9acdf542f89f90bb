package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/allofdaniel/yessirpanda-dashboard-sub000/pkg/models"
)

// Client talks to the chat-completions API used for per-day example content.
// Every caller must treat failures as "no AI section", never as a dispatch
// failure.
type Client struct {
	apiKey      string
	apiURL      string
	model       string
	maxTokens   int
	temperature float64
	httpClient  *http.Client
}

// New creates a new completions client
func New() (*Client, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is not set")
	}

	return &Client{
		apiKey:      apiKey,
		apiURL:      "https://api.openai.com/v1/chat/completions",
		model:       "gpt-3.5-turbo",
		maxTokens:   200,
		temperature: 0.7,
		httpClient:  &http.Client{Timeout: 20 * time.Second},
	}, nil
}

// Message represents a message in the conversation
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest represents a request to the completions API
type ChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
}

// ChatResponse represents a response from the completions API
type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Complete sends one prompt and returns the trimmed completion text
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	request := ChatRequest{
		Model: c.model,
		Messages: []Message{
			{Role: "system", Content: "You are an assistant for an English vocabulary learning service. Keep answers short and friendly."},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	}

	requestData, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewBuffer(requestData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %v", err)
	}
	defer resp.Body.Close()

	var response ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("failed to decode response: %v", err)
	}

	if response.Error != nil {
		return "", fmt.Errorf("API error: %s", response.Error.Message)
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no response choices returned")
	}

	return strings.TrimSpace(response.Choices[0].Message.Content), nil
}

// DailyPassage generates a short passage using up to five of the day's
// words, for the morning batch message.
func (c *Client) DailyPassage(ctx context.Context, words []models.Word) (string, error) {
	if len(words) == 0 {
		return "", fmt.Errorf("no words to build a passage from")
	}

	maxWords := 5
	if len(words) < maxWords {
		maxWords = len(words)
	}
	list := make([]string, 0, maxWords)
	for i := 0; i < maxWords; i++ {
		list = append(list, words[i].Word)
	}

	prompt := fmt.Sprintf(
		"Write a short, easy English passage (2-3 sentences) that naturally uses these words: %s. "+
			"Return only the passage, no explanations.",
		strings.Join(list, ", "),
	)
	return c.Complete(ctx, prompt)
}

// ReviewSummary generates a one-paragraph evening recap for the day's words
func (c *Client) ReviewSummary(ctx context.Context, day int, words []models.Word) (string, error) {
	if len(words) == 0 {
		return "", fmt.Errorf("no words to summarize")
	}

	var sb strings.Builder
	for i, w := range words {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s (%s)", w.Word, w.Meaning)
	}

	prompt := fmt.Sprintf(
		"A learner finished day %d with these words: %s. "+
			"Write one short encouraging review paragraph that restates each word once. "+
			"Return only the paragraph.",
		day, sb.String(),
	)
	return c.Complete(ctx, prompt)
}
