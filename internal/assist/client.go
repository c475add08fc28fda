// Package assist is the free-text chat collaborator: questions that are not
// report commands are answered by an OpenAI-compatible completion endpoint
// (Groq, by default).
package assist

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"
)

const systemPrompt = "You are Efazi, a delivery operations assistant. Answer briefly and practically."

// Config holds the chat endpoint settings.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
}

// Client wraps the completion API for single-turn chat.
type Client struct {
	ai    *openai.Client
	model string
}

// ErrNotConfigured indicates no API key is set; chat is an optional feature.
var ErrNotConfigured = errors.New("assist: GROQ_API_KEY not configured")

// NewClient creates a chat client. With no API key the client is disabled;
// callers check Enabled before use.
func NewClient(cfg Config) *Client {
	if cfg.APIKey == "" {
		return &Client{}
	}
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	model := cfg.Model
	if model == "" {
		model = "llama3-8b-8192"
	}
	return &Client{ai: openai.NewClientWithConfig(clientCfg), model: model}
}

// Enabled reports whether the client has credentials to work with.
func (c *Client) Enabled() bool {
	return c.ai != nil
}

// Chat sends one user message and returns the assistant's reply.
func (c *Client) Chat(ctx context.Context, text string) (string, error) {
	if !c.Enabled() {
		return "", ErrNotConfigured
	}

	resp, err := c.ai.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}

	log.Debug().Int("prompt_tokens", resp.Usage.PromptTokens).Int("completion_tokens", resp.Usage.CompletionTokens).Msg("Chat completion")
	return resp.Choices[0].Message.Content, nil
}
