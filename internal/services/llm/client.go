// Package llm talks to the OpenAI chat completions API for the three
// model-backed operations: converting a résumé into marker text, extracting
// form sections from a résumé, and improving a single section.
//
// The client is constructed once at startup and injected into handlers. A
// missing API key is not a startup failure; every call returns a ConfigError
// instead, so the rest of the API keeps working without a key.
package llm

import (
	"context"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// DefaultModel is used when Config.Model is empty.
const DefaultModel = "gpt-4o"

// finishLength is the finish reason reported when max_tokens cut the reply.
const finishLength = "length"

// ConfigError reports a missing required setting. It is returned at call
// time, never at construction.
type ConfigError struct {
	Setting string
}

func (e *ConfigError) Error() string {
	return e.Setting + " is not set; configure it in the environment or the .env file"
}

// ErrEmptyResponse is returned when the model replies with no choices or an
// empty message.
var ErrEmptyResponse = errors.New("model returned an empty response")

// Config holds the client settings.
type Config struct {
	APIKey     string
	Model      string
	BaseURL    string // optional, for proxies and tests
	Timeout    time.Duration
	MaxRetries int
}

// Client wraps the OpenAI SDK client.
type Client struct {
	api   *openai.Client
	model string
}

// New creates a Client. With an empty APIKey the client is still usable as
// a value, but every call fails with a ConfigError.
func New(cfg Config) *Client {
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	c := &Client{model: model}
	if cfg.APIKey == "" {
		return c
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(cfg.MaxRetries),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	// Go Pattern: Always configure timeouts. Long résumés can take minutes
	// to generate, so the default is generous but never unbounded.
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}
	api := openai.NewClient(opts...)
	c.api = &api
	return c
}

// Configured reports whether an API key was supplied.
func (c *Client) Configured() bool {
	return c.api != nil
}

// Model returns the model name sent with every request.
func (c *Client) Model() string {
	return c.model
}

// request is one chat completion call.
type request struct {
	op          string // for logs
	system      string
	user        string
	temperature float64
	maxTokens   int64
	sampling    bool // nucleus sampling and repetition penalties for long generations
}

// complete sends a system + user prompt pair and returns the reply text.
func (c *Client) complete(ctx context.Context, req request) (string, error) {
	if c.api == nil {
		return "", &ConfigError{Setting: "OPENAI_API_KEY"}
	}

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.system),
			openai.UserMessage(req.user),
		},
		Temperature: openai.Float(req.temperature),
		MaxTokens:   openai.Int(req.maxTokens),
	}
	if req.sampling {
		params.TopP = openai.Float(0.95)
		params.FrequencyPenalty = openai.Float(0.1)
		params.PresencePenalty = openai.Float(0.1)
	}

	start := time.Now()
	completion, err := c.api.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", errors.Wrapf(err, "%s request failed", req.op)
	}
	if len(completion.Choices) == 0 {
		return "", errors.Wrap(ErrEmptyResponse, req.op)
	}

	choice := completion.Choices[0]
	text := strings.TrimSpace(choice.Message.Content)
	log.Info().
		Str("op", req.op).
		Str("model", c.model).
		Str("finish_reason", string(choice.FinishReason)).
		Int64("total_tokens", completion.Usage.TotalTokens).
		Int("response_chars", len(text)).
		Dur("duration", time.Since(start)).
		Msg("model call completed")
	if string(choice.FinishReason) == finishLength {
		log.Warn().Str("op", req.op).Int64("max_tokens", req.maxTokens).
			Msg("model reply was truncated by the token limit")
	}

	if text == "" {
		return "", errors.Wrap(ErrEmptyResponse, req.op)
	}
	return text, nil
}

// IsConfigError reports whether err, or anything it wraps, is a ConfigError.
func IsConfigError(err error) bool {
	var cfgErr *ConfigError
	return errors.As(err, &cfgErr)
}
