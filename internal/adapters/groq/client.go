package groq

import (
    "context"
    "errors"
    "fmt"
    "net/http"
    "strings"

    openai "github.com/openai/openai-go/v2"
    "github.com/openai/openai-go/v2/option"
    "github.com/openai/openai-go/v2/shared"
    "github.com/rs/zerolog"

    "github.com/HamedShams/review-pulse/internal/config"
)

const baseURL = "https://api.groq.com/openai/v1"

// Error is a failed completion call. RateLimited distinguishes throttling
// from other failures so callers can decide to fall back.
type Error struct {
    StatusCode int
    Model      string
    Message    string
}

func (e *Error) Error() string {
    return fmt.Sprintf("groq: model=%s status=%d: %s", e.Model, e.StatusCode, e.Message)
}

func (e *Error) RateLimited() bool { return e.StatusCode == http.StatusTooManyRequests }

// Client talks to Groq's OpenAI-compatible chat completions API.
type Client struct {
    key string
    cli openai.Client
    log zerolog.Logger
}

func NewClient(cfg config.Config, log zerolog.Logger) *Client {
    cli := openai.NewClient(
        option.WithAPIKey(cfg.GroqAPIKey),
        option.WithBaseURL(baseURL),
    )
    return &Client{key: cfg.GroqAPIKey, cli: cli, log: log}
}

// Complete runs one chat completion and returns the generated text.
func (c *Client) Complete(ctx context.Context, model, system, user string, maxTokens int) (string, error) {
    if strings.TrimSpace(c.key) == "" { return "", errors.New("groq: missing key") }
    c.log.Debug().Str("model", model).Int("max_tokens", maxTokens).Msg("groq completion call")
    params := openai.ChatCompletionNewParams{
        Model: shared.ChatModel(model),
        Messages: []openai.ChatCompletionMessageParamUnion{
            openai.SystemMessage(system),
            openai.UserMessage(user),
        },
        MaxTokens:   openai.Int(int64(maxTokens)),
        Temperature: openai.Float(0.3),
    }
    resp, err := c.cli.Chat.Completions.New(ctx, params)
    if err != nil {
        var apierr *openai.Error
        if errors.As(err, &apierr) {
            return "", &Error{StatusCode: apierr.StatusCode, Model: model, Message: apierr.Error()}
        }
        return "", fmt.Errorf("groq: model=%s: %w", model, err)
    }
    if len(resp.Choices) == 0 { return "", errors.New("groq: no choices") }
    return resp.Choices[0].Message.Content, nil
}
