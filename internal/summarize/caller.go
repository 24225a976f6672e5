package summarize

import (
    "context"
    "errors"
    "fmt"

    "github.com/rs/zerolog"
)

// Completer is the text-completion capability.
type Completer interface {
    Complete(ctx context.Context, model, system, user string, maxTokens int) (string, error)
}

// CallError is a completion that failed after the fallback transition. It
// carries the model that produced the terminal failure.
type CallError struct {
    Model string
    Err   error
}

func (e *CallError) Error() string { return fmt.Sprintf("llm call failed: model=%s: %v", e.Model, e.Err) }

func (e *CallError) Unwrap() error { return e.Err }

// rateLimited is implemented by provider errors that represent throttling.
type rateLimited interface{ RateLimited() bool }

func isRateLimited(err error) bool {
    var rl rateLimited
    return errors.As(err, &rl) && rl.RateLimited()
}

// Caller wraps a Completer with the shared rate limiter and the
// primary-to-fallback retry. States: try primary; on a rate-limit signal try
// the fallback exactly once; anything else fails immediately.
type Caller struct {
    llm     Completer
    limiter *Limiter
    log     zerolog.Logger
}

func NewCaller(llm Completer, limiter *Limiter, log zerolog.Logger) *Caller {
    return &Caller{llm: llm, limiter: limiter, log: log}
}

// Complete returns generated text or a *CallError; it never silently drops a
// completion.
func (c *Caller) Complete(ctx context.Context, primary, fallback, system, user string, maxTokens int) (string, error) {
    c.limiter.Wait()
    out, err := c.llm.Complete(ctx, primary, system, user, maxTokens)
    if err == nil { return out, nil }
    if !isRateLimited(err) {
        return "", &CallError{Model: primary, Err: err}
    }
    c.log.Warn().Str("primary", primary).Str("fallback", fallback).Msg("rate limited, retrying with fallback model")
    c.limiter.Wait()
    out, err = c.llm.Complete(ctx, fallback, system, user, maxTokens)
    if err != nil {
        return "", &CallError{Model: fallback, Err: err}
    }
    return out, nil
}
