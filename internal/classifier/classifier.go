package classifier

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyText     = errors.New("empty chat text")
	ErrEmptyResponse = errors.New("empty model response")
	ErrUnknownLabel  = errors.New("label outside category set")
	ErrNotConfigured = errors.New("llm gateway not configured")
)

// Error is returned by Classify for any failure on one message.
type Error struct {
	Axis string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("classify %s: %v", e.Axis, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Completer sends one system instruction plus one user message to a hosted
// model and returns its raw text reply.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Classifier labels chat text along one axis.
type Classifier struct {
	completer Completer
	axis      Axis
	strict    bool
}

// New builds a classifier. With strict set, replies outside the axis
// categories are rejected with ErrUnknownLabel; otherwise they are kept as-is.
func New(c Completer, axis Axis, strict bool) *Classifier {
	return &Classifier{completer: c, axis: axis, strict: strict}
}

func (c *Classifier) Axis() Axis { return c.axis }

// Classify returns the normalized (trimmed, lower-cased) model reply. Every
// failure is an *Error; the caller decides the fallback.
func (c *Classifier) Classify(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", &Error{Axis: c.axis.Name, Err: ErrEmptyText}
	}
	reply, err := c.completer.Complete(ctx, c.axis.SystemPrompt(), text)
	if err != nil {
		return "", &Error{Axis: c.axis.Name, Err: err}
	}
	label := Normalize(reply)
	if label == "" {
		return "", &Error{Axis: c.axis.Name, Err: ErrEmptyResponse}
	}
	if c.strict && !c.axis.Allows(label) {
		return "", &Error{Axis: c.axis.Name, Err: fmt.Errorf("%w: %q", ErrUnknownLabel, label)}
	}
	return label, nil
}

// Normalize trims and case-folds a model reply.
func Normalize(reply string) string {
	return strings.ToLower(strings.TrimSpace(reply))
}
