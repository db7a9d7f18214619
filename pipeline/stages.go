package pipeline

import (
	"context"
	"time"
)

// Identity returns a stage that passes the input through unchanged.
func Identity() Stage {
	return func(ctx context.Context, input interface{}) (interface{}, error) {
		return input, nil
	}
}

// Tap returns a stage that calls fn(ctx, input) then passes input through unchanged.
// Use for logging or side effects without changing the value.
func Tap(fn func(context.Context, interface{})) Stage {
	return func(ctx context.Context, input interface{}) (interface{}, error) {
		fn(ctx, input)
		return input, nil
	}
}

// WithTimeout wraps inner so it runs with a context deadline of now+timeout.
// If inner does not return before the deadline, context.DeadlineExceeded is returned.
func WithTimeout(inner Stage, timeout time.Duration) Stage {
	return func(ctx context.Context, input interface{}) (interface{}, error) {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		return inner(ctx, input)
	}
}
