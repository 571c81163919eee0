package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
)

// RetryConfig defines retry behavior for a single call.
type RetryConfig struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
}

// DefaultRetryConfig provides sensible defaults.
var DefaultRetryConfig = RetryConfig{
	MaxAttempts:  5,
	InitialDelay: 1 * time.Second,
	MaxDelay:     60 * time.Second,
}

// ErrorAction determines how to handle a call error.
type ErrorAction int

const (
	// ActionRetry covers transient conditions: network errors, 5xx, rate
	// limits.
	ActionRetry ErrorAction = iota
	// ActionFatal covers malformed or rejected requests that can never
	// succeed on resubmission.
	ActionFatal
)

// ClassifyError determines the action for a given call error.
func ClassifyError(err error) ErrorAction {
	if err == nil {
		return ActionRetry
	}

	s := err.Error()
	sLower := strings.ToLower(s)

	// JSON-RPC request faults.
	// -32700: parse error, -32600: invalid request, -32601: method not
	// found, -32602: invalid params
	if strings.Contains(s, "-32700") || strings.Contains(s, "-32600") ||
		strings.Contains(s, "-32601") || strings.Contains(s, "-32602") {
		return ActionFatal
	}

	if strings.Contains(sLower, "forbidden") ||
		strings.Contains(sLower, "unauthorized") ||
		strings.Contains(sLower, "invalidargument") ||
		strings.Contains(sLower, "invalid argument") {
		return ActionFatal
	}

	return ActionRetry
}

// CallWithRetry executes a call with exponential backoff. Fatal errors stop
// immediately; transient errors back off until MaxAttempts is exhausted.
func CallWithRetry(
	ctx context.Context,
	p Provider,
	method string,
	params []any,
	cfg RetryConfig,
) (json.RawMessage, error) {
	backoff := retry.NewExponential(cfg.InitialDelay)
	backoff = retry.WithCappedDuration(cfg.MaxDelay, backoff)
	backoff = retry.WithMaxRetries(uint64(cfg.MaxAttempts-1), backoff)

	var result json.RawMessage
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		res, err := p.Call(ctx, method, params)
		if err != nil {
			if ClassifyError(err) == ActionFatal {
				return err
			}
			return retry.RetryableError(err)
		}
		result = res
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("call %s on %s: %w", method, p.Name(), err)
	}
	return result, nil
}
