package providers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"paperbrief/internal/util"
)

// ClassifyHTTPError maps a provider's HTTP failure onto the pipeline error
// taxonomy. The response body is kept in the message so the operator can see
// what the provider actually said. Gemini reports bad API keys and unknown
// models as 400 INVALID_ARGUMENT, hence the body sniffing on that status.
func ClassifyHTTPError(provider string, status int, body []byte) error {
	msg := strings.TrimSpace(string(body))
	if len(msg) > 512 {
		msg = msg[:512]
	}
	low := strings.ToLower(msg)
	switch {
	case status == 401 || status == 403:
		return fmt.Errorf("%s error %d: %s: %w", provider, status, msg, util.ErrAuthentication)
	case status == 429:
		return fmt.Errorf("%s error %d: %s: %w", provider, status, msg, util.ErrRateLimited)
	case status == 404:
		return fmt.Errorf("%s error %d: %s: %w", provider, status, msg, util.ErrInvalidModel)
	case status == 400 && (strings.Contains(low, "api key") || strings.Contains(low, "api_key") || strings.Contains(low, "unauthenticated")):
		return fmt.Errorf("%s error %d: %s: %w", provider, status, msg, util.ErrAuthentication)
	case status == 400 && strings.Contains(low, "model"):
		return fmt.Errorf("%s error %d: %s: %w", provider, status, msg, util.ErrInvalidModel)
	case status >= 500:
		return fmt.Errorf("%s error %d: %s: %w", provider, status, msg, util.ErrTransient)
	default:
		return fmt.Errorf("%s error %d: %s", provider, status, msg)
	}
}

// WrapTransportError classifies a failed HTTP round trip as transient.
// Context cancellation passes through untouched so callers can tell an abort
// from a provider fault.
func WrapTransportError(provider string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%s request failed: %v: %w", provider, err, util.ErrTransient)
}

// Retryable reports whether one more attempt may help.
func Retryable(err error) bool {
	return errors.Is(err, util.ErrRateLimited) || errors.Is(err, util.ErrTransient)
}

// ErrorKind names an error class for audit rows and diagnostics.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, util.ErrAuthentication):
		return "auth"
	case errors.Is(err, util.ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, util.ErrTransient):
		return "transient"
	case errors.Is(err, util.ErrInvalidModel):
		return "invalid_model"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "permanent"
	}
}
