package slack

import (
	"errors"
	"fmt"
	"strings"

	"github.com/slack-go/slack"
	"go.uber.org/zap"
)

// Kind is the closed classification of Slack API failures. The retry and
// degradation policy switches on it exhaustively: rate limits wait, auth
// failures abort with guidance, not-found degrades to a negative result,
// access-denied and transient failures propagate.
type Kind int

const (
	KindTransient Kind = iota
	KindRateLimited
	KindNotFound
	KindAccessDenied
	KindAuth
)

func (k Kind) String() string {
	switch k {
	case KindRateLimited:
		return "rate_limited"
	case KindNotFound:
		return "not_found"
	case KindAccessDenied:
		return "access_denied"
	case KindAuth:
		return "auth"
	default:
		return "transient"
	}
}

// authErrorCodes are Slack API error codes that indicate authentication problems
var authErrorCodes = map[string]string{
	"invalid_auth":     "Authentication token is invalid. Please refresh your SLACK_BOT_TOKEN and SLACK_COOKIE.",
	"token_expired":    "Authentication token has expired. Please refresh your SLACK_BOT_TOKEN and SLACK_COOKIE.",
	"token_revoked":    "Authentication token has been revoked. Please generate new credentials.",
	"account_inactive": "The Slack account is inactive or disabled.",
	"not_authed":       "No authentication token provided. Please set SLACK_BOT_TOKEN and SLACK_COOKIE.",
}

var notFoundCodes = []string{"user_not_found", "users_not_found", "channel_not_found", "thread_not_found"}

var accessDeniedCodes = []string{"not_in_channel", "access_denied", "restricted_action", "missing_scope"}

// Classify maps an error to its kind.
func Classify(err error) Kind {
	if err == nil {
		return KindTransient
	}

	var rateLimitErr *slack.RateLimitedError
	if errors.As(err, &rateLimitErr) {
		return KindRateLimited
	}

	errStr := err.Error()
	for code := range authErrorCodes {
		if strings.Contains(errStr, code) {
			return KindAuth
		}
	}
	for _, code := range notFoundCodes {
		if strings.Contains(errStr, code) {
			return KindNotFound
		}
	}
	for _, code := range accessDeniedCodes {
		if strings.Contains(errStr, code) {
			return KindAccessDenied
		}
	}
	return KindTransient
}

// AuthError represents a Slack authentication error with guidance for resolution
type AuthError struct {
	Code    string
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("SLACK AUTHENTICATION ERROR: %s (code: %s)", e.Message, e.Code)
}

// matchAuthError checks if an error contains an auth error code.
// Returns nil if no auth error is found.
func matchAuthError(err error) *AuthError {
	if err == nil {
		return nil
	}
	errStr := err.Error()
	for code, message := range authErrorCodes {
		if strings.Contains(errStr, code) {
			return &AuthError{Code: code, Message: message}
		}
	}
	return nil
}

// WrapError classifies an error and returns an enhanced form with logging.
// This should be called at the API boundary to provide clear error messages
// to callers.
func WrapError(logger *zap.Logger, operation string, err error) error {
	if err == nil {
		return nil
	}

	if authErr := matchAuthError(err); authErr != nil {
		logger.Error("Slack authentication failed",
			zap.String("operation", operation),
			zap.String("guidance", authErr.Message),
			zap.Error(err))
		return authErr
	}

	return fmt.Errorf("%s: %w", operation, err)
}
