package llm

import (
	"errors"
	"fmt"
	"strings"
)

// ErrFatalAPI marks API errors that retrying will not fix: billing,
// quota, and authentication failures. Pipelines still degrade to their
// local fallback on these, but they are logged distinctly so the user
// learns the key is the problem, not the network.
var ErrFatalAPI = errors.New("fatal API error")

// fatalPatterns are substrings that identify non-retryable API errors.
var fatalPatterns = []string{
	"credit balance",
	"insufficient quota",
	"rate limit",
	"quota exceeded",
	"billing",
	"invalid api key",
	"incorrect api key",
	"authentication",
	"unauthorized",
	"401",
	"403",
}

// isFatalAPIError reports whether err (or anything it wraps) looks like
// a billing/auth/quota failure.
func isFatalAPIError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, p := range fatalPatterns {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}

// wrapFatalError tags fatal API errors with ErrFatalAPI so callers can
// match with errors.Is. Non-fatal errors pass through unchanged.
func wrapFatalError(err error) error {
	if err == nil {
		return nil
	}
	if isFatalAPIError(err) {
		return fmt.Errorf("%w: %v", ErrFatalAPI, err)
	}
	return err
}
