package openai

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/openai/openai-go"

	"github.com/reagentkit/reagent"
)

// wrapError categorizes an OpenAI SDK error, extracting status codes and
// Retry-After for the retry layer.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *openai.Error
	if !errors.As(err, &apiErr) {
		// Likely a network error; heuristic classification handles it.
		return err
	}

	code := apiErr.StatusCode
	retryAfter := parseRetryAfter(apiErr.Response)
	msg := err.Error()

	if retryAfter > 0 {
		return reagent.NewTransientErrorWithRetry(msg, code, retryAfter, err)
	}

	switch categorizeStatusCode(code) {
	case reagent.ErrorTransient:
		return reagent.NewTransientError(msg, code, err)
	case reagent.ErrorUserInput:
		return reagent.NewUserInputError(msg, code, err)
	default:
		return reagent.NewPermanentError(msg, code, err)
	}
}

func categorizeStatusCode(code int) reagent.ErrorCategory {
	switch {
	case code == 429:
		return reagent.ErrorTransient
	case code >= 500 && code < 600:
		return reagent.ErrorTransient
	case code == 400 || code == 404 || code == 422:
		return reagent.ErrorUserInput
	default:
		return reagent.ErrorPermanent
	}
}

// parseRetryAfter extracts the Retry-After duration from a response,
// accepting both delta-seconds and HTTP-date forms. Returns 0 when absent.
func parseRetryAfter(resp *http.Response) time.Duration {
	if resp == nil {
		return 0
	}

	header := resp.Header.Get("Retry-After")
	if header == "" {
		return 0
	}

	if seconds, err := strconv.Atoi(header); err == nil {
		return time.Duration(seconds) * time.Second
	}

	if t, err := http.ParseTime(header); err == nil {
		if delay := time.Until(t); delay > 0 {
			return delay
		}
	}

	return 0
}
