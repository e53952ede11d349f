package google

import (
	"errors"

	"google.golang.org/genai"

	"github.com/reagentkit/reagent"
)

// wrapError categorizes a GenAI SDK error by status code. The SDK does not
// expose response headers, so Retry-After is never available here.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		// Likely a network error; heuristic classification handles it.
		return err
	}

	code := apiErr.Code
	msg := err.Error()

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
