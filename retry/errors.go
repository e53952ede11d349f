package retry

import (
	"errors"
	"net"
	"net/url"
	"strings"
	"syscall"

	"github.com/reagentkit/reagent"
)

// statusCoder is implemented by SDK errors carrying an HTTP status code.
type statusCoder interface {
	StatusCode() int
}

// IsTransient determines whether an error should be retried. Explicitly
// categorized errors are trusted; otherwise heuristics cover rate limits
// (429), server errors (5xx), network timeouts, connection resets and DNS
// failures.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var ce reagent.CategorizedError
	if errors.As(err, &ce) {
		return ce.Category() == reagent.ErrorTransient
	}

	var sc statusCoder
	if errors.As(err, &sc) && isTransientStatusCode(sc.StatusCode()) {
		return true
	}

	return isTransientNetworkError(err)
}

func isTransientStatusCode(code int) bool {
	return code == 429 || (code >= 500 && code < 600)
}

func isTransientNetworkError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return true
		}
		if urlErr.Err != nil && isTransientNetworkError(urlErr.Err) {
			return true
		}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return dnsErr.Temporary()
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		switch errno {
		case syscall.ECONNRESET, syscall.ECONNREFUSED, syscall.ETIMEDOUT:
			return true
		}
	}

	// Message-pattern fallback for errors that carry no structure.
	msg := strings.ToLower(err.Error())
	for _, pattern := range []string{
		"connection reset",
		"connection refused",
		"timeout",
		"temporary failure",
		"service unavailable",
		"too many requests",
		"rate limit",
		"bad gateway",
		"gateway timeout",
	} {
		if strings.Contains(msg, pattern) {
			return true
		}
	}

	return false
}
