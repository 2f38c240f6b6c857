package middleware

import (
	"net/http"
	"time"
)

// timeoutBody matches the API envelope so a timed-out request still yields a
// parseable error on the client side.
const timeoutBody = `{"success":false,"error":{"code":"REQUEST_TIMEOUT","message":"request timed out"}}`

// Timeout caps end-to-end handling of one API request. Document uploads are
// the slowest path; the limit must stay comfortably above the time a full
// multipart registration takes on a slow link.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, timeout, timeoutBody)
	}
}
