package api

import (
	"fmt"
	"net/http"

	"github.com/hygieia-health/hygieia-cli/internal/common"
)

// fallbackMessage is used when neither the server nor the transport
// produced a human-readable message.
const fallbackMessage = "Something went wrong"

// normalizeError maps a failed exchange to a single error carrying the most
// specific message available: server-provided envelope message first, then
// the transport error, then a generic fallback. The wrapped sentinel follows
// the status code so callers can match with errors.Is.
func normalizeError(status int, serverMessage string, transportErr error) error {
	message := serverMessage
	if message == "" && transportErr != nil {
		message = transportErr.Error()
	}
	if message == "" {
		message = fallbackMessage
	}

	switch {
	case transportErr != nil && status == 0:
		return fmt.Errorf("%w: %s", common.ErrNetwork, message)
	case status == http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", common.ErrUnauthorized, message)
	case status == http.StatusNotFound:
		return fmt.Errorf("%w: %s", common.ErrNotFound, message)
	default:
		return fmt.Errorf("%w: %s", common.ErrInternal, message)
	}
}
