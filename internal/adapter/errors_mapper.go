package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// mapDeliveryError turns a webhook response into nil or a wrapped
// [ErrDeliveryFailure]. Acceptance requires a 2xx status and an "ok" status
// field in the body.
func mapDeliveryError(resp *resty.Response) error {
	if resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
		body := strings.TrimSpace(string(resp.Body()))
		if body == "" {
			body = http.StatusText(resp.StatusCode())
		}
		return fmt.Errorf("%w: http %d: %s", ErrDeliveryFailure, resp.StatusCode(), body)
	}

	var result webhookResult
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return fmt.Errorf("%w: malformed webhook response: %w", ErrDeliveryFailure, err)
	}
	if result.Status != webhookStatusOK {
		return fmt.Errorf("%w: unexpected webhook status %q", ErrDeliveryFailure, result.Status)
	}

	return nil
}
