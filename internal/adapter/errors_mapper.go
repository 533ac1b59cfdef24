package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-geo-sync/internal/utils"
)

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := responseMessage(resp)

	switch status := resp.StatusCode(); {
	case status == http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrBadRequest, body)
	case status == http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, body)
	case status == http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrForbidden, body)
	case status == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, body)
	case status == http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrConflict, body)
	case status == http.StatusGone:
		return fmt.Errorf("%w: %s", ErrGone, body)
	case status == http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", ErrUnprocessable, body)
	case status == http.StatusTooManyRequests, status >= http.StatusInternalServerError:
		return fmt.Errorf("%w: http %d: %s", ErrServerUnavailable, status, body)
	default:
		return fmt.Errorf("%w: http %d: %s", ErrUnexpectedStatus, status, body)
	}
}

// responseMessage prefers the error field of a JSON error body.
func responseMessage(resp *resty.Response) string {
	raw := resp.Body()
	var body utils.ErrorBody
	if json.Unmarshal(raw, &body) == nil && body.Error != "" {
		return body.Error
	}

	msg := strings.TrimSpace(string(raw))
	if msg == "" {
		msg = http.StatusText(resp.StatusCode())
	}
	return msg
}
