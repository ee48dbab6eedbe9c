package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-request-pipeline/models"
	"github.com/go-resty/resty/v2"
)

var statusErrors = map[int]error{
	http.StatusBadRequest:            ErrBadRequest,
	http.StatusUnauthorized:          ErrUnauthorized,
	http.StatusForbidden:             ErrForbidden,
	http.StatusNotFound:              ErrNotFound,
	http.StatusConflict:              ErrConflict,
	http.StatusRequestEntityTooLarge: ErrPayloadTooLarge,
	http.StatusInternalServerError:   ErrInternalServerError,
	http.StatusBadGateway:            ErrBadGateway,
}

// ResponseError is a structured error response returned by the server.
type ResponseError struct {
	models.ErrorResponse

	// HTTPStatus is the status line code, which can differ from
	// StatusCode when the server replaced an invalid code with 500.
	HTTPStatus int

	sentinel error
}

func (e *ResponseError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "http %d: %s", e.HTTPStatus, e.Message)
	if e.Code != nil {
		fmt.Fprintf(&b, " (code %s)", *e.Code)
	}
	if e.RequestID != nil {
		fmt.Fprintf(&b, " [request %s]", *e.RequestID)
	}
	return b.String()
}

// Unwrap returns the sentinel matching the status code, if any.
func (e *ResponseError) Unwrap() error {
	return e.sentinel
}

func mapHTTPError(resp *resty.Response) error {
	status := resp.StatusCode()
	if status >= http.StatusOK && status < http.StatusMultipleChoices {
		return nil
	}

	sentinel := statusErrors[status]

	var structured models.ErrorResponse
	if err := json.Unmarshal(resp.Body(), &structured); err == nil && structured.Message != "" {
		return &ResponseError{ErrorResponse: structured, HTTPStatus: status, sentinel: sentinel}
	}

	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(status)
	}
	if sentinel != nil {
		return fmt.Errorf("%w: %s", sentinel, body)
	}
	return fmt.Errorf("http %d: %s", status, body)
}
