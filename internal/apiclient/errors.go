package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// APIError is a non-2xx response from the server. Message is the server's
// own text when it sent one, otherwise empty; callers fall back to their
// own generic message in that case.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api: %d", e.Status)
}

// IsUnauthorized reports whether err is a 401, meaning the session is
// gone and the user must sign in again.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// Message extracts the server-provided message from err, or returns
// fallback. Used by the pages to render banners per the error taxonomy:
// server text verbatim when present, generic text otherwise.
func Message(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return apiErr
	}

	// The server answers either {message} or {errors: [{msg}]} on
	// validation failures.
	var payload struct {
		Message string `json:"message"`
		Errors  []struct {
			Msg string `json:"msg"`
		} `json:"errors"`
	}
	if json.Unmarshal(body, &payload) != nil {
		return apiErr
	}
	if payload.Message != "" {
		apiErr.Message = payload.Message
		return apiErr
	}
	for i, e := range payload.Errors {
		if i > 0 {
			apiErr.Message += "; "
		}
		apiErr.Message += e.Msg
	}
	return apiErr
}
