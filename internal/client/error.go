package client

import (
	"encoding/json"
	"errors"
	"strings"
)

// APIError is a structured backend error. Fields maps field names to
// validation messages when the backend rejected specific inputs.
type APIError struct {
	Status  int
	Code    string
	Message string
	Fields  map[string]string
}

func (e *APIError) Error() string {
	if e.Code != "" && len(e.Fields) == 0 {
		return e.Message + " (" + e.Code + ")"
	}
	return e.Message
}

// IsStatus reports whether err is an APIError with the given HTTP status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

type errorBody struct {
	Detail  string            `json:"detail"`
	Message string            `json:"message"`
	Code    string            `json:"code"`
	Fields  map[string]string `json:"fields"`
}

// parseAPIError normalizes a non-2xx response into an *APIError. The body is
// preferred as JSON {detail|message, code?, fields?}, then raw text, then the
// HTTP status text.
func parseAPIError(status int, statusText string, body []byte) *APIError {
	apiErr := &APIError{Status: status, Message: strings.TrimSpace(string(body))}

	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err == nil {
		switch {
		case parsed.Detail != "":
			apiErr.Message = parsed.Detail
		case parsed.Message != "":
			apiErr.Message = parsed.Message
		}
		apiErr.Code = parsed.Code
		if len(parsed.Fields) > 0 {
			apiErr.Fields = parsed.Fields
		}
	}

	if apiErr.Message == "" {
		apiErr.Message = statusText
	}
	return apiErr
}
