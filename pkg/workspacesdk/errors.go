package workspacesdk

import "fmt"

// APIError is a non-2xx response decoded into the standard error envelope.
type APIError struct {
	StatusCode  int
	Code        string
	Description string
}

func (e *APIError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("workspacesdk: %s (%d): %s", e.Code, e.StatusCode, e.Description)
	}
	return fmt.Sprintf("workspacesdk: %s (%d)", e.Code, e.StatusCode)
}

// IsNotFound reports whether err is an APIError with a 404 status.
func IsNotFound(err error) bool { return hasStatus(err, 404) }

// IsForbidden reports whether err is an APIError with a 403 status.
func IsForbidden(err error) bool { return hasStatus(err, 403) }

// IsConflict reports whether err is an APIError with a 409 status.
func IsConflict(err error) bool { return hasStatus(err, 409) }

func hasStatus(err error, status int) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.StatusCode == status
}
