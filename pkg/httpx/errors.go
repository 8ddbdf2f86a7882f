package httpx

import (
	"errors"
	"net/http"
)

// ClassifiedError is implemented by errors that carry their own response
// status and public error code.
type ClassifiedError interface {
	error
	HTTPStatus() int
	ErrorCode() string
	Description() string
}

// writeAuthError keeps the status and code of a ClassifiedError and falls
// back to fallbackStatus/code/desc for anything else. 401s get the bearer
// challenge header.
func writeAuthError(w http.ResponseWriter, err error, fallbackStatus int, code, desc string) {
	status := fallbackStatus
	var ce ClassifiedError
	if errors.As(err, &ce) {
		status, code, desc = ce.HTTPStatus(), ce.ErrorCode(), ce.Description()
	}
	if status == http.StatusUnauthorized {
		writeBearerError(w, code, desc)
		return
	}
	WriteError(w, status, code, desc)
}
