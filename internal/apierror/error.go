package apierror

import "net/http"

// An Error represents the error format rendered by the server.
type Error struct {
	HTTPCode int    `json:"-"`
	Failure  bool   `json:"error"`
	Message  string `json:"message"`
}

// StatusCode returns the HTTP status code.
func StatusCode(err error) int {
	if apierr, ok := err.(*Error); ok {
		return apierr.HTTPCode
	}
	return http.StatusInternalServerError
}

// New returns a new Error with the given code and message.
func New(code int, message string) *Error {
	return &Error{HTTPCode: code, Failure: true, Message: message}
}

// Unauthorized is returned when no credential is provided.
func Unauthorized() *Error {
	return New(http.StatusUnauthorized, "Unauthorized access")
}

// InvalidCredentials is returned when the provided credential can't be verified.
func InvalidCredentials() *Error {
	return New(http.StatusForbidden, "Unauthorized access")
}

// Forbidden is returned when the authenticated identity can't access the resource.
func Forbidden() *Error {
	return New(http.StatusForbidden, "Forbidden access")
}

// Error implements error interface.
func (e *Error) Error() string {
	return e.Message
}
