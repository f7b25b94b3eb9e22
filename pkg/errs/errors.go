package errs

import (
	"errors"
	"net/http"
)

const (
	ErrStatusInternalServer = http.StatusInternalServerError
	ErrStatusClient         = http.StatusBadRequest
	ErrStatusUnauthorized   = http.StatusUnauthorized
	ErrStatusNoPermission   = http.StatusForbidden
	ErrStatusNotFound       = http.StatusNotFound
	ErrStatusConflict       = http.StatusConflict
)

var (
	ErrInternalServer = errors.New("Internal server error")
	ErrClient         = errors.New("Bad request")
	ErrValidation     = errors.New("Please fill all the required fields")
	ErrNotLoggedIn    = errors.New("Unauthorized access")
	ErrUnauthorized   = errors.New("Forbidden access")
	ErrNotFound       = errors.New("Resource not found")
	ErrNotAnImage     = errors.New("Uploaded file is not an image")
	ErrInvalidPrice   = errors.New("Price must be a non-negative number")
	ErrConflict       = errors.New("Conflicting record found")
	ErrTokenExpired   = errors.New("The token is already expired")
)

var errorMap = map[error]int{
	ErrInternalServer: ErrStatusInternalServer,
	ErrClient:         ErrStatusClient,
	ErrValidation:     ErrStatusClient,
	ErrNotLoggedIn:    ErrStatusUnauthorized,
	ErrUnauthorized:   ErrStatusUnauthorized,
	ErrNotFound:       ErrStatusNotFound,
	ErrNotAnImage:     ErrStatusClient,
	ErrInvalidPrice:   ErrStatusClient,
	ErrConflict:       ErrStatusConflict,
	ErrTokenExpired:   ErrStatusNoPermission,
}

func GetErrorStatusCode(err error) int {
	errStatusCode, ok := errorMap[err]
	if !ok {
		errStatusCode = errorMap[ErrInternalServer]
	}
	return errStatusCode
}
