package errs

import (
	"errors"
	"fmt"
	"net/http"
)

var ErrUploadFailed = errors.New("upload failed")

// NewUploadError wraps an object-store failure. kind distinguishes the
// upload type surfaced to the operator ("pdf" or "image").
func NewUploadError(kind string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrUploadFailed,
		Details:    fmt.Sprintf("%s upload failed", kind),
		Field:      kind,
		Cause:      cause,
	}
}

func IsUploadError(err error) bool {
	return errors.Is(err, ErrUploadFailed)
}
