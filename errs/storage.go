package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Persistence & Content Errors
var (
	ErrPersistence   = errors.New("persistence failed")
	ErrContentSchema = errors.New("content schema invalid")
)

// NewPersistenceError wraps a failure to read or write a backing store. The
// status code is 500 and the cause is kept server-side only; the responder
// never forwards it to the client.
func NewPersistenceError(operation, collection string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrPersistence,
		Details:    fmt.Sprintf("Failed to %s %s", operation, collection),
		Cause:      cause,
	}
}

// NewContentSchemaError marks a content document whose front-matter failed
// validation, identifying the category and slug for the author.
func NewContentSchemaError(category, slug string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrContentSchema,
		Details:    fmt.Sprintf("Document %s/%s has invalid metadata", category, slug),
		Cause:      cause,
	}
}

func IsPersistence(err error) bool {
	return errors.Is(err, ErrPersistence)
}

func IsContentSchema(err error) bool {
	return errors.Is(err, ErrContentSchema)
}
