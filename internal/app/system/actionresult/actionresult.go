// Package actionresult is the uniform outcome of every write action:
// success flag, one user-facing message, and optional per-field errors.
package actionresult

import (
	"net/http"

	"github.com/dalemusser/gracehub/internal/app/system/inputval"
	"github.com/dalemusser/gracehub/internal/app/system/jsonio"
)

// GenericFailure is shown when a store or upstream error is swallowed.
const GenericFailure = "An unexpected error occurred. Please try again."

// InvalidInput is the message paired with field errors.
const InvalidInput = "Invalid form data. Please check the fields below."

// Result is returned by write actions and serialized as-is to clients.
type Result struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
	ID      string              `json:"id,omitempty"`

	notFound bool
}

// OK builds a successful result.
func OK(msg string) Result { return Result{Success: true, Message: msg} }

// Fail builds a failed result without field errors.
func Fail(msg string) Result { return Result{Message: msg} }

// NotFound builds a failed result for a missing target record.
func NotFound(msg string) Result { return Result{Message: msg, notFound: true} }

// Invalid converts a validation result into a failed Result.
func Invalid(v *inputval.Result) Result {
	return Result{Message: InvalidInput, Errors: v.Fields()}
}

// WithID attaches the id of the created or updated record.
func (r Result) WithID(id string) Result {
	r.ID = id
	return r
}

// Status maps the result to an HTTP status.
func (r Result) Status() int {
	switch {
	case r.Success:
		return http.StatusOK
	case len(r.Errors) > 0:
		return http.StatusUnprocessableEntity
	case r.notFound:
		return http.StatusNotFound
	case r.Message == GenericFailure:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// Write sends r as JSON with the status it maps to.
func Write(w http.ResponseWriter, r Result) {
	jsonio.Write(w, r.Status(), r)
}
