// Package jsonio reads request bodies and writes JSON responses.
package jsonio

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// MaxBody caps decoded request bodies.
const MaxBody = 1 << 20

// ErrBadBody is returned when the request body is not a JSON object.
var ErrBadBody = errors.New("request body must be a JSON object")

// Decode reads one JSON value from r's body into dst. An empty body leaves
// dst untouched so validation reports the missing fields.
func Decode(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBody)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrBadBody, err)
	}
	return nil
}

// Write encodes v with status.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes {"success":false,"message":msg}.
func Error(w http.ResponseWriter, status int, msg string) {
	Write(w, status, map[string]any{"success": false, "message": msg})
}
