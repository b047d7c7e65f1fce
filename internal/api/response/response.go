// Package response holds the JSON envelope shared by every handler. Success
// bodies are the domain values themselves; failures use ErrorResponse so
// clients always find the same error/details shape.
package response

import (
	"encoding/json"
	"log"
	"net/http"
)

// ErrorResponse is the wire shape of every non-2xx body. Details carries
// optional context (a field-error map, an upstream message) and is omitted
// when empty.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

// RespondJSON writes data as JSON with the given status. A nil data writes
// the status alone, which is how 204 responses go out. The status line is
// already committed when encoding runs, so encode failures can only be
// logged.
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode JSON response: %v", err)
	}
}

// RespondError writes an ErrorResponse with the given status. The message is
// the stable, client-facing description; details may be an error string or
// any JSON-encodable context, or nil.
func RespondError(w http.ResponseWriter, status int, message string, details interface{}) {
	RespondJSON(w, status, ErrorResponse{Error: message, Details: details})
}
