// Package response provides utilities for sending consistent HTTP responses.
// Every payload travels in an envelope: successful responses carry the result
// under "data", failures carry a human-readable message under "error".
package response

import (
	"encoding/json"
	"log"
	"net/http"
)

// DataEnvelope wraps a successful payload
type DataEnvelope struct {
	Data interface{} `json:"data"`
}

// ErrorEnvelope wraps a failure message. The Details field is optional and
// can contain additional context about the error.
type ErrorEnvelope struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

// RespondData sends a successful response with the payload wrapped in the
// data envelope
func RespondData(w http.ResponseWriter, status int, data interface{}) {
	respondJSON(w, status, DataEnvelope{Data: data})
}

// RespondError sends a structured error response with the given status code.
// The message should be a user-friendly error description.
func RespondError(w http.ResponseWriter, status int, message string, details interface{}) {
	respondJSON(w, status, ErrorEnvelope{Error: message, Details: details})
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode JSON response: %v", err)
	}
}
