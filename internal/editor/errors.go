package editor

import (
	"fmt"
	"net/http"
)

// Kind classifies why a save attempt was rejected
type Kind int

const (
	// InvalidInput: the submitted text is not a valid configuration
	InvalidInput Kind = iota + 1
	// SerializationError: a valid document could not be re-encoded
	SerializationError
	// PersistenceError: the configuration file could not be written
	PersistenceError
)

func (k Kind) String() string {
	switch k {
	case InvalidInput:
		return "invalid_input"
	case SerializationError:
		return "serialization_error"
	case PersistenceError:
		return "persistence_error"
	default:
		return "unknown"
	}
}

// HTTPStatus maps the kind to a response status: client error for bad input,
// server error otherwise.
func (k Kind) HTTPStatus() int {
	if k == InvalidInput {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// SaveError is returned by Workflow.Save for every aborted attempt.
// Submitted carries the text the operator sent so it can be echoed back.
type SaveError struct {
	Kind      Kind
	Submitted string
	Err       error
}

func (e *SaveError) Error() string {
	return e.Message()
}

func (e *SaveError) Unwrap() error { return e.Err }

// Message is the single line shown to the operator
func (e *SaveError) Message() string {
	switch e.Kind {
	case InvalidInput:
		return fmt.Sprintf("Invalid JSON: %v", e.Err)
	case SerializationError:
		return fmt.Sprintf("Failed to serialize config: %v", e.Err)
	case PersistenceError:
		return fmt.Sprintf("Failed to write config: %v", e.Err)
	default:
		return fmt.Sprintf("Save failed: %v", e.Err)
	}
}
