package apperror

import (
	"errors"
	"fmt"
	"strings"
)

// TransportError means the request never produced a usable response.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport failure: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ApplicationError is a non-success response carrying the server's message.
type ApplicationError struct {
	Op      string
	Status  int
	Message string
}

func (e *ApplicationError) Error() string {
	return fmt.Sprintf("%s: status %d: %s", e.Op, e.Status, e.Message)
}

// FieldError describes one failed local precondition.
type FieldError struct {
	Field string
	Rule  string
}

// ValidationError is raised before any network call is made.
type ValidationError struct {
	Fields []FieldError
}

func NewValidationError(fields ...FieldError) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s failed on '%s'", f.Field, f.Rule))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// HasField reports whether the given field failed validation.
func (e *ValidationError) HasField(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

func IsApplication(err error) bool {
	var ae *ApplicationError
	return errors.As(err, &ae)
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// StatusOf returns the HTTP status of an ApplicationError, or 0.
func StatusOf(err error) int {
	var ae *ApplicationError
	if errors.As(err, &ae) {
		return ae.Status
	}
	return 0
}

// UserMessage renders an error as the text shown to the user in an alert.
func UserMessage(err error) string {
	var ae *ApplicationError
	if errors.As(err, &ae) {
		if ae.Message != "" {
			return ae.Message
		}
		return fmt.Sprintf("Erro %d", ae.Status)
	}
	var te *TransportError
	if errors.As(err, &te) {
		return "Não foi possível conectar ao servidor. Tente novamente."
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return "Preencha os campos obrigatórios."
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
