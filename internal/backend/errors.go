package backend

import (
	"errors"
	"net/http"

	"ai-assistant-client/internal/pkg/apperror"
	"ai-assistant-client/internal/repository/contract"
)

func notFound(what string) error {
	return &apperror.ApplicationError{Op: "backend", Status: http.StatusNotFound, Message: what + " not found"}
}

// mapNotFound turns a repository miss into a 404 carrying the entity name.
func mapNotFound(err error, what string) error {
	if errors.Is(err, contract.ErrNotFound) {
		return notFound(what)
	}
	return err
}
