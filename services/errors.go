package services

import (
	"fmt"
	"net/http"
)

// Error kinds returned to API clients. The kind strings are part of the
// contract; the HTTP status attached to each is the suggested mapping.
const (
	KindInterpretationParse       = "interpretation_parse_error"
	KindInterpretationShape       = "interpretation_shape_error"
	KindInterpretationUnavailable = "interpretation_unavailable"
	KindNoItemsResolved           = "no_items_resolved"
	KindPersistence               = "persistence_error"
	KindSummary                   = "summary_error"
	KindEmailRegistered           = "email_already_registered"
	KindInvalidCredentials        = "invalid_credentials"
)

// ServiceError is the only error type that crosses the service boundary.
// Per-item resolution problems never become one; they are absorbed inside
// the resolver and only show up as a smaller resolved count.
type ServiceError struct {
	Kind    string
	Message string
	Status  int
	cause   error
}

func (e *ServiceError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *ServiceError) Unwrap() error { return e.cause }

func interpretationError(kind, message string, cause error) *ServiceError {
	return &ServiceError{Kind: kind, Message: message, Status: http.StatusBadRequest, cause: cause}
}

func persistenceError(cause error) *ServiceError {
	return &ServiceError{
		Kind:    KindPersistence,
		Message: "internal error while saving the meal",
		Status:  http.StatusInternalServerError,
		cause:   cause,
	}
}
