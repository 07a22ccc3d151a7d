// Package errors holds the typed errors the daemon's services return.
// Handlers map them to HTTP status codes.
package errors

import (
	"errors"
	"fmt"
)

type ResourceNotFoundError struct {
	Resource string
	ID       string
}

func (e *ResourceNotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

func NewResourceNotFoundError(resource, id string) error {
	return &ResourceNotFoundError{Resource: resource, ID: id}
}

func NewJobNotFoundError(id string) error {
	return NewResourceNotFoundError("job", id)
}

func NewTaskNotFoundError(id int64) error {
	return NewResourceNotFoundError("task", fmt.Sprintf("%d", id))
}

func IsResourceNotFoundError(err error) bool {
	var e *ResourceNotFoundError
	return errors.As(err, &e)
}

// TaskFinishedError is returned when stopping a task that already reached a terminal status.
type TaskFinishedError struct {
	ID     int64
	Status string
}

func (e *TaskFinishedError) Error() string {
	return fmt.Sprintf("task %d already %s", e.ID, e.Status)
}

func NewTaskFinishedError(id int64, status string) error {
	return &TaskFinishedError{ID: id, Status: status}
}

func IsTaskFinishedError(err error) bool {
	var e *TaskFinishedError
	return errors.As(err, &e)
}

// InvalidArgumentError reports a malformed filter or query parameter.
type InvalidArgumentError struct {
	Field string
	Value string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid %s: %q", e.Field, e.Value)
}

func NewInvalidArgumentError(field, value string) error {
	return &InvalidArgumentError{Field: field, Value: value}
}

func IsInvalidArgumentError(err error) bool {
	var e *InvalidArgumentError
	return errors.As(err, &e)
}
