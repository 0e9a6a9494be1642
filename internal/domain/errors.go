package domain

import "fmt"

// ValidationError rejects malformed input before any state change.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func Invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// NotFoundError signals a reference to a nonexistent record; callers should
// refresh their view of the data.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

func NotFound(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// PersistenceError wraps a failed store operation. The write is assumed not
// to have happened and no snapshot is published.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string { return fmt.Sprintf("store %s: %v", e.Op, e.Err) }
func (e *PersistenceError) Unwrap() error { return e.Err }

// ChannelDeliveryError records a failed push to a single connection. It is
// logged and dropped, never surfaced to the writer that triggered it.
type ChannelDeliveryError struct {
	RestaurantID string
	Err          error
}

func (e *ChannelDeliveryError) Error() string {
	return fmt.Sprintf("deliver snapshot for restaurant %s: %v", e.RestaurantID, e.Err)
}
func (e *ChannelDeliveryError) Unwrap() error { return e.Err }
