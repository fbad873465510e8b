package domain

import "fmt"

// ValidationError reports malformed or out-of-range input at a boundary. It
// always names the offending field; it is returned, never panicked.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// PersistenceError wraps a store failure during read or write.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// PartialWriteError reports that the task row was committed but its custom
// fields were not. With the transactional write path this only occurs when
// the rollback after a field-insert failure itself fails; it must stay
// distinguishable from a total failure.
type PartialWriteError struct {
	TaskID int
	Err    error
}

func (e *PartialWriteError) Error() string {
	return fmt.Sprintf("task %d was created but its custom fields were not: %v", e.TaskID, e.Err)
}

func (e *PartialWriteError) Unwrap() error { return e.Err }
