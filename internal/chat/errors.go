package chat

import "fmt"

// ValidationError reports malformed or missing caller input. It maps to a 400
// at the HTTP boundary and is never retried.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// NotFoundError reports a referenced conversation that does not exist where
// existence is required. Only history lookup raises it; message send falls
// back to creating a new conversation instead.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

// StoreError reports a persistence failure. Whatever was already durably
// committed before the failure stays committed.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
