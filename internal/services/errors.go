package services

import "fmt"

// EngineError is a typed service error carrying a stable code alongside the
// human-readable message.
type EngineError struct {
	Code    string
	Message string
	Err     error
}

func (e *EngineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *EngineError) Unwrap() error {
	return e.Err
}
