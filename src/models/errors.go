package models

import "fmt"

// NotFoundError represents an error when a requested resource is not found
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// ValidationError represents an error when data validation fails
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// StorageError represents an error when reading or parsing a file fails
type StorageError struct {
	Message string
	Err     error
}

func (e *StorageError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// ResponderError is returned when the reply provider fails for a conversation.
type ResponderError struct {
	ConversationID string
	Err            error
}

func (e *ResponderError) Error() string {
	return fmt.Sprintf("reply for conversation %s failed: %v", e.ConversationID, e.Err)
}

func (e *ResponderError) Unwrap() error {
	return e.Err
}
