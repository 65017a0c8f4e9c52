package service

import "fmt"

// InvalidInputError reports a request that failed validation before any
// extraction or store access. Never retried.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Reason)
}

// ParseError reports a message that matched no deterministic rule and could
// not be recovered by the semantic extractor. The transaction is not persisted.
type ParseError struct {
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse failure: %s: %v", e.Message, e.Err)
	}
	return "parse failure: " + e.Message
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
