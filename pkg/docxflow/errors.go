package docxflow

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationIssue represents a single validation problem
type ValidationIssue struct {
	Field   string
	Message string
}

// ValidationError is returned when an action or configuration is constructed
// with arguments it can never accept.
type ValidationError struct {
	Issues []ValidationIssue
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "validation error"
	}

	if len(e.Issues) == 1 {
		return fmt.Sprintf("validation error: %s - %s", e.Issues[0].Field, e.Issues[0].Message)
	}

	var parts []string
	parts = append(parts, fmt.Sprintf("%d validation issues:", len(e.Issues)))
	for _, issue := range e.Issues {
		parts = append(parts, fmt.Sprintf("  %s: %s", issue.Field, issue.Message))
	}
	return strings.Join(parts, "\n")
}

// NewValidationError creates a validation error with a single issue
func NewValidationError(field, message string) error {
	return &ValidationError{Issues: []ValidationIssue{{Field: field, Message: message}}}
}

// CardinalityError reports a list whose length does not match the element it
// is applied to, such as column widths for a table with a different number of
// columns.
type CardinalityError struct {
	What     string
	Expected int
	Got      int
}

func (e *CardinalityError) Error() string {
	return fmt.Sprintf("cardinality error: expected %d %s, got %d", e.Expected, e.What, e.Got)
}

// ElementKindError reports an action that only accepts one kind of element
// being applied to another.
type ElementKindError struct {
	Action string
	Want   string
	Got    string
}

func (e *ElementKindError) Error() string {
	return fmt.Sprintf("%s applies to %s elements, got %s", e.Action, e.Want, e.Got)
}

// DocumentError represents an error during document operations
type DocumentError struct {
	Operation string
	Path      string
	Cause     error
}

func (e *DocumentError) Error() string {
	if e.Path != "" && e.Cause != nil {
		return fmt.Sprintf("document error during %s of '%s': %v", e.Operation, e.Path, e.Cause)
	} else if e.Path != "" {
		return fmt.Sprintf("document error during %s of '%s'", e.Operation, e.Path)
	} else if e.Cause != nil {
		return fmt.Sprintf("document error during %s: %v", e.Operation, e.Cause)
	}
	return fmt.Sprintf("document error during %s", e.Operation)
}

func (e *DocumentError) Unwrap() error {
	return e.Cause
}

// NewDocumentError creates a new document error
func NewDocumentError(operation, path string, cause error) error {
	return &DocumentError{
		Operation: operation,
		Path:      path,
		Cause:     cause,
	}
}

// RecoverError converts a panic recovery value to an error
func RecoverError(r interface{}) error {
	switch v := r.(type) {
	case error:
		return fmt.Errorf("panic recovered: %w", v)
	case string:
		return fmt.Errorf("panic recovered: %s", v)
	default:
		return fmt.Errorf("panic recovered: %v", v)
	}
}

// IsValidationError checks if an error is or wraps a validation error
func IsValidationError(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsCardinalityError checks if an error is or wraps a cardinality error
func IsCardinalityError(err error) bool {
	var target *CardinalityError
	return errors.As(err, &target)
}

// IsElementKindError checks if an error is or wraps an element kind error
func IsElementKindError(err error) bool {
	var target *ElementKindError
	return errors.As(err, &target)
}

// IsDocumentError checks if an error is or wraps a document error
func IsDocumentError(err error) bool {
	var target *DocumentError
	return errors.As(err, &target)
}
