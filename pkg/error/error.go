package error

import (
	"errors"
	"fmt"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

// ErrorCategory classifies errors by their nature and the point at which they
// surface. Precondition errors surface when an operation is requested; the
// others surface when deferred computation actually runs.
type ErrorCategory int

const (
	// ErrCategoryPrecondition represents a request that can never succeed,
	// such as merging on a column that one operand lacks. It is reported
	// before any result is produced.
	ErrCategoryPrecondition ErrorCategory = iota

	// ErrCategoryOrdering represents an attempt to order values that have no
	// total order, for example mixing strings and numbers in one column.
	ErrCategoryOrdering

	// ErrCategoryShape represents a container whose column, row and index
	// lengths disagree.
	ErrCategoryShape

	// ErrCategoryInput represents malformed external input handed to a loader.
	ErrCategoryInput

	// ErrCategoryEvaluation represents a production function that panicked
	// while a container was being evaluated.
	ErrCategoryEvaluation
)

func (c ErrorCategory) String() string {
	switch c {
	case ErrCategoryPrecondition:
		return "precondition"
	case ErrCategoryOrdering:
		return "ordering"
	case ErrCategoryShape:
		return "shape"
	case ErrCategoryInput:
		return "input"
	case ErrCategoryEvaluation:
		return "evaluation"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// Error codes used across dataforge.
const (
	CodeMergeKeyMissing    = "MERGE_KEY_MISSING"
	CodeNotComparable      = "NOT_COMPARABLE"
	CodeNoComparator       = "NO_COMPARATOR"
	CodeDuplicateColumn    = "DUPLICATE_COLUMN"
	CodeRowShapeMismatch   = "ROW_SHAPE_MISMATCH"
	CodeIndexShapeMismatch = "INDEX_SHAPE_MISMATCH"
	CodeColumnNotFound     = "COLUMN_NOT_FOUND"
	CodeNegativeCount      = "NEGATIVE_COUNT"
	CodeInvalidJSON        = "INVALID_JSON"
	CodeInvalidCSV         = "INVALID_CSV"
	CodeParseFailed        = "PARSE_FAILED"
	CodeUnsupportedType    = "UNSUPPORTED_TYPE"
	CodeProducerPanicked   = "PRODUCER_PANICKED"
)

// DFError represents a structured dataforge error with context information.
type DFError struct {
	// Code is a unique identifier for this error type (e.g., "MERGE_KEY_MISSING").
	Code string

	// Category classifies the error.
	Category ErrorCategory

	// Message is a human-readable description of what went wrong.
	Message string

	// Detail provides additional context about the specific error instance.
	// Example: "left" for a merge key missing from the left operand.
	Detail string

	// Hint suggests how the caller might fix the error.
	Hint string

	// Operation identifies the operation being performed (e.g., "Merge", "Order").
	Operation string

	// Component identifies the package where the error originated.
	Component string

	// Cause is the underlying error that triggered this error.
	Cause error

	// Stack is the call stack where this error was created.
	Stack pkgerrors.StackTrace
}

// New creates a new DFError with the specified category, code, and message.
func New(category ErrorCategory, code, message string) *DFError {
	return &DFError{
		Code:     code,
		Category: category,
		Message:  message,
		Stack:    captureStack(),
	}
}

// Newf is New with a formatted message.
func Newf(category ErrorCategory, code, format string, args ...any) *DFError {
	return &DFError{
		Code:     code,
		Category: category,
		Message:  fmt.Sprintf(format, args...),
		Stack:    captureStack(),
	}
}

// Wrap wraps an existing error with dataforge context information.
// If the error is already a DFError, it enriches the existing error with
// operation and component context (only if not already set).
func Wrap(err error, code, operation, component string) *DFError {
	if err == nil {
		return nil
	}

	var dfErr *DFError
	if errors.As(err, &dfErr) {
		if dfErr.Operation == "" {
			dfErr.Operation = operation
		}
		if dfErr.Component == "" {
			dfErr.Component = component
		}
		return dfErr
	}

	return &DFError{
		Code:      code,
		Category:  ErrCategoryInput,
		Message:   err.Error(),
		Operation: operation,
		Component: component,
		Cause:     err,
		Stack:     captureStack(),
	}
}

// WithDetail sets Detail and returns the receiver for chaining.
func (e *DFError) WithDetail(detail string) *DFError {
	e.Detail = detail
	return e
}

// WithHint sets Hint and returns the receiver for chaining.
func (e *DFError) WithHint(hint string) *DFError {
	e.Hint = hint
	return e
}

// In sets Operation and Component and returns the receiver for chaining.
func (e *DFError) In(operation, component string) *DFError {
	e.Operation = operation
	e.Component = component
	return e
}

// Because sets Cause and returns the receiver for chaining.
func (e *DFError) Because(cause error) *DFError {
	e.Cause = cause
	return e
}

type stackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

// captureStack captures the current call stack. It skips the frames of
// captureStack and New/Wrap so the trace starts at the error origin.
func captureStack() pkgerrors.StackTrace {
	st := pkgerrors.New("").(stackTracer).StackTrace()
	if len(st) > 2 {
		return st[2:]
	}
	return st
}

// Error implements the standard Go error interface
//
// The format follows the pattern:
// [ERROR_CODE] Message: Detail (operation: Operation, component: Component) caused by: underlying error
func (e *DFError) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	if e.Detail != "" {
		b.WriteString(fmt.Sprintf(": %s", e.Detail))
	}

	if e.Operation != "" {
		b.WriteString(fmt.Sprintf(" (operation: %s", e.Operation))
		if e.Component != "" {
			b.WriteString(fmt.Sprintf(", component: %s", e.Component))
		}
		b.WriteString(")")
	}

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(" caused by: %v", e.Cause))
	}

	return b.String()
}

// Unwrap returns the underlying cause error, enabling error chain traversal
// with errors.Is and errors.As.
func (e *DFError) Unwrap() error {
	return e.Cause
}

// FormatStack returns a human-readable stack trace for debugging purposes.
func (e *DFError) FormatStack() string {
	if len(e.Stack) == 0 {
		return ""
	}
	return "Stack trace:" + fmt.Sprintf("%+v", e.Stack)
}

// Is reports whether any error in err's chain is a DFError carrying code.
func Is(err error, code string) bool {
	var dfErr *DFError
	if !errors.As(err, &dfErr) {
		return false
	}
	return dfErr.Code == code
}

// CategoryOf returns the category of the first DFError in err's chain.
func CategoryOf(err error) (ErrorCategory, bool) {
	var dfErr *DFError
	if !errors.As(err, &dfErr) {
		return 0, false
	}
	return dfErr.Category, true
}
