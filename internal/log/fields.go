package log

import (
	"errors"
	"io/fs"

	"budgman/internal/core"
)

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldOperation   = "operation"
	FieldError       = "error"
	FieldErrorType   = "error_type"
	FieldBudgetID    = "budget_id"
	FieldEntryID     = "entry_id"
	FieldAmountCents = "amount_cents"
	FieldPath        = "path"
	FieldBackend     = "backend"
	FieldCommand     = "command"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentBudget  = "budget"
	ComponentStorage = "storage"
	ComponentBackend = "backend"
	ComponentCLI     = "cli"
)

// Operations defines standard operation names
const (
	OpCreate   = "create"
	OpUpdate   = "update"
	OpDelete   = "delete"
	OpList     = "list"
	OpStats    = "stats"
	OpResolve  = "resolve"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)

// ErrorTypes defines standard error type categories
const (
	ErrorTypeValidation = "validation_error"
	ErrorTypeDatabase   = "database_error"
	ErrorTypeIO         = "io_error"
	ErrorTypeNotFound   = "not_found_error"
	ErrorTypeConflict   = "conflict_error"
)

// ErrorType classifies err into one of the ErrorType* categories.
func ErrorType(err error) string {
	var pathErr *fs.PathError
	switch {
	case errors.Is(err, core.ErrNotFound):
		return ErrorTypeNotFound
	case errors.Is(err, core.ErrForeignKey):
		return ErrorTypeConflict
	case errors.Is(err, core.ErrConstraint),
		errors.Is(err, core.ErrInvalidBudgetID),
		errors.Is(err, core.ErrInvalidID),
		errors.Is(err, core.ErrInvalidAmount):
		return ErrorTypeValidation
	case errors.As(err, &pathErr):
		return ErrorTypeIO
	default:
		return ErrorTypeDatabase
	}
}

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithComponent adds component field
func (f LogFields) WithComponent(component string) LogFields {
	f[FieldComponent] = component
	return f
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithError adds the error and its category
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
		f[FieldErrorType] = ErrorType(err)
	}
	return f
}

// WithBudget adds the budget id field
func (f LogFields) WithBudget(id core.BudgetID) LogFields {
	f[FieldBudgetID] = int64(id)
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
