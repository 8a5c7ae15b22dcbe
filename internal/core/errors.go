package core

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrNotFound reports a lookup, update or delete by id that matched no row.
	ErrNotFound = errors.New("not found")
	// ErrForeignKey reports a reference to a budget that does not exist.
	ErrForeignKey = errors.New("foreign key violation")
	// ErrConstraint reports a record rejected by a field constraint.
	ErrConstraint = errors.New("constraint violation")

	ErrInvalidBudgetID = errors.New("invalid budget id")
	ErrInvalidID       = errors.New("invalid id")
)

var (
	ErrEmptyName      = fmt.Errorf("%w: empty name", ErrConstraint)
	ErrNameTooLong    = fmt.Errorf("%w: name too long (max %d characters)", ErrConstraint, maxNameLength)
	ErrNegativeAmount = fmt.Errorf("%w: negative amount", ErrConstraint)
	ErrZeroTime       = fmt.Errorf("%w: missing time", ErrConstraint)
)

// InvalidBudgetIDError carries the raw input that failed to parse as a budget id.
type InvalidBudgetIDError struct {
	Input string
}

func (e *InvalidBudgetIDError) Error() string {
	return fmt.Sprintf("invalid budget id %q: must be a non-negative integer", e.Input)
}

func (e *InvalidBudgetIDError) Is(target error) bool {
	return target == ErrInvalidBudgetID
}

// ParseBudgetID converts a user supplied identifier into a BudgetID.
func ParseBudgetID(s string) (BudgetID, error) {
	id, err := parseID(s)
	if err != nil {
		return 0, &InvalidBudgetIDError{Input: s}
	}
	return BudgetID(id), nil
}

func ParseExpenseID(s string) (ExpenseID, error) {
	id, err := parseID(s)
	if err != nil {
		return 0, fmt.Errorf("%w: expense %q", ErrInvalidID, s)
	}
	return ExpenseID(id), nil
}

func ParseIncomeID(s string) (IncomeID, error) {
	id, err := parseID(s)
	if err != nil {
		return 0, fmt.Errorf("%w: income %q", ErrInvalidID, s)
	}
	return IncomeID(id), nil
}

func parseID(s string) (int64, error) {
	u, err := strconv.ParseUint(strings.TrimSpace(s), 10, 63)
	if err != nil {
		return 0, err
	}
	return int64(u), nil
}
