package core

import (
	"strings"
	"time"
	"unicode/utf8"
)

type (
	BudgetID  int64
	ExpenseID int64
	IncomeID  int64

	Money struct {
		Cents int64
	}

	// Budget is a named spending ceiling grouping its own expenses and incomes.
	Budget struct {
		ID     BudgetID
		Name   string
		Amount Money
	}

	Expense struct {
		ID       ExpenseID
		BudgetID BudgetID
		Name     string
		Amount   Money
		Time     time.Time
	}

	Income struct {
		ID       IncomeID
		BudgetID BudgetID
		Name     string
		Amount   Money
		Time     time.Time
	}
)

const maxNameLength = 200

func (m Money) Validate() error {
	if m.Cents < 0 {
		return ErrNegativeAmount
	}
	return nil
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return ErrNameTooLong
	}
	return nil
}

func (b Budget) Validate() error {
	if err := validateName(b.Name); err != nil {
		return err
	}
	return b.Amount.Validate()
}

func (e Expense) Validate() error {
	if err := validateName(e.Name); err != nil {
		return err
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if e.Time.IsZero() {
		return ErrZeroTime
	}
	return nil
}

func (i Income) Validate() error {
	if err := validateName(i.Name); err != nil {
		return err
	}
	if err := i.Amount.Validate(); err != nil {
		return err
	}
	if i.Time.IsZero() {
		return ErrZeroTime
	}
	return nil
}
