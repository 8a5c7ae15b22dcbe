package services

import (
	"context"
	"time"

	"budgman/internal/core"
)

// Ports for the persistence adapters.
type (
	BudgetStore interface {
		CreateBudget(ctx context.Context, name string, amount core.Money) (core.Budget, error)
		ListBudgets(ctx context.Context) ([]core.Budget, error)
		GetBudget(ctx context.Context, id core.BudgetID) (core.Budget, error)
		UpdateBudget(ctx context.Context, b core.Budget) error
		DeleteBudget(ctx context.Context, id core.BudgetID) error
	}

	ExpenseStore interface {
		AddExpense(ctx context.Context, budgetID core.BudgetID, name string, amount core.Money, at time.Time) (core.Expense, error)
		ListExpenses(ctx context.Context, budgetID core.BudgetID) ([]core.Expense, error)
		GetExpense(ctx context.Context, id core.ExpenseID) (core.Expense, error)
		UpdateExpense(ctx context.Context, e core.Expense) error
		DeleteExpense(ctx context.Context, id core.ExpenseID) error
		// SumExpenses returns zero for a budget without expenses.
		SumExpenses(ctx context.Context, budgetID core.BudgetID) (core.Money, error)
	}

	IncomeStore interface {
		AddIncome(ctx context.Context, budgetID core.BudgetID, name string, amount core.Money, at time.Time) (core.Income, error)
		ListIncomes(ctx context.Context, budgetID core.BudgetID) ([]core.Income, error)
		GetIncome(ctx context.Context, id core.IncomeID) (core.Income, error)
		UpdateIncome(ctx context.Context, in core.Income) error
		DeleteIncome(ctx context.Context, id core.IncomeID) error
		SumIncomes(ctx context.Context, budgetID core.BudgetID) (core.Money, error)
	}

	// Store is everything the application layer needs from persistence.
	Store interface {
		BudgetStore
		ExpenseStore
		IncomeStore
		InitSchema(ctx context.Context) error
		Close() error
	}
)
