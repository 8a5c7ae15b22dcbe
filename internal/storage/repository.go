package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"budgman/internal/core"
)

type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
	path    string
}

// dsn switches on foreign keys for every pooled connection; cascade deletes
// and orphan checks depend on it.
func dsn(dbPath string) string {
	return dbPath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite"
}

// Open bootstraps the store at dbPath. A missing file is created together
// with its directory and gets the schema; an existing file is opened as is.
func Open(ctx context.Context, dbPath string) (*SQLiteRepository, error) {
	fresh, err := ensureStoreFile(dbPath)
	if err != nil {
		return nil, fmt.Errorf("bootstrap store: %w", err)
	}

	repo, err := NewSQLiteRepository(dbPath)
	if err != nil {
		if fresh {
			discardStoreFile(dbPath)
		}
		return nil, err
	}

	if fresh {
		if err := repo.InitSchema(ctx); err != nil {
			repo.Close()
			discardStoreFile(dbPath)
			return nil, err
		}
	}

	return repo, nil
}

// discardStoreFile removes a store file created by this run so the next run
// bootstraps again instead of opening a file without schema.
func discardStoreFile(dbPath string) {
	if err := os.Remove(dbPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("Failed to remove incomplete store file", "path", dbPath, "error", err)
	}
}

func ensureStoreFile(dbPath string) (bool, error) {
	_, err := os.Stat(dbPath)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return false, err
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return false, err
	}
	f, err := os.OpenFile(dbPath, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return false, err
	}
	return true, f.Close()
}

// NewSQLiteRepository opens the store without touching its schema.
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dsn(dbPath))
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// single process, single caller
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &SQLiteRepository{
		db:      db,
		queries: New(db),
		path:    dbPath,
	}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Path returns the file backing the repository.
func (r *SQLiteRepository) Path() string {
	return r.path
}

func (r *SQLiteRepository) CreateBudget(ctx context.Context, name string, amount core.Money) (core.Budget, error) {
	b := core.Budget{Name: name, Amount: amount}
	if err := b.Validate(); err != nil {
		return core.Budget{}, fmt.Errorf("create budget: %w", err)
	}

	row, err := r.queries.CreateBudget(ctx, CreateBudgetParams{
		Name:   name,
		Amount: amount.Cents,
	})
	if err != nil {
		return core.Budget{}, fmt.Errorf("create budget: %w", classify(err))
	}

	slog.DebugContext(ctx, "Budget created", "id", row.ID, "name", row.Name, "amount_cents", row.Amount)
	return toCoreBudget(row), nil
}

// ListBudgets returns every budget; an empty store yields an empty slice.
func (r *SQLiteRepository) ListBudgets(ctx context.Context) ([]core.Budget, error) {
	rows, err := r.queries.ListBudgets(ctx)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", classify(err))
	}

	budgets := make([]core.Budget, len(rows))
	for i, b := range rows {
		budgets[i] = toCoreBudget(b)
	}
	return budgets, nil
}

func (r *SQLiteRepository) GetBudget(ctx context.Context, id core.BudgetID) (core.Budget, error) {
	row, err := r.queries.GetBudget(ctx, int64(id))
	if err != nil {
		return core.Budget{}, fmt.Errorf("get budget %d: %w", id, classify(err))
	}
	return toCoreBudget(row), nil
}

func (r *SQLiteRepository) UpdateBudget(ctx context.Context, b core.Budget) error {
	if err := b.Validate(); err != nil {
		return fmt.Errorf("update budget %d: %w", b.ID, err)
	}

	n, err := r.queries.UpdateBudget(ctx, UpdateBudgetParams{
		Name:   b.Name,
		Amount: b.Amount.Cents,
		ID:     int64(b.ID),
	})
	if err != nil {
		return fmt.Errorf("update budget %d: %w", b.ID, classify(err))
	}
	if n == 0 {
		return fmt.Errorf("update budget %d: %w", b.ID, core.ErrNotFound)
	}

	slog.DebugContext(ctx, "Budget updated", "id", b.ID)
	return nil
}

// DeleteBudget removes the budget and, through the cascade, its expenses and incomes.
func (r *SQLiteRepository) DeleteBudget(ctx context.Context, id core.BudgetID) error {
	n, err := r.queries.DeleteBudget(ctx, int64(id))
	if err != nil {
		return fmt.Errorf("delete budget %d: %w", id, classify(err))
	}
	if n == 0 {
		return fmt.Errorf("delete budget %d: %w", id, core.ErrNotFound)
	}

	slog.DebugContext(ctx, "Budget deleted", "id", id)
	return nil
}

func (r *SQLiteRepository) AddExpense(ctx context.Context, budgetID core.BudgetID, name string, amount core.Money, at time.Time) (core.Expense, error) {
	e := core.Expense{BudgetID: budgetID, Name: name, Amount: amount, Time: at}
	if err := e.Validate(); err != nil {
		return core.Expense{}, fmt.Errorf("add expense: %w", err)
	}

	id, err := r.queries.CreateExpense(ctx, CreateExpenseParams{
		Name:     name,
		Amount:   amount.Cents,
		Time:     at.UTC(),
		BudgetID: int64(budgetID),
	})
	if err != nil {
		return core.Expense{}, fmt.Errorf("add expense to budget %d: %w", budgetID, classify(err))
	}

	e.ID = core.ExpenseID(id)
	slog.DebugContext(ctx, "Expense added", "id", id, "budget_id", budgetID, "amount_cents", amount.Cents)
	return e, nil
}

func (r *SQLiteRepository) ListExpenses(ctx context.Context, budgetID core.BudgetID) ([]core.Expense, error) {
	rows, err := r.queries.ListExpensesByBudget(ctx, int64(budgetID))
	if err != nil {
		return nil, fmt.Errorf("list expenses for budget %d: %w", budgetID, classify(err))
	}

	expenses := make([]core.Expense, len(rows))
	for i, e := range rows {
		expenses[i] = toCoreExpense(e)
	}
	return expenses, nil
}

func (r *SQLiteRepository) GetExpense(ctx context.Context, id core.ExpenseID) (core.Expense, error) {
	row, err := r.queries.GetExpense(ctx, int64(id))
	if err != nil {
		return core.Expense{}, fmt.Errorf("get expense %d: %w", id, classify(err))
	}
	return toCoreExpense(row), nil
}

func (r *SQLiteRepository) UpdateExpense(ctx context.Context, e core.Expense) error {
	if err := e.Validate(); err != nil {
		return fmt.Errorf("update expense %d: %w", e.ID, err)
	}

	n, err := r.queries.UpdateExpense(ctx, UpdateExpenseParams{
		Name:     e.Name,
		Amount:   e.Amount.Cents,
		Time:     e.Time.UTC(),
		BudgetID: int64(e.BudgetID),
		ID:       int64(e.ID),
	})
	if err != nil {
		return fmt.Errorf("update expense %d: %w", e.ID, classify(err))
	}
	if n == 0 {
		return fmt.Errorf("update expense %d: %w", e.ID, core.ErrNotFound)
	}
	return nil
}

func (r *SQLiteRepository) DeleteExpense(ctx context.Context, id core.ExpenseID) error {
	n, err := r.queries.DeleteExpense(ctx, int64(id))
	if err != nil {
		return fmt.Errorf("delete expense %d: %w", id, classify(err))
	}
	if n == 0 {
		return fmt.Errorf("delete expense %d: %w", id, core.ErrNotFound)
	}
	return nil
}

// SumExpenses returns the total spent against the budget, zero when nothing was spent.
func (r *SQLiteRepository) SumExpenses(ctx context.Context, budgetID core.BudgetID) (core.Money, error) {
	total, err := r.queries.SumExpensesByBudget(ctx, int64(budgetID))
	if err != nil {
		return core.Money{}, fmt.Errorf("sum expenses for budget %d: %w", budgetID, classify(err))
	}
	return core.Money{Cents: total}, nil
}

func (r *SQLiteRepository) AddIncome(ctx context.Context, budgetID core.BudgetID, name string, amount core.Money, at time.Time) (core.Income, error) {
	in := core.Income{BudgetID: budgetID, Name: name, Amount: amount, Time: at}
	if err := in.Validate(); err != nil {
		return core.Income{}, fmt.Errorf("add income: %w", err)
	}

	id, err := r.queries.CreateIncome(ctx, CreateIncomeParams{
		Name:     name,
		Amount:   amount.Cents,
		Time:     at.UTC(),
		BudgetID: int64(budgetID),
	})
	if err != nil {
		return core.Income{}, fmt.Errorf("add income to budget %d: %w", budgetID, classify(err))
	}

	in.ID = core.IncomeID(id)
	slog.DebugContext(ctx, "Income added", "id", id, "budget_id", budgetID, "amount_cents", amount.Cents)
	return in, nil
}

func (r *SQLiteRepository) ListIncomes(ctx context.Context, budgetID core.BudgetID) ([]core.Income, error) {
	rows, err := r.queries.ListIncomesByBudget(ctx, int64(budgetID))
	if err != nil {
		return nil, fmt.Errorf("list incomes for budget %d: %w", budgetID, classify(err))
	}

	incomes := make([]core.Income, len(rows))
	for i, in := range rows {
		incomes[i] = toCoreIncome(in)
	}
	return incomes, nil
}

func (r *SQLiteRepository) GetIncome(ctx context.Context, id core.IncomeID) (core.Income, error) {
	row, err := r.queries.GetIncome(ctx, int64(id))
	if err != nil {
		return core.Income{}, fmt.Errorf("get income %d: %w", id, classify(err))
	}
	return toCoreIncome(row), nil
}

func (r *SQLiteRepository) UpdateIncome(ctx context.Context, in core.Income) error {
	if err := in.Validate(); err != nil {
		return fmt.Errorf("update income %d: %w", in.ID, err)
	}

	n, err := r.queries.UpdateIncome(ctx, UpdateIncomeParams{
		Name:     in.Name,
		Amount:   in.Amount.Cents,
		Time:     in.Time.UTC(),
		BudgetID: int64(in.BudgetID),
		ID:       int64(in.ID),
	})
	if err != nil {
		return fmt.Errorf("update income %d: %w", in.ID, classify(err))
	}
	if n == 0 {
		return fmt.Errorf("update income %d: %w", in.ID, core.ErrNotFound)
	}
	return nil
}

func (r *SQLiteRepository) DeleteIncome(ctx context.Context, id core.IncomeID) error {
	n, err := r.queries.DeleteIncome(ctx, int64(id))
	if err != nil {
		return fmt.Errorf("delete income %d: %w", id, classify(err))
	}
	if n == 0 {
		return fmt.Errorf("delete income %d: %w", id, core.ErrNotFound)
	}
	return nil
}

// SumIncomes returns the total received for the budget, zero when nothing was received.
func (r *SQLiteRepository) SumIncomes(ctx context.Context, budgetID core.BudgetID) (core.Money, error) {
	total, err := r.queries.SumIncomesByBudget(ctx, int64(budgetID))
	if err != nil {
		return core.Money{}, fmt.Errorf("sum incomes for budget %d: %w", budgetID, classify(err))
	}
	return core.Money{Cents: total}, nil
}

func toCoreBudget(b Budget) core.Budget {
	return core.Budget{
		ID:     core.BudgetID(b.ID),
		Name:   b.Name,
		Amount: core.Money{Cents: b.Amount},
	}
}

func toCoreExpense(e Expense) core.Expense {
	return core.Expense{
		ID:       core.ExpenseID(e.ID),
		BudgetID: core.BudgetID(e.BudgetID),
		Name:     e.Name,
		Amount:   core.Money{Cents: e.Amount},
		Time:     e.Time.In(time.Local),
	}
}

func toCoreIncome(in Income) core.Income {
	return core.Income{
		ID:       core.IncomeID(in.ID),
		BudgetID: core.BudgetID(in.BudgetID),
		Name:     in.Name,
		Amount:   core.Money{Cents: in.Amount},
		Time:     in.Time.In(time.Local),
	}
}
