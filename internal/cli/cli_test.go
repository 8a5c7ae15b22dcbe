package cli

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"budgman/internal/core"
	"budgman/internal/services"
	"budgman/internal/storage/memory"
)

var fixedNow = time.Date(2024, 3, 15, 10, 30, 0, 0, time.Local)

func execute(t *testing.T, store services.Store, input string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := Run(context.Background(), Deps{
		Store:  store,
		In:     strings.NewReader(input),
		Out:    &out,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Now:    func() time.Time { return fixedNow },
	}, args)
	return out.String(), err
}

func mustExecute(t *testing.T, store services.Store, args ...string) string {
	t.Helper()
	out, err := execute(t, store, "", args...)
	require.NoError(t, err, "budgman %s", strings.Join(args, " "))
	return out
}

func TestStatsScenario(t *testing.T) {
	store := memory.New()

	out := mustExecute(t, store, "budget", "new", "Groceries", "500")
	assert.Contains(t, out, "Created budget #1 Groceries (500.00)")

	mustExecute(t, store, "--budget", "1", "expense", "new", "milk", "3")
	mustExecute(t, store, "--budget", "1", "income", "new", "refund", "1", "--time", "2024-03-02")

	out = mustExecute(t, store, "--budget", "1")
	assert.Contains(t, out, "Groceries")
	assert.Contains(t, out, "500.00")
	assert.Contains(t, out, "Expenses")
	assert.Contains(t, out, "3.00")
	assert.Contains(t, out, "Income")
	assert.Contains(t, out, "1.00")

	stats, err := services.NewBudgetService(store, nil).Stats(context.Background(), services.ActiveBudget{ID: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(50000), stats.Budget.Amount.Cents)
	assert.Equal(t, int64(300), stats.TotalExpense.Cents)
	assert.Equal(t, int64(100), stats.TotalIncome.Cents)
}

func TestInvalidExternalBudget(t *testing.T) {
	store := memory.New()
	_, err := store.CreateBudget(context.Background(), "Groceries", core.Money{Cents: 100})
	require.NoError(t, err)

	_, err = execute(t, store, "1\n", "--budget", "abc")
	require.ErrorIs(t, err, core.ErrInvalidBudgetID)
	assert.Contains(t, err.Error(), `"abc"`)
}

func TestBudgetFromDeps(t *testing.T) {
	store := memory.New()
	_, err := store.CreateBudget(context.Background(), "Rent", core.Money{Cents: 90000})
	require.NoError(t, err)

	var out bytes.Buffer
	err = Run(context.Background(), Deps{
		Store:  store,
		Budget: "1",
		In:     strings.NewReader(""),
		Out:    &out,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, nil)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Rent")
	assert.Contains(t, out.String(), "900.00")
}

func TestNoBudgetsIsGuidedExit(t *testing.T) {
	out, err := execute(t, memory.New(), "")
	require.NoError(t, err)
	assert.Contains(t, out, "No budgets yet")
	assert.Contains(t, out, "budgman budget new")
}

func TestPromptRetriesUntilValidID(t *testing.T) {
	store := memory.New()
	_, err := store.CreateBudget(context.Background(), "Groceries", core.Money{Cents: 50000})
	require.NoError(t, err)

	out, err := execute(t, store, "abc\n\n1\n")
	require.NoError(t, err)
	assert.Contains(t, out, `"abc" is not a budget id`)
	assert.Contains(t, out, "Active budget id:")
	assert.Contains(t, out, "500.00")
}

func TestPromptClosedInputFails(t *testing.T) {
	store := memory.New()
	_, err := store.CreateBudget(context.Background(), "Groceries", core.Money{Cents: 50000})
	require.NoError(t, err)

	_, err = execute(t, store, "")
	require.ErrorIs(t, err, io.EOF)
}

func TestStatsUnknownBudget(t *testing.T) {
	store := memory.New()
	_, err := execute(t, store, "", "--budget", "9")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestBudgetCommands(t *testing.T) {
	store := memory.New()
	mustExecute(t, store, "budget", "new", "Groceries", "500")
	mustExecute(t, store, "budget", "new", "Holidays", "1200,50")

	out := mustExecute(t, store, "budget", "ls")
	assert.Contains(t, out, "Groceries")
	assert.Contains(t, out, "Holidays")
	assert.Contains(t, out, "1200.50")

	out = mustExecute(t, store, "budget", "ls", "--filter", "hol")
	assert.Contains(t, out, "Holidays")
	assert.NotContains(t, out, "Groceries")

	out = mustExecute(t, store, "budget", "edit", "1", "--amount", "650")
	assert.Contains(t, out, "Updated budget #1 Groceries (650.00)")

	_, err := execute(t, store, "", "budget", "edit", "1", "--name", " ")
	assert.ErrorIs(t, err, core.ErrConstraint)

	_, err = execute(t, store, "", "budget", "new", "--", "Bad", "-5")
	assert.ErrorIs(t, err, core.ErrInvalidAmount)

	_, err = execute(t, store, "", "budget", "rm", "7")
	assert.ErrorIs(t, err, core.ErrNotFound)

	out = mustExecute(t, store, "budget", "rm", "2")
	assert.Contains(t, out, "Deleted budget #2")

	budgets, err := store.ListBudgets(context.Background())
	require.NoError(t, err)
	require.Len(t, budgets, 1)
	assert.Equal(t, int64(65000), budgets[0].Amount.Cents)
}

func TestExpenseCommands(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	mustExecute(t, store, "budget", "new", "Groceries", "500")
	mustExecute(t, store, "budget", "new", "Rent", "900")

	out := mustExecute(t, store, "-b", "1", "expense", "new", "Milk", "1.20", "--time", "2024-03-01 08:15")
	assert.Contains(t, out, "Added expense #1 Milk (1.20) to budget #1")

	out = mustExecute(t, store, "-b", "1", "expense", "ls")
	assert.Contains(t, out, "Milk")
	assert.Contains(t, out, "2024-03-01 08:15")

	out = mustExecute(t, store, "expense", "edit", "1", "--amount", "2", "--move-to", "2")
	assert.Contains(t, out, "Updated expense #1 Milk (2.00)")

	moved, err := store.GetExpense(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, core.BudgetID(2), moved.BudgetID)

	_, err = execute(t, store, "", "expense", "edit", "1", "--move-to", "42")
	assert.ErrorIs(t, err, core.ErrForeignKey)

	_, err = execute(t, store, "", "expense", "edit", "x")
	assert.ErrorIs(t, err, core.ErrInvalidID)

	_, err = execute(t, store, "", "-b", "1", "expense", "new", "Bread", "1", "--time", "yesterday")
	assert.Error(t, err)

	out = mustExecute(t, store, "-b", "1", "expense", "ls")
	assert.Contains(t, out, "No expenses.")

	mustExecute(t, store, "expense", "rm", "1")
	_, err = execute(t, store, "", "expense", "rm", "1")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestIncomeCommandsAndCascade(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	mustExecute(t, store, "budget", "new", "Salary", "0")

	out := mustExecute(t, store, "-b", "1", "income", "new", "March", "2500")
	assert.Contains(t, out, "Added income #1 March (2500.00) to budget #1")

	in, err := store.GetIncome(ctx, 1)
	require.NoError(t, err)
	assert.True(t, in.Time.Equal(fixedNow))

	out = mustExecute(t, store, "income", "edit", "1", "--name", "April", "--time", "2024-04-01")
	assert.Contains(t, out, "Updated income #1 April (2500.00)")

	out = mustExecute(t, store, "-b", "1", "income", "ls")
	assert.Contains(t, out, "April")
	assert.Contains(t, out, "2024-04-01 00:00")

	mustExecute(t, store, "budget", "rm", "1")
	_, err = store.GetIncome(ctx, 1)
	assert.ErrorIs(t, err, core.ErrNotFound)

	_, err = execute(t, store, "", "-b", "1", "income", "ls")
	assert.ErrorIs(t, err, core.ErrNotFound)
}
