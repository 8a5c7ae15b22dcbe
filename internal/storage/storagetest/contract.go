// Package storagetest holds the behavioural suite every services.Store
// implementation must pass.
package storagetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"budgman/internal/core"
	"budgman/internal/services"
)

// Factory returns an empty, schema-initialized store owned by the test.
type Factory func(t *testing.T) services.Store

func cents(c int64) core.Money { return core.Money{Cents: c} }

// Run executes the whole suite against stores produced by newStore.
func Run(t *testing.T, newStore Factory) {
	t.Helper()

	t.Run("empty store lists no budgets", func(t *testing.T) {
		s := newStore(t)
		budgets, err := s.ListBudgets(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, budgets)
		assert.Empty(t, budgets)
	})

	t.Run("create then get round trips", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)
		cases := []struct {
			name   string
			amount int64
		}{
			{"Groceries", 50000},
			{"Rent", 0},
			{"Überraschung ☂", 1},
		}
		for _, tc := range cases {
			created, err := s.CreateBudget(ctx, tc.name, cents(tc.amount))
			require.NoError(t, err)
			assert.NotZero(t, created.ID)

			got, err := s.GetBudget(ctx, created.ID)
			require.NoError(t, err)
			assert.Equal(t, created, got)
			assert.Equal(t, tc.name, got.Name)
			assert.Equal(t, tc.amount, got.Amount.Cents)
		}

		budgets, err := s.ListBudgets(ctx)
		require.NoError(t, err)
		assert.Len(t, budgets, len(cases))
	})

	t.Run("create rejects empty name and negative amount", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)
		_, err := s.CreateBudget(ctx, "", cents(1))
		assert.ErrorIs(t, err, core.ErrConstraint)
		_, err = s.CreateBudget(ctx, "  ", cents(1))
		assert.ErrorIs(t, err, core.ErrConstraint)
		_, err = s.CreateBudget(ctx, "neg", cents(-1))
		assert.ErrorIs(t, err, core.ErrConstraint)

		budgets, err := s.ListBudgets(ctx)
		require.NoError(t, err)
		assert.Empty(t, budgets)
	})

	t.Run("get missing budget is not found", func(t *testing.T) {
		s := newStore(t)
		_, err := s.GetBudget(context.Background(), 42)
		assert.ErrorIs(t, err, core.ErrNotFound)
	})

	t.Run("update budget keeps id", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)
		b, err := s.CreateBudget(ctx, "Fun", cents(1000))
		require.NoError(t, err)

		b.Name = "More fun"
		b.Amount = cents(2500)
		require.NoError(t, s.UpdateBudget(ctx, b))

		got, err := s.GetBudget(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, b, got)

		b.Name = ""
		assert.ErrorIs(t, s.UpdateBudget(ctx, b), core.ErrConstraint)
	})

	t.Run("update and delete of missing ids are not found", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)
		b, err := s.CreateBudget(ctx, "Home", cents(1))
		require.NoError(t, err)
		now := time.Now()

		assert.ErrorIs(t, s.UpdateBudget(ctx, core.Budget{ID: 99, Name: "x"}), core.ErrNotFound)
		assert.ErrorIs(t, s.DeleteBudget(ctx, 99), core.ErrNotFound)
		assert.ErrorIs(t, s.UpdateExpense(ctx, core.Expense{ID: 99, BudgetID: b.ID, Name: "x", Time: now}), core.ErrNotFound)
		assert.ErrorIs(t, s.DeleteExpense(ctx, 99), core.ErrNotFound)
		assert.ErrorIs(t, s.UpdateIncome(ctx, core.Income{ID: 99, BudgetID: b.ID, Name: "x", Time: now}), core.ErrNotFound)
		assert.ErrorIs(t, s.DeleteIncome(ctx, 99), core.ErrNotFound)
		_, err = s.GetExpense(ctx, 99)
		assert.ErrorIs(t, err, core.ErrNotFound)
		_, err = s.GetIncome(ctx, 99)
		assert.ErrorIs(t, err, core.ErrNotFound)
	})

	t.Run("sums are zero without entries", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)
		b, err := s.CreateBudget(ctx, "Empty", cents(100))
		require.NoError(t, err)

		spent, err := s.SumExpenses(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), spent.Cents)

		received, err := s.SumIncomes(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), received.Cents)
	})

	t.Run("sums follow added amounts", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)
		b, err := s.CreateBudget(ctx, "Food", cents(100000))
		require.NoError(t, err)
		other, err := s.CreateBudget(ctx, "Other", cents(100000))
		require.NoError(t, err)

		now := time.Now()
		var want int64
		for i, amount := range []int64{300, 1250, 0, 99} {
			_, err := s.AddExpense(ctx, b.ID, "item", cents(amount), now.Add(time.Duration(i)*time.Minute))
			require.NoError(t, err)
			want += amount
		}
		_, err = s.AddExpense(ctx, other.ID, "elsewhere", cents(7), now)
		require.NoError(t, err)

		got, err := s.SumExpenses(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, want, got.Cents)

		_, err = s.AddExpense(ctx, b.ID, "one more", cents(450), now)
		require.NoError(t, err)
		got, err = s.SumExpenses(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, want+450, got.Cents)

		_, err = s.AddIncome(ctx, b.ID, "salary", cents(200000), now)
		require.NoError(t, err)
		_, err = s.AddIncome(ctx, b.ID, "gift", cents(5000), now)
		require.NoError(t, err)
		received, err := s.SumIncomes(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(205000), received.Cents)
	})

	t.Run("entries require an existing budget", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)
		now := time.Now()

		_, err := s.AddExpense(ctx, 7, "orphan", cents(10), now)
		assert.ErrorIs(t, err, core.ErrForeignKey)
		_, err = s.AddIncome(ctx, 7, "orphan", cents(10), now)
		assert.ErrorIs(t, err, core.ErrForeignKey)

		expenses, err := s.ListExpenses(ctx, 7)
		require.NoError(t, err)
		assert.Empty(t, expenses)
		incomes, err := s.ListIncomes(ctx, 7)
		require.NoError(t, err)
		assert.Empty(t, incomes)
	})

	t.Run("moving an entry to a missing budget fails", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)
		b, err := s.CreateBudget(ctx, "Trips", cents(1))
		require.NoError(t, err)
		e, err := s.AddExpense(ctx, b.ID, "train", cents(2000), time.Now())
		require.NoError(t, err)
		in, err := s.AddIncome(ctx, b.ID, "refund", cents(500), time.Now())
		require.NoError(t, err)

		e.BudgetID = b.ID + 100
		assert.ErrorIs(t, s.UpdateExpense(ctx, e), core.ErrForeignKey)
		in.BudgetID = b.ID + 100
		assert.ErrorIs(t, s.UpdateIncome(ctx, in), core.ErrForeignKey)
	})

	t.Run("entries round trip and list per budget", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)
		b, err := s.CreateBudget(ctx, "Groceries", cents(50000))
		require.NoError(t, err)
		other, err := s.CreateBudget(ctx, "Car", cents(1))
		require.NoError(t, err)

		t1 := time.Date(2024, time.March, 3, 18, 30, 15, 0, time.Local)
		t2 := t1.Add(-24 * time.Hour)

		milk, err := s.AddExpense(ctx, b.ID, "milk", cents(300), t1)
		require.NoError(t, err)
		bread, err := s.AddExpense(ctx, b.ID, "bread", cents(250), t2)
		require.NoError(t, err)
		_, err = s.AddExpense(ctx, other.ID, "fuel", cents(6000), t1)
		require.NoError(t, err)

		got, err := s.GetExpense(ctx, milk.ID)
		require.NoError(t, err)
		assert.Equal(t, milk.ID, got.ID)
		assert.Equal(t, b.ID, got.BudgetID)
		assert.Equal(t, "milk", got.Name)
		assert.Equal(t, int64(300), got.Amount.Cents)
		assert.True(t, t1.Equal(got.Time), "time %v != %v", got.Time, t1)

		list, err := s.ListExpenses(ctx, b.ID)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, bread.ID, list[0].ID)
		assert.Equal(t, milk.ID, list[1].ID)

		refund, err := s.AddIncome(ctx, b.ID, "refund", cents(100), t2)
		require.NoError(t, err)
		gotIncome, err := s.GetIncome(ctx, refund.ID)
		require.NoError(t, err)
		assert.Equal(t, "refund", gotIncome.Name)
		assert.True(t, t2.Equal(gotIncome.Time))

		incomes, err := s.ListIncomes(ctx, other.ID)
		require.NoError(t, err)
		assert.Empty(t, incomes)
	})

	t.Run("entries update and delete", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)
		b, err := s.CreateBudget(ctx, "Home", cents(1))
		require.NoError(t, err)
		b2, err := s.CreateBudget(ctx, "Garden", cents(1))
		require.NoError(t, err)

		e, err := s.AddExpense(ctx, b.ID, "lamp", cents(4000), time.Now())
		require.NoError(t, err)
		e.Name = "desk lamp"
		e.Amount = cents(4500)
		e.BudgetID = b2.ID
		require.NoError(t, s.UpdateExpense(ctx, e))

		got, err := s.GetExpense(ctx, e.ID)
		require.NoError(t, err)
		assert.Equal(t, "desk lamp", got.Name)
		assert.Equal(t, int64(4500), got.Amount.Cents)
		assert.Equal(t, b2.ID, got.BudgetID)

		require.NoError(t, s.DeleteExpense(ctx, e.ID))
		_, err = s.GetExpense(ctx, e.ID)
		assert.ErrorIs(t, err, core.ErrNotFound)

		in, err := s.AddIncome(ctx, b.ID, "sold chair", cents(1500), time.Now())
		require.NoError(t, err)
		in.Amount = cents(1700)
		require.NoError(t, s.UpdateIncome(ctx, in))
		total, err := s.SumIncomes(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1700), total.Cents)

		require.NoError(t, s.DeleteIncome(ctx, in.ID))
		_, err = s.GetIncome(ctx, in.ID)
		assert.ErrorIs(t, err, core.ErrNotFound)
	})

	t.Run("deleting a budget cascades", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)
		b, err := s.CreateBudget(ctx, "Holiday", cents(300000))
		require.NoError(t, err)
		keep, err := s.CreateBudget(ctx, "Keep", cents(1))
		require.NoError(t, err)
		kept, err := s.AddExpense(ctx, keep.ID, "stays", cents(1), time.Now())
		require.NoError(t, err)

		var expenseIDs []core.ExpenseID
		var incomeIDs []core.IncomeID
		for i := 0; i < 3; i++ {
			e, err := s.AddExpense(ctx, b.ID, "hotel", cents(10000), time.Now())
			require.NoError(t, err)
			expenseIDs = append(expenseIDs, e.ID)
		}
		for i := 0; i < 2; i++ {
			in, err := s.AddIncome(ctx, b.ID, "cashback", cents(100), time.Now())
			require.NoError(t, err)
			incomeIDs = append(incomeIDs, in.ID)
		}

		require.NoError(t, s.DeleteBudget(ctx, b.ID))

		_, err = s.GetBudget(ctx, b.ID)
		assert.ErrorIs(t, err, core.ErrNotFound)
		for _, id := range expenseIDs {
			_, err := s.GetExpense(ctx, id)
			assert.ErrorIs(t, err, core.ErrNotFound)
		}
		for _, id := range incomeIDs {
			_, err := s.GetIncome(ctx, id)
			assert.ErrorIs(t, err, core.ErrNotFound)
		}

		_, err = s.GetExpense(ctx, kept.ID)
		assert.NoError(t, err)
	})

	t.Run("schema init is idempotent", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)
		b, err := s.CreateBudget(ctx, "Persist", cents(10))
		require.NoError(t, err)

		require.NoError(t, s.InitSchema(ctx))
		require.NoError(t, s.InitSchema(ctx))

		got, err := s.GetBudget(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, b, got)
	})

	t.Run("groceries scenario", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)
		b, err := s.CreateBudget(ctx, "Groceries", cents(50000))
		require.NoError(t, err)
		assert.Equal(t, core.BudgetID(1), b.ID)

		_, err = s.AddExpense(ctx, b.ID, "milk", cents(300), time.Now())
		require.NoError(t, err)
		spent, err := s.SumExpenses(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(300), spent.Cents)

		_, err = s.AddIncome(ctx, b.ID, "refund", cents(100), time.Now())
		require.NoError(t, err)
		received, err := s.SumIncomes(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(100), received.Cents)
	})
}
