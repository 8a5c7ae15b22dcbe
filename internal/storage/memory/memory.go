// Package memory is an in-process store with the same contract as the
// SQLite repository. Nothing survives the process.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"budgman/internal/core"
)

type Store struct {
	mu       sync.Mutex
	budgets  map[core.BudgetID]core.Budget
	expenses map[core.ExpenseID]core.Expense
	incomes  map[core.IncomeID]core.Income

	lastBudget  core.BudgetID
	lastExpense core.ExpenseID
	lastIncome  core.IncomeID
}

func New() *Store {
	return &Store{
		budgets:  make(map[core.BudgetID]core.Budget),
		expenses: make(map[core.ExpenseID]core.Expense),
		incomes:  make(map[core.IncomeID]core.Income),
	}
}

// InitSchema exists for parity with the SQLite repository.
func (s *Store) InitSchema(_ context.Context) error {
	return nil
}

func (s *Store) Close() error {
	return nil
}

func (s *Store) CreateBudget(_ context.Context, name string, amount core.Money) (core.Budget, error) {
	b := core.Budget{Name: name, Amount: amount}
	if err := b.Validate(); err != nil {
		return core.Budget{}, fmt.Errorf("create budget: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastBudget++
	b.ID = s.lastBudget
	s.budgets[b.ID] = b
	return b, nil
}

func (s *Store) ListBudgets(_ context.Context) ([]core.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Budget, 0, len(s.budgets))
	for _, b := range s.budgets {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) GetBudget(_ context.Context, id core.BudgetID) (core.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.budgets[id]
	if !ok {
		return core.Budget{}, fmt.Errorf("get budget %d: %w", id, core.ErrNotFound)
	}
	return b, nil
}

func (s *Store) UpdateBudget(_ context.Context, b core.Budget) error {
	if err := b.Validate(); err != nil {
		return fmt.Errorf("update budget %d: %w", b.ID, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.budgets[b.ID]; !ok {
		return fmt.Errorf("update budget %d: %w", b.ID, core.ErrNotFound)
	}
	s.budgets[b.ID] = b
	return nil
}

// DeleteBudget removes the budget together with its expenses and incomes.
func (s *Store) DeleteBudget(_ context.Context, id core.BudgetID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.budgets[id]; !ok {
		return fmt.Errorf("delete budget %d: %w", id, core.ErrNotFound)
	}
	delete(s.budgets, id)
	for eid, e := range s.expenses {
		if e.BudgetID == id {
			delete(s.expenses, eid)
		}
	}
	for iid, in := range s.incomes {
		if in.BudgetID == id {
			delete(s.incomes, iid)
		}
	}
	return nil
}

func (s *Store) AddExpense(_ context.Context, budgetID core.BudgetID, name string, amount core.Money, at time.Time) (core.Expense, error) {
	e := core.Expense{BudgetID: budgetID, Name: name, Amount: amount, Time: at}
	if err := e.Validate(); err != nil {
		return core.Expense{}, fmt.Errorf("add expense: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.budgets[budgetID]; !ok {
		return core.Expense{}, fmt.Errorf("add expense to budget %d: %w", budgetID, core.ErrForeignKey)
	}
	s.lastExpense++
	e.ID = s.lastExpense
	s.expenses[e.ID] = e
	return e, nil
}

func (s *Store) ListExpenses(_ context.Context, budgetID core.BudgetID) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Expense, 0)
	for _, e := range s.expenses {
		if e.BudgetID == budgetID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Time.Equal(out[j].Time) {
			return out[i].Time.Before(out[j].Time)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Store) GetExpense(_ context.Context, id core.ExpenseID) (core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.expenses[id]
	if !ok {
		return core.Expense{}, fmt.Errorf("get expense %d: %w", id, core.ErrNotFound)
	}
	return e, nil
}

func (s *Store) UpdateExpense(_ context.Context, e core.Expense) error {
	if err := e.Validate(); err != nil {
		return fmt.Errorf("update expense %d: %w", e.ID, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.expenses[e.ID]; !ok {
		return fmt.Errorf("update expense %d: %w", e.ID, core.ErrNotFound)
	}
	if _, ok := s.budgets[e.BudgetID]; !ok {
		return fmt.Errorf("update expense %d: %w", e.ID, core.ErrForeignKey)
	}
	s.expenses[e.ID] = e
	return nil
}

func (s *Store) DeleteExpense(_ context.Context, id core.ExpenseID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.expenses[id]; !ok {
		return fmt.Errorf("delete expense %d: %w", id, core.ErrNotFound)
	}
	delete(s.expenses, id)
	return nil
}

func (s *Store) SumExpenses(_ context.Context, budgetID core.BudgetID) (core.Money, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total core.Money
	for _, e := range s.expenses {
		if e.BudgetID == budgetID {
			total = total.Add(e.Amount)
		}
	}
	return total, nil
}

func (s *Store) AddIncome(_ context.Context, budgetID core.BudgetID, name string, amount core.Money, at time.Time) (core.Income, error) {
	in := core.Income{BudgetID: budgetID, Name: name, Amount: amount, Time: at}
	if err := in.Validate(); err != nil {
		return core.Income{}, fmt.Errorf("add income: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.budgets[budgetID]; !ok {
		return core.Income{}, fmt.Errorf("add income to budget %d: %w", budgetID, core.ErrForeignKey)
	}
	s.lastIncome++
	in.ID = s.lastIncome
	s.incomes[in.ID] = in
	return in, nil
}

func (s *Store) ListIncomes(_ context.Context, budgetID core.BudgetID) ([]core.Income, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Income, 0)
	for _, in := range s.incomes {
		if in.BudgetID == budgetID {
			out = append(out, in)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Time.Equal(out[j].Time) {
			return out[i].Time.Before(out[j].Time)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Store) GetIncome(_ context.Context, id core.IncomeID) (core.Income, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	in, ok := s.incomes[id]
	if !ok {
		return core.Income{}, fmt.Errorf("get income %d: %w", id, core.ErrNotFound)
	}
	return in, nil
}

func (s *Store) UpdateIncome(_ context.Context, in core.Income) error {
	if err := in.Validate(); err != nil {
		return fmt.Errorf("update income %d: %w", in.ID, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.incomes[in.ID]; !ok {
		return fmt.Errorf("update income %d: %w", in.ID, core.ErrNotFound)
	}
	if _, ok := s.budgets[in.BudgetID]; !ok {
		return fmt.Errorf("update income %d: %w", in.ID, core.ErrForeignKey)
	}
	s.incomes[in.ID] = in
	return nil
}

func (s *Store) DeleteIncome(_ context.Context, id core.IncomeID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.incomes[id]; !ok {
		return fmt.Errorf("delete income %d: %w", id, core.ErrNotFound)
	}
	delete(s.incomes, id)
	return nil
}

func (s *Store) SumIncomes(_ context.Context, budgetID core.BudgetID) (core.Money, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total core.Money
	for _, in := range s.incomes {
		if in.BudgetID == budgetID {
			total = total.Add(in.Amount)
		}
	}
	return total, nil
}
