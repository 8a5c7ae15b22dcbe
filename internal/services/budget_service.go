package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"budgman/internal/core"
	"budgman/internal/log"
)

// BudgetService is the application layer over a Store. It never retries or
// swallows store errors.
type BudgetService struct {
	store  Store
	logger *log.Logger
}

func NewBudgetService(store Store, logger *slog.Logger) *BudgetService {
	return &BudgetService{
		store:  store,
		logger: log.FromSlog(logger, log.ComponentBudget),
	}
}

// BudgetPatch holds the optional fields of a budget edit.
type BudgetPatch struct {
	Name   *string
	Amount *core.Money
}

// EntryPatch holds the optional fields of an expense or income edit.
type EntryPatch struct {
	Name     *string
	Amount   *core.Money
	Time     *time.Time
	BudgetID *core.BudgetID
}

func (p EntryPatch) empty() bool {
	return p.Name == nil && p.Amount == nil && p.Time == nil && p.BudgetID == nil
}

// Stats fetches the active budget and its expense and income totals.
func (s *BudgetService) Stats(ctx context.Context, active ActiveBudget) (core.BudgetStats, error) {
	b, err := s.store.GetBudget(ctx, active.ID)
	if err != nil {
		return core.BudgetStats{}, err
	}

	spent, err := s.store.SumExpenses(ctx, b.ID)
	if err != nil {
		return core.BudgetStats{}, err
	}

	received, err := s.store.SumIncomes(ctx, b.ID)
	if err != nil {
		return core.BudgetStats{}, err
	}

	s.logger.DebugContext(ctx, "Budget stats computed",
		log.FieldOperation, log.OpStats,
		log.FieldBudgetID, b.ID,
		"total_expense_cents", spent.Cents,
		"total_income_cents", received.Cents)

	return core.BudgetStats{
		Budget:       b,
		TotalExpense: spent,
		TotalIncome:  received,
	}, nil
}

func (s *BudgetService) CreateBudget(ctx context.Context, name string, amount core.Money) (core.Budget, error) {
	b, err := s.store.CreateBudget(ctx, name, amount)
	if err != nil {
		return core.Budget{}, err
	}
	s.logger.InfoContext(ctx, "Budget created",
		log.FieldOperation, log.OpCreate,
		log.FieldBudgetID, b.ID,
		log.FieldAmountCents, b.Amount.Cents)
	return b, nil
}

func (s *BudgetService) CreateExpense(ctx context.Context, budgetID core.BudgetID, name string, amount core.Money, at time.Time) (core.Expense, error) {
	e, err := s.store.AddExpense(ctx, budgetID, name, amount, at)
	if err != nil {
		return core.Expense{}, err
	}
	s.logger.InfoContext(ctx, "Expense created",
		log.FieldOperation, log.OpCreate,
		log.FieldBudgetID, budgetID,
		log.FieldEntryID, e.ID,
		log.FieldAmountCents, amount.Cents)
	return e, nil
}

func (s *BudgetService) CreateIncome(ctx context.Context, budgetID core.BudgetID, name string, amount core.Money, at time.Time) (core.Income, error) {
	in, err := s.store.AddIncome(ctx, budgetID, name, amount, at)
	if err != nil {
		return core.Income{}, err
	}
	s.logger.InfoContext(ctx, "Income created",
		log.FieldOperation, log.OpCreate,
		log.FieldBudgetID, budgetID,
		log.FieldEntryID, in.ID,
		log.FieldAmountCents, amount.Cents)
	return in, nil
}

// ListBudgets returns all budgets, or only those whose name fuzzily matches
// filter when it is not blank.
func (s *BudgetService) ListBudgets(ctx context.Context, filter string) ([]core.Budget, error) {
	budgets, err := s.store.ListBudgets(ctx)
	if err != nil {
		return nil, err
	}
	filter = strings.TrimSpace(filter)
	if filter == "" {
		return budgets, nil
	}

	matched := make([]core.Budget, 0, len(budgets))
	for _, b := range budgets {
		if fuzzy.MatchFold(filter, b.Name) {
			matched = append(matched, b)
		}
	}
	s.logger.DebugContext(ctx, "Budgets filtered",
		log.FieldOperation, log.OpList,
		"filter", filter,
		"matched", len(matched))
	return matched, nil
}

func (s *BudgetService) EditBudget(ctx context.Context, id core.BudgetID, patch BudgetPatch) (core.Budget, error) {
	b, err := s.store.GetBudget(ctx, id)
	if err != nil {
		return core.Budget{}, err
	}
	if patch.Name != nil {
		b.Name = *patch.Name
	}
	if patch.Amount != nil {
		b.Amount = *patch.Amount
	}
	if err := s.store.UpdateBudget(ctx, b); err != nil {
		return core.Budget{}, err
	}
	s.logger.InfoContext(ctx, "Budget updated", log.FieldOperation, log.OpUpdate, log.FieldBudgetID, id)
	return b, nil
}

func (s *BudgetService) RemoveBudget(ctx context.Context, id core.BudgetID) error {
	if err := s.store.DeleteBudget(ctx, id); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Budget deleted", log.NewFields().WithOperation(log.OpDelete).WithBudget(id).ToSlice()...)
	return nil
}

func (s *BudgetService) ListExpenses(ctx context.Context, active ActiveBudget) ([]core.Expense, error) {
	if _, err := s.store.GetBudget(ctx, active.ID); err != nil {
		return nil, err
	}
	return s.store.ListExpenses(ctx, active.ID)
}

func (s *BudgetService) EditExpense(ctx context.Context, id core.ExpenseID, patch EntryPatch) (core.Expense, error) {
	e, err := s.store.GetExpense(ctx, id)
	if err != nil {
		return core.Expense{}, err
	}
	if patch.empty() {
		return e, nil
	}
	if patch.Name != nil {
		e.Name = *patch.Name
	}
	if patch.Amount != nil {
		e.Amount = *patch.Amount
	}
	if patch.Time != nil {
		e.Time = *patch.Time
	}
	if patch.BudgetID != nil {
		e.BudgetID = *patch.BudgetID
	}
	if err := s.store.UpdateExpense(ctx, e); err != nil {
		return core.Expense{}, err
	}
	s.logger.InfoContext(ctx, "Expense updated", log.FieldOperation, log.OpUpdate, log.FieldEntryID, id)
	return e, nil
}

func (s *BudgetService) RemoveExpense(ctx context.Context, id core.ExpenseID) error {
	if err := s.store.DeleteExpense(ctx, id); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Expense deleted", log.FieldOperation, log.OpDelete, log.FieldEntryID, id)
	return nil
}

func (s *BudgetService) ListIncomes(ctx context.Context, active ActiveBudget) ([]core.Income, error) {
	if _, err := s.store.GetBudget(ctx, active.ID); err != nil {
		return nil, err
	}
	return s.store.ListIncomes(ctx, active.ID)
}

func (s *BudgetService) EditIncome(ctx context.Context, id core.IncomeID, patch EntryPatch) (core.Income, error) {
	in, err := s.store.GetIncome(ctx, id)
	if err != nil {
		return core.Income{}, err
	}
	if patch.empty() {
		return in, nil
	}
	if patch.Name != nil {
		in.Name = *patch.Name
	}
	if patch.Amount != nil {
		in.Amount = *patch.Amount
	}
	if patch.Time != nil {
		in.Time = *patch.Time
	}
	if patch.BudgetID != nil {
		in.BudgetID = *patch.BudgetID
	}
	if err := s.store.UpdateIncome(ctx, in); err != nil {
		return core.Income{}, err
	}
	s.logger.InfoContext(ctx, "Income updated", log.FieldOperation, log.OpUpdate, log.FieldEntryID, id)
	return in, nil
}

func (s *BudgetService) RemoveIncome(ctx context.Context, id core.IncomeID) error {
	if err := s.store.DeleteIncome(ctx, id); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Income deleted", log.FieldOperation, log.OpDelete, log.FieldEntryID, id)
	return nil
}

// Close releases the underlying store.
func (s *BudgetService) Close() error {
	if s.store == nil {
		return nil
	}
	if err := s.store.Close(); err != nil {
		return fmt.Errorf("close store: %w", err)
	}
	return nil
}
