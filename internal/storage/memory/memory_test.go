package memory

import (
	"context"
	"testing"

	"budgman/internal/core"
	"budgman/internal/services"
	"budgman/internal/storage/storagetest"
)

func TestStoreContract(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) services.Store {
		return New()
	})
}

func TestListBudgetsSortedByID(t *testing.T) {
	s := New()
	ctx := context.Background()
	for _, name := range []string{"c", "a", "b"} {
		if _, err := s.CreateBudget(ctx, name, core.Money{Cents: 1}); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}
	budgets, _ := s.ListBudgets(ctx)
	for i, b := range budgets {
		if int(b.ID) != i+1 {
			t.Fatalf("unexpected order: %v", budgets)
		}
	}
}
