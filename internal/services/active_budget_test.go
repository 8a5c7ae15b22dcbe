package services

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"budgman/internal/core"
	"budgman/internal/storage/memory"
)

// scriptedPrompter replays lines and records what was rejected.
type scriptedPrompter struct {
	lines    []string
	asked    int
	rejected []string
	shown    []core.Budget
}

func (p *scriptedPrompter) ChooseBudget(_ context.Context, budgets []core.Budget) (string, error) {
	p.shown = budgets
	if p.asked >= len(p.lines) {
		return "", io.EOF
	}
	line := p.lines[p.asked]
	p.asked++
	return line, nil
}

func (p *scriptedPrompter) Rejected(_ context.Context, input string, _ error) {
	p.rejected = append(p.rejected, input)
}

// countingStore fails the test on any budget listing.
type countingStore struct {
	BudgetStore
	calls int
}

func (c *countingStore) ListBudgets(ctx context.Context) ([]core.Budget, error) {
	c.calls++
	return nil, errors.New("must not be called")
}

func seeded(t *testing.T, names ...string) *memory.Store {
	t.Helper()
	s := memory.New()
	for _, n := range names {
		_, err := s.CreateBudget(context.Background(), n, core.Money{Cents: 100})
		require.NoError(t, err)
	}
	return s
}

func TestResolveExternalID(t *testing.T) {
	store := &countingStore{}
	prompter := &scriptedPrompter{}
	r := NewResolver(store, prompter)

	active, err := r.Resolve(context.Background(), "3")
	require.NoError(t, err)
	assert.Equal(t, core.BudgetID(3), active.ID)
	assert.Equal(t, "external", active.Source)
	assert.Zero(t, store.calls)
	assert.Zero(t, prompter.asked)
}

func TestResolveInvalidExternalIDMakesNoStorageCall(t *testing.T) {
	store := &countingStore{}
	prompter := &scriptedPrompter{lines: []string{"1"}}
	r := NewResolver(store, prompter)

	_, err := r.Resolve(context.Background(), "abc")
	require.ErrorIs(t, err, core.ErrInvalidBudgetID)

	var invalid *core.InvalidBudgetIDError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "abc", invalid.Input)
	assert.Zero(t, store.calls)
	assert.Zero(t, prompter.asked)
}

func TestResolveWithoutBudgetsAborts(t *testing.T) {
	prompter := &scriptedPrompter{lines: []string{"1"}}
	r := NewResolver(memory.New(), prompter)

	_, err := r.Resolve(context.Background(), "")
	assert.ErrorIs(t, err, ErrNoBudgets)
	assert.Zero(t, prompter.asked)
}

func TestResolvePromptLoopsUntilValid(t *testing.T) {
	store := seeded(t, "Groceries", "Rent")
	prompter := &scriptedPrompter{lines: []string{"", "abc", "-2", "2"}}
	r := NewResolver(store, prompter)

	active, err := r.Resolve(context.Background(), "  ")
	require.NoError(t, err)
	assert.Equal(t, core.BudgetID(2), active.ID)
	assert.Equal(t, "prompt", active.Source)
	assert.Equal(t, 4, prompter.asked)
	assert.Equal(t, []string{"", "abc", "-2"}, prompter.rejected)
	assert.Len(t, prompter.shown, 2)
}

func TestResolvePromptAcceptsUnknownID(t *testing.T) {
	// existence is checked by the later fetch
	store := seeded(t, "Groceries")
	r := NewResolver(store, &scriptedPrompter{lines: []string{"99"}})

	active, err := r.Resolve(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, core.BudgetID(99), active.ID)
}

func TestResolvePromptReadFailure(t *testing.T) {
	store := seeded(t, "Groceries")
	r := NewResolver(store, &scriptedPrompter{lines: []string{"nope"}})

	_, err := r.Resolve(context.Background(), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, io.EOF)
}

func TestResolveWithoutPrompter(t *testing.T) {
	store := seeded(t, "Groceries")
	_, err := NewResolver(store, nil).Resolve(context.Background(), "")
	assert.Error(t, err)
}

func TestResolveStateString(t *testing.T) {
	assert.Equal(t, "awaiting_user_choice", AwaitingUserChoice.String())
	assert.Equal(t, "ResolveState(9)", ResolveState(9).String())
}
