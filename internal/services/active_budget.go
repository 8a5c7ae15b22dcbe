package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"budgman/internal/core"
	"budgman/internal/log"
)

// ErrNoBudgets aborts resolution when there is nothing to choose from.
var ErrNoBudgets = errors.New("no budgets yet")

// ResolveState is a step of the active budget resolution.
type ResolveState int

const (
	Unresolved ResolveState = iota
	AwaitingUserChoice
	Resolved
	Aborted
)

func (s ResolveState) String() string {
	switch s {
	case Unresolved:
		return "unresolved"
	case AwaitingUserChoice:
		return "awaiting_user_choice"
	case Resolved:
		return "resolved"
	case Aborted:
		return "aborted"
	default:
		return fmt.Sprintf("ResolveState(%d)", int(s))
	}
}

// ActiveBudget is the budget chosen for this run. It is produced once by
// Resolver.Resolve and handed to every later call.
type ActiveBudget struct {
	ID core.BudgetID
	// Source tells where the id came from: "external" or "prompt".
	Source string
}

// Prompter asks the user to pick one of the listed budgets.
type Prompter interface {
	// ChooseBudget shows the budgets and returns the raw line entered.
	ChooseBudget(ctx context.Context, budgets []core.Budget) (string, error)
	// Rejected reports input that did not parse before asking again.
	Rejected(ctx context.Context, input string, err error)
}

type Resolver struct {
	budgets  BudgetStore
	prompter Prompter
}

func NewResolver(budgets BudgetStore, prompter Prompter) *Resolver {
	return &Resolver{
		budgets:  budgets,
		prompter: prompter,
	}
}

// Resolve turns an externally supplied id (possibly empty) into an
// ActiveBudget. A non-empty external id must parse; otherwise the user is
// asked until a syntactically valid id is entered. Existence is left to the
// caller's subsequent lookup.
func (r *Resolver) Resolve(ctx context.Context, external string) (ActiveBudget, error) {
	state := Unresolved
	var (
		active  ActiveBudget
		budgets []core.Budget
		err     error
	)

	for {
		switch state {
		case Unresolved:
			if strings.TrimSpace(external) != "" {
				id, perr := core.ParseBudgetID(external)
				if perr != nil {
					err = perr
					state = Aborted
					continue
				}
				active = ActiveBudget{ID: id, Source: "external"}
				state = Resolved
				continue
			}

			budgets, err = r.budgets.ListBudgets(ctx)
			if err != nil {
				state = Aborted
				continue
			}
			if len(budgets) == 0 {
				err = ErrNoBudgets
				state = Aborted
				continue
			}
			state = AwaitingUserChoice

		case AwaitingUserChoice:
			if r.prompter == nil {
				err = errors.New("no active budget given and no prompt available")
				state = Aborted
				continue
			}
			line, rerr := r.prompter.ChooseBudget(ctx, budgets)
			if rerr != nil {
				err = fmt.Errorf("read budget choice: %w", rerr)
				state = Aborted
				continue
			}
			id, perr := core.ParseBudgetID(line)
			if perr != nil {
				r.prompter.Rejected(ctx, line, perr)
				continue
			}
			active = ActiveBudget{ID: id, Source: "prompt"}
			state = Resolved

		case Resolved:
			log.FromContext(ctx).DebugContext(ctx, "Active budget resolved",
				log.FieldOperation, log.OpResolve,
				log.FieldBudgetID, active.ID,
				"source", active.Source)
			return active, nil

		case Aborted:
			return ActiveBudget{}, err
		}
	}
}
