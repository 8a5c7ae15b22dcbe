package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"budgman/internal/log"
	"budgman/internal/services"
)

const noBudgetsGuidance = "No budgets yet. Create one first, for example:\n  budgman budget new Groceries 500"

// Deps is what the command tree runs against.
type Deps struct {
	Store services.Store
	// Budget is the active budget id from config or environment; the
	// --budget flag overrides it.
	Budget string

	In     io.Reader
	Out    io.Writer
	Logger *slog.Logger
	Now    func() time.Time
}

type app struct {
	deps     Deps
	service  *services.BudgetService
	resolver *services.Resolver
	budget   string
}

func newApp(deps Deps) *app {
	if deps.In == nil {
		deps.In = os.Stdin
	}
	if deps.Out == nil {
		deps.Out = os.Stdout
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &app{
		deps:     deps,
		service:  services.NewBudgetService(deps.Store, deps.Logger),
		resolver: services.NewResolver(deps.Store, NewLinePrompter(deps.In, deps.Out)),
		budget:   deps.Budget,
	}
}

// active resolves the active budget once for the running command.
func (a *app) active(ctx context.Context) (services.ActiveBudget, error) {
	return a.resolver.Resolve(ctx, a.budget)
}

// NewRootCmd builds the budgman command tree. Running it without a
// subcommand prints the stats of the active budget.
func NewRootCmd(deps Deps) *cobra.Command {
	a := newApp(deps)

	root := &cobra.Command{
		Use:   "budgman",
		Short: "Track budgets, expenses and incomes",
		Long: `budgman keeps budgets with their expenses and incomes in a local
SQLite file and reports how much each budget has spent and received.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runStats(cmd)
		},
	}
	root.SetIn(a.deps.In)
	root.SetOut(a.deps.Out)

	root.PersistentFlags().StringVarP(&a.budget, "budget", "b", deps.Budget,
		"active budget id (overrides BUDGMAN_BUDGET)")

	root.AddCommand(
		newBudgetCmd(a),
		newEntryCmd(a, expenseKind(a)),
		newEntryCmd(a, incomeKind(a)),
	)
	return root
}

func (a *app) runStats(cmd *cobra.Command) error {
	ctx := cmd.Context()
	active, err := a.active(ctx)
	if err != nil {
		return err
	}
	stats, err := a.service.Stats(ctx, active)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderStats(cmd.OutOrStdout(), stats))
	return nil
}

// Run executes the command tree with args. Having no budget to choose from
// prints guidance and is not an error.
func Run(ctx context.Context, deps Deps, args []string) error {
	if args == nil {
		// cobra falls back to os.Args on a nil slice
		args = []string{}
	}
	root := NewRootCmd(deps)
	root.SetArgs(args)

	logger := log.FromSlog(deps.Logger, log.ComponentCLI)
	ctx = log.NewContext(ctx, logger)
	start := time.Now()

	err := root.ExecuteContext(ctx)
	log.NewStructuredLogger(logger).LogCommandEnd(ctx, strings.Join(args, " "), time.Since(start).Milliseconds(), err)

	if errors.Is(err, services.ErrNoBudgets) {
		fmt.Fprintln(root.OutOrStdout(), noBudgetsGuidance)
		return nil
	}
	return err
}
