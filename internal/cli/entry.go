package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"budgman/internal/core"
	"budgman/internal/services"
)

// entryKind adapts expenses and incomes to one set of subcommands.
type entryKind struct {
	name   string
	plural string

	list   func(ctx context.Context, active services.ActiveBudget) ([]entryRow, error)
	create func(ctx context.Context, budgetID core.BudgetID, name string, amount core.Money, at time.Time) (entryRow, error)
	edit   func(ctx context.Context, id string, patch services.EntryPatch) (entryRow, error)
	remove func(ctx context.Context, id string) error
}

func expenseKind(a *app) entryKind {
	row := func(e core.Expense) entryRow {
		return entryRow{ID: int64(e.ID), Name: e.Name, Amount: e.Amount, Time: e.Time}
	}
	return entryKind{
		name:   "expense",
		plural: "expenses",
		list: func(ctx context.Context, active services.ActiveBudget) ([]entryRow, error) {
			expenses, err := a.service.ListExpenses(ctx, active)
			if err != nil {
				return nil, err
			}
			rows := make([]entryRow, 0, len(expenses))
			for _, e := range expenses {
				rows = append(rows, row(e))
			}
			return rows, nil
		},
		create: func(ctx context.Context, budgetID core.BudgetID, name string, amount core.Money, at time.Time) (entryRow, error) {
			e, err := a.service.CreateExpense(ctx, budgetID, name, amount, at)
			return row(e), err
		},
		edit: func(ctx context.Context, raw string, patch services.EntryPatch) (entryRow, error) {
			id, err := core.ParseExpenseID(raw)
			if err != nil {
				return entryRow{}, err
			}
			e, err := a.service.EditExpense(ctx, id, patch)
			return row(e), err
		},
		remove: func(ctx context.Context, raw string) error {
			id, err := core.ParseExpenseID(raw)
			if err != nil {
				return err
			}
			return a.service.RemoveExpense(ctx, id)
		},
	}
}

func incomeKind(a *app) entryKind {
	row := func(in core.Income) entryRow {
		return entryRow{ID: int64(in.ID), Name: in.Name, Amount: in.Amount, Time: in.Time}
	}
	return entryKind{
		name:   "income",
		plural: "incomes",
		list: func(ctx context.Context, active services.ActiveBudget) ([]entryRow, error) {
			incomes, err := a.service.ListIncomes(ctx, active)
			if err != nil {
				return nil, err
			}
			rows := make([]entryRow, 0, len(incomes))
			for _, in := range incomes {
				rows = append(rows, row(in))
			}
			return rows, nil
		},
		create: func(ctx context.Context, budgetID core.BudgetID, name string, amount core.Money, at time.Time) (entryRow, error) {
			in, err := a.service.CreateIncome(ctx, budgetID, name, amount, at)
			return row(in), err
		},
		edit: func(ctx context.Context, raw string, patch services.EntryPatch) (entryRow, error) {
			id, err := core.ParseIncomeID(raw)
			if err != nil {
				return entryRow{}, err
			}
			in, err := a.service.EditIncome(ctx, id, patch)
			return row(in), err
		},
		remove: func(ctx context.Context, raw string) error {
			id, err := core.ParseIncomeID(raw)
			if err != nil {
				return err
			}
			return a.service.RemoveIncome(ctx, id)
		},
	}
}

func newEntryCmd(a *app, kind entryKind) *cobra.Command {
	cmd := &cobra.Command{
		Use:   kind.name,
		Short: fmt.Sprintf("Manage %s of the active budget", kind.plural),
	}
	cmd.AddCommand(
		newEntryListCmd(a, kind),
		newEntryNewCmd(a, kind),
		newEntryEditCmd(kind, a.deps.Now),
		newEntryRemoveCmd(kind),
	)
	return cmd
}

func newEntryListCmd(a *app, kind entryKind) *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   fmt.Sprintf("List %s of the active budget", kind.plural),
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			active, err := a.active(cmd.Context())
			if err != nil {
				return err
			}
			rows, err := kind.list(cmd.Context(), active)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderEntries(cmd.OutOrStdout(), kind.plural, rows))
			return nil
		},
	}
}

func newEntryNewCmd(a *app, kind entryKind) *cobra.Command {
	var at string
	cmd := &cobra.Command{
		Use:   "new <name> <amount>",
		Short: fmt.Sprintf("Add an %s to the active budget", kind.name),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := ParseAmount(args[1])
			if err != nil {
				return err
			}
			when, err := ParseTime(at, a.deps.Now())
			if err != nil {
				return err
			}

			active, err := a.active(cmd.Context())
			if err != nil {
				return err
			}
			row, err := kind.create(cmd.Context(), active.ID, ParseName(args[0]), amount, when)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s #%d %s (%s) to budget #%d\n",
				kind.name, row.ID, row.Name, row.Amount, active.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&at, "time", "t", "", "when it happened (default now)")
	return cmd
}

func newEntryEditCmd(kind entryKind, now func() time.Time) *cobra.Command {
	var name, amount, at, moveTo string
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: fmt.Sprintf("Change an %s", kind.name),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch services.EntryPatch
			flags := cmd.Flags()

			if flags.Changed("name") {
				n := ParseName(name)
				patch.Name = &n
			}
			if flags.Changed("amount") {
				m, err := ParseAmount(amount)
				if err != nil {
					return err
				}
				patch.Amount = &m
			}
			if flags.Changed("time") {
				t, err := ParseTime(at, now())
				if err != nil {
					return err
				}
				patch.Time = &t
			}
			if flags.Changed("move-to") {
				id, err := core.ParseBudgetID(moveTo)
				if err != nil {
					return err
				}
				patch.BudgetID = &id
			}

			row, err := kind.edit(cmd.Context(), args[0], patch)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s #%d %s (%s)\n", kind.name, row.ID, row.Name, row.Amount)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&amount, "amount", "", "new amount")
	cmd.Flags().StringVarP(&at, "time", "t", "", "new time")
	cmd.Flags().StringVar(&moveTo, "move-to", "", "move to the budget with this id")
	return cmd
}

func newEntryRemoveCmd(kind entryKind) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove"},
		Short:   fmt.Sprintf("Delete an %s", kind.name),
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := kind.remove(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s %s\n", kind.name, args[0])
			return nil
		},
	}
}
