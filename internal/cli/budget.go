package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"budgman/internal/core"
	"budgman/internal/services"
)

func newBudgetCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Manage budgets",
	}
	cmd.AddCommand(
		newBudgetListCmd(a),
		newBudgetNewCmd(a),
		newBudgetEditCmd(a),
		newBudgetRemoveCmd(a),
	)
	return cmd
}

func newBudgetListCmd(a *app) *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List budgets",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			budgets, err := a.service.ListBudgets(cmd.Context(), filter)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderBudgets(cmd.OutOrStdout(), budgets))
			return nil
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", "", "show only budgets whose name fuzzily matches")
	return cmd
}

func newBudgetNewCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "new <name> <amount>",
		Short: "Create a budget",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := ParseAmount(args[1])
			if err != nil {
				return err
			}
			b, err := a.service.CreateBudget(cmd.Context(), ParseName(args[0]), amount)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created budget #%d %s (%s)\n", b.ID, b.Name, b.Amount)
			return nil
		},
	}
}

func newBudgetEditCmd(a *app) *cobra.Command {
	var name, amount string
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Rename a budget or change its amount",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := core.ParseBudgetID(args[0])
			if err != nil {
				return err
			}

			var patch services.BudgetPatch
			if cmd.Flags().Changed("name") {
				n := ParseName(name)
				patch.Name = &n
			}
			if cmd.Flags().Changed("amount") {
				m, err := ParseAmount(amount)
				if err != nil {
					return err
				}
				patch.Amount = &m
			}

			b, err := a.service.EditBudget(cmd.Context(), id, patch)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated budget #%d %s (%s)\n", b.ID, b.Name, b.Amount)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&amount, "amount", "", "new amount")
	return cmd
}

func newBudgetRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove"},
		Short:   "Delete a budget with all its expenses and incomes",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := core.ParseBudgetID(args[0])
			if err != nil {
				return err
			}
			if err := a.service.RemoveBudget(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted budget #%d\n", id)
			return nil
		},
	}
}
