package core

// BudgetStats is the default report for the active budget.
type BudgetStats struct {
	Budget       Budget
	TotalExpense Money
	TotalIncome  Money
}
