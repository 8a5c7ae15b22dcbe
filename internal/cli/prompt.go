package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"budgman/internal/core"
)

// LinePrompter asks for the active budget on a line-oriented terminal.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// ChooseBudget lists the budgets and reads one line. A closed input with
// nothing typed returns io.EOF.
func (p *LinePrompter) ChooseBudget(_ context.Context, budgets []core.Budget) (string, error) {
	fmt.Fprintln(p.out, renderBudgets(p.out, budgets))
	fmt.Fprint(p.out, "Active budget id: ")

	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (p *LinePrompter) Rejected(_ context.Context, input string, _ error) {
	fmt.Fprintf(p.out, "%q is not a budget id, enter one of the ids above.\n", input)
}
