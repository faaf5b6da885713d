package reporter

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"trialgen/pkg/core"
)

// TableReporter prints a summary of the trial list rather than every
// trial; use the text or csv reporters for the full list.
type TableReporter struct {
	Writer io.Writer
}

func (r TableReporter) Report(trials core.TrialList) error {
	table := tablewriter.NewWriter(r.Writer)
	table.Header([]string{"Metric", "Value"})
	table.Append([]string{"Total trials", fmt.Sprintf("%d", len(trials))})
	table.Append([]string{"Positive trials", fmt.Sprintf("%d", trials.Positives())})
	table.Append([]string{"Negative trials", fmt.Sprintf("%d", trials.Negatives())})
	table.Render()
	return nil
}
