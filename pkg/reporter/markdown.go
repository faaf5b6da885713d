package reporter

import (
	"fmt"
	"io"

	"trialgen/pkg/core"
)

type MarkdownReporter struct {
	Writer io.Writer
}

func (r MarkdownReporter) Report(trials core.TrialList) error {
	if _, err := fmt.Fprintf(r.Writer, "# Speaker Trial List\n\n"); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(r.Writer, "## Summary\n\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(r.Writer, "| Metric | Value |\n|---|---|\n"); err != nil {
		return err
	}
	lines := []struct {
		Name  string
		Value string
	}{
		{"Total trials", fmt.Sprintf("%d", len(trials))},
		{"Positive trials", fmt.Sprintf("%d", trials.Positives())},
		{"Negative trials", fmt.Sprintf("%d", trials.Negatives())},
	}
	for _, line := range lines {
		if _, err := fmt.Fprintf(r.Writer, "| %s | %s |\n", line.Name, line.Value); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(r.Writer, "\n## Trials\n\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(r.Writer, "| Left | Right | Same speaker |\n|---|---|---|\n"); err != nil {
		return err
	}
	for _, trial := range trials {
		if _, err := fmt.Fprintf(
			r.Writer,
			"| %s | %s | %t |\n",
			trial.Left,
			trial.Right,
			trial.SameSpeaker,
		); err != nil {
			return err
		}
	}
	return nil
}
