package reporter

import (
	"bufio"
	"io"
	"strings"

	"trialgen/pkg/core"
)

// TextReporter writes the canonical persisted form: one trial per line,
// "<left> <right> <1|0>". ParseTrialList reads the same form back.
type TextReporter struct {
	Writer io.Writer
}

func (r TextReporter) Report(trials core.TrialList) error {
	writer := bufio.NewWriter(r.Writer)
	for _, trial := range trials {
		if _, err := writer.WriteString(trial.String()); err != nil {
			return err
		}
		if err := writer.WriteByte('\n'); err != nil {
			return err
		}
	}
	return writer.Flush()
}

// ParseTrialList parses the text form produced by TextReporter. Blank
// lines are skipped.
func ParseTrialList(reader io.Reader) (core.TrialList, error) {
	scanner := bufio.NewScanner(reader)
	var trials core.TrialList
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		trial, err := core.ParseTrial(line)
		if err != nil {
			return nil, err
		}
		trials = append(trials, trial)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return trials, nil
}
