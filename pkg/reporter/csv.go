package reporter

import (
	"encoding/csv"
	"io"
	"strconv"

	"trialgen/pkg/core"
)

type CSVReporter struct {
	Writer io.Writer
}

func (r CSVReporter) Report(trials core.TrialList) error {
	writer := csv.NewWriter(r.Writer)
	header := []string{"left", "right", "same_speaker"}
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, trial := range trials {
		record := []string{
			trial.Left,
			trial.Right,
			strconv.FormatBool(trial.SameSpeaker),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
