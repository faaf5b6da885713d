package reporter

import "trialgen/pkg/core"

// Reporter writes a trial list.
type Reporter interface {
	Report(trials core.TrialList) error
}

const (
	FormatText     = "text"
	FormatCSV      = "csv"
	FormatJSON     = "json"
	FormatTable    = "table"
	FormatMarkdown = "markdown"
)
