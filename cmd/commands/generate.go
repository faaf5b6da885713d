package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"trialgen/pkg/core"
	"trialgen/pkg/dataset"
	"trialgen/pkg/reporter"
	"trialgen/pkg/triallog"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newGenerateCommand() *cobra.Command {
	var (
		outputPath string
		format     string
		sameSex    bool
		limit      int
		logDir     string
		logFormat  string
	)

	cmd := &cobra.Command{
		Use:   "generate [inputs...]",
		Short: "Generate a trial list from labeled sample manifests",
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs := args
			if len(inputs) == 0 {
				inputs = appConfig.Inputs
			}
			if len(inputs) == 0 {
				return errors.New("at least one input file or directory is required")
			}

			outputResolved := resolveString(outputPath, appConfig.Out)
			formatResolved := resolveString(format, appConfig.Format)
			if formatResolved == "" {
				formatResolved = reporter.FormatText
			}
			sameSexResolved := sameSex
			if !cmd.Flags().Changed("same-sex") && appConfig.SameSex != nil {
				sameSexResolved = *appConfig.SameSex
			}
			limitResolved := limit
			if !cmd.Flags().Changed("limit") && appConfig.Limit != 0 {
				limitResolved = appConfig.Limit
			}
			logDirResolved := resolveString(logDir, appConfig.LogDir)
			logFormatResolved := resolveString(logFormat, appConfig.LogFormat)
			if logFormatResolved == "" {
				logFormatResolved = "json"
			}

			started := time.Now()
			ds := dataset.NewDirDataset(inputs...)

			totalSamples := 0
			if count, err := ds.Len(context.Background()); err == nil {
				totalSamples = count
			}

			progress := newProgressBar(progressWriter(cmd), totalSamples, "samples")
			agg, err := core.Aggregate(context.Background(), ds, func(observed int) {
				progress.Update(observed)
			})
			if err != nil {
				return err
			}
			progress.Finish()

			genderMap, err := agg.GenderMap()
			if err != nil {
				return err
			}
			logger.Info("aggregated samples",
				zap.Int("samples", agg.Len()),
				zap.Int("speakers", len(genderMap)),
			)

			trialProgress := newProgressBar(progressWriter(cmd), 0, "pairs")
			opts := core.Options{
				EnsureSameSex: sameSexResolved,
				Limit:         limitResolved,
				Progress: func(collected int) {
					trialProgress.Update(collected)
				},
			}
			trials, err := core.GenerateTrials(agg.SampleIDs(), agg.SpeakerBySample(), genderMap, opts)
			if err != nil {
				return err
			}
			trialProgress.Finish()
			logger.Info("generated trials",
				zap.Int("total", len(trials)),
				zap.Int("positives", trials.Positives()),
				zap.Int("negatives", trials.Negatives()),
			)

			writer := cmd.OutOrStdout()
			if outputResolved != "" {
				file, err := os.Create(outputResolved)
				if err != nil {
					return err
				}
				defer file.Close()
				writer = file
			}

			rep, err := buildReporter(formatResolved, writer)
			if err != nil {
				return err
			}
			if err := rep.Report(trials); err != nil {
				return err
			}

			if logFormatResolved != "none" {
				if logDirResolved == "" {
					logDirResolved = "./logs"
				}
				log := triallog.FromRun(ds.Name(), agg.Len(), len(genderMap), opts, trials, started)
				if err := writeRunLog(logFormatResolved, logDirResolved, log, trials); err != nil {
					return err
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&outputPath, "out", "", "path to write trials to (default stdout)")
	cmd.Flags().StringVar(&format, "format", "", "output format (text, csv, json, table, markdown)")
	cmd.Flags().BoolVar(&sameSex, "same-sex", true, "restrict negative trials to speakers with the same gender")
	cmd.Flags().IntVar(&limit, "limit", core.NoLimit, "limit number of positive and negative trials (-1 = unlimited)")
	cmd.Flags().StringVar(&logDir, "log-dir", "", "directory for run logs")
	cmd.Flags().StringVar(&logFormat, "log-format", "", "run log format (json, bundle, none)")

	return cmd
}

func buildReporter(format string, writer io.Writer) (reporter.Reporter, error) {
	switch format {
	case reporter.FormatText:
		return reporter.TextReporter{Writer: writer}, nil
	case reporter.FormatCSV:
		return reporter.CSVReporter{Writer: writer}, nil
	case reporter.FormatJSON:
		return reporter.JSONReporter{Writer: writer, Pretty: true}, nil
	case reporter.FormatTable:
		return reporter.TableReporter{Writer: writer}, nil
	case reporter.FormatMarkdown:
		return reporter.MarkdownReporter{Writer: writer}, nil
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}

func writeRunLog(format string, logDir string, log triallog.RunLog, trials core.TrialList) error {
	switch format {
	case "json":
		_, err := triallog.WriteJSON(logDir, log)
		return err
	case "bundle", "zip":
		_, err := triallog.WriteBundle(logDir, log, trials)
		return err
	case "none":
		return nil
	default:
		return fmt.Errorf("unknown log format: %s", format)
	}
}

type progressBar struct {
	writer io.Writer
	total  int
	unit   string
	start  time.Time
	isTTY  bool
}

func newProgressBar(writer io.Writer, total int, unit string) *progressBar {
	return &progressBar{
		writer: writer,
		total:  total,
		unit:   unit,
		start:  time.Now(),
		isTTY:  isTerminal(writer),
	}
}

func (p *progressBar) Update(completed int) {
	width := 30
	if p.total <= 0 {
		elapsed := time.Since(p.start).Truncate(time.Second)
		if p.isTTY {
			fmt.Fprintf(p.writer, "\rProcessed %d %s (%s)", completed, p.unit, elapsed)
		}
		return
	}

	ratio := float64(completed) / float64(p.total)
	if ratio > 1 {
		ratio = 1
	}
	filled := int(ratio * float64(width))

	bar := strings.Repeat("=", filled) + strings.Repeat(".", width-filled)
	percent := int(ratio * 100)
	elapsed := time.Since(p.start).Truncate(time.Second)

	barStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("62"))
	line := fmt.Sprintf("[%s] %3d%% (%d/%d %s) %s", barStyle.Render(bar), percent, completed, p.total, p.unit, elapsed)
	if p.isTTY {
		fmt.Fprintf(p.writer, "\r%s", line)
	}
}

func (p *progressBar) Finish() {
	if p.isTTY {
		fmt.Fprintln(p.writer)
	}
}

func isTerminal(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func progressWriter(cmd *cobra.Command) io.Writer {
	stderr := cmd.ErrOrStderr()
	stdout := cmd.OutOrStdout()

	if isTerminal(stderr) {
		return stderr
	}
	if isTerminal(stdout) {
		return stdout
	}
	return stderr
}

func resolveString(value string, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}
