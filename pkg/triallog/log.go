package triallog

import (
	"archive/zip"
	"bytes"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"hash/crc32"
	"os"
	"path/filepath"
	"strings"
	"time"

	"trialgen/pkg/core"
)

// RunLog records everything about one trial generation run except the
// trial list itself: where the samples came from, the knobs, the counts
// and the timing. It is written next to the trial list so a benchmark
// result can always be traced back to its generation settings.
type RunLog struct {
	Version   int       `json:"version"`
	RunID     string    `json:"run_id"`
	CreatedAt time.Time `json:"created_at"`
	Dataset   Dataset   `json:"dataset"`
	Config    Config    `json:"config"`
	Counts    Counts    `json:"counts"`
	Duration  float64   `json:"duration_seconds"`
}

type Dataset struct {
	Name     string `json:"name"`
	Samples  int    `json:"samples"`
	Speakers int    `json:"speakers"`
}

type Config struct {
	EnsureSameSex bool `json:"ensure_same_sex"`
	Limit         int  `json:"limit"`
}

type Counts struct {
	Total     int `json:"total"`
	Positives int `json:"positives"`
	Negatives int `json:"negatives"`
}

// FromRun builds a RunLog for a finished generation run.
func FromRun(datasetName string, samples, speakers int, opts core.Options, trials core.TrialList, started time.Time) RunLog {
	return RunLog{
		Version:   1,
		RunID:     generateID(),
		CreatedAt: started.UTC(),
		Dataset: Dataset{
			Name:     datasetName,
			Samples:  samples,
			Speakers: speakers,
		},
		Config: Config{
			EnsureSameSex: opts.EnsureSameSex,
			Limit:         opts.Limit,
		},
		Counts: Counts{
			Total:     len(trials),
			Positives: trials.Positives(),
			Negatives: trials.Negatives(),
		},
		Duration: time.Since(started).Seconds(),
	}
}

// WriteJSON writes the run log as a standalone JSON file under logDir and
// returns its path.
func WriteJSON(logDir string, log RunLog) (string, error) {
	if logDir == "" {
		return "", fmt.Errorf("triallog: logDir is required")
	}
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(logDir, buildLogFileName(log, "json"))
	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(log); err != nil {
		return "", err
	}
	return path, nil
}

// WriteBundle writes a zip archive holding both the run log
// (manifest.json) and the trial list (trials.txt, canonical text form).
// Entries are stored uncompressed with a fixed timestamp, so two runs over
// the same input produce byte-identical trial entries.
func WriteBundle(logDir string, log RunLog, trials core.TrialList) (string, error) {
	if logDir == "" {
		return "", fmt.Errorf("triallog: logDir is required")
	}
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(logDir, buildLogFileName(log, "zip"))
	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	zipWriter := zip.NewWriter(file)
	defer zipWriter.Close()

	manifest, err := json.MarshalIndent(log, "", "  ")
	if err != nil {
		return "", err
	}
	if err := writeZipEntry(zipWriter, "manifest.json", manifest); err != nil {
		return "", err
	}

	var text bytes.Buffer
	for _, trial := range trials {
		text.WriteString(trial.String())
		text.WriteByte('\n')
	}
	if err := writeZipEntry(zipWriter, "trials.txt", text.Bytes()); err != nil {
		return "", err
	}
	return path, nil
}

// ReadJSON reads a run log written by WriteJSON.
func ReadJSON(path string) (RunLog, error) {
	var log RunLog
	f, err := os.Open(path)
	if err != nil {
		return RunLog{}, err
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(&log); err != nil {
		return RunLog{}, err
	}
	return log, nil
}

// ReadBundle reads back a bundle written by WriteBundle.
func ReadBundle(path string) (RunLog, core.TrialList, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return RunLog{}, nil, err
	}
	defer r.Close()

	var log RunLog
	var trials core.TrialList
	for _, f := range r.File {
		switch f.Name {
		case "manifest.json":
			rc, err := f.Open()
			if err != nil {
				return RunLog{}, nil, err
			}
			err = json.NewDecoder(rc).Decode(&log)
			rc.Close()
			if err != nil {
				return RunLog{}, nil, err
			}
		case "trials.txt":
			rc, err := f.Open()
			if err != nil {
				return RunLog{}, nil, err
			}
			var buf bytes.Buffer
			_, err = buf.ReadFrom(rc)
			rc.Close()
			if err != nil {
				return RunLog{}, nil, err
			}
			for _, line := range strings.Split(buf.String(), "\n") {
				line = strings.TrimSpace(line)
				if line == "" {
					continue
				}
				trial, err := core.ParseTrial(line)
				if err != nil {
					return RunLog{}, nil, err
				}
				trials = append(trials, trial)
			}
		}
	}
	return log, trials, nil
}

func buildLogFileName(log RunLog, ext string) string {
	timestamp := log.CreatedAt
	if timestamp.IsZero() {
		timestamp = time.Now()
	}
	name := sanitizeName(log.Dataset.Name)
	if name == "" {
		name = "trials"
	}
	return fmt.Sprintf("%s_%s.%s", timestamp.Format("2006-01-02T15-04-05"), name, ext)
}

func writeZipEntry(writer *zip.Writer, name string, payload []byte) error {
	size := uint64(len(payload))
	header := &zip.FileHeader{
		Name:               name,
		Method:             zip.Store,
		UncompressedSize64: size,
		CompressedSize64:   size,
		CRC32:              crc32.ChecksumIEEE(payload),
	}
	header.SetModTime(time.Unix(0, 0))
	header.Flags &^= 0x8 // no data descriptor

	entry, err := writer.CreateRaw(header)
	if err != nil {
		return err
	}
	_, err = entry.Write(payload)
	return err
}

func sanitizeName(input string) string {
	out := make([]rune, 0, len(input))
	for _, r := range input {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '-' {
			out = append(out, r)
		}
	}
	return string(out)
}

func generateID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return base64.RawURLEncoding.EncodeToString(b)
}
