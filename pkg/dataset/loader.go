package dataset

import (
	"bufio"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"trialgen/pkg/core"
)

// FileDataset streams labeled samples from a manifest file. Supported
// formats: JSON array, JSONL, CSV (id,speaker_id,gender header) and YAML
// list, detected by extension with a content sniff fallback.
type FileDataset struct {
	Path     string
	NameHint string
}

func NewFileDataset(path string) *FileDataset {
	return &FileDataset{Path: path}
}

func (d *FileDataset) Name() string {
	if d.NameHint != "" {
		return d.NameHint
	}
	return filepath.Base(d.Path)
}

func (d *FileDataset) Len(ctx context.Context) (int, error) {
	format, err := detectFormat(d.Path)
	if err != nil {
		return 0, err
	}

	switch format {
	case "json":
		samples, err := loadJSONSamples(d.Path)
		if err != nil {
			return 0, err
		}
		return len(samples), nil
	case "yaml":
		samples, err := loadYAMLSamples(d.Path)
		if err != nil {
			return 0, err
		}
		return len(samples), nil
	case "jsonl":
		return countLines(ctx, d.Path)
	case "csv":
		count, err := countLines(ctx, d.Path)
		if err != nil {
			return 0, err
		}
		if count > 0 {
			count-- // header row
		}
		return count, nil
	default:
		return 0, errors.New("dataset: unsupported format")
	}
}

func (d *FileDataset) Samples(ctx context.Context) (<-chan core.Sample, <-chan error) {
	sampleCh := make(chan core.Sample)
	errCh := make(chan error, 1)

	go func() {
		defer close(sampleCh)
		defer close(errCh)

		if err := d.stream(ctx, sampleCh); err != nil {
			errCh <- err
		}
	}()

	return sampleCh, errCh
}

func (d *FileDataset) stream(ctx context.Context, out chan<- core.Sample) error {
	format, err := detectFormat(d.Path)
	if err != nil {
		return err
	}

	switch format {
	case "json":
		samples, err := loadJSONSamples(d.Path)
		if err != nil {
			return err
		}
		return sendSamples(ctx, samples, out)
	case "yaml":
		samples, err := loadYAMLSamples(d.Path)
		if err != nil {
			return err
		}
		return sendSamples(ctx, samples, out)
	case "jsonl":
		return streamJSONL(ctx, d.Path, out)
	case "csv":
		return streamCSV(ctx, d.Path, out)
	default:
		return errors.New("dataset: unsupported format")
	}
}

func sendSamples(ctx context.Context, samples []core.Sample, out chan<- core.Sample) error {
	for _, sample := range samples {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case out <- sample:
		}
	}
	return nil
}

func detectFormat(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".jsonl":
		return "jsonl", nil
	case ".json":
		return "json", nil
	case ".csv":
		return "csv", nil
	case ".yaml", ".yml":
		return "yaml", nil
	}

	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	reader := bufio.NewReader(file)
	for {
		b, err := reader.ReadByte()
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(string(b)) == "" {
			continue
		}
		if b == '[' {
			return "json", nil
		}
		if b == '{' {
			return "jsonl", nil
		}
		if b == '-' {
			return "yaml", nil
		}
		return "", errors.New("dataset: unsupported format")
	}
}

func loadJSONSamples(path string) ([]core.Sample, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var samples []core.Sample
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&samples); err != nil {
		return nil, err
	}
	return samples, nil
}

func loadYAMLSamples(path string) ([]core.Sample, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var samples []core.Sample
	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&samples); err != nil {
		return nil, err
	}
	return samples, nil
}

func streamJSONL(ctx context.Context, path string, out chan<- core.Sample) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	buf := make([]byte, 0, 1024*1024)
	scanner.Buffer(buf, 1024*1024)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		var sample core.Sample
		if err := json.Unmarshal(line, &sample); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case out <- sample:
		}
	}
	return scanner.Err()
}

func streamCSV(ctx context.Context, path string, out chan<- core.Sample) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return err
	}

	columns := map[string]int{}
	for idx, name := range header {
		columns[strings.TrimSpace(strings.ToLower(name))] = idx
	}
	idCol, ok := columns["id"]
	if !ok {
		return errors.New("dataset: csv manifest has no id column")
	}
	speakerCol, hasSpeaker := columns["speaker_id"]
	genderCol, hasGender := columns["gender"]

	for {
		record, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		sample := core.Sample{ID: record[idCol]}
		if hasSpeaker && speakerCol < len(record) {
			sample.SpeakerID = record[speakerCol]
		}
		if hasGender && genderCol < len(record) {
			sample.Gender = core.Gender(record[genderCol])
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case out <- sample:
		}
	}
}

func countLines(ctx context.Context, path string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	buf := make([]byte, 0, 1024*1024)
	scanner.Buffer(buf, 1024*1024)

	count := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		if strings.TrimSpace(scanner.Text()) == "" {
			continue
		}
		count++
	}
	if err := scanner.Err(); err != nil {
		return 0, err
	}
	return count, nil
}

var _ core.Dataset = (*FileDataset)(nil)
