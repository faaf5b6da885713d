package dataset

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"trialgen/pkg/core"
)

var manifestExtensions = map[string]struct{}{
	".json":  {},
	".jsonl": {},
	".csv":   {},
	".yaml":  {},
	".yml":   {},
}

// DirDataset streams every manifest file found under one or more
// directories, in sorted path order. Inputs that are files are used
// directly. The aggregator downstream rejects duplicate sample ids, so
// overlapping shards surface as errors rather than silent double counts.
type DirDataset struct {
	Inputs   []string
	NameHint string
}

func NewDirDataset(inputs ...string) *DirDataset {
	return &DirDataset{Inputs: inputs}
}

func (d *DirDataset) Name() string {
	if d.NameHint != "" {
		return d.NameHint
	}
	if len(d.Inputs) == 1 {
		return filepath.Base(d.Inputs[0])
	}
	return fmt.Sprintf("%d-inputs", len(d.Inputs))
}

func (d *DirDataset) Len(ctx context.Context) (int, error) {
	paths, err := d.manifestPaths()
	if err != nil {
		return 0, err
	}
	total := 0
	for _, path := range paths {
		count, err := NewFileDataset(path).Len(ctx)
		if err != nil {
			return 0, err
		}
		total += count
	}
	return total, nil
}

func (d *DirDataset) Samples(ctx context.Context) (<-chan core.Sample, <-chan error) {
	sampleCh := make(chan core.Sample)
	errCh := make(chan error, 1)

	go func() {
		defer close(sampleCh)
		defer close(errCh)

		paths, err := d.manifestPaths()
		if err != nil {
			errCh <- err
			return
		}
		for _, path := range paths {
			if err := (&FileDataset{Path: path}).stream(ctx, sampleCh); err != nil {
				errCh <- fmt.Errorf("%s: %w", path, err)
				return
			}
		}
	}()

	return sampleCh, errCh
}

func (d *DirDataset) manifestPaths() ([]string, error) {
	var paths []string
	for _, input := range d.Inputs {
		info, err := os.Stat(input)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			paths = append(paths, input)
			continue
		}
		err = filepath.WalkDir(input, func(path string, entry os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if entry.IsDir() {
				return nil
			}
			ext := strings.ToLower(filepath.Ext(path))
			if _, ok := manifestExtensions[ext]; ok {
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no manifest files found in %v", d.Inputs)
	}
	sort.Strings(paths)
	return paths, nil
}

var _ core.Dataset = (*DirDataset)(nil)
