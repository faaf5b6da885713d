package dataset

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"trialgen/pkg/core"

	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, ds core.Dataset) []core.Sample {
	t.Helper()
	ch, errCh := ds.Samples(context.Background())
	var got []core.Sample
	for sample := range ch {
		got = append(got, sample)
	}
	for err := range errCh {
		require.NoError(t, err)
	}
	return got
}

func TestFileDatasetJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "samples.json")

	samples := []core.Sample{
		{ID: "a1", SpeakerID: "id1", Gender: core.GenderFemale},
		{ID: "b1", SpeakerID: "id2", Gender: core.GenderMale},
	}
	data, err := json.Marshal(samples)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	ds := NewFileDataset(path)
	count, err := ds.Len(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, count)

	got := collect(t, ds)
	require.Equal(t, samples, got)
}

func TestFileDatasetJSONL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "samples.jsonl")

	lines := `{"id":"a1","speaker_id":"id1","gender":"f"}
{"id":"b1","speaker_id":"id2","gender":"m"}`
	require.NoError(t, os.WriteFile(path, []byte(lines), 0o600))

	ds := NewFileDataset(path)
	count, err := ds.Len(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, count)

	got := collect(t, ds)
	require.Len(t, got, 2)
	require.Equal(t, "id1", got[0].SpeakerID)
	require.Equal(t, core.GenderMale, got[1].Gender)
}

func TestFileDatasetCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "samples.csv")

	content := "id,speaker_id,gender\na1,id1,f\nb1,id2,m\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	ds := NewFileDataset(path)
	count, err := ds.Len(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, count)

	got := collect(t, ds)
	require.Equal(t, []core.Sample{
		{ID: "a1", SpeakerID: "id1", Gender: core.GenderFemale},
		{ID: "b1", SpeakerID: "id2", Gender: core.GenderMale},
	}, got)
}

func TestFileDatasetCSVMissingColumnsLeaveLabelsEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "samples.csv")

	content := "id\na1\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	got := collect(t, NewFileDataset(path))
	require.Equal(t, []core.Sample{{ID: "a1"}}, got)
}

func TestFileDatasetYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "samples.yaml")

	content := `- id: a1
  speaker_id: id1
  gender: f
- id: b1
  speaker_id: id2
  gender: m
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	ds := NewFileDataset(path)
	count, err := ds.Len(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, count)

	got := collect(t, ds)
	require.Len(t, got, 2)
	require.Equal(t, core.GenderFemale, got[0].Gender)
}

func TestDetectFormatSniffsContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "samples.dat")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":"a1"}]`), 0o600))

	format, err := detectFormat(path)
	require.NoError(t, err)
	require.Equal(t, "json", format)

	require.NoError(t, os.WriteFile(path, []byte(`{"id":"a1"}`), 0o600))
	format, err = detectFormat(path)
	require.NoError(t, err)
	require.Equal(t, "jsonl", format)
}

func TestSliceDataset(t *testing.T) {
	samples := []core.Sample{
		{ID: "a1", SpeakerID: "id1", Gender: core.GenderFemale},
	}
	ds := NewSliceDataset(samples, "")
	require.Equal(t, "memory", ds.Name())

	count, err := ds.Len(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, count)
	require.Equal(t, samples, collect(t, ds))
}
