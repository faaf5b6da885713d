package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"trialgen/pkg/core"

	"github.com/stretchr/testify/require"
)

func TestDirDatasetWalksShards(t *testing.T) {
	dir := t.TempDir()
	shardA := filepath.Join(dir, "shard-a.jsonl")
	shardB := filepath.Join(dir, "shard-b.jsonl")
	require.NoError(t, os.WriteFile(shardA, []byte(`{"id":"a1","speaker_id":"id1","gender":"f"}`), 0o600))
	require.NoError(t, os.WriteFile(shardB, []byte(`{"id":"b1","speaker_id":"id2","gender":"m"}`), 0o600))
	// non-manifest files are ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("notes"), 0o600))

	ds := NewDirDataset(dir)
	count, err := ds.Len(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, count)

	got := collect(t, ds)
	// shards stream in sorted path order
	require.Equal(t, []core.Sample{
		{ID: "a1", SpeakerID: "id1", Gender: core.GenderFemale},
		{ID: "b1", SpeakerID: "id2", Gender: core.GenderMale},
	}, got)
}

func TestDirDatasetAcceptsFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "samples.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(`{"id":"a1","speaker_id":"id1","gender":"f"}`), 0o600))

	ds := NewDirDataset(path)
	got := collect(t, ds)
	require.Len(t, got, 1)
}

func TestDirDatasetEmpty(t *testing.T) {
	ds := NewDirDataset(t.TempDir())
	_, errCh := ds.Samples(context.Background())
	err := <-errCh
	require.Error(t, err)
}
