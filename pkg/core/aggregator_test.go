package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAggregatorObserve(t *testing.T) {
	agg := NewAggregator()

	require.NoError(t, agg.Observe(Sample{ID: "a1", SpeakerID: "id1", Gender: GenderFemale}))
	require.NoError(t, agg.Observe(Sample{ID: "a2", SpeakerID: "id1", Gender: GenderFemale}))
	require.Equal(t, 2, agg.Len())
	require.Equal(t, "id1", agg.SpeakerBySample()["a1"])
}

func TestAggregatorDuplicateSample(t *testing.T) {
	agg := NewAggregator()

	require.NoError(t, agg.Observe(Sample{ID: "a1", SpeakerID: "id1", Gender: GenderFemale}))
	err := agg.Observe(Sample{ID: "a1", SpeakerID: "id2", Gender: GenderMale})
	require.ErrorIs(t, err, ErrDuplicateSample)
	require.Contains(t, err.Error(), "a1")
}

func TestAggregatorMissingLabels(t *testing.T) {
	agg := NewAggregator()

	err := agg.Observe(Sample{ID: "a1", Gender: GenderFemale})
	require.ErrorIs(t, err, ErrMissingLabel)
	require.Contains(t, err.Error(), "speaker_id")

	err = agg.Observe(Sample{ID: "a2", SpeakerID: "id1"})
	require.ErrorIs(t, err, ErrMissingLabel)
	require.Contains(t, err.Error(), "gender")
}

func TestAggregatorGenderMap(t *testing.T) {
	agg := NewAggregator()

	require.NoError(t, agg.Observe(Sample{ID: "a1", SpeakerID: "id1", Gender: GenderFemale}))
	require.NoError(t, agg.Observe(Sample{ID: "a2", SpeakerID: "id1", Gender: GenderFemale}))
	require.NoError(t, agg.Observe(Sample{ID: "b1", SpeakerID: "id2", Gender: GenderMale}))

	genders, err := agg.GenderMap()
	require.NoError(t, err)
	require.Equal(t, map[string]Gender{"id1": GenderFemale, "id2": GenderMale}, genders)
}

func TestAggregatorInconsistentGender(t *testing.T) {
	agg := NewAggregator()

	require.NoError(t, agg.Observe(Sample{ID: "a1", SpeakerID: "id1", Gender: GenderFemale}))
	require.NoError(t, agg.Observe(Sample{ID: "a2", SpeakerID: "id1", Gender: GenderMale}))

	_, err := agg.GenderMap()
	require.ErrorIs(t, err, ErrInconsistentGender)
	require.Contains(t, err.Error(), "id1")
}

func TestAggregatorInvalidGender(t *testing.T) {
	agg := NewAggregator()

	require.NoError(t, agg.Observe(Sample{ID: "a1", SpeakerID: "id1", Gender: "x"}))

	_, err := agg.GenderMap()
	require.ErrorIs(t, err, ErrInvalidGender)
	require.Contains(t, err.Error(), "id1")
}

func TestAggregatorFirstViolationIsStable(t *testing.T) {
	// id2 sorts before id10 under the canonical speaker order, so the
	// violation on id2 must be the one reported.
	agg := NewAggregator()
	require.NoError(t, agg.Observe(Sample{ID: "a1", SpeakerID: "id10", Gender: "x"}))
	require.NoError(t, agg.Observe(Sample{ID: "a2", SpeakerID: "id2", Gender: "y"}))

	_, err := agg.GenderMap()
	require.ErrorIs(t, err, ErrInvalidGender)
	require.Contains(t, err.Error(), `"id2"`)
}

type staticDataset struct {
	samples []Sample
}

func (s staticDataset) Name() string { return "static" }

func (s staticDataset) Len(_ context.Context) (int, error) {
	return len(s.samples), nil
}

func (s staticDataset) Samples(ctx context.Context) (<-chan Sample, <-chan error) {
	sampleCh := make(chan Sample)
	errCh := make(chan error, 1)
	go func() {
		defer close(sampleCh)
		defer close(errCh)
		for _, sample := range s.samples {
			select {
			case <-ctx.Done():
				errCh <- ctx.Err()
				return
			case sampleCh <- sample:
			}
		}
	}()
	return sampleCh, errCh
}

func TestAggregateDrainsDataset(t *testing.T) {
	ds := staticDataset{
		samples: []Sample{
			{ID: "a1", SpeakerID: "id1", Gender: GenderFemale},
			{ID: "a2", SpeakerID: "id1", Gender: GenderFemale},
			{ID: "b1", SpeakerID: "id2", Gender: GenderMale},
		},
	}

	var observed int
	agg, err := Aggregate(context.Background(), ds, func(n int) { observed = n })
	require.NoError(t, err)
	require.Equal(t, 3, agg.Len())
	require.Equal(t, 3, observed)
}

func TestAggregateSurfacesObserveError(t *testing.T) {
	ds := staticDataset{
		samples: []Sample{
			{ID: "a1", SpeakerID: "id1", Gender: GenderFemale},
			{ID: "a1", SpeakerID: "id1", Gender: GenderFemale},
		},
	}

	_, err := Aggregate(context.Background(), ds, nil)
	require.ErrorIs(t, err, ErrDuplicateSample)
}
