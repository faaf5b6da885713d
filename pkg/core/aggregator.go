package core

import (
	"context"
	"fmt"
	"sort"
)

// Aggregator accumulates the unique sample ids of a stream together with
// the sample→speaker and speaker→gender mappings the pair engine needs.
// It performs no I/O; feed it with Observe and finish with GenderMap.
type Aggregator struct {
	sampleIDs        map[string]struct{}
	speakerBySample  map[string]string
	gendersBySpeaker map[string]map[Gender]struct{}
}

func NewAggregator() *Aggregator {
	return &Aggregator{
		sampleIDs:        make(map[string]struct{}),
		speakerBySample:  make(map[string]string),
		gendersBySpeaker: make(map[string]map[Gender]struct{}),
	}
}

// Observe ingests one labeled sample. Each sample id may be seen at most
// once, and both labels are required.
func (a *Aggregator) Observe(s Sample) error {
	if _, ok := a.sampleIDs[s.ID]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateSample, s.ID)
	}
	if s.SpeakerID == "" {
		return fmt.Errorf("%w: sample %q has no speaker_id", ErrMissingLabel, s.ID)
	}
	if s.Gender == "" {
		return fmt.Errorf("%w: sample %q has no gender", ErrMissingLabel, s.ID)
	}

	a.sampleIDs[s.ID] = struct{}{}
	a.speakerBySample[s.ID] = s.SpeakerID

	genders, ok := a.gendersBySpeaker[s.SpeakerID]
	if !ok {
		genders = make(map[Gender]struct{})
		a.gendersBySpeaker[s.SpeakerID] = genders
	}
	genders[s.Gender] = struct{}{}
	return nil
}

// Len returns the number of unique samples observed so far.
func (a *Aggregator) Len() int {
	return len(a.sampleIDs)
}

// SampleIDs returns the set of unique sample ids observed so far.
func (a *Aggregator) SampleIDs() map[string]struct{} {
	return a.sampleIDs
}

// SpeakerBySample returns the sample id → speaker id mapping.
func (a *Aggregator) SpeakerBySample() map[string]string {
	return a.speakerBySample
}

// GenderMap finalizes the per-speaker gender observations. Every speaker
// must have exactly one recorded gender, and that gender must be one of the
// two recognized values. Speakers are checked in canonical speaker-id order
// so the first reported violation is stable across runs.
func (a *Aggregator) GenderMap() (map[string]Gender, error) {
	speakers := make([]string, 0, len(a.gendersBySpeaker))
	for speaker := range a.gendersBySpeaker {
		speakers = append(speakers, speaker)
	}
	sort.Slice(speakers, func(i, j int) bool {
		return speakerIDLess(speakers[i], speakers[j])
	})

	out := make(map[string]Gender, len(speakers))
	for _, speaker := range speakers {
		genders := a.gendersBySpeaker[speaker]
		if len(genders) != 1 {
			return nil, fmt.Errorf("%w: speaker %q observed %s", ErrInconsistentGender, speaker, formatGenderSet(genders))
		}
		var gender Gender
		for g := range genders {
			gender = g
		}
		if !gender.Recognized() {
			return nil, fmt.Errorf("%w: speaker %q has gender %q", ErrInvalidGender, speaker, gender)
		}
		out[speaker] = gender
	}
	return out, nil
}

func formatGenderSet(genders map[Gender]struct{}) string {
	values := make([]string, 0, len(genders))
	for g := range genders {
		values = append(values, string(g))
	}
	sort.Strings(values)
	return fmt.Sprintf("%v", values)
}

// Aggregate drains a dataset into a fresh aggregator. The stream must be
// fully consumed before the gender map is finalized, so a dataset error
// aborts the whole run.
func Aggregate(ctx context.Context, ds Dataset, progress func(observed int)) (*Aggregator, error) {
	agg := NewAggregator()
	sampleCh, errCh := ds.Samples(ctx)

	for sampleCh != nil || errCh != nil {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case sample, ok := <-sampleCh:
			if !ok {
				sampleCh = nil
				continue
			}
			if err := agg.Observe(sample); err != nil {
				return nil, err
			}
			if progress != nil {
				progress(agg.Len())
			}
		case err, ok := <-errCh:
			if !ok {
				errCh = nil
				continue
			}
			if err != nil {
				return nil, err
			}
		}
	}
	return agg, nil
}
