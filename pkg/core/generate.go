package core

import "sort"

// Options controls a trial generation run.
type Options struct {
	// EnsureSameSex restricts negative trials to speaker pairs with the
	// same recorded gender.
	EnsureSameSex bool
	// Limit caps the number of pairs collected per mode (positives and
	// negatives are capped independently). NoLimit runs to exhaustion; a
	// limit of 0 produces no pairs for the mode.
	Limit int
	// Progress, when set, is called with the running pair count while a
	// mode is being enumerated.
	Progress func(collected int)
}

// DefaultOptions matches the tool's defaults: same-sex negatives only,
// no limit.
func DefaultOptions() Options {
	return Options{EnsureSameSex: true, Limit: NoLimit}
}

// GenerateTrials builds the full trial list for a set of aggregated
// samples: every same-speaker 2-combination as a positive trial and every
// cross-speaker sample pair over the qualifying speaker pairs as a
// negative trial, subject to opts. The returned list is deterministic for
// a given sample set regardless of ingestion order: positives sorted by
// canonical form, then negatives sorted likewise.
func GenerateTrials(
	sampleIDs map[string]struct{},
	speakerBySample map[string]string,
	genderBySpeaker map[string]Gender,
	opts Options,
) (TrialList, error) {
	groups := GroupBySpeaker(sampleIDs, speakerBySample)

	positives, err := positivePairs(groups, opts)
	if err != nil {
		return nil, err
	}
	negatives, err := negativePairs(groups, genderBySpeaker, opts)
	if err != nil {
		return nil, err
	}
	return assembleTrials(positives, negatives), nil
}

// positivePairs enumerates same-speaker pairs: one 2-combination generator
// per speaker with at least two samples.
func positivePairs(groups map[string][]string, opts Options) ([]Pair, error) {
	generators := make(map[GroupKey]pairIterator)
	for speaker, samples := range groups {
		if len(samples) < 2 {
			continue
		}
		generators[speakerKey(speaker)] = newCombinationIterator(samples)
	}
	return exhaustPairs(generators, opts.Limit, opts.Progress)
}

// negativePairs enumerates cross-speaker pairs: one cross-product generator
// per qualifying unordered speaker pair.
func negativePairs(groups map[string][]string, genderBySpeaker map[string]Gender, opts Options) ([]Pair, error) {
	generators := make(map[GroupKey]pairIterator)
	for s1 := range groups {
		for s2 := range groups {
			if s1 == s2 {
				continue
			}
			if opts.EnsureSameSex && genderBySpeaker[s1] != genderBySpeaker[s2] {
				continue
			}
			key := speakerPairKey(s1, s2)
			if _, ok := generators[key]; ok {
				continue
			}
			generators[key] = newProductIterator(groups[key.Left], groups[key.Right])
		}
	}
	return exhaustPairs(generators, opts.Limit, opts.Progress)
}

// assembleTrials wraps the raw pairs into typed trials, deduplicates each
// list by canonical pair (defensive; the scheduler already guarantees
// uniqueness), sorts each by canonical form and concatenates positives
// before negatives.
func assembleTrials(positives, negatives []Pair) TrialList {
	pos := wrapPairs(positives, true)
	neg := wrapPairs(negatives, false)
	return append(pos, neg...)
}

func wrapPairs(pairs []Pair, sameSpeaker bool) TrialList {
	seen := make(map[Pair]struct{}, len(pairs))
	trials := make(TrialList, 0, len(pairs))
	for _, p := range pairs {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		trials = append(trials, Trial{Left: p.Left, Right: p.Right, SameSpeaker: sameSpeaker})
	}
	sort.Slice(trials, func(i, j int) bool { return trials[i].String() < trials[j].String() })
	return trials
}
