package core

// GroupBySpeaker partitions a set of sample ids by their speaker. The
// per-speaker slice order follows map iteration and is therefore not tied
// to any ingestion order; the set of producible pairs is the same either
// way, and the final trial list is re-sorted downstream.
func GroupBySpeaker(sampleIDs map[string]struct{}, speakerBySample map[string]string) map[string][]string {
	groups := make(map[string][]string)
	for id := range sampleIDs {
		speaker := speakerBySample[id]
		groups[speaker] = append(groups[speaker], id)
	}
	return groups
}
