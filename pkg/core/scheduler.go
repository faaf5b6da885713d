package core

import (
	"fmt"
	"sort"
)

// NoLimit disables the pair-count cap.
const NoLimit = -1

// exhaustPairs drives a set of pair generators round-robin until all are
// exhausted or limit unique pairs have been collected. Each turn pulls
// exactly one pair from one generator, so a truncating limit is spread
// evenly over the groups instead of draining whichever group sorts first.
//
// The working queue is refilled by re-sorting the still-active keys
// ascending and is consumed from the end, i.e. groups are visited in
// descending key order within a round. That visitation order is a fixed
// protocol detail: changing it would reorder truncated outputs.
//
// Two generators producing the same unordered pair is an invariant breach
// (groups are disjoint by construction) and fails with ErrDuplicatePair.
func exhaustPairs(generators map[GroupKey]pairIterator, limit int, progress func(collected int)) ([]Pair, error) {
	pairs := make([]Pair, 0)
	seen := make(map[Pair]struct{})
	queue := sortedKeys(generators)

	for len(generators) > 0 {
		if limit != NoLimit && len(pairs) >= limit {
			break
		}
		if len(queue) == 0 {
			queue = sortedKeys(generators)
		}

		// pop the highest-sorting key
		key := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		generator, ok := generators[key]
		if !ok {
			continue
		}
		left, right, ok := generator.next()
		if !ok {
			delete(generators, key)
			continue
		}

		pair := canonicalPair(left, right)
		if _, dup := seen[pair]; dup {
			return nil, fmt.Errorf("%w: %q and %q produced by group %s", ErrDuplicatePair, pair.Left, pair.Right, key)
		}
		seen[pair] = struct{}{}
		pairs = append(pairs, pair)
		if progress != nil {
			progress(len(pairs))
		}
	}
	return pairs, nil
}

func sortedKeys(generators map[GroupKey]pairIterator) []GroupKey {
	keys := make([]GroupKey, 0, len(generators))
	for key := range generators {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].less(keys[j]) })
	return keys
}
