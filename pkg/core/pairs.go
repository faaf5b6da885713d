package core

// Pair is an unordered pair of sample ids in canonical form: Left is the
// lexically smaller id. Canonical form makes {a,b} and {b,a} compare equal,
// which is what the dedup set relies on.
type Pair struct {
	Left  string
	Right string
}

func canonicalPair(a, b string) Pair {
	if b < a {
		a, b = b, a
	}
	return Pair{Left: a, Right: b}
}

// pairIterator lazily produces a finite sequence of sample-id pairs. It is
// not restartable; once next returns false it returns false forever.
type pairIterator interface {
	next() (left, right string, ok bool)
}

// combinationIterator yields every unordered 2-combination of items, in
// index order (0,1), (0,2), ... (1,2), ...
type combinationIterator struct {
	items []string
	i, j  int
}

func newCombinationIterator(items []string) *combinationIterator {
	return &combinationIterator{items: items, i: 0, j: 1}
}

func (c *combinationIterator) next() (string, string, bool) {
	if c.i >= len(c.items)-1 {
		return "", "", false
	}
	left, right := c.items[c.i], c.items[c.j]
	c.j++
	if c.j >= len(c.items) {
		c.i++
		c.j = c.i + 1
	}
	return left, right, true
}

// productIterator yields the full cross product of two sample lists.
type productIterator struct {
	left, right []string
	i, j        int
}

func newProductIterator(left, right []string) *productIterator {
	return &productIterator{left: left, right: right}
}

func (p *productIterator) next() (string, string, bool) {
	if p.i >= len(p.left) || len(p.right) == 0 {
		return "", "", false
	}
	left, right := p.left[p.i], p.right[p.j]
	p.j++
	if p.j >= len(p.right) {
		p.i++
		p.j = 0
	}
	return left, right, true
}

// GroupKey identifies one pair generator: a single speaker in positive
// mode, or an unordered speaker pair in negative mode (Right empty for the
// single-speaker case). Keys order by Left then Right.
type GroupKey struct {
	Left  string
	Right string
}

func speakerKey(speaker string) GroupKey {
	return GroupKey{Left: speaker}
}

func speakerPairKey(a, b string) GroupKey {
	if b < a {
		a, b = b, a
	}
	return GroupKey{Left: a, Right: b}
}

func (k GroupKey) less(other GroupKey) bool {
	if k.Left != other.Left {
		return k.Left < other.Left
	}
	return k.Right < other.Right
}

func (k GroupKey) String() string {
	if k.Right == "" {
		return k.Left
	}
	return k.Left + "/" + k.Right
}
