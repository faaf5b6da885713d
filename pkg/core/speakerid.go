package core

import "strconv"

// speakerIDLess orders speaker ids by their canonical sort key: ids that
// end in a run of digits (the common "id10042" shape) compare by the
// non-numeric prefix first and the numeric value second, so "id2" sorts
// before "id10". Ids without a numeric tail fall back to lexical order.
func speakerIDLess(a, b string) bool {
	aPrefix, aNum, aOK := splitNumericTail(a)
	bPrefix, bNum, bOK := splitNumericTail(b)

	if aOK && bOK {
		if aPrefix != bPrefix {
			return aPrefix < bPrefix
		}
		if aNum != bNum {
			return aNum < bNum
		}
		return a < b
	}
	return a < b
}

func splitNumericTail(id string) (prefix string, num int64, ok bool) {
	i := len(id)
	for i > 0 && id[i-1] >= '0' && id[i-1] <= '9' {
		i--
	}
	if i == len(id) {
		return "", 0, false
	}
	num, err := strconv.ParseInt(id[i:], 10, 64)
	if err != nil {
		return "", 0, false
	}
	return id[:i], num, true
}
