package rollup

import (
	"sort"
	"strconv"
	"strings"
)

// blockListSeparator joins printed block numbers in the legacy
// quarteiroesTrabalhados string.
const blockListSeparator = ", "

// BlockSet an ordered set of printed block numbers. The weekly log
// tracks worked blocks by number, not ID (numbers are unique per area
// and weekly logs are per-area, so no collision is possible). The set is
// the working representation; the joined string exists only at the
// persistence/display boundary.
type BlockSet struct {
	members map[string]struct{}
}

// NewBlockSet returns an empty set.
func NewBlockSet() *BlockSet {
	return &BlockSet{members: make(map[string]struct{})}
}

// ParseBlockList rebuilds a set from a previously joined string.
func ParseBlockList(joined string) *BlockSet {
	s := NewBlockSet()
	for _, part := range strings.Split(joined, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			s.members[part] = struct{}{}
		}
	}
	return s
}

// AddNumber inserts a block number.
func (s *BlockSet) AddNumber(number int) {
	s.members[strconv.Itoa(number)] = struct{}{}
}

// Union inserts every member of other.
func (s *BlockSet) Union(other *BlockSet) {
	for m := range other.members {
		s.members[m] = struct{}{}
	}
}

// Len reports the number of distinct blocks.
func (s *BlockSet) Len() int {
	return len(s.members)
}

// Sorted returns the printed numbers in numeric order. Non-numeric
// entries (legacy data) sort after the numeric ones, lexically.
func (s *BlockSet) Sorted() []string {
	out := make([]string, 0, len(s.members))
	for m := range s.members {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		ni, erri := strconv.Atoi(out[i])
		nj, errj := strconv.Atoi(out[j])
		switch {
		case erri == nil && errj == nil:
			return ni < nj
		case erri == nil:
			return true
		case errj == nil:
			return false
		default:
			return out[i] < out[j]
		}
	})
	return out
}

// Joined serializes the set to the legacy comma-joined string.
func (s *BlockSet) Joined() string {
	return strings.Join(s.Sorted(), blockListSeparator)
}
