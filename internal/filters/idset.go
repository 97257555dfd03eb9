package filters

import (
	"sort"
	"strconv"
	"strings"
)

// IDSet is an unordered collection of facet value ids.
type IDSet map[int]struct{}

// NewIDSet builds a set from the given ids.
func NewIDSet(ids ...int) IDSet {
	set := make(IDSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func (s IDSet) Has(id int) bool {
	_, ok := s[id]
	return ok
}

func (s IDSet) Empty() bool {
	return len(s) == 0
}

// With returns a copy of the set including id.
func (s IDSet) With(ids ...int) IDSet {
	out := s.Clone()
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out
}

// Without returns a copy of the set excluding the given ids.
func (s IDSet) Without(ids ...int) IDSet {
	out := s.Clone()
	for _, id := range ids {
		delete(out, id)
	}
	return out
}

func (s IDSet) Clone() IDSet {
	out := make(IDSet, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}

// Values returns the ids in ascending order.
func (s IDSet) Values() []int {
	out := make([]int, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

// Equal reports whether both sets contain exactly the same ids.
func (s IDSet) Equal(other IDSet) bool {
	if len(s) != len(other) {
		return false
	}
	for id := range s {
		if !other.Has(id) {
			return false
		}
	}
	return true
}

// String renders the set as a comma-joined ascending id list.
func (s IDSet) String() string {
	values := s.Values()
	parts := make([]string, len(values))
	for i, id := range values {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}

// ParseIDSet reads a comma-joined id list, skipping blank and malformed
// entries rather than failing the whole list.
func ParseIDSet(raw string) IDSet {
	set := IDSet{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil || id <= 0 {
			continue
		}
		set[id] = struct{}{}
	}
	return set
}
