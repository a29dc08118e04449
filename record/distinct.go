package record

// DistinctSet is an insertion-ordered set of records. Records are compared
// by value; the first occurrence wins.
type DistinctSet struct {
	items []Record
	// hash -> positions in items with that hash
	index map[uint64][]int
}

// Add inserts r unless an equal record is already present. It reports
// whether r was added.
func (s *DistinctSet) Add(r Record) bool {
	if s.index == nil {
		s.index = make(map[uint64][]int)
	}
	h := r.Hash()
	for _, i := range s.index[h] {
		if s.items[i].Equal(r) {
			return false
		}
	}
	s.index[h] = append(s.index[h], len(s.items))
	s.items = append(s.items, r)
	return true
}

// Len returns the number of distinct records.
func (s *DistinctSet) Len() int { return len(s.items) }

// Items returns the records in first-seen order.
func (s *DistinctSet) Items() []Record {
	out := make([]Record, len(s.items))
	copy(out, s.items)
	return out
}

// Clone returns an independent copy. Records themselves are shared.
func (s DistinctSet) Clone() DistinctSet {
	c := DistinctSet{items: make([]Record, len(s.items))}
	copy(c.items, s.items)
	if s.index != nil {
		c.index = make(map[uint64][]int, len(s.index))
		for h, pos := range s.index {
			c.index[h] = append([]int(nil), pos...)
		}
	}
	return c
}
