package encoder

const (
	notUsed = ""
)

// Strings accumulates the distinct strings seen while scanning a batch of
// entities, in first-seen order, before they are frozen into a Table.
type Strings struct {
	valid bool
	seen  map[string]struct{}
	order []string
}

// Table maps each string in a PrimitiveBlock's string table to its index.
// Index 0 is always the empty sentinel string used by delta-coded key/value
// arrays to mean "no more tags"; indices 1..n are assigned in the order the
// strings were first added, not sorted, so that two runs over the same input
// produce byte-identical tables.
type Table struct {
	valid   bool
	tbl     map[string]int32
	strings []string
}

func NewStrings() *Strings {
	s := &Strings{
		valid: true,
		seen:  make(map[string]struct{}),
	}

	return s
}

func (s *Strings) Add(value string) {
	if !s.valid {
		panic("Strings in an invalid state")
	}

	// The empty string is the index-0 sentinel and is never stored again.
	if value == notUsed {
		return
	}

	if _, ok := s.seen[value]; ok {
		return
	}

	s.seen[value] = struct{}{}
	s.order = append(s.order, value)
}

func (s *Strings) CalcTable() *Table {
	if !s.valid {
		panic("Strings in an invalid state")
	}

	strings := make([]string, 0, len(s.order)+1)

	// Index 0 is used by pb.DenseNodes to encode tags.
	strings = append(strings, notUsed)
	strings = append(strings, s.order...)

	tbl := make(map[string]int32, len(strings))
	for i, k := range strings {
		tbl[k] = int32(i)
	}

	return &Table{
		valid:   true,
		tbl:     tbl,
		strings: strings,
	}
}

func (t *Table) IndexOf(value string) int32 {
	if !t.valid {
		panic("Table is in an invalid state")
	}

	if index, ok := t.tbl[value]; !ok {
		panic("Index does not exist")
	} else {
		return index
	}
}

func (t *Table) AsArray() []string {
	if !t.valid {
		panic("Table is in an invalid state")
	}

	return t.strings
}
