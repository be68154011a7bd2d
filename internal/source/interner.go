package source

import (
	"slices"
)

type StringID uint32

const NoStringID StringID = 0

// Interner maps strings to dense ids for cheap AST storage. One Interner
// belongs to one AST builder: it is created per parse and dies with it, so
// interning never leaks state between frontend invocations.
type Interner struct {
	byID  []string
	index map[string]StringID
}

func NewInterner() *Interner {
	return &Interner{
		byID:  []string{""}, // NoStringID -> empty string
		index: map[string]StringID{"": 0},
	}
}

// Intern inserts a string and returns its ID, reusing an existing entry.
func (i *Interner) Intern(s string) StringID {
	if id, ok := i.index[s]; ok {
		return id
	}

	// Own copy, so the id never pins the original source buffer.
	cpy := string([]byte(s))
	id := StringID(len(i.byID))
	i.byID = append(i.byID, cpy)
	i.index[cpy] = id
	return id
}

// InternBytes interns a byte slice.
func (i *Interner) InternBytes(b []byte) StringID {
	return i.Intern(string(b))
}

// Lookup returns the string for the ID, or ("", false) for invalid ids.
func (i *Interner) Lookup(id StringID) (string, bool) {
	if !i.Has(id) {
		return "", false
	}
	return i.byID[id], true
}

// MustLookup returns the string for the ID and panics on invalid ids.
func (i *Interner) MustLookup(id StringID) string {
	s, ok := i.Lookup(id)
	if !ok {
		panic("invalid string ID")
	}
	return s
}

func (i *Interner) Has(id StringID) bool {
	return int(id) < len(i.byID)
}

// Len counts interned strings, NoStringID included; never below 1.
func (i *Interner) Len() int {
	return len(i.byID)
}

// Snapshot returns a copy of all interned strings.
func (i *Interner) Snapshot() []string {
	return slices.Clone(i.byID)
}
