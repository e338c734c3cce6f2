// internal/domain/school/directory.go
package school

// Directory answers exact-match (school, campus) lookups.
//
// Matching is byte-for-byte on both fields: no case folding, no whitespace or
// diacritic normalization. An observation whose school/campus strings do not
// exactly match an entry is silently excluded from AM-scoped aggregation, so
// data entry has to be disciplined (differing Unicode normalization of
// accented names is enough to miss).
type Directory struct {
	entries []Info
}

// NewDirectory builds a Directory over the given entries. The list is
// expected to hold at most one entry per (school, campus) pair; when it does
// not, the first match wins.
func NewDirectory(entries []Info) Directory {
	return Directory{entries: entries}
}

// Find returns the entry for the exact (schoolName, campus) pair.
func (d Directory) Find(schoolName, campus string) (Info, bool) {
	for _, e := range d.entries {
		if e.SchoolName == schoolName && e.Campus == campus {
			return e, true
		}
	}
	return Info{}, false
}

// Len reports the number of entries, letting callers fall back to the
// built-in master list when a loaded directory turns out empty.
func (d Directory) Len() int {
	return len(d.entries)
}
