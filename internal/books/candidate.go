package books

import (
	"strconv"
	"strings"
)

// Identity is the ordered sequence of numbers embedded in a directory
// name. Two names carrying the same numbers in the same order share an
// identity regardless of separators or surrounding text.
type Identity []uint64

// ParseIdentity extracts every maximal run of decimal digits from rawName,
// left to right, and parses each run as an unsigned integer. Leading zeros
// are dropped; a run consisting only of zeros parses to 0. Runs too large
// to represent are skipped. A name without digits yields a nil identity.
func ParseIdentity(rawName string) Identity {
	var id Identity
	for i := 0; i < len(rawName); {
		if rawName[i] < '0' || rawName[i] > '9' {
			i++
			continue
		}
		j := i
		for j < len(rawName) && rawName[j] >= '0' && rawName[j] <= '9' {
			j++
		}
		if n, err := strconv.ParseUint(rawName[i:j], 10, 64); err == nil {
			id = append(id, n)
		}
		i = j
	}
	return id
}

// Empty reports whether the name carried no numbers at all.
func (id Identity) Empty() bool { return len(id) == 0 }

// Leading returns the first identity component, the catalogue number that
// pick rules match against.
func (id Identity) Leading() (uint64, bool) {
	if len(id) == 0 {
		return 0, false
	}
	return id[0], true
}

// Equal reports component-wise equality.
func (id Identity) Equal(other Identity) bool {
	if len(id) != len(other) {
		return false
	}
	for i := range id {
		if id[i] != other[i] {
			return false
		}
	}
	return true
}

// Key returns the canonical grouping key, e.g. "1.2" for [1 2]. The empty
// identity has no key; grouping treats such candidates individually.
func (id Identity) Key() string {
	if len(id) == 0 {
		return ""
	}
	parts := make([]string, len(id))
	for i, n := range id {
		parts[i] = strconv.FormatUint(n, 10)
	}
	return strings.Join(parts, ".")
}

// String renders the identity for display; the empty identity shows as "-".
func (id Identity) String() string {
	if len(id) == 0 {
		return "-"
	}
	return id.Key()
}

// Candidate is one scanned directory considered as a book.
type Candidate struct {
	// Path is the directory path, unique within a run.
	Path string
	// RawName is the final path segment.
	RawName string
	// PageCount is the number of orderable image entries the scanner found.
	PageCount int
	// Bytes is the total size of those entries.
	Bytes int64
	// Identity is derived from RawName via ParseIdentity.
	Identity Identity
}

// NewCandidate builds a candidate with its identity derived from rawName.
func NewCandidate(path, rawName string, pageCount int, bytes int64) Candidate {
	return Candidate{
		Path:      path,
		RawName:   rawName,
		PageCount: pageCount,
		Bytes:     bytes,
		Identity:  ParseIdentity(rawName),
	}
}
