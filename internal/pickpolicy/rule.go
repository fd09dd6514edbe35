package pickpolicy

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// TargetKind enumerates the pick strategies a rule can name.
type TargetKind int

const (
	TargetFirst TargetKind = iota
	TargetLast
	TargetMostPages
	TargetIndex
	TargetPattern
)

// Target is the compiled "to" half of a selector.
type Target struct {
	Kind    TargetKind
	Index   int
	Pattern *regexp.Regexp

	// pattern is the selector text the regexp was compiled from.
	pattern string
}

func (t Target) String() string {
	switch t.Kind {
	case TargetFirst:
		return "first"
	case TargetLast:
		return "last"
	case TargetMostPages:
		return "most-pages"
	case TargetIndex:
		return strconv.Itoa(t.Index)
	case TargetPattern:
		if t.pattern != "" {
			return t.pattern
		}
		if t.Pattern != nil {
			return t.Pattern.String()
		}
	}
	return "?"
}

type rangeKind int

const (
	rangeAll rangeKind = iota
	rangeExact
	rangeHalfOpen  // lo..hi, hi excluded
	rangeInclusive // lo..=hi
	rangeFrom      // lo..
	rangeTo        // ..hi, hi excluded
	rangeToIncl    // ..=hi
)

// Range is the compiled "from" half of a selector, matched against a
// catalogue's leading identity number.
type Range struct {
	kind   rangeKind
	lo, hi uint64
}

// AllNumbers is the range matching every catalogue, the default when a
// selector omits its from part.
func AllNumbers() Range { return Range{kind: rangeAll} }

// IsAll reports whether the range is the catch-all `..`. Catch-all rules
// never explicitly target a catalogue, which matters when their selector
// fails against a single-member catalogue.
func (r Range) IsAll() bool { return r.kind == rangeAll }

// Matches reports whether the catalogue number falls inside the range.
// The all range matches every catalogue, including those without a
// number; every other kind requires one.
func (r Range) Matches(number uint64, hasNumber bool) bool {
	if r.kind == rangeAll {
		return true
	}
	if !hasNumber {
		return false
	}
	switch r.kind {
	case rangeExact:
		return number == r.lo
	case rangeHalfOpen:
		return number >= r.lo && number < r.hi
	case rangeInclusive:
		return number >= r.lo && number <= r.hi
	case rangeFrom:
		return number >= r.lo
	case rangeTo:
		return number < r.hi
	case rangeToIncl:
		return number <= r.hi
	}
	return false
}

// specificity classes, higher is more specific.
const (
	classAll = iota
	classRange
	classExact
)

func (r Range) class() int {
	switch r.kind {
	case rangeExact:
		return classExact
	case rangeAll:
		return classAll
	default:
		return classRange
	}
}

// width returns the numeric span used to break ties between two ranges of
// the same class; open-ended ranges span effectively everything.
func (r Range) width() uint64 {
	switch r.kind {
	case rangeExact:
		return 1
	case rangeHalfOpen:
		return r.hi - r.lo
	case rangeInclusive:
		return r.hi - r.lo + 1
	case rangeTo:
		return r.hi
	case rangeToIncl:
		return r.hi + 1
	default:
		return math.MaxUint64
	}
}

func (r Range) String() string {
	switch r.kind {
	case rangeAll:
		return ".."
	case rangeExact:
		return strconv.FormatUint(r.lo, 10)
	case rangeHalfOpen:
		return fmt.Sprintf("%d..%d", r.lo, r.hi)
	case rangeInclusive:
		return fmt.Sprintf("%d..=%d", r.lo, r.hi)
	case rangeFrom:
		return fmt.Sprintf("%d..", r.lo)
	case rangeTo:
		return fmt.Sprintf("..%d", r.hi)
	case rangeToIncl:
		return fmt.Sprintf("..=%d", r.hi)
	}
	return "?"
}

// Rule is one compiled selector. Rules keep their declaration position so
// equally specific matches can be broken in favor of the later one.
type Rule struct {
	From Range
	To   Target
	pos  int
	raw  string
}

// Source returns the selector text the rule was compiled from.
func (r Rule) Source() string { return r.raw }

func (r Rule) String() string {
	return fmt.Sprintf("%s=%s", r.From, r.To)
}

// moreSpecific reports whether r should win over other for a catalogue
// both of them match. Specificity class decides first, then narrower
// width, then later declaration.
func (r Rule) moreSpecific(other Rule) bool {
	rc, oc := r.From.class(), other.From.class()
	if rc != oc {
		return rc > oc
	}
	rw, ow := r.From.width(), other.From.width()
	if rw != ow {
		return rw < ow
	}
	return r.pos > other.pos
}
