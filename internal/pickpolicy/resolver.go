package pickpolicy

import (
	"bookvert/internal/books"
)

// State is the outcome class of one catalogue's resolution.
type State int

const (
	// Selected means exactly one candidate was chosen.
	Selected State = iota
	// Unresolved means no rule matched an ambiguous catalogue.
	Unresolved
	// Failed means a matching rule's selector could not find a target.
	Failed
)

// FailureReason names why a matching rule failed against a catalogue.
type FailureReason string

const (
	FailureIndexOutOfRange FailureReason = "index out of range"
	FailureNoPatternMatch  FailureReason = "no pattern match"
)

// Resolution is the outcome for one catalogue. Selected resolutions carry
// the winning candidate; Failed ones the rule that matched and why its
// selector found nothing.
type Resolution struct {
	Catalogue *books.Catalogue
	State     State
	Selected  books.Candidate
	Rule      *Rule
	Reason    FailureReason
}

// Resolve applies the most specific matching rule to one catalogue.
//
// A single-member catalogue is trivially selected when no rule matches
// it. A rule that explicitly targets the catalogue's number (anything but
// the catch-all `..`) is applied even then, and its selector failure is
// the catalogue's outcome; a failing catch-all never overrides the
// trivial selection of a singleton.
func Resolve(cat *books.Catalogue, rules []Rule) Resolution {
	res := Resolution{Catalogue: cat}

	rule, matched := mostSpecific(cat, rules)
	if !matched {
		if cat.Ambiguous() {
			res.State = Unresolved
			return res
		}
		res.State = Selected
		res.Selected = cat.Members[0]
		return res
	}

	res.Rule = &rule
	rank, reason := apply(rule.To, cat.Members)
	if reason != "" {
		if !cat.Ambiguous() && rule.From.IsAll() {
			res.State = Selected
			res.Selected = cat.Members[0]
			return res
		}
		res.State = Failed
		res.Reason = reason
		return res
	}
	res.State = Selected
	res.Selected = cat.Members[rank]
	return res
}

// ResolveAll resolves every catalogue in listing order.
func ResolveAll(cats []*books.Catalogue, rules []Rule) []Resolution {
	out := make([]Resolution, 0, len(cats))
	for _, cat := range cats {
		out = append(out, Resolve(cat, rules))
	}
	return out
}

func mostSpecific(cat *books.Catalogue, rules []Rule) (Rule, bool) {
	number, hasNumber := cat.Number()
	var best Rule
	found := false
	for _, rule := range rules {
		if !rule.From.Matches(number, hasNumber) {
			continue
		}
		if !found || rule.moreSpecific(best) {
			best = rule
			found = true
		}
	}
	return best, found
}

// apply returns the lexical rank the target picks, or a failure reason.
// Members are never empty: every catalogue has at least one candidate.
func apply(t Target, members []books.Candidate) (int, FailureReason) {
	switch t.Kind {
	case TargetFirst:
		return 0, ""
	case TargetLast:
		return len(members) - 1, ""
	case TargetMostPages:
		best := 0
		for i, m := range members {
			if m.PageCount > members[best].PageCount {
				best = i
			}
		}
		return best, ""
	case TargetIndex:
		if t.Index >= len(members) {
			return 0, FailureIndexOutOfRange
		}
		return t.Index, ""
	case TargetPattern:
		for i, m := range members {
			if t.Pattern.MatchString(m.RawName) {
				return i, ""
			}
		}
		return 0, FailureNoPatternMatch
	}
	return 0, FailureNoPatternMatch
}
