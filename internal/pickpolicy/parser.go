package pickpolicy

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// SyntaxError reports a malformed selector. Parsing stops at the first
// bad entry; no rules from a failed parse are usable.
type SyntaxError struct {
	// Entry is the selector argument the token came from.
	Entry string
	// Token is the offending fragment.
	Token string
	// Reason explains what was wrong with it.
	Reason string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("pick selector %q: %q: %s", e.Entry, e.Token, e.Reason)
}

// Parse compiles selector entries in declaration order. An entry may hold
// several comma-separated selectors; they keep their relative order. The
// whole parse fails on the first malformed selector.
func Parse(entries []string) ([]Rule, error) {
	var rules []Rule
	for _, entry := range entries {
		for _, sel := range strings.Split(entry, ",") {
			sel = strings.TrimSpace(sel)
			if sel == "" {
				return nil, &SyntaxError{Entry: entry, Token: sel, Reason: "empty selector"}
			}

			from := AllNumbers()
			to := sel
			if idx := strings.LastIndex(sel, "="); idx >= 0 {
				parsed, err := parseRange(entry, strings.TrimSpace(sel[:idx]))
				if err != nil {
					return nil, err
				}
				from = parsed
				to = strings.TrimSpace(sel[idx+1:])
			}

			target, err := parseTarget(entry, to)
			if err != nil {
				return nil, err
			}
			rules = append(rules, Rule{From: from, To: target, pos: len(rules), raw: sel})
		}
	}
	return rules, nil
}

// ParseRanges compiles bare from predicates, e.g. for --include filters.
func ParseRanges(entries []string) ([]Range, error) {
	var ranges []Range
	for _, entry := range entries {
		for _, tok := range strings.Split(entry, ",") {
			r, err := parseRange(entry, strings.TrimSpace(tok))
			if err != nil {
				return nil, err
			}
			ranges = append(ranges, r)
		}
	}
	return ranges, nil
}

func parseRange(entry, token string) (Range, error) {
	if token == "" {
		return Range{}, &SyntaxError{Entry: entry, Token: token, Reason: "empty range"}
	}

	bound := func(s string) (uint64, error) {
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return 0, &SyntaxError{Entry: entry, Token: s, Reason: "bad integer"}
		}
		return n, nil
	}

	if lo, hi, ok := strings.Cut(token, "..="); ok {
		lo, hi = strings.TrimSpace(lo), strings.TrimSpace(hi)
		end, err := bound(hi)
		if err != nil {
			return Range{}, err
		}
		if lo == "" {
			return Range{kind: rangeToIncl, hi: end}, nil
		}
		start, err := bound(lo)
		if err != nil {
			return Range{}, err
		}
		if end < start {
			return Range{}, &SyntaxError{Entry: entry, Token: token, Reason: "inverted range"}
		}
		return Range{kind: rangeInclusive, lo: start, hi: end}, nil
	}

	if lo, hi, ok := strings.Cut(token, ".."); ok {
		lo, hi = strings.TrimSpace(lo), strings.TrimSpace(hi)
		switch {
		case lo == "" && hi == "":
			return AllNumbers(), nil
		case lo == "":
			end, err := bound(hi)
			if err != nil {
				return Range{}, err
			}
			return Range{kind: rangeTo, hi: end}, nil
		case hi == "":
			start, err := bound(lo)
			if err != nil {
				return Range{}, err
			}
			return Range{kind: rangeFrom, lo: start}, nil
		default:
			start, err := bound(lo)
			if err != nil {
				return Range{}, err
			}
			end, err := bound(hi)
			if err != nil {
				return Range{}, err
			}
			if end < start {
				return Range{}, &SyntaxError{Entry: entry, Token: token, Reason: "inverted range"}
			}
			return Range{kind: rangeHalfOpen, lo: start, hi: end}, nil
		}
	}

	n, err := bound(token)
	if err != nil {
		return Range{}, err
	}
	return Range{kind: rangeExact, lo: n}, nil
}

func parseTarget(entry, token string) (Target, error) {
	switch token {
	case "":
		return Target{}, &SyntaxError{Entry: entry, Token: token, Reason: "empty pattern"}
	case "first":
		return Target{Kind: TargetFirst}, nil
	case "last":
		return Target{Kind: TargetLast}, nil
	case "most-pages":
		return Target{Kind: TargetMostPages}, nil
	}

	if n, err := strconv.ParseUint(token, 10, 32); err == nil {
		return Target{Kind: TargetIndex, Index: int(n)}, nil
	}

	// Patterns match case-insensitively: "fix" should catch "Fix" suffixes.
	re, err := regexp.Compile("(?i)" + token)
	if err != nil {
		return Target{}, &SyntaxError{Entry: entry, Token: token, Reason: fmt.Sprintf("bad pattern: %v", err)}
	}
	return Target{Kind: TargetPattern, Pattern: re, pattern: token}, nil
}
