package books

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Names returns the distinct raw names across candidates, sorted.
func Names(candidates []Candidate) []string {
	seen := make(map[string]struct{}, len(candidates))
	var names []string
	for _, cand := range candidates {
		if _, ok := seen[cand.RawName]; ok {
			continue
		}
		seen[cand.RawName] = struct{}{}
		names = append(names, cand.RawName)
	}
	sort.Strings(names)
	return names
}

// DetectTitle returns the series title implied by the candidate set. The
// title is unambiguous only when every candidate carries the same raw
// name; otherwise the caller must supply one explicitly.
func DetectTitle(candidates []Candidate) (string, bool) {
	names := Names(candidates)
	if len(names) != 1 {
		return "", false
	}
	return names[0], true
}

// SuggestTitle cleans a raw directory name into a display title: trailing
// digit runs go, separators collapse to spaces, and the remainder is
// title-cased.
func SuggestTitle(rawName string) string {
	trimmed := strings.TrimRightFunc(rawName, func(r rune) bool {
		return unicode.IsDigit(r) || unicode.IsSpace(r) || r == '-' || r == '_' || r == '.'
	})
	if trimmed == "" {
		trimmed = rawName
	}

	var cleaned strings.Builder
	prevSpace := false
	for _, r := range trimmed {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			cleaned.WriteRune(r)
			prevSpace = false
		case unicode.IsSpace(r) || r == '-' || r == '_' || r == '.':
			if !prevSpace && cleaned.Len() > 0 {
				cleaned.WriteRune(' ')
				prevSpace = true
			}
		}
	}
	title := strings.TrimSpace(cleaned.String())
	if title == "" {
		return rawName
	}
	return cases.Title(language.Und).String(title)
}
