// Package pickpolicy compiles user-supplied pick selectors and resolves
// catalogues against them.
//
// A selector has the form [from=]to: from restricts which catalogue
// numbers the rule applies to (exact number, range, or all) and to names
// the candidate to pick (first, last, most-pages, a zero-based index, or
// a regular expression matched against candidate names). When several
// rules match one catalogue the most specific wins: an exact number beats
// any range, a narrower range beats a wider one, and among equally
// specific rules the one declared last takes precedence so later command
// line arguments override earlier defaults.
package pickpolicy
