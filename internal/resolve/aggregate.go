package resolve

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"bookvert/internal/books"
	"bookvert/internal/pickpolicy"
)

// Entry maps one resolved catalogue to its archive output. The base name
// carries no extension; the archive builder appends the container suffix.
type Entry struct {
	Catalogue  *books.Catalogue
	Candidate  books.Candidate
	OutputBase string
}

// Plan is the complete mapping for a run.
type Plan struct {
	Title   string
	Entries []Entry
}

// Failure describes one catalogue that did not end in a selection.
type Failure struct {
	Catalogue *books.Catalogue
	Reason    string
}

// AggregateError lists every unresolved or failed catalogue in one error.
type AggregateError struct {
	Failures []Failure
}

func (e *AggregateError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d catalogue(s) without a selection:", len(e.Failures))
	for _, f := range e.Failures {
		fmt.Fprintf(&b, "\n  catalogue %s: %s", f.Catalogue.Identity, f.Reason)
		for i, m := range f.Catalogue.Members {
			fmt.Fprintf(&b, "\n    %d: %s (%d pages)", i, m.RawName, m.PageCount)
		}
	}
	return b.String()
}

// Collision is a set of catalogues mapping to one output name.
type Collision struct {
	Name       string
	Catalogues []*books.Catalogue
}

// CollisionError reports output names claimed by more than one catalogue.
// Identities that differ only in non-leading components collide this way.
type CollisionError struct {
	Collisions []Collision
}

func (e *CollisionError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d output name collision(s):", len(e.Collisions))
	for _, c := range e.Collisions {
		keys := make([]string, 0, len(c.Catalogues))
		for _, cat := range c.Catalogues {
			keys = append(keys, cat.Identity.String())
		}
		fmt.Fprintf(&b, "\n  %q claimed by catalogues %s", c.Name, strings.Join(keys, ", "))
	}
	return b.String()
}

// OutputBase computes the archive base name for a catalogue: the title
// followed by the leading identity number, or the bare title when the
// catalogue has no number.
func OutputBase(title string, cat *books.Catalogue) string {
	number, ok := cat.Number()
	if !ok {
		return title
	}
	return title + strconv.FormatUint(number, 10)
}

// Aggregate combines the resolutions into a plan. It fails when any
// catalogue is unresolved or failed, and when two catalogues claim the
// same output name; both problems are reported together so one pass shows
// everything that needs fixing.
func Aggregate(title string, resolutions []pickpolicy.Resolution) (*Plan, error) {
	plan := &Plan{Title: title}
	var failures []Failure
	names := make(map[string][]*books.Catalogue)

	for _, res := range resolutions {
		switch res.State {
		case pickpolicy.Selected:
			base := OutputBase(title, res.Catalogue)
			names[base] = append(names[base], res.Catalogue)
			plan.Entries = append(plan.Entries, Entry{
				Catalogue:  res.Catalogue,
				Candidate:  res.Selected,
				OutputBase: base,
			})
		case pickpolicy.Unresolved:
			failures = append(failures, Failure{
				Catalogue: res.Catalogue,
				Reason:    "no applicable pick rule",
			})
		case pickpolicy.Failed:
			reason := string(res.Reason)
			if res.Rule != nil {
				reason = fmt.Sprintf("rule %s: %s", res.Rule, res.Reason)
			}
			failures = append(failures, Failure{Catalogue: res.Catalogue, Reason: reason})
		}
	}

	var errs []error
	if len(failures) > 0 {
		errs = append(errs, &AggregateError{Failures: failures})
	}
	if collisionErr := detectCollisions(plan, names); collisionErr != nil {
		errs = append(errs, collisionErr)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return plan, nil
}

func detectCollisions(plan *Plan, names map[string][]*books.Catalogue) error {
	var collisions []Collision
	// Walk entries, not the map, to keep reporting order deterministic.
	seen := make(map[string]struct{})
	for _, entry := range plan.Entries {
		cats := names[entry.OutputBase]
		if len(cats) < 2 {
			continue
		}
		if _, done := seen[entry.OutputBase]; done {
			continue
		}
		seen[entry.OutputBase] = struct{}{}
		collisions = append(collisions, Collision{Name: entry.OutputBase, Catalogues: cats})
	}
	if len(collisions) == 0 {
		return nil
	}
	return &CollisionError{Collisions: collisions}
}
