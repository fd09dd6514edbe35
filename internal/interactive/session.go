package interactive

import (
	"errors"

	"bookvert/internal/pickpolicy"
)

// ErrAborted reports that the operator quit before every ambiguous
// catalogue was resolved. Remaining catalogues stay unresolved.
var ErrAborted = errors.New("interactive selection aborted")

// Action is an operator decision returned by a Prompter.
type Action int

const (
	// ActionChoose accepts the returned index.
	ActionChoose Action = iota
	// ActionCancel backs out to the catalogue listing.
	ActionCancel
	// ActionAbort ends the session, leaving the rest unresolved.
	ActionAbort
)

// Prompter supplies operator decisions. Implementations block until the
// operator answers; there is no timeout, cancellation is the abort action.
type Prompter interface {
	// ListCatalogues presents the catalogues still awaiting a choice.
	ListCatalogues(pending []*pickpolicy.Resolution)
	// SelectCatalogue asks which pending catalogue to work on; the index
	// refers into pending. Cancel is treated as abort at this level.
	SelectCatalogue(pending []*pickpolicy.Resolution) (int, Action)
	// SelectCandidate asks which member of the catalogue to keep; the
	// index is the member's lexical rank. Cancel returns to the listing.
	SelectCandidate(res *pickpolicy.Resolution) (int, Action)
}

// Run disambiguates every unresolved resolution in place, one catalogue
// at a time, in listing order. It returns ErrAborted when the operator
// quits early; resolutions already confirmed keep their selection.
func Run(resolutions []pickpolicy.Resolution, prompter Prompter) error {
	for {
		pending := unresolved(resolutions)
		if len(pending) == 0 {
			return nil
		}

		prompter.ListCatalogues(pending)

		idx, action := prompter.SelectCatalogue(pending)
		if action != ActionChoose {
			return ErrAborted
		}
		if idx < 0 || idx >= len(pending) {
			continue
		}

		res := pending[idx]
		rank, action := prompter.SelectCandidate(res)
		switch action {
		case ActionAbort:
			return ErrAborted
		case ActionCancel:
			continue
		}
		if rank < 0 || rank >= len(res.Catalogue.Members) {
			continue
		}

		res.State = pickpolicy.Selected
		res.Selected = res.Catalogue.Members[rank]
	}
}

func unresolved(resolutions []pickpolicy.Resolution) []*pickpolicy.Resolution {
	var pending []*pickpolicy.Resolution
	for i := range resolutions {
		if resolutions[i].State == pickpolicy.Unresolved {
			pending = append(pending, &resolutions[i])
		}
	}
	return pending
}
