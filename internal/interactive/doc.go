// Package interactive drives manual disambiguation of catalogues that no
// pick rule resolved.
//
// The protocol is a small state machine: list the remaining ambiguous
// catalogues, let the operator pick one, show its candidates, record the
// choice, and repeat until nothing is left or the operator aborts. The
// operator sits behind the Prompter interface, so the console
// implementation here is replaceable by a scripted prompter in tests or a
// richer UI elsewhere. Resolution is strictly sequential; an abort leaves
// every remaining catalogue unresolved.
package interactive
