// Package books models scanned book directories and groups them into
// catalogues.
//
// A Candidate is one directory of page images together with the numeric
// identity extracted from its name. Candidates sharing an identity compete
// for the same catalogue slot; Group partitions a scan result into
// catalogues so the pick-policy layer can choose exactly one candidate per
// catalogue. Grouping is deterministic: catalogues keep scan encounter
// order and members are ordered by raw name.
package books
