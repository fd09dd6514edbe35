// Package resolve combines per-catalogue resolutions into the final
// book-to-archive mapping handed to the archive builder.
//
// Every catalogue must end in a selection; unresolved and failed
// catalogues are collected into one aggregate error so the operator sees
// the whole picture at once. Output names combine the series title with
// the catalogue's leading number, and collisions between catalogues that
// would write the same archive are rejected rather than overwritten.
package resolve
