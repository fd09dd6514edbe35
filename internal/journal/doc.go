// Package journal persists conversion run history in SQLite.
//
// Every convert invocation is recorded as a run with one record per
// archive written or attempted, so past conversions can be inspected
// with the history command.
package journal
