// Package scan discovers book directories under the paths given on the
// command line.
//
// A directory becomes a book candidate when it directly contains files
// with an accepted image extension. Files are collected in sorted path
// order so page numbering and candidate listing are deterministic for a
// given tree, and directories matching a skip pattern are ignored.
package scan
