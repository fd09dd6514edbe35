// Package archive writes comic book archives.
//
// A CBZ is a zip file whose entries are the book's pages in reading
// order, optionally preceded by a ComicInfo.xml metadata document.
// Pages are stored uncompressed since image formats do not recompress.
package archive
