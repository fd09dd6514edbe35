package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"bookvert/internal/scan"
)

// ErrExists is returned when the destination archive already exists and
// overwriting was not requested.
var ErrExists = errors.New("archive already exists")

// Options configures one archive build.
type Options struct {
	// Overwrite replaces an existing destination instead of failing.
	Overwrite bool
	// DryRun checks the destination and sources without writing.
	DryRun bool
	// Info, when non-nil, is embedded as ComicInfo.xml. PageCount is
	// filled in from the book when left zero.
	Info *ComicInfo
}

// Build writes the book's pages into a CBZ at dest. The archive is
// assembled in a temporary file next to dest and renamed into place, so
// a failed build never leaves a partial archive behind.
func Build(book *scan.Book, dest string, opts Options) error {
	if _, err := os.Stat(dest); err == nil {
		if !opts.Overwrite {
			return fmt.Errorf("%s: %w", dest, ErrExists)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat %s: %w", dest, err)
	}
	if len(book.Pages) == 0 {
		return fmt.Errorf("%s: no pages to archive", book.Dir)
	}
	if opts.DryRun {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(dest), ".bookvert-*.cbz")
	if err != nil {
		return fmt.Errorf("create temp archive: %w", err)
	}
	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	if err := writeArchive(tmp, book, opts.Info); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp archive: %w", err)
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return fmt.Errorf("move archive into place: %w", err)
	}
	return nil
}

func writeArchive(w io.Writer, book *scan.Book, info *ComicInfo) error {
	zw := zip.NewWriter(w)

	if info != nil {
		ci := *info
		if ci.PageCount == 0 {
			ci.PageCount = len(book.Pages)
		}
		body, err := ci.marshal()
		if err != nil {
			return err
		}
		entry, err := zw.CreateHeader(&zip.FileHeader{Name: comicInfoName, Method: zip.Deflate})
		if err != nil {
			return fmt.Errorf("create %s: %w", comicInfoName, err)
		}
		if _, err := entry.Write(body); err != nil {
			return fmt.Errorf("write %s: %w", comicInfoName, err)
		}
	}

	for _, page := range book.Pages {
		if err := copyPage(zw, page); err != nil {
			return err
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalize archive: %w", err)
	}
	return nil
}

func copyPage(zw *zip.Writer, page scan.Page) error {
	src, err := os.Open(page.Path)
	if err != nil {
		return fmt.Errorf("open page %s: %w", page.Path, err)
	}
	defer src.Close()

	entry, err := zw.CreateHeader(&zip.FileHeader{Name: page.Name, Method: zip.Store})
	if err != nil {
		return fmt.Errorf("create entry %s: %w", page.Name, err)
	}
	if _, err := io.Copy(entry, src); err != nil {
		return fmt.Errorf("write entry %s: %w", page.Name, err)
	}
	return nil
}
