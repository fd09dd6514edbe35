package scan

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"bookvert/internal/books"
)

// Page is one orderable image inside a book directory. Name is the entry
// name the archive builder uses, assigned in page order.
type Page struct {
	Path string
	Name string
	Size int64
}

// Book couples a candidate directory with its ordered pages.
type Book struct {
	Dir     string
	RawName string
	Pages   []Page
}

// Candidate derives the core candidate record for this book.
func (b *Book) Candidate() books.Candidate {
	var total int64
	for _, p := range b.Pages {
		total += p.Size
	}
	return books.NewCandidate(b.Dir, b.RawName, len(b.Pages), total)
}

// Options configures a scan.
type Options struct {
	// Roots are the directories to search.
	Roots []string
	// Extensions is the accepted set of lowercased image extensions,
	// without dots. Aliases are translated before the lookup.
	Extensions map[string]struct{}
	// Skip drops any directory whose name matches one of the patterns.
	Skip []*regexp.Regexp
}

// DefaultExtensions returns the accepted image extensions.
func DefaultExtensions() map[string]struct{} {
	return ExtensionSet([]string{"jpg", "png", "gif", "bmp", "tif", "webp", "avif"})
}

// ExtensionSet normalizes a configured extension list into a lookup set.
func ExtensionSet(extensions []string) map[string]struct{} {
	set := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		ext = translateExtension(strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), ".")))
		if ext != "" {
			set[ext] = struct{}{}
		}
	}
	return set
}

// translateExtension maps extension spellings to their common forms.
func translateExtension(ext string) string {
	switch ext {
	case "jpeg":
		return "jpg"
	case "tiff":
		return "tif"
	default:
		return ext
	}
}

// Scan walks the roots and returns the discovered books sorted by
// directory path. Each book's pages are in sorted path order and named
// p000.ext, p001.ext, and so on.
func Scan(opts Options) ([]*Book, error) {
	extensions := opts.Extensions
	if len(extensions) == 0 {
		extensions = DefaultExtensions()
	}

	type pageFile struct {
		path string
		ext  string
		size int64
	}
	var files []pageFile

	for _, root := range opts.Roots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if skipDir(opts.Skip, d.Name()) && path != root {
					return filepath.SkipDir
				}
				return nil
			}
			ext := translateExtension(strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")))
			if _, ok := extensions[ext]; !ok {
				return nil
			}
			info, err := d.Info()
			if err != nil {
				return fmt.Errorf("stat %s: %w", path, err)
			}
			files = append(files, pageFile{path: path, ext: ext, size: info.Size()})
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", root, err)
		}
	}

	sort.Slice(files, func(i, j int) bool { return files[i].path < files[j].path })

	byDir := make(map[string]*Book)
	var out []*Book
	for _, file := range files {
		dir := filepath.Dir(file.path)
		name := filepath.Base(dir)
		if skipDir(opts.Skip, name) {
			continue
		}
		book, ok := byDir[dir]
		if !ok {
			book = &Book{Dir: dir, RawName: name}
			byDir[dir] = book
			out = append(out, book)
		}
		book.Pages = append(book.Pages, Page{
			Path: file.path,
			Name: fmt.Sprintf("p%03d.%s", len(book.Pages), file.ext),
			Size: file.size,
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Dir < out[j].Dir })
	return out, nil
}

// Candidates derives the core candidate list from scanned books,
// preserving book order.
func Candidates(bs []*Book) []books.Candidate {
	out := make([]books.Candidate, 0, len(bs))
	for _, b := range bs {
		out = append(out, b.Candidate())
	}
	return out
}

func skipDir(patterns []*regexp.Regexp, name string) bool {
	for _, re := range patterns {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}
