package scan_test

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"bookvert/internal/scan"
)

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
	if err := os.WriteFile(path, make([]byte, size), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestScanGroupsPagesByDirectory(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Title - 1", "002.jpg"), 30)
	writeFile(t, filepath.Join(root, "Title - 1", "001.jpg"), 20)
	writeFile(t, filepath.Join(root, "Title - 2", "001.png"), 40)
	writeFile(t, filepath.Join(root, "Title - 2", "notes.txt"), 5)

	bs, err := scan.Scan(scan.Options{Roots: []string{root}})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(bs) != 2 {
		t.Fatalf("got %d books, want 2", len(bs))
	}
	if bs[0].RawName != "Title - 1" || bs[1].RawName != "Title - 2" {
		t.Fatalf("book order: %q, %q", bs[0].RawName, bs[1].RawName)
	}
	if len(bs[0].Pages) != 2 {
		t.Fatalf("Title - 1 has %d pages, want 2", len(bs[0].Pages))
	}
	if filepath.Base(bs[0].Pages[0].Path) != "001.jpg" {
		t.Fatalf("pages not sorted: first is %s", bs[0].Pages[0].Path)
	}
	if len(bs[1].Pages) != 1 {
		t.Fatalf("non-image file counted as page: %d pages", len(bs[1].Pages))
	}
}

func TestScanAssignsSequentialPageNames(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Book", "a.jpeg"), 1)
	writeFile(t, filepath.Join(root, "Book", "b.TIFF"), 1)
	writeFile(t, filepath.Join(root, "Book", "c.png"), 1)

	bs, err := scan.Scan(scan.Options{Roots: []string{root}})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	want := []string{"p000.jpg", "p001.tif", "p002.png"}
	for i, name := range want {
		if bs[0].Pages[i].Name != name {
			t.Fatalf("page %d named %q, want %q", i, bs[0].Pages[i].Name, name)
		}
	}
}

func TestScanSkipsMatchingDirectories(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Keep - 1", "001.jpg"), 1)
	writeFile(t, filepath.Join(root, "Keep - 1 (raw)", "001.jpg"), 1)

	bs, err := scan.Scan(scan.Options{
		Roots: []string{root},
		Skip:  []*regexp.Regexp{regexp.MustCompile(`\(raw\)`)},
	})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(bs) != 1 || bs[0].RawName != "Keep - 1" {
		t.Fatalf("skip pattern not applied: %+v", bs)
	}
}

func TestScanMissingRootFails(t *testing.T) {
	if _, err := scan.Scan(scan.Options{Roots: []string{filepath.Join(t.TempDir(), "absent")}}); err == nil {
		t.Fatal("expected error for missing root")
	}
}

func TestCandidateTotalsBytesAndPages(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Book", "001.jpg"), 100)
	writeFile(t, filepath.Join(root, "Book", "002.jpg"), 150)

	bs, err := scan.Scan(scan.Options{Roots: []string{root}})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	c := bs[0].Candidate()
	if c.PageCount != 2 || c.Bytes != 250 {
		t.Fatalf("candidate = %+v", c)
	}
	if c.RawName != "Book" {
		t.Fatalf("raw name = %q", c.RawName)
	}
}

func TestExtensionSetNormalizes(t *testing.T) {
	set := scan.ExtensionSet([]string{".JPEG", "tiff", " png "})
	for _, want := range []string{"jpg", "tif", "png"} {
		if _, ok := set[want]; !ok {
			t.Fatalf("set missing %q: %v", want, set)
		}
	}
	if len(set) != 3 {
		t.Fatalf("set = %v", set)
	}
}
