package books_test

import (
	"testing"

	"bookvert/internal/books"
)

func TestParseIdentity(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want books.Identity
	}{
		{"single number", "Chapter 1 - Fix", books.Identity{1}},
		{"two numbers", "Vol02-Ch10", books.Identity{2, 10}},
		{"no numbers", "NoNumbers", nil},
		{"leading zeros", "007", books.Identity{7}},
		{"all zeros", "000", books.Identity{0}},
		{"digits split by text", "1a2b3", books.Identity{1, 2, 3}},
		{"trailing text ignored", "3 (scans)", books.Identity{3}},
		{"empty", "", nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := books.ParseIdentity(tc.in)
			if !got.Equal(tc.want) {
				t.Fatalf("ParseIdentity(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestIdentitySeparatorsDoNotMatter(t *testing.T) {
	a := books.ParseIdentity("Title - 1 - 2")
	b := books.ParseIdentity("Title_1_2 extra")
	if !a.Equal(b) {
		t.Fatalf("expected %v and %v to be equal", a, b)
	}
}

func TestIdentityKeyAndString(t *testing.T) {
	id := books.ParseIdentity("Vol02-Ch10")
	if got := id.Key(); got != "2.10" {
		t.Fatalf("Key() = %q, want %q", got, "2.10")
	}
	var empty books.Identity
	if got := empty.String(); got != "-" {
		t.Fatalf("empty String() = %q, want %q", got, "-")
	}
	if empty.Key() != "" {
		t.Fatalf("empty Key() should be empty, got %q", empty.Key())
	}
}

func TestIdentityLeading(t *testing.T) {
	id := books.ParseIdentity("Vol02-Ch10")
	n, ok := id.Leading()
	if !ok || n != 2 {
		t.Fatalf("Leading() = %d, %v; want 2, true", n, ok)
	}
	if _, ok := books.ParseIdentity("x").Leading(); ok {
		t.Fatal("expected no leading number for digitless name")
	}
}

func TestNewCandidateDerivesIdentity(t *testing.T) {
	cand := books.NewCandidate("/scans/Title - 3", "Title - 3", 12, 4096)
	if !cand.Identity.Equal(books.Identity{3}) {
		t.Fatalf("unexpected identity: %v", cand.Identity)
	}
	if cand.PageCount != 12 || cand.Bytes != 4096 {
		t.Fatalf("unexpected candidate fields: %+v", cand)
	}
}
