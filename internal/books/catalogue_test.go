package books_test

import (
	"testing"

	"bookvert/internal/books"
)

func candidate(path, name string, pages int) books.Candidate {
	return books.NewCandidate(path, name, pages, int64(pages)*100)
}

func TestGroupPartitionsByIdentity(t *testing.T) {
	candidates := []books.Candidate{
		candidate("/a/Title - 1", "Title - 1", 10),
		candidate("/a/Title - 2", "Title - 2", 11),
		candidate("/b/Title - 1 - Fix", "Title - 1 - Fix", 9),
	}

	// "Title - 1" and "Title - 1 - Fix" share identity [1]; the fix
	// suffix carries no digits.
	cats := books.Group(candidates)
	if len(cats) != 2 {
		t.Fatalf("expected 2 catalogues, got %d", len(cats))
	}

	total := 0
	seen := make(map[string]int)
	for _, cat := range cats {
		total += len(cat.Members)
		seen[cat.Identity.Key()]++
		for _, m := range cat.Members {
			if !m.Identity.Equal(cat.Identity) {
				t.Fatalf("member %q has identity %v in catalogue %v", m.RawName, m.Identity, cat.Identity)
			}
		}
	}
	if total != len(candidates) {
		t.Fatalf("grouping lost candidates: %d of %d", total, len(candidates))
	}
	for key, count := range seen {
		if count != 1 {
			t.Fatalf("identity %q appears in %d catalogues", key, count)
		}
	}
}

func TestGroupMergesEqualIdentities(t *testing.T) {
	candidates := []books.Candidate{
		candidate("/x/Title - 1", "Title - 1", 10),
		candidate("/y/Title - 1 - Fix", "Title - 1 - Fix", 12),
	}
	cats := books.Group(candidates)
	if len(cats) != 1 {
		t.Fatalf("expected 1 catalogue, got %d", len(cats))
	}
	if !cats[0].Ambiguous() {
		t.Fatal("expected catalogue to be ambiguous")
	}
}

func TestGroupPreservesEncounterOrder(t *testing.T) {
	candidates := []books.Candidate{
		candidate("/s/Series 5", "Series 5", 1),
		candidate("/s/Series 2", "Series 2", 1),
		candidate("/s/Series 9", "Series 9", 1),
		candidate("/s/Series 2 v2", "Series 2 v2", 1),
	}
	cats := books.Group(candidates)
	want := []string{"5", "2", "9"}
	if len(cats) != len(want) {
		t.Fatalf("expected %d catalogues, got %d", len(want), len(cats))
	}
	for i, cat := range cats {
		if cat.Identity.Key() != want[i] {
			t.Fatalf("catalogue %d has key %q, want %q", i, cat.Identity.Key(), want[i])
		}
	}
}

func TestGroupSortsMembersByRawName(t *testing.T) {
	candidates := []books.Candidate{
		candidate("/z/Series 1 v2", "Series 1 v2", 1),
		candidate("/z/Series 1", "Series 1", 1),
		candidate("/z/Series 1 - Fix", "Series 1 - Fix", 1),
	}
	cats := books.Group(candidates)
	if len(cats) != 1 {
		t.Fatalf("expected 1 catalogue, got %d", len(cats))
	}
	got := make([]string, 0, len(cats[0].Members))
	for _, m := range cats[0].Members {
		got = append(got, m.RawName)
	}
	want := []string{"Series 1", "Series 1 - Fix", "Series 1 v2"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("member order %v, want %v", got, want)
		}
	}
}

func TestGroupDigitlessCandidatesStaySingletons(t *testing.T) {
	candidates := []books.Candidate{
		candidate("/n/Extras", "Extras", 3),
		candidate("/n/Omake", "Omake", 4),
		candidate("/n/Series 1", "Series 1", 5),
	}
	cats := books.Group(candidates)
	if len(cats) != 3 {
		t.Fatalf("expected 3 catalogues, got %d", len(cats))
	}
	singles := 0
	for _, cat := range cats {
		if cat.Identity.Empty() {
			singles++
			if len(cat.Members) != 1 {
				t.Fatalf("digitless catalogue has %d members", len(cat.Members))
			}
		}
	}
	if singles != 2 {
		t.Fatalf("expected 2 digitless singleton catalogues, got %d", singles)
	}
}
