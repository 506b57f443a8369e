package core_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aretw0/marginalia/pkg/core"
)

func record(id, filePath, memo string) core.Record {
	return core.Record{
		ID:             id,
		FilePath:       filePath,
		StartLine:      9,
		StartCharacter: 0,
		EndLine:        11,
		EndCharacter:   5,
		Memo:           memo,
		SelectedText:   "selected",
	}
}

func TestStore_Add(t *testing.T) {
	t.Run("Appears In Both Views", func(t *testing.T) {
		s := core.NewStore(nil)

		if err := s.Add("Review", record("a", "src/app.ts", "check null guard")); err != nil {
			t.Fatalf("Add failed: %v", err)
		}

		byFile := s.ByFilePath("src/app.ts")
		if len(byFile) != 1 || byFile[0].Record.ID != "a" || byFile[0].Set != "Review" {
			t.Errorf("unexpected file view: %+v", byFile)
		}

		bySet := s.BySet("Review")
		if len(bySet) != 1 || bySet[0].Record.ID != "a" {
			t.Errorf("unexpected set view: %+v", bySet)
		}
	})

	t.Run("Rejects Duplicate ID", func(t *testing.T) {
		s := core.NewStore(nil)

		if err := s.Add("Review", record("a", "src/app.ts", "first")); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		err := s.Add("Other", record("a", "src/other.ts", "second"))
		if !errors.Is(err, core.ErrDuplicateID) {
			t.Errorf("expected ErrDuplicateID, got %v", err)
		}
		if s.Len() != 1 {
			t.Errorf("expected 1 record, got %d", s.Len())
		}
	})

	t.Run("Allows Duplicate Memo Text", func(t *testing.T) {
		s := core.NewStore(nil)

		_ = s.Add("Review", record("a", "src/app.ts", "same text"))
		if err := s.Add("Review", record("b", "src/app.ts", "same text")); err != nil {
			t.Fatalf("Add with duplicate memo text failed: %v", err)
		}
		if s.Len() != 2 {
			t.Errorf("expected 2 records, got %d", s.Len())
		}
	})

	t.Run("Preserves Insertion Order", func(t *testing.T) {
		s := core.NewStore(nil)

		for i := 0; i < 5; i++ {
			id := fmt.Sprintf("id-%d", i)
			if err := s.Add("Review", record(id, "src/app.ts", "memo")); err != nil {
				t.Fatalf("Add failed: %v", err)
			}
		}

		got := s.ByFilePath("src/app.ts")
		for i, tagged := range got {
			want := fmt.Sprintf("id-%d", i)
			if tagged.Record.ID != want {
				t.Errorf("position %d: expected %s, got %s", i, want, tagged.Record.ID)
			}
		}
	})
}

func TestStore_Update(t *testing.T) {
	t.Run("Preserves Identity Set And Position", func(t *testing.T) {
		s := core.NewStore(nil)
		_ = s.Add("Review", record("a", "src/app.ts", "one"))
		_ = s.Add("Review", record("b", "src/app.ts", "two"))

		updated := record("b", "src/app.ts", "fixed")
		if err := s.Update("b", updated); err != nil {
			t.Fatalf("Update failed: %v", err)
		}

		got, ok := s.Find("src/app.ts", "b")
		if !ok {
			t.Fatal("record not found after update")
		}
		if got.Record.Memo != "fixed" {
			t.Errorf("expected memo 'fixed', got '%s'", got.Record.Memo)
		}
		if got.Set != "Review" {
			t.Errorf("expected set 'Review', got '%s'", got.Set)
		}

		// Position in the file bucket must not move.
		byFile := s.ByFilePath("src/app.ts")
		if byFile[1].Record.ID != "b" {
			t.Errorf("expected 'b' at position 1, got '%s'", byFile[1].Record.ID)
		}
	})

	t.Run("Not Found", func(t *testing.T) {
		s := core.NewStore(nil)

		err := s.Update("ghost", record("ghost", "src/app.ts", "boo"))
		if !errors.Is(err, core.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Rejects File Path Change", func(t *testing.T) {
		s := core.NewStore(nil)
		_ = s.Add("Review", record("a", "src/app.ts", "one"))

		err := s.Update("a", record("a", "src/other.ts", "one"))
		if !errors.Is(err, core.ErrFilePathMismatch) {
			t.Errorf("expected ErrFilePathMismatch, got %v", err)
		}

		// Store untouched.
		got, _ := s.Find("src/app.ts", "a")
		if got.Record.FilePath != "src/app.ts" {
			t.Errorf("record was mutated: %+v", got.Record)
		}
	})
}

func TestStore_Delete(t *testing.T) {
	t.Run("Removes Exactly One", func(t *testing.T) {
		s := core.NewStore(nil)
		_ = s.Add("Review", record("a", "src/app.ts", "one"))
		_ = s.Add("Review", record("b", "src/app.ts", "two"))

		if err := s.Delete("a", "src/app.ts"); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}

		if _, ok := s.Find("src/app.ts", "a"); ok {
			t.Error("deleted record still findable")
		}
		if s.Len() != 1 {
			t.Errorf("expected 1 record, got %d", s.Len())
		}
		if got := s.BySet("Review"); len(got) != 1 || got[0].Record.ID != "b" {
			t.Errorf("unexpected set view after delete: %+v", got)
		}
	})

	t.Run("Not Found On Wrong File Path", func(t *testing.T) {
		s := core.NewStore(nil)
		_ = s.Add("Review", record("a", "src/app.ts", "one"))

		err := s.Delete("a", "src/other.ts")
		if !errors.Is(err, core.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
		if s.Len() != 1 {
			t.Errorf("record was removed despite mismatched path")
		}
	})

	t.Run("Empty Set Disappears", func(t *testing.T) {
		s := core.NewStore(nil)
		_ = s.Add("Review", record("a", "src/app.ts", "one"))

		_ = s.Delete("a", "src/app.ts")

		if sets := s.Sets(); len(sets) != 0 {
			t.Errorf("expected no sets, got %v", sets)
		}
	})
}

// TestStore_ViewAgreement checks that the file buckets and set projections
// partition All() consistently after a mixed mutation sequence.
func TestStore_ViewAgreement(t *testing.T) {
	s := core.NewStore(nil)

	_ = s.Add("Review", record("a", "src/app.ts", "one"))
	_ = s.Add("Review", record("b", "src/util.ts", "two"))
	_ = s.Add("Perf", record("c", "src/app.ts", "three"))
	_ = s.Update("b", record("b", "src/util.ts", "two updated"))
	_ = s.Delete("a", "src/app.ts")
	_ = s.Add("Perf", record("d", "src/app.ts", "four"))

	all := s.All()
	if len(all) != 3 {
		t.Fatalf("expected 3 records, got %d", len(all))
	}

	seenInFiles := make(map[string]int)
	for _, tagged := range all {
		for _, fileTagged := range s.ByFilePath(tagged.Record.FilePath) {
			if fileTagged.Record.ID == tagged.Record.ID {
				seenInFiles[tagged.Record.ID]++
			}
		}
	}
	seenInSets := make(map[string]int)
	for _, set := range s.Sets() {
		for _, setTagged := range s.BySet(set) {
			seenInSets[setTagged.Record.ID]++
		}
	}

	for _, tagged := range all {
		id := tagged.Record.ID
		if seenInFiles[id] != 1 {
			t.Errorf("record %s appears %d times across file buckets", id, seenInFiles[id])
		}
		if seenInSets[id] != 1 {
			t.Errorf("record %s appears %d times across set projections", id, seenInSets[id])
		}
	}
}

func TestStore_Seed(t *testing.T) {
	index := map[string][]core.Tagged{
		"src/b.ts": {
			{Set: "Review", Record: record("b1", "src/b.ts", "one")},
		},
		"src/a.ts": {
			{Set: "Review", Record: record("a1", "src/a.ts", "two")},
			{Set: "Perf", Record: record("a2", "src/a.ts", "three")},
		},
	}

	s := core.NewStore(nil)
	s.Seed(index)

	if s.Len() != 3 {
		t.Fatalf("expected 3 records, got %d", s.Len())
	}

	// Deterministic: sorted by file path, then input order within a file.
	all := s.All()
	wantOrder := []string{"a1", "a2", "b1"}
	for i, id := range wantOrder {
		if all[i].Record.ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, all[i].Record.ID)
		}
	}

	// Seeding again resets rather than accumulates.
	s.Seed(index)
	if s.Len() != 3 {
		t.Errorf("expected 3 records after reseed, got %d", s.Len())
	}
}

func TestNewID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 10000; i++ {
		id := core.NewID()
		if seen[id] {
			t.Fatalf("duplicate id generated: %s", id)
		}
		seen[id] = true
	}
}

func TestTruncate(t *testing.T) {
	cases := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exactly-10", 10, "exactly-10"},
		{"this is too long", 10, "this is to..."},
		{"", 5, ""},
		{"日本語のメモです", 3, "日本語..."},
	}

	for _, c := range cases {
		if got := core.Truncate(c.in, c.n); got != c.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", c.in, c.n, got, c.want)
		}
	}
}

func TestNormalizeTitle(t *testing.T) {
	if got := core.NormalizeTitle("a/b\\c"); got != "a_b_c" {
		t.Errorf("expected 'a_b_c', got '%s'", got)
	}
}
