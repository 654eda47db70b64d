package cache

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/treep-lang/treep/internal/element"
	"github.com/treep-lang/treep/internal/hm"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "treep-cache.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestGetMissReturnsFalseNotError(t *testing.T) {
	s := openTestStore(t)
	_, found, err := s.Get(Hash("def main() { return 1 }"))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if found {
		t.Fatal("expected a cache miss on an empty store")
	}
}

func TestPutThenGetRoundTrips(t *testing.T) {
	s := openTestStore(t)
	source := `def main() { return 1 }`
	h := Hash(source)
	tree := element.New(element.KindBlock, "", element.NewLiteral(element.TypeInt, "1"))
	runID := uuid.New()

	if err := s.Put(h, tree, hm.Int, runID); err != nil {
		t.Fatalf("Put: %v", err)
	}
	entry, found, err := s.Get(h)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !found {
		t.Fatal("expected a cache hit after Put")
	}
	if !element.Equal(entry.Tree, tree) {
		t.Fatalf("got tree %+v, want %+v", entry.Tree, tree)
	}
	if entry.TypeString != "Int" {
		t.Fatalf("got type string %q, want %q", entry.TypeString, "Int")
	}
	if entry.RunID != runID {
		t.Fatalf("got run id %s, want %s", entry.RunID, runID)
	}
}

func TestPutOverwritesExistingEntry(t *testing.T) {
	s := openTestStore(t)
	h := Hash("same source")
	first := element.New(element.KindBlock, "", element.NewLiteral(element.TypeInt, "1"))
	second := element.New(element.KindBlock, "", element.NewLiteral(element.TypeInt, "2"))

	if err := s.Put(h, first, hm.Int, uuid.New()); err != nil {
		t.Fatalf("first Put: %v", err)
	}
	if err := s.Put(h, second, hm.Int, uuid.New()); err != nil {
		t.Fatalf("second Put: %v", err)
	}
	entry, found, err := s.Get(h)
	if err != nil || !found {
		t.Fatalf("Get after overwrite: found=%v err=%v", found, err)
	}
	if !element.Equal(entry.Tree, second) {
		t.Fatalf("got %+v, want the second Put's tree", entry.Tree)
	}
}

func TestHashIsDeterministicAndContentSensitive(t *testing.T) {
	a := Hash("def main() { return 1 }")
	b := Hash("def main() { return 1 }")
	c := Hash("def main() { return 2 }")
	if a != b {
		t.Fatal("Hash should be deterministic for identical source")
	}
	if a == c {
		t.Fatal("Hash should differ for different source")
	}
}
