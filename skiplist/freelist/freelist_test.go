package freelist

import (
	"testing"

	"github.com/Hakuto4838/ArenaSkipList.git/datastream"
	"github.com/Hakuto4838/ArenaSkipList.git/skiplist"
	"github.com/Hakuto4838/ArenaSkipList.git/skiplist/analyTool"
)

func TestFLSkipListInterface(t *testing.T) {
	var _ skiplist.OrderedSet = (*FLSkipList)(nil)
	var _ skiplist.Analyable = (*FLSkipList)(nil)
	var _ skiplist.Nodelike = nodeRef{}
}

func TestInsertSearchDelete(t *testing.T) {
	sl := NewWithSeed(42)

	for _, v := range []skiplist.V{3, 6, 7, 9, 12} {
		sl.Insert(v)
	}

	if !sl.Search(6) {
		t.Error("Search(6) = false, want true")
	}
	if sl.Search(5) {
		t.Error("Search(5) = true, want false")
	}
	if sl.Len() != 5 {
		t.Errorf("Len() = %d, want 5", sl.Len())
	}

	if !sl.Delete(6) {
		t.Error("Delete(6) = false, want true")
	}
	if sl.Search(6) {
		t.Error("Search(6) = true after delete, want false")
	}
	if sl.Len() != 4 {
		t.Errorf("Len() = %d after delete, want 4", sl.Len())
	}
	if sl.Delete(100) {
		t.Error("Delete(100) = true, want false")
	}

	if !analyTool.CheckStruct(sl) {
		t.Error("CheckStruct failed")
	}
}

func TestDuplicateInsert(t *testing.T) {
	sl := NewWithSeed(42)
	sl.Insert(12)
	sl.Insert(12)
	if sl.Len() != 1 {
		t.Errorf("Len() = %d after duplicate insert, want 1", sl.Len())
	}
}

func TestEmptyList(t *testing.T) {
	sl := NewWithSeed(7)
	if !sl.IsEmpty() {
		t.Error("IsEmpty() = false on a fresh list")
	}
	if sl.Search(1) || sl.Delete(1) {
		t.Error("Search/Delete on empty list returned true")
	}
}

// TestSlotReuse 驗證刪除後的 slot 會被後續插入重用，backing array 不增長
func TestSlotReuse(t *testing.T) {
	sl := NewWithSeed(42)
	for i := 0; i < 10; i++ {
		sl.Insert(skiplist.V(i))
	}
	backing := len(sl.nodes)

	for i := 0; i < 10; i += 2 {
		sl.Delete(skiplist.V(i))
	}
	if got := len(sl.free); got != 5 {
		t.Fatalf("free slots = %d after 5 deletes, want 5", got)
	}

	for i := 100; i < 105; i++ {
		sl.Insert(skiplist.V(i))
	}
	if got := len(sl.free); got != 0 {
		t.Errorf("free slots = %d after reuse, want 0", got)
	}
	if len(sl.nodes) != backing {
		t.Errorf("backing array grew: %d -> %d", backing, len(sl.nodes))
	}
	if sl.Len() != 10 {
		t.Errorf("Len() = %d, want 10", sl.Len())
	}
	if !analyTool.CheckStruct(sl) {
		t.Error("CheckStruct failed after slot reuse")
	}
}

func TestRoundTrip(t *testing.T) {
	sl := NewWithSeed(1234)
	gen := datastream.NewUniformDataGenerator(64, 1234)

	inserted := map[skiplist.V]bool{}
	for i := 0; i < 500; i++ {
		v := skiplist.V(gen.Next())
		sl.Insert(v)
		inserted[v] = true
	}
	for v := range inserted {
		if !sl.Delete(v) {
			t.Fatalf("Delete(%d) = false, want true", v)
		}
	}
	if !sl.IsEmpty() || sl.Len() != 0 {
		t.Errorf("list not empty after round trip: len=%d", sl.Len())
	}
	if _, level := sl.GetMaxStats(); level != 0 {
		t.Errorf("level = %d after round trip, want 0", level)
	}
}

func TestMixedZipfWorkload(t *testing.T) {
	gen := datastream.NewZipfDataGenerator(200, 1.5, 1, 42)
	sl := NewWithSeed(42)

	present := map[skiplist.V]bool{}
	for i, idx := range gen.GenerateSequence(3000) {
		v := skiplist.V(idx)
		switch i % 5 {
		case 0, 1, 2:
			sl.Insert(v)
			present[v] = true
		case 3:
			if got := sl.Search(v); got != present[v] {
				t.Fatalf("Search(%d) = %v, want %v", v, got, present[v])
			}
		case 4:
			if got := sl.Delete(v); got != present[v] {
				t.Fatalf("Delete(%d) = %v, want %v", v, got, present[v])
			}
			delete(present, v)
		}
	}

	if sl.Len() != len(present) {
		t.Errorf("Len() = %d, want %d", sl.Len(), len(present))
	}
	if !analyTool.CheckStruct(sl) {
		t.Error("CheckStruct failed after mixed workload")
	}
}
