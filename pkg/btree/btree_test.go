package btree

import (
	"errors"
	"reflect"
	"slices"
	"testing"
)

func mustTree[K string | int, V any](t *testing.T, order int) *Tree[K, V] {
	t.Helper()
	tr, err := New[K, V](order)
	if err != nil {
		t.Fatalf("New(%d) error: %v", order, err)
	}
	return tr
}

func mustValidate[K string | int, V any](t *testing.T, tr *Tree[K, V]) {
	t.Helper()
	if err := tr.Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
}

func TestNew_InvalidOrder(t *testing.T) {
	for _, order := range []int{-1, 0, 1, 2} {
		_, err := New[int, int](order)
		if !errors.Is(err, ErrInvalidOrder) {
			t.Errorf("New(%d) error = %v, want ErrInvalidOrder", order, err)
		}
	}
}

func TestNew_ValidOrder(t *testing.T) {
	tr := mustTree[int, int](t, MinOrder)
	if tr.Order() != 3 {
		t.Errorf("Order() = %d, want 3", tr.Order())
	}
	if tr.Len() != 0 {
		t.Errorf("Len() = %d, want 0", tr.Len())
	}
	if tr.Height() != 1 {
		t.Errorf("Height() = %d, want 1", tr.Height())
	}
	mustValidate(t, tr)
}

func TestMustNew_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustNew(2) did not panic")
		}
	}()
	MustNew[int, int](2)
}

func TestOccupancyBounds(t *testing.T) {
	tests := []struct {
		order, maxKeys, minKeys int
	}{
		{3, 2, 1},
		{4, 3, 1},
		{5, 4, 2},
		{6, 5, 2},
		{7, 6, 3},
	}
	for _, tt := range tests {
		tr := MustNew[int, int](tt.order)
		if got := tr.maxKeys(); got != tt.maxKeys {
			t.Errorf("order %d: maxKeys() = %d, want %d", tt.order, got, tt.maxKeys)
		}
		if got := tr.minKeys(); got != tt.minKeys {
			t.Errorf("order %d: minKeys() = %d, want %d", tt.order, got, tt.minKeys)
		}
	}
}

func TestSearch_Empty(t *testing.T) {
	tr := mustTree[string, int](t, 5)
	if v, ok := tr.Search("x"); ok || v != 0 {
		t.Errorf("Search(x) = (%v, %v), want (0, false)", v, ok)
	}
}

func TestInsert_OrderFiveScenario(t *testing.T) {
	tr := mustTree[string, string](t, 5)

	for _, k := range []string{"100", "200", "101", "102"} {
		tr.Insert(k, "v"+k)
	}
	if tr.Height() != 1 {
		t.Fatalf("Height() after 4 inserts = %d, want 1", tr.Height())
	}

	tr.Insert("103", "v103")
	if tr.Height() != 2 {
		t.Fatalf("Height() after 5th insert = %d, want 2", tr.Height())
	}
	want := [][][]string{
		{{"102"}},
		{{"100", "101"}, {"103", "200"}},
	}
	if got := tr.Shape(); !reflect.DeepEqual(got, want) {
		t.Errorf("Shape() = %v, want %v", got, want)
	}

	tr.Insert("300", "v300")
	mustValidate(t, tr)
	if tr.Height() != 2 {
		t.Errorf("Height() = %d, want 2", tr.Height())
	}
	if root := tr.Shape()[0]; len(root) != 1 || len(root[0]) != 1 {
		t.Errorf("root = %v, want a single promoted key", root)
	}

	for _, k := range []string{"100", "101", "102", "103", "200", "300"} {
		if v, ok := tr.Search(k); !ok || v != "v"+k {
			t.Errorf("Search(%q) = (%q, %v), want (%q, true)", k, v, ok, "v"+k)
		}
	}
	if _, ok := tr.Search("999"); ok {
		t.Error("Search(999) found a key that was never inserted")
	}
}

func TestInsert_OrderThreeGrowth(t *testing.T) {
	tr := mustTree[int, int](t, 3)
	for i := 1; i <= 7; i++ {
		tr.Insert(i, i*10)
		mustValidate(t, tr)
	}
	want := [][][]int{
		{{4}},
		{{2}, {6}},
		{{1}, {3}, {5}, {7}},
	}
	if got := tr.Shape(); !reflect.DeepEqual(got, want) {
		t.Errorf("Shape() = %v, want %v", got, want)
	}
	if tr.Height() != 3 {
		t.Errorf("Height() = %d, want 3", tr.Height())
	}
}

func TestInsert_Overwrite(t *testing.T) {
	tr := mustTree[string, int](t, 4)
	for i, k := range []string{"a", "b", "c", "d", "e", "f"} {
		tr.Insert(k, i)
	}
	before := tr.Len()

	// "d" sits in an internal node after the splits above.
	tr.Insert("d", 100)
	tr.Insert("f", 200)

	if tr.Len() != before {
		t.Errorf("Len() = %d after overwrite, want %d", tr.Len(), before)
	}
	if v, _ := tr.Search("d"); v != 100 {
		t.Errorf("Search(d) = %d, want 100", v)
	}
	if v, _ := tr.Search("f"); v != 200 {
		t.Errorf("Search(f) = %d, want 200", v)
	}
	mustValidate(t, tr)
}

// buildOrderThree inserts keys into a fresh order-3 tree.
func buildOrderThree(t *testing.T, keys ...int) *Tree[int, int] {
	t.Helper()
	tr := mustTree[int, int](t, 3)
	for _, k := range keys {
		tr.Insert(k, k)
	}
	mustValidate(t, tr)
	return tr
}

func TestDelete_Rebalancing(t *testing.T) {
	tests := []struct {
		name   string
		keys   []int
		delete int
		want   [][][]int
	}{
		{
			name:   "leaf without underflow",
			keys:   []int{1, 2, 3, 4, 5, 0},
			delete: 0,
			want:   [][][]int{{{2, 4}}, {{1}, {3}, {5}}},
		},
		{
			name:   "borrow from left sibling",
			keys:   []int{1, 2, 3, 4, 5, 0},
			delete: 3,
			want:   [][][]int{{{1, 4}}, {{0}, {2}, {5}}},
		},
		{
			name:   "borrow from right sibling",
			keys:   []int{1, 2, 3, 4, 5, 6},
			delete: 3,
			want:   [][][]int{{{2, 5}}, {{1}, {4}, {6}}},
		},
		{
			name:   "internal key replaced by predecessor",
			keys:   []int{1, 2, 3, 4, 5, 0},
			delete: 2,
			want:   [][][]int{{{1, 4}}, {{0}, {3}, {5}}},
		},
		{
			name:   "internal key replaced by successor",
			keys:   []int{1, 2, 3, 4, 5, 6},
			delete: 4,
			want:   [][][]int{{{2, 5}}, {{1}, {3}, {6}}},
		},
		{
			name:   "internal key with minimal children merges",
			keys:   []int{1, 2, 3, 4, 5},
			delete: 2,
			want:   [][][]int{{{4}}, {{1, 3}, {5}}},
		},
		{
			name:   "internal key with minimal children merges despite spare sibling",
			keys:   []int{1, 2, 3, 4, 5, 0},
			delete: 4,
			want:   [][][]int{{{2}}, {{0, 1}, {3, 5}}},
		},
		{
			name:   "merge cascades and shrinks root",
			keys:   []int{1, 2, 3, 4, 5, 6, 7},
			delete: 1,
			want:   [][][]int{{{4, 6}}, {{2, 3}, {5}, {7}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := buildOrderThree(t, tt.keys...)
			if !tr.Delete(tt.delete) {
				t.Fatalf("Delete(%d) = false, want true", tt.delete)
			}
			mustValidate(t, tr)
			if got := tr.Shape(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Shape() = %v, want %v", got, tt.want)
			}
			if _, ok := tr.Search(tt.delete); ok {
				t.Errorf("Search(%d) still finds deleted key", tt.delete)
			}
			if tr.Len() != len(tt.keys)-1 {
				t.Errorf("Len() = %d, want %d", tr.Len(), len(tt.keys)-1)
			}
		})
	}
}

func TestDelete_MissingKeyLeavesTreeUnchanged(t *testing.T) {
	tr := buildOrderThree(t, 1, 2, 3, 4, 5, 6, 7, 8, 9)
	shape := tr.Shape()
	entries := collect(tr)

	for _, k := range []int{0, 10, -5, 100} {
		if tr.Delete(k) {
			t.Errorf("Delete(%d) = true for absent key", k)
		}
	}

	if got := tr.Shape(); !reflect.DeepEqual(got, shape) {
		t.Errorf("Shape() changed after failed deletes: %v, want %v", got, shape)
	}
	if got := collect(tr); !reflect.DeepEqual(got, entries) {
		t.Errorf("entries changed after failed deletes: %v, want %v", got, entries)
	}
	if tr.Len() != 9 {
		t.Errorf("Len() = %d, want 9", tr.Len())
	}
}

func TestDelete_Empty(t *testing.T) {
	tr := mustTree[string, int](t, 5)
	if tr.Delete("x") {
		t.Error("Delete on empty tree returned true")
	}
	mustValidate(t, tr)
}

func TestDelete_AllKeys(t *testing.T) {
	for _, order := range []int{3, 4, 5, 6, 9} {
		tr := MustNew[int, int](order)
		for i := range 200 {
			tr.Insert(i, i)
		}
		// Interleave from both ends to exercise both borrow directions.
		for lo, hi := 0, 199; lo <= hi; lo, hi = lo+1, hi-1 {
			if !tr.Delete(lo) {
				t.Fatalf("order %d: Delete(%d) = false", order, lo)
			}
			if lo != hi && !tr.Delete(hi) {
				t.Fatalf("order %d: Delete(%d) = false", order, hi)
			}
			mustValidate(t, tr)
		}
		if tr.Len() != 0 {
			t.Errorf("order %d: Len() = %d, want 0", order, tr.Len())
		}
		if tr.Height() != 1 {
			t.Errorf("order %d: Height() = %d, want 1", order, tr.Height())
		}
		for i := range 200 {
			if _, ok := tr.Search(i); ok {
				t.Fatalf("order %d: Search(%d) found deleted key", order, i)
			}
		}
	}
}

func TestMinMax(t *testing.T) {
	tr := mustTree[int, string](t, 4)
	if _, _, ok := tr.Min(); ok {
		t.Error("Min() on empty tree returned ok")
	}
	if _, _, ok := tr.Max(); ok {
		t.Error("Max() on empty tree returned ok")
	}

	for _, k := range []int{50, 10, 90, 30, 70, 20, 80} {
		tr.Insert(k, "x")
	}
	if k, _, ok := tr.Min(); !ok || k != 10 {
		t.Errorf("Min() = %d, %v, want 10, true", k, ok)
	}
	if k, _, ok := tr.Max(); !ok || k != 90 {
		t.Errorf("Max() = %d, %v, want 90, true", k, ok)
	}
}

func TestAll_InOrderAndRestartable(t *testing.T) {
	tr := mustTree[int, int](t, 5)
	keys := []int{42, 7, 19, 3, 88, 61, 25, 14, 70, 1, 56}
	for _, k := range keys {
		tr.Insert(k, -k)
	}
	want := slices.Sorted(slices.Values(keys))

	for pass := range 2 {
		var got []int
		for k, v := range tr.All() {
			if v != -k {
				t.Fatalf("pass %d: value for %d = %d, want %d", pass, k, v, -k)
			}
			got = append(got, k)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("pass %d: All() keys = %v, want %v", pass, got, want)
		}
	}

	if got := slices.Collect(tr.Keys()); !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
}

func TestAll_EarlyStop(t *testing.T) {
	tr := mustTree[int, int](t, 3)
	for i := range 50 {
		tr.Insert(i, i)
	}
	var seen []int
	for k := range tr.All() {
		if k == 5 {
			break
		}
		seen = append(seen, k)
	}
	if want := []int{0, 1, 2, 3, 4}; !reflect.DeepEqual(seen, want) {
		t.Errorf("seen = %v, want %v", seen, want)
	}
}

func TestValidate_DetectsCorruption(t *testing.T) {
	tests := []struct {
		name    string
		corrupt func(tr *Tree[int, int])
	}{
		{
			name:    "unsorted keys",
			corrupt: func(tr *Tree[int, int]) { tr.root.children[0].keys[0] = 99 },
		},
		{
			name:    "underfull child",
			corrupt: func(tr *Tree[int, int]) { tr.root.children[1].removeEntryAt(0) },
		},
		{
			name:    "length mismatch",
			corrupt: func(tr *Tree[int, int]) { tr.length++ },
		},
		{
			name:    "uneven leaf depth",
			corrupt: func(tr *Tree[int, int]) { tr.root.children[0].children = []*node[int, int]{{}, {}} },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := MustNew[int, int](5)
			for i := range 12 {
				tr.Insert(i, i)
			}
			mustValidate(t, tr)
			tt.corrupt(tr)
			if err := tr.Validate(); !errors.Is(err, ErrInvariantViolation) {
				t.Errorf("Validate() = %v, want ErrInvariantViolation", err)
			}
		})
	}
}

func collect[K string | int, V any](tr *Tree[K, V]) map[K]V {
	m := make(map[K]V, tr.Len())
	for k, v := range tr.All() {
		m[k] = v
	}
	return m
}
