package warehouse

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBFS(t *testing.T) {
	w := sampleWarehouse(t)
	require.Equal(t,
		[]LocationID{1, 10, 20, 11, 21, 12, 22, 13, 23, 2},
		ids(w.BFS(1)))
	require.Equal(t, []LocationID{2}, ids(w.BFS(2)), "dispatch has no outgoing aisles")
	require.Empty(t, w.BFS(99))
}

func TestDFS(t *testing.T) {
	w := sampleWarehouse(t)
	require.Equal(t,
		[]LocationID{1, 10, 11, 12, 13, 2, 23, 22, 20, 21},
		ids(w.DFS(1)))
	require.Equal(t, []LocationID{22, 23, 2}, ids(w.DFS(22)))
	require.Empty(t, w.DFS(99))
}

func TestTraversal_Cycle(t *testing.T) {
	w := New()
	for _, id := range []LocationID{1, 2, 3} {
		_, _ = w.AddLocation(id, "X")
	}
	require.NoError(t, w.Connect(1, 2, 1))
	require.NoError(t, w.Connect(2, 3, 1))
	require.NoError(t, w.Connect(3, 1, 1))

	require.Equal(t, []LocationID{1, 2, 3}, ids(w.BFS(1)))
	require.Equal(t, []LocationID{2, 3, 1}, ids(w.DFS(2)))
}

func TestFind(t *testing.T) {
	w := sampleWarehouse(t)

	tests := []struct {
		name   string
		find   func(string, LocationID) (*Location, bool)
		sku    string
		start  LocationID
		want   LocationID
		wantOK bool
	}{
		{"bfs nearby", bfsFinder(w), "SKU-300", 1, 21, true},
		{"dfs nearby", dfsFinder(w), "SKU-300", 1, 21, true},
		{"bfs second shelf", bfsFinder(w), "SKU-999", 1, 11, true},
		{"dfs deep shelf", dfsFinder(w), "SKU-301", 1, 23, true},
		{"bfs start holds sku", bfsFinder(w), "SKU-100", 10, 10, true},
		{"bfs unreachable", bfsFinder(w), "SKU-100", 2, 0, false},
		{"dfs unknown sku", dfsFinder(w), "SKU-000", 1, 0, false},
		{"bfs unknown start", bfsFinder(w), "SKU-100", 99, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, ok := tt.find(tt.sku, tt.start)
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				require.Equal(t, tt.want, l.ID)
			}
		})
	}
}

func bfsFinder(w *Warehouse) func(string, LocationID) (*Location, bool) {
	return func(sku string, start LocationID) (*Location, bool) {
		l, p, ok := w.FindBFS(sku, start)
		if ok && p.SKU() != sku {
			return nil, false
		}
		return l, ok
	}
}

func dfsFinder(w *Warehouse) func(string, LocationID) (*Location, bool) {
	return func(sku string, start LocationID) (*Location, bool) {
		l, p, ok := w.FindDFS(sku, start)
		if ok && p.SKU() != sku {
			return nil, false
		}
		return l, ok
	}
}

func TestSuggestZone(t *testing.T) {
	_, ok := New().SuggestZone()
	require.False(t, ok)

	w := sampleWarehouse(t)
	id, ok := w.SuggestZone()
	require.True(t, ok)
	require.Equal(t, LocationID(1), id, "several empty locations, lowest ID wins")

	w2 := New()
	a, _ := w2.AddLocation(5, "A")
	b, _ := w2.AddLocation(3, "B")
	fill(t, a, "SKU-1")
	fill(t, b, "SKU-1", "SKU-2")
	id, _ = w2.SuggestZone()
	require.Equal(t, LocationID(5), id)
}
