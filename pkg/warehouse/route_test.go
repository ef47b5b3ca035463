package warehouse

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestShortestPaths(t *testing.T) {
	w := sampleWarehouse(t)
	dist, parent, err := w.ShortestPaths(1)
	require.NoError(t, err)

	want := map[LocationID]float64{
		1: 0, 20: 4, 21: 4.4, 22: 6.2, 10: 7, 11: 9.4, 12: 9.6, 13: 13.5, 23: 16.5, 2: 17.5,
	}
	require.Len(t, dist, len(want))
	for id, d := range want {
		require.InDelta(t, d, dist[id], 1e-9, "distance to %d", id)
	}
	require.Equal(t, LocationID(13), parent[23], "13->23 beats 22->23")
	require.Equal(t, LocationID(13), parent[2])
	_, hasParent := parent[1]
	require.False(t, hasParent)
}

func TestShortestPaths_Unreachable(t *testing.T) {
	w := sampleWarehouse(t)
	dist, _, err := w.ShortestPaths(2)
	require.NoError(t, err)
	require.Equal(t, 0.0, dist[2])
	require.True(t, math.IsInf(dist[1], 1))
	require.True(t, math.IsInf(dist[23], 1))

	_, _, err = w.ShortestPaths(99)
	require.ErrorIs(t, err, ErrUnknownLocation)
}

func TestShortestPaths_ZeroWeight(t *testing.T) {
	w := New()
	for _, id := range []LocationID{1, 2, 3} {
		_, _ = w.AddLocation(id, "X")
	}
	require.NoError(t, w.Connect(1, 2, 0))
	require.NoError(t, w.Connect(2, 3, 0))
	dist, _, err := w.ShortestPaths(1)
	require.NoError(t, err)
	require.Equal(t, 0.0, dist[3])
}

func TestShortestPath(t *testing.T) {
	w := sampleWarehouse(t)

	r, err := w.ShortestPath(1, 2)
	require.NoError(t, err)
	require.Equal(t, []LocationID{1, 10, 11, 12, 13, 2}, r.Stops)
	require.InDelta(t, 17.5, r.Distance, 1e-9)
	require.Equal(t, "1 -> 10 -> 11 -> 12 -> 13 -> 2 (17.50)", r.String())
	require.Equal(t, [][2]LocationID{{1, 10}, {10, 11}, {11, 12}, {12, 13}, {13, 2}}, r.Aisles())

	r, err = w.ShortestPath(1, 22)
	require.NoError(t, err)
	require.Equal(t, []LocationID{1, 20, 21, 22}, r.Stops)

	r, err = w.ShortestPath(12, 12)
	require.NoError(t, err)
	require.Equal(t, []LocationID{12}, r.Stops)
	require.Zero(t, r.Distance)
	require.Nil(t, r.Aisles())

	_, err = w.ShortestPath(2, 1)
	require.ErrorIs(t, err, ErrNoRoute)
	_, err = w.ShortestPath(1, 99)
	require.ErrorIs(t, err, ErrUnknownLocation)
}

func TestShortestPath_AfterWeightChange(t *testing.T) {
	w := sampleWarehouse(t)
	require.NoError(t, w.UpdateConnection(10, 20, 1.0))
	require.NoError(t, w.UpdateConnection(1, 20, 9.0))

	r, err := w.ShortestPath(1, 21)
	require.NoError(t, err)
	require.Equal(t, []LocationID{1, 10, 20, 21}, r.Stops)
	require.InDelta(t, 8.4, r.Distance, 1e-9)
}
