package warehouse

import (
	"container/heap"
	"fmt"
	"math"
	"slices"
	"strings"
)

// Route is a path through the warehouse and its total walking cost.
type Route struct {
	Stops    []LocationID
	Distance float64
}

// Aisles returns the consecutive (from, to) pairs walked along the route.
func (r Route) Aisles() [][2]LocationID {
	if len(r.Stops) < 2 {
		return nil
	}
	out := make([][2]LocationID, 0, len(r.Stops)-1)
	for i := 1; i < len(r.Stops); i++ {
		out = append(out, [2]LocationID{r.Stops[i-1], r.Stops[i]})
	}
	return out
}

func (r Route) String() string {
	parts := make([]string, len(r.Stops))
	for i, id := range r.Stops {
		parts[i] = fmt.Sprint(int(id))
	}
	return fmt.Sprintf("%s (%.2f)", strings.Join(parts, " -> "), r.Distance)
}

// ShortestPaths runs Dijkstra's algorithm from src. It returns the distance
// to every location, +Inf for unreachable ones, and the predecessor of every
// reached location other than src.
func (w *Warehouse) ShortestPaths(src LocationID) (map[LocationID]float64, map[LocationID]LocationID, error) {
	if _, ok := w.locations[src]; !ok {
		return nil, nil, fmt.Errorf("%w: %d", ErrUnknownLocation, src)
	}

	dist := make(map[LocationID]float64, len(w.locations))
	parent := make(map[LocationID]LocationID, len(w.locations))
	for id := range w.locations {
		dist[id] = math.Inf(1)
	}
	dist[src] = 0

	pq := &routePQ{}
	heap.Push(pq, &routeItem{id: src, dist: 0})

	for pq.Len() > 0 {
		u := heap.Pop(pq).(*routeItem)
		if u.dist > dist[u.id] {
			continue
		}
		for _, a := range w.Neighbors(u.id) {
			alt := u.dist + a.Weight
			if alt < dist[a.To] {
				dist[a.To] = alt
				parent[a.To] = u.id
				heap.Push(pq, &routeItem{id: a.To, dist: alt})
			}
		}
	}
	return dist, parent, nil
}

// ShortestPath returns the cheapest route from src to dst. A location is
// always reachable from itself with a single-stop route of distance 0.
func (w *Warehouse) ShortestPath(src, dst LocationID) (Route, error) {
	if _, ok := w.locations[dst]; !ok {
		return Route{}, fmt.Errorf("%w: %d", ErrUnknownLocation, dst)
	}
	dist, parent, err := w.ShortestPaths(src)
	if err != nil {
		return Route{}, err
	}
	if math.IsInf(dist[dst], 1) {
		return Route{}, fmt.Errorf("%w from %d to %d", ErrNoRoute, src, dst)
	}

	stops := []LocationID{dst}
	for at := dst; at != src; {
		at = parent[at]
		stops = append(stops, at)
	}
	slices.Reverse(stops)
	return Route{Stops: stops, Distance: dist[dst]}, nil
}

// routeItem is a queue entry for Dijkstra. Stale entries are skipped on pop
// instead of being decreased in place.
type routeItem struct {
	id   LocationID
	dist float64
}

// routePQ implements heap.Interface ordered by distance, then ID.
type routePQ []*routeItem

func (pq routePQ) Len() int { return len(pq) }
func (pq routePQ) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}
	return pq[i].id < pq[j].id
}
func (pq routePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }
func (pq *routePQ) Push(x any) {
	*pq = append(*pq, x.(*routeItem))
}
func (pq *routePQ) Pop() any {
	old := *pq
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]
	return it
}
