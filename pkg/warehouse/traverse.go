package warehouse

import "github.com/matzehuels/shelfgraph/pkg/inventory"

// BFS returns the locations reachable from start in breadth-first order,
// start included. An unknown start yields an empty slice.
func (w *Warehouse) BFS(start LocationID) []*Location {
	first, ok := w.locations[start]
	if !ok {
		return nil
	}
	order := []*Location{}
	visited := map[LocationID]bool{start: true}
	queue := []*Location{first}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		order = append(order, u)
		for _, a := range w.Neighbors(u.ID) {
			if visited[a.To] {
				continue
			}
			visited[a.To] = true
			queue = append(queue, w.locations[a.To])
		}
	}
	return order
}

// DFS returns the locations reachable from start in depth-first preorder,
// start included. Lower neighbour IDs are explored first. An unknown start
// yields an empty slice.
func (w *Warehouse) DFS(start LocationID) []*Location {
	if _, ok := w.locations[start]; !ok {
		return nil
	}
	order := []*Location{}
	visited := make(map[LocationID]bool)
	stack := []LocationID{start}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[id] {
			continue
		}
		visited[id] = true
		order = append(order, w.locations[id])

		next := w.Neighbors(id)
		for i := len(next) - 1; i >= 0; i-- {
			if !visited[next[i].To] {
				stack = append(stack, next[i].To)
			}
		}
	}
	return order
}

// FindBFS returns the first location, in breadth-first order from start,
// whose inventory holds sku.
func (w *Warehouse) FindBFS(sku string, start LocationID) (*Location, *inventory.Product, bool) {
	return find(w.BFS(start), sku)
}

// FindDFS returns the first location, in depth-first order from start,
// whose inventory holds sku.
func (w *Warehouse) FindDFS(sku string, start LocationID) (*Location, *inventory.Product, bool) {
	return find(w.DFS(start), sku)
}

func find(order []*Location, sku string) (*Location, *inventory.Product, bool) {
	for _, l := range order {
		if p, ok := l.Stock.Get(sku); ok {
			return l, p, true
		}
	}
	return nil, nil, false
}

// SuggestZone returns the location holding the fewest distinct products,
// preferring the lowest ID on ties. It reports false for an empty warehouse.
func (w *Warehouse) SuggestZone() (LocationID, bool) {
	var (
		best  *Location
		found bool
	)
	for _, l := range w.Locations() {
		if !found || l.Stock.Len() < best.Stock.Len() {
			best, found = l, true
		}
	}
	if !found {
		return 0, false
	}
	return best.ID, true
}
