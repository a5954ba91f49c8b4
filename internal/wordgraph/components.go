package wordgraph

// connectedComponents returns the components of the undirected projection as
// node-index lists.
func (g *Graph) connectedComponents() [][]int {
	adj := g.undirectedAdjacency()
	n := len(adj)
	visited := make([]bool, n)
	var components [][]int

	for start := 0; start < n; start++ {
		if visited[start] {
			continue
		}
		component := []int{start}
		visited[start] = true
		for frontier := []int{start}; len(frontier) > 0; {
			node := frontier[len(frontier)-1]
			frontier = frontier[:len(frontier)-1]
			for _, next := range adj[node] {
				if !visited[next] {
					visited[next] = true
					component = append(component, next)
					frontier = append(frontier, next)
				}
			}
		}
		components = append(components, component)
	}
	return components
}

// stronglyConnectedComponents returns the SCCs of the directed graph using
// Tarjan's algorithm.
func (g *Graph) stronglyConnectedComponents() [][]int {
	adj := g.directedAdjacency()
	n := len(adj)

	const unvisited = -1
	index := make([]int, n)
	lowlink := make([]int, n)
	onStack := make([]bool, n)
	for i := range index {
		index[i] = unvisited
	}

	var (
		counter    int
		stack      []int
		components [][]int
		visit      func(v int)
	)

	visit = func(v int) {
		index[v] = counter
		lowlink[v] = counter
		counter++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range adj[v] {
			if index[w] == unvisited {
				visit(w)
				if lowlink[w] < lowlink[v] {
					lowlink[v] = lowlink[w]
				}
			} else if onStack[w] && index[w] < lowlink[v] {
				lowlink[v] = index[w]
			}
		}

		if lowlink[v] == index[v] {
			var component []int
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				component = append(component, w)
				if w == v {
					break
				}
			}
			components = append(components, component)
		}
	}

	for v := 0; v < n; v++ {
		if index[v] == unvisited {
			visit(v)
		}
	}
	return components
}

// shortestPathStats computes the diameter and average shortest path over
// the undirected projection, per connected component. Cross-component pairs
// are excluded. When no intra-component pairs exist (every component a
// singleton, or an empty graph), the average is reported as 0, not NaN;
// downstream consumers of these features expect that value.
func (g *Graph) shortestPathStats() (diameter float64, avgShortestPath float64) {
	adj := g.undirectedAdjacency()
	longest := 0
	totalLength := 0
	totalPairs := 0

	for _, component := range g.connectedComponents() {
		size := len(component)
		totalPairs += size * (size - 1) / 2
		for _, src := range component {
			for _, length := range bfsLengths(adj, src) {
				if length > longest {
					longest = length
				}
				totalLength += length
			}
		}
	}

	// Each unordered pair was visited from both endpoints.
	if totalPairs > 0 {
		avgShortestPath = float64(totalLength) / 2 / float64(totalPairs)
	}
	return float64(longest), avgShortestPath
}

// bfsLengths returns shortest-path lengths from src to every reachable node
// except src itself.
func bfsLengths(adj [][]int, src int) []int {
	dist := map[int]int{src: 0}
	queue := []int{src}
	var lengths []int
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		for _, next := range adj[node] {
			if _, ok := dist[next]; ok {
				continue
			}
			dist[next] = dist[node] + 1
			lengths = append(lengths, dist[next])
			queue = append(queue, next)
		}
	}
	return lengths
}
