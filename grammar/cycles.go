package grammar

// unaryGraph is the directed graph of unary rules between categories:
// there is an arc A → B for every rule A -> B where B is a category.
// Vertices are symbol IDs; adjacency lists follow grammar order.
type unaryGraph struct {
	arcs     [][]int
	reversed [][]int
	loops    []bool // self-loop A -> A
}

func (g *Grammar) unaryGraph() *unaryGraph {
	n := g.symbols.Size()
	ug := &unaryGraph{
		arcs:     make([][]int, n),
		reversed: make([][]int, n),
		loops:    make([]bool, n),
	}
	for _, r := range g.rules {
		if r.IsBinary() || r.IsLexical() {
			continue
		}
		s, t := r.Parent.id, r.rhs[0].id
		if s == t {
			ug.loops[s] = true
		}
		ug.arcs[s] = append(ug.arcs[s], t)
		ug.reversed[t] = append(ug.reversed[t], s)
	}
	return ug
}

// dfs visits all unvisited vertices reachable from v and appends them to
// order in post-order.
func dfs(arcs [][]int, v int, visited []bool, order []int) []int {
	visited[v] = true
	for _, w := range arcs[v] {
		if !visited[w] {
			order = dfs(arcs, w, visited, order)
		}
	}
	return append(order, v)
}

// UnaryCycles finds cycles of unary rules A -> B -> … -> A. Each cycle is
// reported as a strongly connected component of the graph of unary rules
// between categories. Components are returned in a deterministic order.
//
// Unary cycles do not change the Viterbi result (probabilities are ≤ 1),
// but they let parse counts grow without bound.
func (g *Grammar) UnaryCycles() [][]*Symbol {
	ug := g.unaryGraph()
	n := len(ug.arcs)
	visited := make([]bool, n)
	var finished []int
	for v := 0; v < n; v++ {
		if !visited[v] {
			finished = dfs(ug.arcs, v, visited, finished)
		}
	}
	visited = make([]bool, n)
	var components [][]*Symbol
	for i := n - 1; i >= 0; i-- { // decreasing finishing time
		v := finished[i]
		if visited[v] {
			continue
		}
		component := dfs(ug.reversed, v, visited, nil)
		if len(component) == 1 && !ug.loops[v] {
			continue
		}
		symbols := make([]*Symbol, len(component))
		for j, id := range component {
			symbols[j] = g.symbols.SymbolByID(id)
		}
		components = append(components, symbols)
	}
	return components
}
