// Package waksman implements the AS-Waksman permutation network: given a
// permutation of size n, it computes switch settings realizing that
// permutation (Route), and evaluates a network so configured against an
// input sequence (Apply).
//
// Ported from the Beauquier-Darrot construction in the original MiniRAM
// prototype (utils/src/waksman.rs): a bipartite graph of "must differ"
// constraints between switches is built from the input and output pairing
// of the permutation, 2-colored with a greedy BFS per connected component,
// and the coloring yields both the local switch bits and the
// sub-permutations the two half-size subnetworks must realize.
package waksman

import "math/bits"

// Permutation is a one-line permutation of {0,...,n-1}: Permutation[i] is
// the image of i.
type Permutation []int

// Config is a setting of switches of an AS-Waksman network.
type Config []bool

// Identity returns the identity permutation of size n.
func Identity(n int) Permutation {
	p := make(Permutation, n)
	for i := range p {
		p[i] = i
	}
	return p
}

// Inverse returns the inverse of p.
func Inverse(p Permutation) Permutation {
	inv := make(Permutation, len(p))
	for i, v := range p {
		inv[v] = i
	}
	return inv
}

// compose returns a permutation c such that c[i] = a[b[i]].
func compose(a, b Permutation) Permutation {
	c := make(Permutation, len(a))
	for i := range c {
		c[i] = a[b[i]]
	}
	return c
}

// ConfLen returns the number of bits required to configure a Waksman
// network of size n: sum_{i=1}^{n-1} ceil(log2(i+1)), which equals the
// bit-length of i for each i in that range.
func ConfLen(n int) int {
	total := 0
	for i := 1; i < n; i++ {
		total += bits.Len(uint(i))
	}
	return total
}

// Route solves the routing problem: given a permutation p, compute switch
// settings for an AS-Waksman network of size len(p) realizing p. The
// network so configured maps the identity sequence [0..n) to p's inverse
// (see Apply).
func Route(p Permutation) Config {
	n := len(p)
	switch {
	case n == 1:
		return Config{}
	case n == 2:
		return Config{p[0] == 1}
	default:
		return route(p)
	}
}

// route handles n >= 3.
func route(p Permutation) Config {
	n := len(p)
	// The construction below indexes its output layer by the input that
	// lands at each output position, which is the inverse of p.
	p = Inverse(p)
	even := n%2 == 0

	startIn := 0
	if !even {
		startIn = 1
	}
	startOut := 2
	if !even {
		startOut = 1
	}

	adj := map[int][]int{}
	addEdge := func(u, v int) {
		adj[u] = append(adj[u], v)
		adj[v] = append(adj[v], u)
	}
	for i := startIn; i+1 < n; i += 2 {
		addEdge(i, i+1)
	}
	for i := startOut; i+1 < n; i += 2 {
		addEdge(p[i], p[i+1])
	}

	coloring := map[int]bool{}
	if even {
		coloring[p[0]] = false
		coloring[p[1]] = true
	} else {
		coloring[0] = false
		coloring[p[0]] = false
	}
	colorGraph(n, adj, coloring)

	res := Config{}
	for i := startIn; i+1 < n; i += 2 {
		res = append(res, coloring[i])
	}

	// Partition the input layer into the lower/upper subnetwork's
	// input order, to compute the subnetworks' permutations.
	var xs, ys []int
	if !even {
		xs = append(xs, 0)
	}
	for i := startIn; i+1 < n; i += 2 {
		if coloring[i] {
			ys = append(ys, i)
			xs = append(xs, i+1)
		} else {
			xs = append(xs, i)
			ys = append(ys, i+1)
		}
	}
	xs = append(xs, ys...)
	pIn := Permutation(xs)

	// Partition the output layer similarly.
	cs := []int{p[0]}
	var ds []int
	if even {
		ds = append(ds, p[1])
	}
	for i := startOut; i+1 < n; i += 2 {
		if coloring[p[i]] {
			ds = append(ds, p[i])
			cs = append(cs, p[i+1])
		} else {
			cs = append(cs, p[i])
			ds = append(ds, p[i+1])
		}
	}
	cs = append(cs, ds...)
	pOut := Permutation(cs)

	pSub := compose(Inverse(pOut), pIn)

	split := n / 2
	if !even {
		split = n/2 + 1
	}
	pLower := append(Permutation{}, pSub[:split]...)
	pUpper := make(Permutation, n-split)
	for i, v := range pSub[split:] {
		pUpper[i] = v - split
	}

	res = append(res, Route(pLower)...)
	res = append(res, Route(pUpper)...)

	for i := startOut; i+1 < n; i += 2 {
		res = append(res, coloring[p[i]])
	}
	return res
}

// colorGraph finishes a partial 2-coloring of a bipartite (not necessarily
// connected) graph over nodes 0..n-1. Disconnected components are seeded
// arbitrarily (false); every such graph built from a valid permutation is
// 2-colorable, so a failure to complete the coloring would indicate an
// implementation bug, never a malformed permutation.
func colorGraph(n int, adj map[int][]int, coloring map[int]bool) {
	for {
		colorConnected(adj, coloring)
		if len(coloring) == n {
			return
		}
		for i := 0; i < n; i++ {
			if _, ok := coloring[i]; !ok {
				coloring[i] = false
				break
			}
		}
	}
}

// colorConnected extends the coloring to every node reachable from an
// already-colored node, via a parent-tracked BFS/DFS work stack.
func colorConnected(adj map[int][]int, coloring map[int]bool) {
	parent := map[int]int{}
	queue := []int{}
	for v := range coloring {
		for _, u := range adj[v] {
			parent[u] = v
			queue = append(queue, u)
		}
	}
	for len(queue) > 0 {
		v := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		coloring[v] = !coloring[parent[v]]
		for _, u := range adj[v] {
			if _, ok := parent[u]; !ok {
				parent[u] = v
				queue = append(queue, u)
			}
		}
	}
}

// Apply evaluates the AS-Waksman network of size n, configured by conf (as
// produced by Route), against the input sequence xs. len(conf) must equal
// ConfLen(n) and len(xs) must equal n.
func Apply[T any](n int, conf Config, xs []T) []T {
	cur := 0
	return applyNetwork(n, conf, &cur, xs)
}

func applyNetwork[T any](n int, conf Config, cur *int, xs []T) []T {
	if n == 1 {
		return []T{xs[0]}
	}
	if n == 2 {
		b := conf[*cur]
		*cur++
		if b {
			return []T{xs[1], xs[0]}
		}
		return []T{xs[0], xs[1]}
	}

	even := n%2 == 0
	var lower, upper []T
	start := 0
	if !even {
		lower = append(lower, xs[0])
		start = 1
	}
	for i := start; i+1 < n; i += 2 {
		b := conf[*cur]
		*cur++
		if b {
			upper = append(upper, xs[i])
			lower = append(lower, xs[i+1])
		} else {
			lower = append(lower, xs[i])
			upper = append(upper, xs[i+1])
		}
	}

	split := len(lower)
	lowerOut := applyNetwork(split, conf, cur, lower)
	upperOut := applyNetwork(n-split, conf, cur, upper)

	out := make([]T, n)
	var li, ui, oi int
	if even {
		out[0], out[1] = lowerOut[0], upperOut[0]
		li, ui, oi = 1, 1, 2
	} else {
		out[0] = lowerOut[0]
		li, oi = 1, 1
	}
	for oi+1 < n {
		b := conf[*cur]
		*cur++
		if b {
			out[oi], out[oi+1] = upperOut[ui], lowerOut[li]
			ui, li = ui+1, li+1
		} else {
			out[oi], out[oi+1] = lowerOut[li], upperOut[ui]
			li, ui = li+1, ui+1
		}
		oi += 2
	}
	return out
}
