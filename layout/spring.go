package layout

import (
	"log"
	"sort"

	"golang.org/x/exp/rand"
	gograph "gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/iterator"
	gonumlayout "gonum.org/v1/gonum/graph/layout"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/cornell-covid-modeling/tracenet/network"
)

// ============================================================================
// SPRING LAYOUT — Force-Directed Positioning via gonum
// ============================================================================
// The network is mirrored into a weighted undirected gonum graph and run
// through the Eades force-directed optimizer. Membership edges carry their
// small weight so shared groups pull together only weakly.
//
// gonum's simple graph iterates nodes in map order, which would consume the
// seeded random stream in a different node order each run. The optimizer
// therefore sees the graph through an orderedGraph wrapper whose node and
// neighbor iterators walk in ascending ID order, making identical
// network + config yield identical coordinates.
// ============================================================================

// Config controls the force-directed layout.
type Config struct {
	Seed       uint64  // randomness seed; 0 means DefaultSeed
	Iterations int     // optimizer updates; 0 means DefaultIterations
	Repulsion  float64 // node repulsion strength; 0 means DefaultRepulsion
	Rate       float64 // gradient descent rate; 0 means DefaultRate
}

// Layout defaults, chosen to settle a few-hundred-node campus network.
const (
	DefaultSeed       = 1
	DefaultIterations = 150
	DefaultRepulsion  = 1.0
	DefaultRate       = 0.05
)

func (c Config) withDefaults() Config {
	if c.Seed == 0 {
		c.Seed = DefaultSeed
	}
	if c.Iterations == 0 {
		c.Iterations = DefaultIterations
	}
	if c.Repulsion == 0 {
		c.Repulsion = DefaultRepulsion
	}
	if c.Rate == 0 {
		c.Rate = DefaultRate
	}
	return c
}

// Point is a node position. Coordinates are normalized to [-1, 1].
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Positions computes force-directed coordinates for every node.
func Positions(n *network.Network, cfg Config) map[int64]Point {
	cfg = cfg.withDefaults()

	if n == nil || n.Order() == 0 {
		return map[int64]Point{}
	}

	g := simple.NewWeightedUndirectedGraph(0, 0)
	for _, p := range n.People() {
		g.AddNode(simple.Node(p.ID))
	}
	for _, e := range n.Edges() {
		g.SetWeightedEdge(simple.WeightedEdge{
			F: simple.Node(e.From),
			T: simple.Node(e.To),
			W: e.Weight,
		})
	}

	eades := gonumlayout.EadesR2{
		Repulsion: cfg.Repulsion,
		Rate:      cfg.Rate,
		Updates:   cfg.Iterations,
		Theta:     0.1,
		Src:       rand.NewSource(cfg.Seed),
	}
	optimizer := gonumlayout.NewOptimizerR2(newOrderedGraph(g), eades.Update)
	for optimizer.Update() {
	}

	pos := make(map[int64]Point, n.Order())
	for _, p := range n.People() {
		v := optimizer.Coord2(p.ID)
		pos[p.ID] = Point{X: v.X, Y: v.Y}
	}

	log.Printf("🧭 layout: positioned %d nodes (seed=%d, iterations=%d)",
		len(pos), cfg.Seed, cfg.Iterations)

	return normalize(pos)
}

// ============================================================================
// ORDERED GRAPH — Deterministic iteration for the optimizer
// ============================================================================

// orderedGraph wraps a simple graph so Nodes and From iterate in ascending
// ID order instead of map order. The optimizer initializes positions and
// sums spring forces in iteration order, so this pins both the seeded
// random stream and the floating-point accumulation order.
type orderedGraph struct {
	*simple.WeightedUndirectedGraph
	nodes []gograph.Node
}

func newOrderedGraph(g *simple.WeightedUndirectedGraph) orderedGraph {
	nodes := gograph.NodesOf(g.Nodes())
	sortByID(nodes)
	return orderedGraph{WeightedUndirectedGraph: g, nodes: nodes}
}

func (g orderedGraph) Nodes() gograph.Nodes {
	return iterator.NewOrderedNodes(g.nodes)
}

func (g orderedGraph) From(id int64) gograph.Nodes {
	neighbors := gograph.NodesOf(g.WeightedUndirectedGraph.From(id))
	sortByID(neighbors)
	return iterator.NewOrderedNodes(neighbors)
}

func sortByID(nodes []gograph.Node) {
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID() < nodes[j].ID() })
}

// normalize rescales coordinates to [-1, 1] per axis so the rendered canvas
// scale is input-independent. A degenerate axis collapses to 0.
func normalize(pos map[int64]Point) map[int64]Point {
	if len(pos) == 0 {
		return pos
	}

	first := true
	var minX, maxX, minY, maxY float64
	for _, p := range pos {
		if first {
			minX, maxX, minY, maxY = p.X, p.X, p.Y, p.Y
			first = false
			continue
		}
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	scale := func(v, min, max float64) float64 {
		if max == min {
			return 0
		}
		return -1 + 2*(v-min)/(max-min)
	}

	out := make(map[int64]Point, len(pos))
	for id, p := range pos {
		out[id] = Point{
			X: scale(p.X, minX, maxX),
			Y: scale(p.Y, minY, maxY),
		}
	}
	return out
}
