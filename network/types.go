package network

import (
	"errors"
	"time"
)

// ============================================================================
// NETWORK TYPES — Contact-Tracing Graph Model
// ============================================================================
// A Network is an undirected graph over people. Edges come from two sources:
//   KindContact    — a recorded contact-trace event between two people
//   KindMembership — synthetic: both people share a value in a group column
// ============================================================================

// EdgeKind distinguishes recorded contacts from derived membership edges.
type EdgeKind string

const (
	KindContact    EdgeKind = "contact"
	KindMembership EdgeKind = "membership"
)

// Edge weights. Membership edges pull weakly in the force layout so shared
// groups cluster without collapsing onto each other.
const (
	DefaultContactWeight    = 1.0
	DefaultMembershipWeight = 0.05
)

// Sentinel errors for caller-distinguishable build failures.
var (
	ErrNoPeople        = errors.New("network: no people")
	ErrDuplicatePerson = errors.New("network: duplicate person id")
	ErrUnknownPerson   = errors.New("network: contact references unknown person")
)

// Person is a node in the contact-tracing network.
type Person struct {
	ID       int64             `json:"id"`
	Case     string            `json:"case,omitempty"`     // case number; empty for non-cases
	TestDate time.Time         `json:"testDate,omitempty"` // zero = no positive test recorded
	Groups   map[string]string `json:"groups,omitempty"`   // group column → value
	Attrs    map[string]string `json:"attrs,omitempty"`    // pass-through tooltip attributes
}

// IsCase reports whether this person has a recorded case number.
func (p Person) IsCase() bool { return p.Case != "" }

// Group returns the person's value in a group column ("" if none).
func (p Person) Group(column string) string { return p.Groups[column] }

// Contact is a recorded contact-trace event between two people.
type Contact struct {
	Source int64 `json:"source"`
	Target int64 `json:"target"`
}

// Edge is an undirected edge in the built network. From < To always holds.
type Edge struct {
	From   int64    `json:"from"`
	To     int64    `json:"to"`
	Kind   EdgeKind `json:"kind"`
	Group  string   `json:"group,omitempty"` // group column, for membership edges
	Weight float64  `json:"weight"`
}

// pair is the canonical unordered key for an edge.
type pair struct{ a, b int64 }

func pairOf(x, y int64) pair {
	if x < y {
		return pair{x, y}
	}
	return pair{y, x}
}

// Network is the built undirected graph.
type Network struct {
	people    []Person
	byID      map[int64]int // person id → index into people
	edges     []Edge
	byPair    map[pair]int // unordered pair → index into edges
	groupCols []string
	degree    map[int64]int
}

// People returns the nodes in input order.
func (n *Network) People() []Person { return n.people }

// Edges returns all edges in derivation order (contacts first, then
// membership edges per group column).
func (n *Network) Edges() []Edge { return n.edges }

// EdgesOfKind returns the edges of one kind, preserving order.
func (n *Network) EdgesOfKind(kind EdgeKind) []Edge {
	var out []Edge
	for _, e := range n.edges {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// Node returns the person with the given id.
func (n *Network) Node(id int64) (Person, bool) {
	i, ok := n.byID[id]
	if !ok {
		return Person{}, false
	}
	return n.people[i], true
}

// HasEdgeBetween reports whether any edge connects a and b.
func (n *Network) HasEdgeBetween(a, b int64) bool {
	_, ok := n.byPair[pairOf(a, b)]
	return ok
}

// Degree returns the number of edges touching a node.
func (n *Network) Degree(id int64) int { return n.degree[id] }

// GroupColumns returns the group columns used for membership derivation,
// in derivation order.
func (n *Network) GroupColumns() []string { return n.groupCols }

// Order returns the number of nodes.
func (n *Network) Order() int { return len(n.people) }

// Size returns the number of edges.
func (n *Network) Size() int { return len(n.edges) }
