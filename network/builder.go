package network

import (
	"fmt"
	"log"
	"sort"
)

// ============================================================================
// BUILDER — Graph Construction
// ============================================================================
// Entry point: Build(people, contacts, opts...)
//
// Pipeline:
//   1. (Optional) Focus trimming — limit people to a group of interest
//   2. One node per person; duplicate IDs are an error
//   3. One contact edge per contact row; self-loops and duplicate pairs drop
//   4. Synthetic membership edges — per group column, connect every
//      unordered pair sharing a non-empty value, unless already connected
//
// Contact edges always win: a membership edge is never added where any edge
// exists, and group columns are processed in declared order. Members of a
// bucket are sorted by ID so edge order is deterministic for a given input.
// ============================================================================

// Build constructs an undirected contact-tracing network from a node table
// and a contact table.
func Build(people []Person, contacts []Contact, opts ...Option) (*Network, error) {
	cfg := applyOptions(opts)

	if len(people) == 0 {
		return nil, ErrNoPeople
	}

	if cfg.FocusColumn != "" {
		people, contacts = focusTrim(people, contacts, cfg)
		if len(people) == 0 {
			return nil, fmt.Errorf("%w: focus %s=%q matched nobody",
				ErrNoPeople, cfg.FocusColumn, cfg.FocusValue)
		}
	}

	n := &Network{
		people: people,
		byID:   make(map[int64]int, len(people)),
		byPair: make(map[pair]int),
		degree: make(map[int64]int),
	}

	for i, p := range people {
		if _, exists := n.byID[p.ID]; exists {
			return nil, fmt.Errorf("%w: %d", ErrDuplicatePerson, p.ID)
		}
		n.byID[p.ID] = i
	}

	// Contact edges
	dropped := 0
	for _, c := range contacts {
		if _, ok := n.byID[c.Source]; !ok {
			return nil, fmt.Errorf("%w: %d", ErrUnknownPerson, c.Source)
		}
		if _, ok := n.byID[c.Target]; !ok {
			return nil, fmt.Errorf("%w: %d", ErrUnknownPerson, c.Target)
		}
		if c.Source == c.Target || n.HasEdgeBetween(c.Source, c.Target) {
			dropped++
			continue
		}
		n.addEdge(Edge{Kind: KindContact, Weight: cfg.ContactWeight}, c.Source, c.Target)
	}
	if dropped > 0 {
		log.Printf("🕸 network: dropped %d self-loop/duplicate contacts", dropped)
	}

	// Membership edges
	n.groupCols = cfg.GroupColumns
	if n.groupCols == nil {
		n.groupCols = observedGroupColumns(people)
	}
	for _, column := range n.groupCols {
		n.deriveMembership(column, cfg.MembershipWeight)
	}

	log.Printf("🕸 network: %d people, %d contact edges, %d membership edges",
		n.Order(), len(n.EdgesOfKind(KindContact)), len(n.EdgesOfKind(KindMembership)))

	return n, nil
}

// addEdge stores an edge with a canonical unordered key.
func (n *Network) addEdge(e Edge, x, y int64) {
	p := pairOf(x, y)
	e.From, e.To = p.a, p.b
	n.byPair[p] = len(n.edges)
	n.edges = append(n.edges, e)
	n.degree[p.a]++
	n.degree[p.b]++
}

// deriveMembership adds synthetic edges between members of the same group.
// O(n²) pairwise within each bucket — buckets are small in practice.
func (n *Network) deriveMembership(column string, weight float64) {
	buckets := make(map[string][]int64)
	for _, p := range n.people {
		if v := p.Group(column); v != "" {
			buckets[v] = append(buckets[v], p.ID)
		}
	}

	values := make([]string, 0, len(buckets))
	for v, members := range buckets {
		if len(members) > 1 {
			values = append(values, v)
		}
	}
	sort.Strings(values)

	for _, v := range values {
		members := buckets[v]
		sort.Slice(members, func(i, j int) bool { return members[i] < members[j] })
		for i := 0; i < len(members); i++ {
			for j := i + 1; j < len(members); j++ {
				if n.HasEdgeBetween(members[i], members[j]) {
					continue
				}
				n.addEdge(Edge{Kind: KindMembership, Group: column, Weight: weight},
					members[i], members[j])
			}
		}
	}
}

// observedGroupColumns returns the union of group keys on people, sorted.
func observedGroupColumns(people []Person) []string {
	seen := make(map[string]bool)
	var cols []string
	for _, p := range people {
		for k := range p.Groups {
			if !seen[k] {
				seen[k] = true
				cols = append(cols, k)
			}
		}
	}
	sort.Strings(cols)
	return cols
}

// focusTrim limits people to the focus group, optionally keeping contact
// neighbors, and drops contacts that no longer have both endpoints.
func focusTrim(people []Person, contacts []Contact, cfg *config) ([]Person, []Contact) {
	keep := make(map[int64]bool)
	for _, p := range people {
		if p.Group(cfg.FocusColumn) == cfg.FocusValue {
			keep[p.ID] = true
		}
	}

	var kept []Contact
	if cfg.FocusAdjacent {
		adjacent := make(map[int64]bool)
		for _, c := range contacts {
			if keep[c.Source] || keep[c.Target] {
				kept = append(kept, c)
				adjacent[c.Source] = true
				adjacent[c.Target] = true
			}
		}
		for id := range adjacent {
			keep[id] = true
		}
	} else {
		for _, c := range contacts {
			if keep[c.Source] && keep[c.Target] {
				kept = append(kept, c)
			}
		}
	}

	var trimmed []Person
	for _, p := range people {
		if keep[p.ID] {
			trimmed = append(trimmed, p)
		}
	}

	log.Printf("🔎 network: focus %s=%q kept %d of %d people",
		cfg.FocusColumn, cfg.FocusValue, len(trimmed), len(people))

	return trimmed, kept
}
