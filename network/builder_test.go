package network

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// BUILDER TESTS
// ============================================================================

func testPeople() []Person {
	return []Person{
		{ID: 0, Groups: map[string]string{"group_1": "team_a"}},
		{ID: 1, Case: "101", TestDate: time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC),
			Groups: map[string]string{"group_1": "team_a", "group_2": "lab_3"}},
		{ID: 2, Groups: map[string]string{"group_2": "lab_3"}},
		{ID: 3, Groups: map[string]string{"group_1": ""}},
		{ID: 4},
	}
}

func TestBuildContactEdges(t *testing.T) {
	n, err := Build(testPeople(), []Contact{{Source: 0, Target: 4}, {Source: 4, Target: 0}, {Source: 2, Target: 2}})
	require.NoError(t, err)

	contacts := n.EdgesOfKind(KindContact)
	require.Len(t, contacts, 1, "duplicate pair and self-loop should drop")
	assert.Equal(t, int64(0), contacts[0].From)
	assert.Equal(t, int64(4), contacts[0].To)
	assert.Equal(t, DefaultContactWeight, contacts[0].Weight)
	assert.True(t, n.HasEdgeBetween(4, 0), "edges are undirected")
}

func TestBuildMembershipEdges(t *testing.T) {
	n, err := Build(testPeople(), nil)
	require.NoError(t, err)

	members := n.EdgesOfKind(KindMembership)
	require.Len(t, members, 2)

	// group_1 before group_2 (sorted column order), empty values ignored.
	assert.Equal(t, Edge{From: 0, To: 1, Kind: KindMembership, Group: "group_1", Weight: DefaultMembershipWeight}, members[0])
	assert.Equal(t, Edge{From: 1, To: 2, Kind: KindMembership, Group: "group_2", Weight: DefaultMembershipWeight}, members[1])

	assert.Equal(t, []string{"group_1", "group_2"}, n.GroupColumns())
	assert.Equal(t, 2, n.Degree(1))
	assert.Equal(t, 0, n.Degree(3), "empty group value derives nothing")
}

func TestBuildContactWinsOverMembership(t *testing.T) {
	// 0 and 1 share group_1 AND have a recorded contact — the contact edge
	// must be the only edge between them.
	n, err := Build(testPeople(), []Contact{{Source: 1, Target: 0}})
	require.NoError(t, err)

	var between []Edge
	for _, e := range n.Edges() {
		if e.From == 0 && e.To == 1 {
			between = append(between, e)
		}
	}
	require.Len(t, between, 1)
	assert.Equal(t, KindContact, between[0].Kind)
}

func TestBuildUnknownContactEndpoint(t *testing.T) {
	_, err := Build(testPeople(), []Contact{{Source: 0, Target: 99}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownPerson)
	assert.Contains(t, err.Error(), "99")
}

func TestBuildDuplicatePerson(t *testing.T) {
	_, err := Build([]Person{{ID: 7}, {ID: 7}}, nil)
	assert.ErrorIs(t, err, ErrDuplicatePerson)
}

func TestBuildNoPeople(t *testing.T) {
	_, err := Build(nil, nil)
	assert.ErrorIs(t, err, ErrNoPeople)
}

func TestBuildDeterministic(t *testing.T) {
	contacts := []Contact{{Source: 0, Target: 4}}
	a, err := Build(testPeople(), contacts)
	require.NoError(t, err)
	b, err := Build(testPeople(), contacts)
	require.NoError(t, err)

	assert.Equal(t, a.Edges(), b.Edges())
}

func TestBuildExplicitGroupOrder(t *testing.T) {
	n, err := Build(testPeople(), nil, WithGroupColumns("group_2", "group_1"))
	require.NoError(t, err)

	members := n.EdgesOfKind(KindMembership)
	require.Len(t, members, 2)
	assert.Equal(t, "group_2", members[0].Group)
	assert.Equal(t, "group_1", members[1].Group)
}

func TestBuildWeightOverrides(t *testing.T) {
	n, err := Build(testPeople(), []Contact{{Source: 0, Target: 4}},
		WithContactWeight(2), WithMembershipWeight(0.5))
	require.NoError(t, err)

	assert.Equal(t, 2.0, n.EdgesOfKind(KindContact)[0].Weight)
	assert.Equal(t, 0.5, n.EdgesOfKind(KindMembership)[0].Weight)
}

func TestBuildFocusGroup(t *testing.T) {
	people := testPeople()
	contacts := []Contact{{Source: 1, Target: 4}, {Source: 2, Target: 4}}

	// Strict: only team_a members, contacts must stay inside the group.
	n, err := Build(people, contacts, WithFocusGroup("group_1", "team_a", false))
	require.NoError(t, err)
	assert.Equal(t, 2, n.Order())
	assert.Empty(t, n.EdgesOfKind(KindContact))

	// Adjacent: node 4 is kept through its contact with node 1.
	n, err = Build(people, contacts, WithFocusGroup("group_1", "team_a", true))
	require.NoError(t, err)
	assert.Equal(t, 3, n.Order())
	_, ok := n.Node(4)
	assert.True(t, ok)
	_, ok = n.Node(2)
	assert.False(t, ok, "node 2 has no contact into the focus group")
}

func TestBuildFocusGroupEmpty(t *testing.T) {
	_, err := Build(testPeople(), nil, WithFocusGroup("group_1", "nonexistent", false))
	assert.ErrorIs(t, err, ErrNoPeople)
}
