package vis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cornell-covid-modeling/tracenet/layout"
	"github.com/cornell-covid-modeling/tracenet/network"
)

// ============================================================================
// ENCODING TESTS
// ============================================================================

var renderDate = time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC)

func figureFixture(t *testing.T) *Figure {
	t.Helper()

	people := []network.Person{
		{ID: 0, Case: "101", TestDate: renderDate}, // tested today
		{ID: 1, Case: "102", TestDate: renderDate.AddDate(0, 0, -7)},
		{ID: 2, Case: "103", TestDate: renderDate.AddDate(0, 0, -30)}, // outside window
		{ID: 3, Case: "104"},                                          // case with no date
		{ID: 4, Groups: map[string]string{"group_1": "team_a"}},
		{ID: 5, Groups: map[string]string{"group_1": "team_a", "group_2": "lab_3"}},
		{ID: 6, Groups: map[string]string{"group_2": "lab_3"}},
	}
	contacts := []network.Contact{{Source: 0, Target: 4}}

	n, err := network.Build(people, contacts)
	require.NoError(t, err)

	pos := layout.Positions(n, layout.Config{Iterations: 10})
	return BuildFigure(n, pos, renderDate, DefaultTheme())
}

func nodeByID(t *testing.T, v View, id int64) Node {
	t.Helper()
	for _, n := range v.Nodes {
		if n.ID == id {
			return n
		}
	}
	t.Fatalf("node %d not in view %s", id, v.Name)
	return Node{}
}

func TestEncodeRecentCases(t *testing.T) {
	fig := figureFixture(t)
	all := fig.Views[0]

	theme := DefaultTheme()

	today := nodeByID(t, all, 0)
	assert.Equal(t, theme.CaseColor, today.Color)
	assert.Equal(t, 1.0, today.Alpha)
	assert.Equal(t, "101", today.Label)
	assert.True(t, today.Recent)

	midWindow := nodeByID(t, all, 1)
	assert.Equal(t, theme.CaseColor, midWindow.Color)
	assert.InDelta(t, 0.75, midWindow.Alpha, 1e-9, "7 of 14 days → halfway down the ramp")

	stale := nodeByID(t, all, 2)
	assert.Equal(t, theme.BaseColor, stale.Color, "case outside the window renders as base")
	assert.Equal(t, 1.0, stale.Alpha)
	assert.Empty(t, stale.Label)
	assert.False(t, stale.Recent)

	undated := nodeByID(t, all, 3)
	assert.Equal(t, theme.BaseColor, undated.Color, "case with no test date is outside the window")

	contact := nodeByID(t, all, 4)
	assert.Equal(t, theme.BaseColor, contact.Color)
	assert.Equal(t, theme.NodeSize, contact.Size)
}

func TestAlphaRamp(t *testing.T) {
	theme := DefaultTheme()

	tests := []struct {
		days  int
		alpha float64
	}{
		{0, 1.0},
		{7, 0.75},
		{14, 0.5},
		{20, 0.5}, // clamped past the window
		{-3, 1.0}, // future test dates clamp to full opacity
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.alpha, theme.alphaFor(tt.days), 1e-9, "alphaFor(%d)", tt.days)
	}
}

func TestInWindow(t *testing.T) {
	theme := DefaultTheme()

	days, in := theme.inWindow(renderDate.AddDate(0, 0, -14), renderDate)
	assert.True(t, in)
	assert.Equal(t, 14, days)

	_, in = theme.inWindow(renderDate.AddDate(0, 0, -15), renderDate)
	assert.False(t, in)

	_, in = theme.inWindow(renderDate.AddDate(0, 0, 1), renderDate)
	assert.False(t, in, "a test date after the render date is not in the window")

	_, in = theme.inWindow(time.Time{}, renderDate)
	assert.False(t, in)
}

func TestViews(t *testing.T) {
	fig := figureFixture(t)

	require.Len(t, fig.Views, 5) // All, Contact Traces, Groups, group_1, group_2
	assert.Equal(t, ViewAll, fig.Views[0].Name)
	assert.Equal(t, ViewContacts, fig.Views[1].Name)
	assert.Equal(t, ViewGroups, fig.Views[2].Name)
	assert.Equal(t, "group_1", fig.Views[3].Name)
	assert.Equal(t, "group_2", fig.Views[4].Name)

	kinds := func(v View) map[network.EdgeKind]int {
		counts := make(map[network.EdgeKind]int)
		for _, e := range v.Edges {
			counts[e.Kind]++
		}
		return counts
	}

	all := kinds(fig.Views[0])
	assert.Equal(t, 1, all[network.KindContact])
	assert.Equal(t, 2, all[network.KindMembership])

	contacts := kinds(fig.Views[1])
	assert.Equal(t, 1, contacts[network.KindContact])
	assert.Zero(t, contacts[network.KindMembership], "hidden edges are omitted, not faded")

	groups := kinds(fig.Views[2])
	assert.Zero(t, groups[network.KindContact])
	assert.Equal(t, 2, groups[network.KindMembership])

	for _, e := range fig.Views[3].Edges {
		assert.Equal(t, "group_1", e.Group)
	}
	require.Len(t, fig.Views[4].Edges, 1)
	assert.Equal(t, "group_2", fig.Views[4].Edges[0].Group)
}

func TestEdgeStyling(t *testing.T) {
	fig := figureFixture(t)
	theme := DefaultTheme()

	for _, e := range fig.Views[0].Edges {
		switch e.Kind {
		case network.KindContact:
			assert.Equal(t, theme.ContactAlpha, e.Alpha)
			assert.False(t, e.Dashed)
		case network.KindMembership:
			assert.Equal(t, theme.MembershipAlpha, e.Alpha)
			assert.True(t, e.Dashed)
		}
		assert.Equal(t, theme.EdgeWidth, e.Width)
	}

	for _, e := range fig.Views[2].Edges {
		assert.Equal(t, theme.MembershipFocusAlpha, e.Alpha)
	}
}

func TestFigureTitle(t *testing.T) {
	fig := figureFixture(t)
	assert.Equal(t, "2026-02-20 Contact Tracing Visualization", fig.Title)
	assert.Equal(t, "2026-02-20", fig.Date)
}
