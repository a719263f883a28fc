package vis

import (
	"fmt"
	"log"
	"time"

	"github.com/cornell-covid-modeling/tracenet/layout"
	"github.com/cornell-covid-modeling/tracenet/network"
)

// ============================================================================
// VISUAL ENCODING — Network + Positions → Figure
// ============================================================================
// Entry point: BuildFigure(net, pos, renderDate, theme)
//
// Node pass: color and opacity from the recency window — a case tested
// today renders at full red, fading linearly to MinAlpha at the window end;
// everything outside the window (or with no test date) is blue at full
// opacity. Recent cases are labeled with their case number.
//
// View pass: one view per tab. A hidden edge is omitted from the view, not
// drawn at opacity zero.
//
//	All            contacts solid, membership dashed at MembershipAlpha
//	Contact Traces contacts only
//	Groups         all membership edges at MembershipFocusAlpha
//	<group column> one view per column, only that column's edges
// ============================================================================

// Standard view names. Group-column views use the column name itself.
const (
	ViewAll      = "All"
	ViewContacts = "Contact Traces"
	ViewGroups   = "Groups"
)

// BuildFigure encodes a built network into a render-ready Figure.
func BuildFigure(n *network.Network, pos map[int64]layout.Point, renderDate time.Time, theme Theme) *Figure {
	date := renderDate.Format("2006-01-02")
	fig := &Figure{
		Title: fmt.Sprintf("%s Contact Tracing Visualization", date),
		Date:  date,
	}

	nodes := encodeNodes(n, pos, renderDate, theme)

	fig.Views = append(fig.Views,
		View{Name: ViewAll, Nodes: nodes, Edges: encodeEdges(n, theme, allVisible)},
		View{Name: ViewContacts, Nodes: nodes, Edges: encodeEdges(n, theme, contactsOnly)},
		View{Name: ViewGroups, Nodes: nodes, Edges: encodeEdges(n, theme, membershipOnly)},
	)
	for _, column := range n.GroupColumns() {
		fig.Views = append(fig.Views, View{
			Name:  column,
			Nodes: nodes,
			Edges: encodeEdges(n, theme, singleGroup(column)),
		})
	}

	recent := 0
	for _, nd := range nodes {
		if nd.Recent {
			recent++
		}
	}
	log.Printf("🎨 vis: %d nodes (%d recent cases), %d views", len(nodes), recent, len(fig.Views))

	return fig
}

// ============================================================================
// NODE PASS
// ============================================================================

func encodeNodes(n *network.Network, pos map[int64]layout.Point, renderDate time.Time, theme Theme) []Node {
	nodes := make([]Node, 0, n.Order())
	for _, p := range n.People() {
		node := Node{
			ID:    p.ID,
			Name:  fmt.Sprintf("#%d", p.ID),
			X:     pos[p.ID].X,
			Y:     pos[p.ID].Y,
			Color: theme.BaseColor,
			Alpha: 1.0,
			Size:  theme.NodeSize,
			Attrs: p.Attrs,
		}

		if p.IsCase() {
			if days, in := theme.inWindow(p.TestDate, renderDate); in {
				node.Color = theme.CaseColor
				node.Alpha = theme.alphaFor(days)
				node.Label = p.Case
				node.Recent = true
			}
		}

		nodes = append(nodes, node)
	}
	return nodes
}

// inWindow returns the whole days since the positive test and whether that
// falls inside the recency window. A zero test date never qualifies.
func (t Theme) inWindow(test, render time.Time) (int, bool) {
	if test.IsZero() {
		return 0, false
	}
	days := daysBetween(test, render)
	return days, days >= 0 && days <= t.RecencyWindowDays
}

// alphaFor maps whole days since a positive test onto the opacity ramp:
// 1.0 at day zero down to MinAlpha at the window end.
func (t Theme) alphaFor(days int) float64 {
	if days <= 0 {
		return 1.0
	}
	if days >= t.RecencyWindowDays {
		return t.MinAlpha
	}
	return 1.0 - (1.0-t.MinAlpha)*float64(days)/float64(t.RecencyWindowDays)
}

// daysBetween counts calendar days from a to b, ignoring time of day.
func daysBetween(a, b time.Time) int {
	ad := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bd := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bd.Sub(ad).Hours() / 24)
}

// ============================================================================
// VIEW PASS
// ============================================================================

// edgeStyle decides visibility and opacity of an edge within one view.
type edgeStyle func(e network.Edge, theme Theme) (alpha float64, visible bool)

func allVisible(e network.Edge, theme Theme) (float64, bool) {
	if e.Kind == network.KindContact {
		return theme.ContactAlpha, true
	}
	return theme.MembershipAlpha, true
}

func contactsOnly(e network.Edge, theme Theme) (float64, bool) {
	if e.Kind == network.KindContact {
		return theme.ContactAlpha, true
	}
	return 0, false
}

func membershipOnly(e network.Edge, theme Theme) (float64, bool) {
	if e.Kind == network.KindMembership {
		return theme.MembershipFocusAlpha, true
	}
	return 0, false
}

func singleGroup(column string) edgeStyle {
	return func(e network.Edge, theme Theme) (float64, bool) {
		if e.Kind == network.KindMembership && e.Group == column {
			return theme.MembershipFocusAlpha, true
		}
		return 0, false
	}
}

func encodeEdges(n *network.Network, theme Theme, style edgeStyle) []EdgeLine {
	var lines []EdgeLine
	for _, e := range n.Edges() {
		alpha, visible := style(e, theme)
		if !visible {
			continue
		}
		lines = append(lines, EdgeLine{
			Source: e.From,
			Target: e.To,
			Kind:   e.Kind,
			Group:  e.Group,
			Alpha:  alpha,
			Width:  theme.EdgeWidth,
			Dashed: e.Kind == network.KindMembership,
		})
	}
	return lines
}
