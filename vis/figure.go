package vis

import (
	"github.com/cornell-covid-modeling/tracenet/network"
)

// ============================================================================
// FIGURE TYPES — Render-Ready Output
// ============================================================================
// A Figure is the plotting-toolkit-agnostic description of the final page:
// one View per tab, with fully encoded nodes (position, color, opacity,
// label) and edges (opacity, width, dash). The render package maps these
// structs onto go-echarts without further computation.
// ============================================================================

// Figure describes the complete tabbed visualization.
type Figure struct {
	Title string `json:"title"`
	Date  string `json:"date"` // render date, YYYY-MM-DD
	Views []View `json:"views"`
}

// View is one tab: a titled subset of the edges over the shared node set.
type View struct {
	Name  string     `json:"name"`
	Nodes []Node     `json:"nodes"`
	Edges []EdgeLine `json:"edges"`
}

// Node is a fully encoded person glyph.
type Node struct {
	ID     int64             `json:"id"`
	Name   string            `json:"name"`            // unique display identity
	Label  string            `json:"label,omitempty"` // case number, recent cases only
	X      float64           `json:"x"`
	Y      float64           `json:"y"`
	Color  string            `json:"color"`
	Alpha  float64           `json:"alpha"`
	Size   int               `json:"size"`
	Recent bool              `json:"recent"` // positive within the recency window
	Attrs  map[string]string `json:"attrs,omitempty"`
}

// EdgeLine is a fully encoded edge glyph.
type EdgeLine struct {
	Source int64            `json:"source"`
	Target int64            `json:"target"`
	Kind   network.EdgeKind `json:"kind"`
	Group  string           `json:"group,omitempty"`
	Alpha  float64          `json:"alpha"`
	Width  float64          `json:"width"`
	Dashed bool             `json:"dashed"`
}
