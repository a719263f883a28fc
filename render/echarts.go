package render

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/cornell-covid-modeling/tracenet/network"
	"github.com/cornell-covid-modeling/tracenet/vis"
)

// ============================================================================
// RENDER — Figure → Interactive HTML via go-echarts
// ============================================================================
// Every view becomes one graph chart with precomputed coordinates
// (layout "none"); the charts stack into a single HTML page. Edge styling
// is per series: contact traces render as one solid series, membership
// edges as a dashed series, so the legend toggles them independently.
// Hover, zoom, and pan come from the chart toolkit itself — nothing is
// hand-embedded.
// ============================================================================

// ErrNilFigure is returned when there is nothing to render.
var ErrNilFigure = errors.New("render: nil figure")

// Coordinates shift into a positive canvas range so no node serializes a
// zero (omitted) position.
const (
	coordScale  = 100.0
	coordOffset = 1.5
)

// WriteHTML renders the figure as a self-contained interactive HTML page.
func WriteHTML(fig *vis.Figure, w io.Writer) error {
	if fig == nil {
		return ErrNilFigure
	}

	page := components.NewPage()
	page.PageTitle = fig.Title
	for _, view := range fig.Views {
		page.AddCharts(graphChart(fig.Title, view))
	}

	if err := page.Render(w); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	return nil
}

// WriteHTMLFile renders the figure into a file.
func WriteHTMLFile(fig *vis.Figure, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if err := WriteHTML(fig, f); err != nil {
		return err
	}
	log.Printf("📄 render: wrote %s (%d views)", path, len(fig.Views))
	return nil
}

// ============================================================================
// CHART ASSEMBLY
// ============================================================================

func graphChart(title string, view vis.View) *charts.Graph {
	graph := charts.NewGraph()
	graph.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "1500px", Height: "700px"}),
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("%s:  %s", title, view.Name)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "item"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)

	var contactLines, memberLines []vis.EdgeLine
	for _, e := range view.Edges {
		if e.Kind == network.KindContact {
			contactLines = append(contactLines, e)
		} else {
			memberLines = append(memberLines, e)
		}
	}

	type series struct {
		name  string
		lines []vis.EdgeLine
		style opts.LineStyle
	}

	var all []series
	if len(contactLines) > 0 {
		all = append(all, series{
			name:  "contact traces",
			lines: contactLines,
			style: lineStyle(contactLines[0]),
		})
	}
	if len(memberLines) > 0 {
		all = append(all, series{
			name:  membershipSeriesName(view, memberLines),
			lines: memberLines,
			style: lineStyle(memberLines[0]),
		})
	}
	if len(all) == 0 {
		// Edgeless view — still draw the nodes.
		all = append(all, series{name: view.Name})
	}

	chartOpts := charts.WithGraphChartOpts(opts.GraphChart{
		Layout: "none",
		Roam:   opts.Bool(true),
	})

	names := make(map[int64]string, len(view.Nodes))
	for _, n := range view.Nodes {
		names[n.ID] = nodeName(n)
	}

	for i, s := range all {
		// Nodes render once; later series carry invisible placeholders so
		// their links can resolve the same node names.
		ghost := i > 0
		graph.AddSeries(s.name, graphNodes(view.Nodes, ghost), graphLinks(s.lines, names),
			chartOpts,
			charts.WithLineStyleOpts(s.style),
		)
	}

	return graph
}

// membershipSeriesName labels the dashed series: the group column on a
// single-group view, a generic label elsewhere.
func membershipSeriesName(view vis.View, lines []vis.EdgeLine) string {
	uniform := lines[0].Group
	for _, e := range lines[1:] {
		if e.Group != uniform {
			return "shared groups"
		}
	}
	if view.Name == uniform {
		return uniform
	}
	return "shared groups"
}

func lineStyle(e vis.EdgeLine) opts.LineStyle {
	style := opts.LineStyle{
		Width:   float32(e.Width),
		Opacity: float32(e.Alpha),
		Type:    "solid",
	}
	if e.Dashed {
		style.Type = "dashed"
	}
	return style
}

func graphNodes(nodes []vis.Node, ghost bool) []opts.GraphNode {
	out := make([]opts.GraphNode, 0, len(nodes))
	for _, n := range nodes {
		gn := opts.GraphNode{
			Name:       nodeName(n),
			X:          float32((n.X + coordOffset) * coordScale),
			Y:          float32((coordOffset - n.Y) * coordScale),
			SymbolSize: n.Size,
			ItemStyle: &opts.ItemStyle{
				Color:   n.Color,
				Opacity: float32(n.Alpha),
			},
		}
		if ghost {
			gn.Symbol = "none"
		}
		out = append(out, gn)
	}
	return out
}

func graphLinks(lines []vis.EdgeLine, names map[int64]string) []opts.GraphLink {
	out := make([]opts.GraphLink, 0, len(lines))
	for _, e := range lines {
		out = append(out, opts.GraphLink{
			Source: names[e.Source],
			Target: names[e.Target],
		})
	}
	return out
}

// nodeName picks the display identity: the case number for recent cases,
// the anonymous node id otherwise. Links resolve by name, so the node id
// is always part of it — two people can share a case number.
func nodeName(n vis.Node) string {
	if n.Label != "" {
		return fmt.Sprintf("case %s (#%d)", n.Label, n.ID)
	}
	return n.Name
}
