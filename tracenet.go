// Package tracenet renders interactive HTML visualizations of
// contact-tracing networks.
//
// Usage:
//
//	import (
//	    "github.com/cornell-covid-modeling/tracenet/layout"
//	    "github.com/cornell-covid-modeling/tracenet/network"
//	    "github.com/cornell-covid-modeling/tracenet/render"
//	    "github.com/cornell-covid-modeling/tracenet/vis"
//	)
//
//	net, err := network.Build(people, contacts)
//	pos := layout.Positions(net, layout.Config{})
//	fig := vis.BuildFigure(net, pos, renderDate, vis.DefaultTheme())
//	err = render.WriteHTML(fig, w)
//
// The pipeline is a single-pass transformation: people and contact events
// become an undirected graph, shared-group memberships become synthetic
// dashed edges, a seeded force-directed layout assigns coordinates, and a
// recency-windowed color/opacity encoding marks recent positive cases.
// Everything is computed locally — rendering is delegated to go-echarts
// and layout to gonum.
package tracenet
