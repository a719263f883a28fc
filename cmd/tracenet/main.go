package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/cornell-covid-modeling/tracenet/helpers"
	"github.com/cornell-covid-modeling/tracenet/layout"
	"github.com/cornell-covid-modeling/tracenet/network"
	"github.com/cornell-covid-modeling/tracenet/render"
	"github.com/cornell-covid-modeling/tracenet/schema"
	"github.com/cornell-covid-modeling/tracenet/vis"
)

// ============================================================================
// TRACENET CLI — Contact-tracing network → interactive HTML
// ============================================================================

const version = "0.1.0"

func main() {
	// ── Flags ─────────────────────────────────────────────────────────────
	nodesPath := flag.String("nodes", "", "Path to node table CSV (required)")
	edgesPath := flag.String("edges", "", "Path to contact table CSV")
	schemaPath := flag.String("schema", "", "Path to pre-built schema JSON (skips auto-detect)")
	themePath := flag.String("theme", "", "Path to theme YAML (visual encoding overrides)")
	dateStr := flag.String("date", "", "Render date YYYY-MM-DD (default: today)")
	outFile := flag.String("out", "", "Output HTML path (default: <date>.html)")
	discover := flag.Bool("discover", false, "Print auto-detected schema and exit")
	format := flag.String("format", "json", "Schema output format: json, pretty")
	focusGroup := flag.String("focus", "", "Limit to a group of interest: column=value")
	focusAdjacent := flag.Bool("focus-adjacent", false, "With --focus, keep contact neighbors of the group")
	seed := flag.Uint64("seed", layout.DefaultSeed, "Layout randomness seed")
	iterations := flag.Int("iterations", layout.DefaultIterations, "Layout iterations")
	showVersion := flag.Bool("version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `tracenet — contact-tracing network visualization

Usage:
  tracenet --nodes nodes.csv --edges edges.csv
  tracenet --nodes nodes.csv --edges edges.csv --date 2026-02-20 --out campus.html
  tracenet --nodes nodes.csv --discover --format pretty
  tracenet --nodes nodes.csv --schema schema.json --edges edges.csv

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Render today's network
  tracenet --nodes nodes.csv --edges edges.csv

  # Save the detected schema for reuse
  tracenet --nodes nodes.csv --discover --format pretty > schema.json

  # Only the hockey team and everyone they had contact with
  tracenet --nodes nodes.csv --edges edges.csv --focus group_2=hockey --focus-adjacent
`)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("tracenet %s\n", version)
		os.Exit(0)
	}

	if *nodesPath == "" {
		fmt.Fprintln(os.Stderr, "Error: --nodes is required")
		flag.Usage()
		os.Exit(1)
	}

	// ── Read node table ───────────────────────────────────────────────────
	nodesData, err := os.ReadFile(*nodesPath)
	if err != nil {
		fatalf("Failed to read nodes file: %v", err)
	}

	// ── Schema ────────────────────────────────────────────────────────────
	var sch *schema.Config

	if *schemaPath != "" {
		schemaData, err := os.ReadFile(*schemaPath)
		if err != nil {
			fatalf("Failed to read schema file: %v", err)
		}
		sch = &schema.Config{}
		if err := json.Unmarshal(schemaData, sch); err != nil {
			fatalf("Failed to parse schema JSON: %v", err)
		}
		log.Printf("📋 Loaded schema: %s (%d group columns, %d attributes)",
			sch.Name, len(sch.GroupColumns), len(sch.Attributes))
	} else {
		sch, err = schema.DiscoverFromCSV(nodesData)
		if err != nil {
			fatalf("Auto-detect failed: %v", err)
		}
		log.Printf("🔍 Auto-detect: %s (id=%s, case=%s, date=%s, %d group columns)",
			sch.Name, sch.IDColumn, sch.CaseColumn, sch.DateColumn, len(sch.GroupColumns))
	}

	// ── Discover mode ─────────────────────────────────────────────────────
	if *discover {
		if err := checkFormat(*format); err != nil {
			fatalf("%v", err)
		}
		writeJSON(os.Stdout, sch, *format)
		return
	}

	// ── Parse tables ──────────────────────────────────────────────────────
	people, err := helpers.ParseNodesCSV(nodesData, *sch)
	if err != nil {
		fatalf("Failed to parse node table: %v", err)
	}
	log.Printf("📊 Parsed %d people", len(people))

	var contacts []network.Contact
	if *edgesPath != "" {
		edgesData, err := os.ReadFile(*edgesPath)
		if err != nil {
			fatalf("Failed to read edges file: %v", err)
		}
		contacts, err = helpers.ParseEdgesCSV(edgesData)
		if err != nil {
			fatalf("Failed to parse contact table: %v", err)
		}
		log.Printf("📊 Parsed %d contacts", len(contacts))
	}

	// ── Build network ─────────────────────────────────────────────────────
	buildOpts := []network.Option{network.WithGroupColumns(sch.GroupColumns...)}
	if *focusGroup != "" {
		column, value, ok := splitFocus(*focusGroup)
		if !ok {
			fatalf("Invalid --focus %q, expected column=value", *focusGroup)
		}
		buildOpts = append(buildOpts, network.WithFocusGroup(column, value, *focusAdjacent))
	}

	net, err := network.Build(people, contacts, buildOpts...)
	if err != nil {
		fatalf("Failed to build network: %v", err)
	}

	// ── Layout ────────────────────────────────────────────────────────────
	pos := layout.Positions(net, layout.Config{Seed: *seed, Iterations: *iterations})

	// ── Encode ────────────────────────────────────────────────────────────
	renderDate := time.Now().UTC()
	if *dateStr != "" {
		renderDate, err = time.Parse("2006-01-02", *dateStr)
		if err != nil {
			fatalf("Invalid --date %q, expected YYYY-MM-DD", *dateStr)
		}
	}

	theme := vis.DefaultTheme()
	if *themePath != "" {
		themeData, err := os.ReadFile(*themePath)
		if err != nil {
			fatalf("Failed to read theme file: %v", err)
		}
		theme, err = vis.LoadTheme(themeData)
		if err != nil {
			fatalf("Failed to load theme: %v", err)
		}
	}

	fig := vis.BuildFigure(net, pos, renderDate, theme)

	// ── Render ────────────────────────────────────────────────────────────
	out := *outFile
	if out == "" {
		out = fig.Date + ".html"
	}
	if err := render.WriteHTMLFile(fig, out); err != nil {
		fatalf("Failed to write HTML: %v", err)
	}
}

// splitFocus parses "column=value".
func splitFocus(s string) (column, value string, ok bool) {
	for i := 0; i < len(s); i++ {
		if s[i] == '=' {
			return s[:i], s[i+1:], i > 0 && i < len(s)-1
		}
	}
	return "", "", false
}

// ============================================================================
// JSON OUTPUT
// ============================================================================

// checkFormat rejects anything but the two supported schema formats.
func checkFormat(format string) error {
	switch format {
	case "json", "pretty":
		return nil
	}
	return fmt.Errorf("invalid --format %q, expected json or pretty", format)
}

func writeJSON(w *os.File, v interface{}, format string) {
	var out []byte
	var err error

	if format == "pretty" {
		out, err = json.MarshalIndent(v, "", "  ")
	} else {
		out, err = json.Marshal(v)
	}

	if err != nil {
		fatalf("Failed to marshal output: %v", err)
	}
	fmt.Fprintln(w, string(out))
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
