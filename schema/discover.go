package schema

import (
	"encoding/csv"
	"fmt"
	"strings"
	"time"
	"unicode"
)

// ============================================================================
// AUTO-DISCOVERY — Heuristic Header Classification
// ============================================================================
// Inspects a node table's headers and generates a schema.Config.
//
// Classification pipeline per column:
//   1. Normalize header → snake_case key
//   2. Exact-name matching → id / case / date roles
//   3. Prefix matching ("group_") → group columns
//   4. Everything else → pass-through attribute
//   5. Duplicate headers → skipped (first occurrence wins)
//
// If no column is named "id", the first column is assumed to be the
// identifier, matching the usual index-column export convention.
// ============================================================================

// DiscoverOptions controls discovery behavior.
type DiscoverOptions struct {
	Name           string   // Dataset name override (otherwise a generic default)
	GroupColumns   []string // Force these headers into the group role
	SkipColumns    []string // Exclude these headers entirely
	RecoverColumns []string // Force-include columns that were auto-skipped
}

// Columns matched (after snake_casing) for each special role.
var (
	idNames   = map[string]bool{"id": true, "person_id": true, "node_id": true}
	caseNames = map[string]bool{"case": true, "case_number": true, "case_num": true}
	dateNames = map[string]bool{"date": true, "test_date": true, "positive_date": true}
)

const groupPrefix = "group_"

// Discover classifies a header row into a schema.Config.
func Discover(headers []string, opts ...DiscoverOptions) (*Config, error) {
	opt := DiscoverOptions{}
	if len(opts) > 0 {
		opt = opts[0]
	}

	if len(headers) == 0 {
		return nil, fmt.Errorf("node table has no columns")
	}

	forceGroup := make(map[string]bool)
	for _, h := range opt.GroupColumns {
		forceGroup[toSnakeCase(h)] = true
	}
	skip := make(map[string]bool)
	for _, h := range opt.SkipColumns {
		skip[toSnakeCase(h)] = true
	}
	recovered := make(map[string]bool)
	for _, h := range opt.RecoverColumns {
		recovered[toSnakeCase(h)] = true
	}

	config := &Config{
		Name:         opt.Name,
		Version:      "1.0",
		DiscoveredAt: time.Now().UTC().Format(time.RFC3339),
	}
	if config.Name == "" {
		config.Name = "Contact-tracing node table"
	}

	seen := make(map[string]bool)
	firstKey := ""
	for _, header := range headers {
		key := toSnakeCase(strings.TrimSpace(header))

		if key == "" {
			config.SkippedColumns = append(config.SkippedColumns, SkippedColumn{
				Column: header, Reason: "blank header", Recoverable: false,
			})
			continue
		}
		if seen[key] {
			config.SkippedColumns = append(config.SkippedColumns, SkippedColumn{
				Column: header, Reason: "duplicate header", Recoverable: false,
			})
			continue
		}
		seen[key] = true

		if skip[key] && !recovered[key] {
			config.SkippedColumns = append(config.SkippedColumns, SkippedColumn{
				Column: header, Reason: "excluded by option", Recoverable: true,
			})
			continue
		}
		if firstKey == "" {
			firstKey = key
		}

		switch {
		case config.IDColumn == "" && idNames[key]:
			config.IDColumn = key
		case config.CaseColumn == "" && caseNames[key]:
			config.CaseColumn = key
		case config.DateColumn == "" && dateNames[key]:
			config.DateColumn = key
		case strings.HasPrefix(key, groupPrefix) || forceGroup[key]:
			config.GroupColumns = append(config.GroupColumns, key)
		default:
			config.Attributes = append(config.Attributes, DefaultAttribute(key))
		}
	}

	if config.IDColumn == "" && firstKey != "" {
		// First column doubles as the identifier when nothing is named
		// "id", whatever role it classified as.
		promoteToID(config, firstKey)
	}
	if config.IDColumn == "" {
		return nil, fmt.Errorf("no identifier column found in headers %v", headers)
	}

	return config, nil
}

// promoteToID reassigns the column with the given key to the identifier
// role, removing it from whichever role classification gave it.
func promoteToID(config *Config, key string) {
	switch {
	case config.CaseColumn == key:
		config.CaseColumn = ""
	case config.DateColumn == key:
		config.DateColumn = ""
	}
	for i, col := range config.GroupColumns {
		if col == key {
			config.GroupColumns = append(config.GroupColumns[:i], config.GroupColumns[i+1:]...)
			break
		}
	}
	for i, attr := range config.Attributes {
		if attr.Key == key {
			config.Attributes = append(config.Attributes[:i], config.Attributes[i+1:]...)
			break
		}
	}
	config.IDColumn = key
}

// DiscoverFromCSV reads only the header row of CSV data and classifies it.
func DiscoverFromCSV(data []byte, opts ...DiscoverOptions) (*Config, error) {
	reader := csv.NewReader(strings.NewReader(string(data)))

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}

	config, err := Discover(headers, opts...)
	if err != nil {
		return nil, err
	}
	config.DiscoveredFrom = "csv"
	return config, nil
}

// ============================================================================
// STRING UTILITIES
// ============================================================================

// toSnakeCase converts "Column Name" or "columnName" → "column_name".
func toSnakeCase(s string) string {
	// Handle camelCase: insert underscore before uppercase letters
	var result strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) && i > 0 {
			prev := rune(s[i-1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) {
				result.WriteRune('_')
			}
		}
		result.WriteRune(r)
	}

	s = result.String()
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "__", "_")
	s = strings.Trim(s, "_")
	return s
}

// toDisplayName cleans a header for human display.
// "job_profile" → "Job Profile", "building" → "Building"
func toDisplayName(s string) string {
	// If already has spaces/mixed case, just trim
	if strings.Contains(s, " ") {
		return strings.TrimSpace(s)
	}

	s = strings.ReplaceAll(s, "_", " ")
	s = strings.ReplaceAll(s, "-", " ")

	words := strings.Fields(s)
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
		}
	}
	return strings.Join(words, " ")
}
