package helpers

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/cornell-covid-modeling/tracenet/network"
	"github.com/cornell-covid-modeling/tracenet/schema"
)

// ============================================================================
// CSV HELPERS — Parse node and edge tables into network inputs
// ============================================================================
// Consumer reads the CSV from wherever it lives (file, S3, export job).
// These helpers convert the raw bytes into typed inputs using the schema.
// Malformed rows are skipped, not fatal.
// ============================================================================

// ParseNodesCSV parses a node table into people using schema for column
// role resolution.
func ParseNodesCSV(data []byte, sch schema.Config) ([]network.Person, error) {
	reader := csv.NewReader(strings.NewReader(string(data)))

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}

	groupSet := make(map[string]bool)
	for _, g := range sch.GroupColumns {
		groupSet[g] = true
	}
	attrSet := make(map[string]bool)
	for _, a := range sch.Attributes {
		attrSet[a.Key] = true
	}

	type role int
	const (
		roleNone role = iota
		roleID
		roleCase
		roleDate
		roleGroup
		roleAttr
	)

	roles := make([]role, len(headers))
	keys := make([]string, len(headers))
	for i, h := range headers {
		key := toSnakeCase(strings.TrimSpace(h))
		keys[i] = key
		switch {
		case key == sch.IDColumn:
			roles[i] = roleID
		case key == sch.CaseColumn:
			roles[i] = roleCase
		case key == sch.DateColumn:
			roles[i] = roleDate
		case groupSet[key]:
			roles[i] = roleGroup
		case attrSet[key]:
			roles[i] = roleAttr
		}
		// Unmapped columns are silently skipped
	}

	var people []network.Person
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue // skip malformed rows
		}

		p := network.Person{
			Groups: make(map[string]string),
			Attrs:  make(map[string]string),
		}
		ok := false

		for i, val := range row {
			if i >= len(roles) {
				break
			}
			val = strings.TrimSpace(val)

			switch roles[i] {
			case roleID:
				id, err := strconv.ParseInt(val, 10, 64)
				if err != nil {
					break
				}
				p.ID = id
				ok = true
			case roleCase:
				p.Case = val
			case roleDate:
				if d, err := ParseDate(val); err == nil {
					p.TestDate = d
				}
			case roleGroup:
				if val != "" {
					p.Groups[keys[i]] = val
				}
			case roleAttr:
				if val != "" {
					p.Attrs[keys[i]] = val
				}
			}
		}

		if !ok {
			continue // unparseable id — skip row
		}
		people = append(people, p)
	}

	return people, nil
}

// ParseEdgesCSV parses a contact table. The header must contain source and
// target columns; extra columns are ignored.
func ParseEdgesCSV(data []byte) ([]network.Contact, error) {
	reader := csv.NewReader(strings.NewReader(string(data)))

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}

	sourceCol, targetCol := -1, -1
	for i, h := range headers {
		switch toSnakeCase(strings.TrimSpace(h)) {
		case "source", "from":
			if sourceCol < 0 {
				sourceCol = i
			}
		case "target", "to":
			if targetCol < 0 {
				targetCol = i
			}
		}
	}
	if sourceCol < 0 || targetCol < 0 {
		return nil, fmt.Errorf("edge table needs source and target columns, got %v", headers)
	}

	var contacts []network.Contact
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil || len(row) <= sourceCol || len(row) <= targetCol {
			continue // skip malformed rows
		}

		source, err := strconv.ParseInt(strings.TrimSpace(row[sourceCol]), 10, 64)
		if err != nil {
			continue
		}
		target, err := strconv.ParseInt(strings.TrimSpace(row[targetCol]), 10, 64)
		if err != nil {
			continue
		}

		contacts = append(contacts, network.Contact{Source: source, Target: target})
	}

	return contacts, nil
}

// Accepted test-date layouts, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"01/02/2006",
}

// ParseDate parses a test date, keeping only the date part.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// toSnakeCase converts "Column Name" → "column_name".
func toSnakeCase(s string) string {
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
