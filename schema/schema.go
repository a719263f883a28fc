package schema

// ============================================================================
// SCHEMA — Describes the shape of a node table for the graph builder
// ============================================================================
// Auto-discovered from CSV headers or built by consumer apps.
// The CSV helpers use schema for column → role resolution.
// The network builder uses schema for the group column order.
// ============================================================================

// Config describes the complete column layout of a node table.
type Config struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`

	// Column roles, keyed by snake_case header.
	IDColumn   string `json:"idColumn"`
	CaseColumn string `json:"caseColumn,omitempty"`
	DateColumn string `json:"dateColumn,omitempty"`

	// Group columns derive synthetic membership edges, in declared order.
	GroupColumns []string `json:"groupColumns,omitempty"`

	// Free-form attribute columns carried through to node tooltips.
	Attributes []AttributeMeta `json:"attributes,omitempty"`

	// Auto-discovery metadata
	DiscoveredFrom string `json:"discoveredFrom,omitempty"`
	DiscoveredAt   string `json:"discoveredAt,omitempty"`

	// Columns skipped during auto-discovery
	SkippedColumns []SkippedColumn `json:"skippedColumns,omitempty"`
}

// AttributeMeta describes a pass-through string column.
type AttributeMeta struct {
	Key         string `json:"key"`
	DisplayName string `json:"displayName"`
}

// SkippedColumn records why a column was excluded during auto-discovery.
type SkippedColumn struct {
	Column      string `json:"column"`
	Reason      string `json:"reason"`
	Recoverable bool   `json:"recoverable"` // Can be restored if consumer overrides
}

// DefaultAttribute creates an AttributeMeta with a derived display name.
func DefaultAttribute(key string) AttributeMeta {
	return AttributeMeta{
		Key:         key,
		DisplayName: toDisplayName(key),
	}
}

// HasDate reports whether a date column was identified. Without one the
// recency encoding is disabled and every node renders at full opacity.
func (c Config) HasDate() bool { return c.DateColumn != "" }

// HasGroups reports whether any group columns were identified. Without them
// no membership edges are derived.
func (c Config) HasGroups() bool { return len(c.GroupColumns) > 0 }

// AttributeKeys returns all attribute keys in declared order.
func (c Config) AttributeKeys() []string {
	keys := make([]string, len(c.Attributes))
	for i, a := range c.Attributes {
		keys[i] = a.Key
	}
	return keys
}
