package network

// ============================================================================
// BUILD OPTIONS — Functional options for Build()
// ============================================================================

// Option configures graph construction via functional options pattern.
type Option func(*config)

type config struct {
	GroupColumns     []string // derivation order; nil = union of observed keys, sorted
	ContactWeight    float64
	MembershipWeight float64

	// Focus trimming (disabled unless FocusColumn is set)
	FocusColumn   string
	FocusValue    string
	FocusAdjacent bool // keep nodes adjacent to the focus group via contact edges
}

// WithGroupColumns sets the group columns (and their derivation order) for
// synthetic membership edges. Without this option the builder uses the
// union of group keys observed on people, sorted.
func WithGroupColumns(columns ...string) Option {
	return func(c *config) {
		c.GroupColumns = columns
	}
}

// WithContactWeight overrides the layout weight of contact edges.
func WithContactWeight(w float64) Option {
	return func(c *config) {
		c.ContactWeight = w
	}
}

// WithMembershipWeight overrides the layout weight of membership edges.
func WithMembershipWeight(w float64) Option {
	return func(c *config) {
		c.MembershipWeight = w
	}
}

// WithFocusGroup trims the network to people whose group column holds the
// given value. When adjacent is true, people connected to the focus group
// by a contact edge are kept as well.
func WithFocusGroup(column, value string, adjacent bool) Option {
	return func(c *config) {
		c.FocusColumn = column
		c.FocusValue = value
		c.FocusAdjacent = adjacent
	}
}

// applyOptions creates a config from functional options.
func applyOptions(opts []Option) *config {
	cfg := &config{
		ContactWeight:    DefaultContactWeight,
		MembershipWeight: DefaultMembershipWeight,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
