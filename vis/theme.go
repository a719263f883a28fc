package vis

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ============================================================================
// THEME — Visual Encoding Constants
// ============================================================================
// Defaults echo the original campus dashboard: red recent cases fading over
// a two-week window, blue everyone else, solid contact traces, faint dashed
// membership edges.
// ============================================================================

// Theme holds the tunable constants of the visual encoding.
type Theme struct {
	CaseColor string `yaml:"case_color" json:"caseColor"` // recent positive cases
	BaseColor string `yaml:"base_color" json:"baseColor"` // everyone else

	RecencyWindowDays int     `yaml:"recency_window_days" json:"recencyWindowDays"`
	MinAlpha          float64 `yaml:"min_alpha" json:"minAlpha"` // opacity at window end

	NodeSize  int     `yaml:"node_size" json:"nodeSize"`
	EdgeWidth float64 `yaml:"edge_width" json:"edgeWidth"`

	ContactAlpha         float64 `yaml:"contact_alpha" json:"contactAlpha"`
	MembershipAlpha      float64 `yaml:"membership_alpha" json:"membershipAlpha"`            // on the All view
	MembershipFocusAlpha float64 `yaml:"membership_focus_alpha" json:"membershipFocusAlpha"` // on group views
}

// DefaultTheme returns the standard encoding.
func DefaultTheme() Theme {
	return Theme{
		CaseColor:            "#DC0000",
		BaseColor:            "#65ADFF",
		RecencyWindowDays:    14,
		MinAlpha:             0.5,
		NodeSize:             9,
		EdgeWidth:            3,
		ContactAlpha:         1.0,
		MembershipAlpha:      0.1,
		MembershipFocusAlpha: 0.2,
	}
}

// LoadTheme overlays YAML settings onto the default theme. Absent fields
// keep their defaults.
func LoadTheme(data []byte) (Theme, error) {
	theme := DefaultTheme()
	if err := yaml.Unmarshal(data, &theme); err != nil {
		return Theme{}, fmt.Errorf("failed to parse theme: %w", err)
	}
	if theme.RecencyWindowDays < 1 {
		return Theme{}, fmt.Errorf("theme: recency_window_days must be positive, got %d", theme.RecencyWindowDays)
	}
	if theme.MinAlpha < 0 || theme.MinAlpha > 1 {
		return Theme{}, fmt.Errorf("theme: min_alpha must be in [0, 1], got %v", theme.MinAlpha)
	}
	return theme, nil
}
