package schema

import "strings"

// ============================================================================
// ROLE SUGGESTION: Pick bubble chart columns from a discovered schema
// ============================================================================
// time  → first temporal column (names with year/time/date win)
// x,y   → first two numeric columns
// size  → third numeric column
// label → highest-cardinality categorical column
// color → lowest-cardinality categorical/boolean column (≥2 values)
// ============================================================================

// Roles are the column names suggested for each chart role.
// Empty strings mean no suitable column was found.
type Roles struct {
	X     string `json:"x"`
	Y     string `json:"y"`
	Label string `json:"label"`
	Time  string `json:"time,omitempty"`
	Size  string `json:"size,omitempty"`
	Color string `json:"color,omitempty"`
}

// Complete reports whether the required roles (x, y, label) are filled.
func (r Roles) Complete() bool {
	return r.X != "" && r.Y != "" && r.Label != ""
}

var timeHints = []string{"year", "time", "date", "period", "month"}

// SuggestRoles picks a column for each chart role.
func (c Config) SuggestRoles() Roles {
	var roles Roles

	// Time
	for _, col := range c.Columns {
		if col.Kind != KindTemporal {
			continue
		}
		if roles.Time == "" {
			roles.Time = col.Key
		}
		if hasHint(col.Key) {
			roles.Time = col.Key
			break
		}
	}

	// Numeric axes and size
	var numeric []string
	for _, col := range c.Columns {
		if col.Kind == KindNumeric && col.Key != roles.Time {
			numeric = append(numeric, col.Key)
		}
	}
	if len(numeric) > 0 {
		roles.X = numeric[0]
	}
	if len(numeric) > 1 {
		roles.Y = numeric[1]
	}
	if len(numeric) > 2 {
		roles.Size = numeric[2]
	}

	// Label
	best := -1
	for _, col := range c.Columns {
		if col.Kind == KindCategorical && col.UniqueCount > best {
			roles.Label = col.Key
			best = col.UniqueCount
		}
	}

	// Color
	fewest := 0
	for _, col := range c.Columns {
		if col.Key == roles.Label || col.UniqueCount < 2 {
			continue
		}
		if col.Kind != KindCategorical && col.Kind != KindBoolean {
			continue
		}
		if roles.Color == "" || col.UniqueCount < fewest {
			roles.Color = col.Key
			fewest = col.UniqueCount
		}
	}

	return roles
}

func hasHint(key string) bool {
	k := strings.ToLower(key)
	for _, h := range timeHints {
		if strings.Contains(k, h) {
			return true
		}
	}
	return false
}
