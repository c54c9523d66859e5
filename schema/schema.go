package schema

// ============================================================================
// SCHEMA: Describes the shape of a dataset for bubble chart role selection
// ============================================================================
// Auto-discovered from CSV. The CLI prints it (discover) and uses the
// suggested roles to fill in columns the user did not name (render).
// ============================================================================

// Kind is the encoding class of a column.
type Kind string

const (
	KindNumeric     Kind = "numeric"
	KindCategorical Kind = "categorical"
	KindBoolean     Kind = "boolean"
	KindTemporal    Kind = "temporal"
)

// Config describes the complete shape of a dataset.
type Config struct {
	Name     string       `json:"name"`
	Version  string       `json:"version,omitempty"`
	RowCount int          `json:"rowCount"`
	Columns  []ColumnMeta `json:"columns"`

	// Auto-discovery metadata
	DiscoveredFrom string `json:"discoveredFrom,omitempty"`
	DiscoveredAt   string `json:"discoveredAt,omitempty"`

	// Columns skipped during auto-discovery
	SkippedColumns []SkippedColumn `json:"skippedColumns,omitempty"`
}

// ColumnMeta describes one usable column.
type ColumnMeta struct {
	Key             string          `json:"key"` // header as written in the CSV
	DisplayName     string          `json:"displayName"`
	Kind            Kind            `json:"kind"`
	IsInteger       bool            `json:"isInteger,omitempty"`
	TemporalFormat  string          `json:"temporalFormat,omitempty"`
	UniqueCount     int             `json:"uniqueCount"`
	NullCount       int             `json:"nullCount,omitempty"`
	CardinalityHint string          `json:"cardinalityHint"` // "low", "medium", "high"
	SampleValues    []string        `json:"sampleValues"`
	Summary         *NumericSummary `json:"summary,omitempty"`
}

// NumericSummary is filled for columns whose values all parse as numbers.
type NumericSummary struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Mean float64 `json:"mean"`
}

// SkippedColumn records why a column was excluded during auto-discovery.
type SkippedColumn struct {
	Column string `json:"column"`
	Reason string `json:"reason"`
}

// Column returns the metadata for key, if discovered.
func (c Config) Column(key string) (ColumnMeta, bool) {
	for _, col := range c.Columns {
		if col.Key == key {
			return col, true
		}
	}
	return ColumnMeta{}, false
}

// Keys returns all column keys of the given kinds (all columns if none given).
func (c Config) Keys(kinds ...Kind) []string {
	var keys []string
	for _, col := range c.Columns {
		if len(kinds) == 0 || col.Kind.in(kinds) {
			keys = append(keys, col.Key)
		}
	}
	return keys
}

func (k Kind) in(kinds []Kind) bool {
	for _, x := range kinds {
		if k == x {
			return true
		}
	}
	return false
}
