package schema

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/aclements/go-moremath/stats"
)

// ============================================================================
// AUTO-DISCOVERY: Heuristic column classification
// ============================================================================
// Inspects raw CSV and generates a schema.Config automatically.
//
// Classification pipeline per column:
//   1. Sample values → detect type (numeric, date, bool, string)
//   2. Pattern matching → temporal strings (yyyy-MM, Q1-2026, ...)
//   3. Type → kind (numeric, categorical, boolean, temporal)
//   4. Numeric summary (min, max, mean) when every value is a number
// ============================================================================

// DiscoverOptions controls discovery behavior.
type DiscoverOptions struct {
	SampleSize int    // Max rows to inspect (0 = all). Default: 1000
	Name       string // Dataset name override (otherwise generic)
}

// DefaultDiscoverOptions returns sensible defaults.
func DefaultDiscoverOptions() DiscoverOptions {
	return DiscoverOptions{
		SampleSize: 1000,
	}
}

// DiscoverFromCSV generates a schema.Config by inspecting CSV data.
func DiscoverFromCSV(data []byte, opts ...DiscoverOptions) (*Config, error) {
	opt := DefaultDiscoverOptions()
	if len(opts) > 0 {
		opt = opts[0]
	}

	reader := csv.NewReader(strings.NewReader(string(data)))

	// 1. Read headers
	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}

	if len(headers) == 0 {
		return nil, fmt.Errorf("CSV has no columns")
	}

	// 2. Read sample rows
	var rows [][]string
	limit := opt.SampleSize
	if limit <= 0 {
		limit = 100000 // safety cap
	}

	for i := 0; i < limit; i++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue // skip malformed rows
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("CSV has no data rows")
	}

	// 3. Build schema
	config := &Config{
		Name:     opt.Name,
		Version:  "1.0",
		RowCount: len(rows),
	}
	if config.Name == "" {
		config.Name = "Auto-discovered Dataset"
	}

	for i, header := range headers {
		col := analyzeColumn(strings.TrimSpace(header), i, rows)
		if col.skipReason != "" {
			config.SkippedColumns = append(config.SkippedColumns, SkippedColumn{
				Column: col.header,
				Reason: col.skipReason,
			})
			continue
		}
		config.Columns = append(config.Columns, col.toMeta())
	}

	config.DiscoveredFrom = "CSV"
	config.DiscoveredAt = time.Now().Format(time.RFC3339)

	return config, nil
}

// ============================================================================
// COLUMN ANALYSIS
// ============================================================================

type columnType int

const (
	typeString columnType = iota
	typeNumeric
	typeDate
	typeBool
)

type columnAnalysis struct {
	header     string
	index      int
	colType    columnType
	skipReason string

	// Stats
	uniqueCount int
	nullCount   int
	sampleVals  []string
	numbers     []float64 // every value, when all parse as numbers
	isInteger   bool

	// Special type detection
	isTemporal      bool
	temporalFormat  string
	cardinalityHint string
}

// analyzeColumn inspects all values in a column and classifies it.
func analyzeColumn(header string, index int, rows [][]string) columnAnalysis {
	col := columnAnalysis{
		header: header,
		index:  index,
	}

	// Collect values
	values := make([]string, 0, len(rows))
	uniqueSet := make(map[string]bool)

	for _, row := range rows {
		if index >= len(row) {
			col.nullCount++
			continue
		}
		val := strings.TrimSpace(row[index])
		if IsNull(val) {
			col.nullCount++
			continue
		}
		values = append(values, val)
		uniqueSet[val] = true
	}

	col.uniqueCount = len(uniqueSet)

	if len(values) == 0 {
		col.skipReason = "All values are empty/null"
		return col
	}

	// Collect sample values (up to 10, sorted)
	col.sampleVals = collectSamples(uniqueSet, 10)

	// Step 1: Detect type
	col.colType = detectType(values)

	// Step 2: Temporal strings
	switch col.colType {
	case typeString:
		col.isTemporal, col.temporalFormat = detectTemporalPattern(col.sampleVals)
	case typeDate:
		col.isTemporal = true
		col.temporalFormat = detectDateFormat(values[0])
	}

	// Step 3: Numbers
	col.numbers, col.isInteger = parseNumbers(values)

	// Step 4: Set cardinality hint
	switch {
	case col.uniqueCount <= 10:
		col.cardinalityHint = "low"
	case col.uniqueCount <= 100:
		col.cardinalityHint = "medium"
	default:
		col.cardinalityHint = "high"
	}

	return col
}

// kind maps the detected type onto a column kind.
func (col *columnAnalysis) kind() Kind {
	switch {
	case col.isTemporal:
		return KindTemporal
	case col.colType == typeBool:
		return KindBoolean
	case col.colType == typeNumeric:
		return KindNumeric
	}
	return KindCategorical
}

// toMeta converts a column analysis into ColumnMeta.
func (col *columnAnalysis) toMeta() ColumnMeta {
	meta := ColumnMeta{
		Key:             col.header,
		DisplayName:     toDisplayName(col.header),
		Kind:            col.kind(),
		TemporalFormat:  col.temporalFormat,
		UniqueCount:     col.uniqueCount,
		NullCount:       col.nullCount,
		CardinalityHint: col.cardinalityHint,
		SampleValues:    col.sampleVals,
	}
	if col.numbers != nil {
		meta.IsInteger = col.isInteger
		lo, hi := stats.Bounds(col.numbers)
		meta.Summary = &NumericSummary{
			Min:  lo,
			Max:  hi,
			Mean: stats.Mean(col.numbers),
		}
	}
	return meta
}

// ============================================================================
// TYPE DETECTION
// ============================================================================

// IsNull reports whether a trimmed cell counts as missing.
func IsNull(v string) bool {
	return v == "" || v == "null" || v == "NULL" || v == "N/A" || v == "n/a" || v == "NaN"
}

// detectType inspects values to determine column type.
// Requires 80%+ of non-null values to match for numeric/date/bool.
func detectType(values []string) columnType {
	if len(values) == 0 {
		return typeString
	}

	numCount := 0
	dateCount := 0
	boolCount := 0

	for _, v := range values {
		if isNumeric(v) {
			numCount++
		}
		if isDate(v) {
			dateCount++
		}
		if isBool(v) {
			boolCount++
		}
	}

	threshold := int(float64(len(values)) * 0.8)

	if boolCount >= threshold {
		return typeBool
	}
	if dateCount >= threshold {
		return typeDate
	}
	if numCount >= threshold {
		return typeNumeric
	}
	return typeString
}

// CleanNumber strips spaces, thousands separators and a leading currency
// symbol so the cell can be handed to strconv.
func CleanNumber(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "") // handle "1,234.56"
	s = strings.TrimPrefix(s, "$")
	s = strings.TrimPrefix(s, "€")
	s = strings.TrimPrefix(s, "£")
	return s
}

func isNumeric(s string) bool {
	_, err := strconv.ParseFloat(CleanNumber(s), 64)
	return err == nil
}

// parseNumbers returns all values as floats, or nil if any does not parse.
func parseNumbers(values []string) ([]float64, bool) {
	out := make([]float64, len(values))
	integer := true
	for i, v := range values {
		f, err := strconv.ParseFloat(CleanNumber(v), 64)
		if err != nil {
			return nil, false
		}
		out[i] = f
		if _, err := strconv.ParseInt(CleanNumber(v), 10, 64); err != nil {
			integer = false
		}
	}
	return out, integer
}

var dateFormats = []string{
	"2006-01-02",
	"2006-01-02T15:04:05Z",
	"2006-01-02 15:04:05",
	"01/02/2006",
	"02/01/2006",
	"Jan-2006",
	"January 2006",
	"2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

func isDate(s string) bool {
	return detectDateFormat(s) != ""
}

// detectDateFormat returns the first layout that parses s.
func detectDateFormat(s string) string {
	s = strings.TrimSpace(s)
	for _, layout := range dateFormats {
		if _, err := time.Parse(layout, s); err == nil {
			return layout
		}
	}
	return ""
}

func isBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "false" || s == "yes" || s == "no"
}

// ============================================================================
// TEMPORAL PATTERNS
// ============================================================================

var monthPatterns = []struct {
	re     *regexp.Regexp
	format string
}{
	{regexp.MustCompile(`^[A-Z][a-z]{2}-\d{4}$`), "MMM-yyyy"},  // Jan-2026
	{regexp.MustCompile(`^\d{4}-\d{2}$`), "yyyy-MM"},           // 2026-01
	{regexp.MustCompile(`^Q[1-4]-\d{4}$`), "QN-yyyy"},          // Q1-2026
	{regexp.MustCompile(`^Q[1-4]\s+\d{4}$`), "QN yyyy"},        // Q1 2026
	{regexp.MustCompile(`^\d{4}$`), "yyyy"},                    // 2026
	{regexp.MustCompile(`^[A-Z][a-z]+ \d{4}$`), "MMMM yyyy"},   // January 2026
}

// detectTemporalPattern checks if values match known date/month/quarter patterns.
func detectTemporalPattern(samples []string) (bool, string) {
	if len(samples) == 0 {
		return false, ""
	}

	for _, pattern := range monthPatterns {
		matches := 0
		for _, s := range samples {
			if pattern.re.MatchString(strings.TrimSpace(s)) {
				matches++
			}
		}
		if float64(matches)/float64(len(samples)) >= 0.8 {
			return true, pattern.format
		}
	}

	return false, ""
}

// ============================================================================
// STRING UTILITIES
// ============================================================================

// toDisplayName cleans a header for human display.
// "life_exp" → "Life Exp", "gdpPercap" → "Gdp Percap"
func toDisplayName(s string) string {
	// If already has spaces/mixed case, just trim
	if strings.Contains(s, " ") {
		return strings.TrimSpace(s)
	}

	// Split camelCase, then snake_case and kebab-case
	var b strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			prev := s[i-1]
			if prev >= 'a' && prev <= 'z' {
				b.WriteByte(' ')
			}
		}
		b.WriteRune(r)
	}
	s = strings.ReplaceAll(b.String(), "_", " ")
	s = strings.ReplaceAll(s, "-", " ")

	words := strings.Fields(s)
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
		}
	}
	return strings.Join(words, " ")
}

// collectSamples picks up to maxSamples representative values.
func collectSamples(uniqueSet map[string]bool, maxSamples int) []string {
	samples := make([]string, 0, len(uniqueSet))
	for v := range uniqueSet {
		samples = append(samples, v)
	}

	// Sort for deterministic output
	sort.Strings(samples)

	if len(samples) > maxSamples {
		samples = samples[:maxSamples]
	}
	return samples
}
