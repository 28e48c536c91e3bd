package excel

// Insight is a single analytical finding about a dataset. Confidence is
// in [0, 1].
type Insight struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Confidence  float64 `json:"confidence"`
	Category    string  `json:"category"`
}

// Suggestion is a recommended follow-up action for the user.
type Suggestion struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority,omitempty"`
}

// Visualization describes a chart the frontend could render over a data
// range.
type Visualization struct {
	ChartType   string         `json:"chart_type"`
	Title       string         `json:"title"`
	DataRange   string         `json:"data_range"`
	Description string         `json:"description"`
	Config      map[string]any `json:"config,omitempty"`
}

// FormulaResult is a generated Excel formula with its explanation.
// Confidence is in [0, 1].
type FormulaResult struct {
	Formula     string  `json:"formula"`
	Explanation string  `json:"explanation"`
	Example     string  `json:"example"`
	Confidence  float64 `json:"confidence"`
}

// ChartSuggestion is a chart type recommendation produced by the model.
type ChartSuggestion struct {
	ChartType   string   `json:"chart_type"`
	Title       string   `json:"title"`
	Reasoning   string   `json:"reasoning"`
	DataColumns []string `json:"data_columns"`
	Confidence  float64  `json:"confidence"`
}

// PatternAnalysis holds the patterns, anomalies, trends, and
// correlations detected in a dataset. Entries are free-form maps so the
// model can attach whatever detail it finds relevant.
type PatternAnalysis struct {
	Patterns     []map[string]any `json:"patterns"`
	Anomalies    []map[string]any `json:"anomalies"`
	Trends       []map[string]any `json:"trends"`
	Correlations []map[string]any `json:"correlations"`
}

// DataSummary is a narrative summary of a dataset.
type DataSummary struct {
	Text            string         `json:"text"`
	KeyMetrics      map[string]any `json:"key_metrics"`
	Highlights      []string       `json:"highlights"`
	Recommendations []string       `json:"recommendations"`
}
