package tool

import (
	"context"
	"fmt"

	ai "github.com/gridmind-ai/gridmind"
)

// The Excel tools describe spreadsheet operations for the model. The backend
// never touches a workbook: each handler returns a confirmation of the intent,
// and the client add-in watches the generated actions to perform the actual
// operation against the live workbook.

// ReadRangeArgs are the arguments for the read_excel_range tool.
type ReadRangeArgs struct {
	RangeAddress  string `json:"range_address"`
	WorksheetName string `json:"worksheet_name,omitempty"`
}

// WriteCellArgs are the arguments for the write_excel_cell tool.
type WriteCellArgs struct {
	CellAddress   string `json:"cell_address"`
	Value         any    `json:"value"`
	WorksheetName string `json:"worksheet_name,omitempty"`
}

// WriteRangeArgs are the arguments for the write_excel_range tool.
type WriteRangeArgs struct {
	RangeAddress  string  `json:"range_address"`
	Values        [][]any `json:"values"`
	WorksheetName string  `json:"worksheet_name,omitempty"`
}

// CreateWorksheetArgs are the arguments for the create_excel_worksheet tool.
type CreateWorksheetArgs struct {
	WorksheetName string `json:"worksheet_name"`
}

// AnalyzeDataArgs are the arguments for the analyze_excel_data tool.
type AnalyzeDataArgs struct {
	RangeAddress  string `json:"range_address,omitempty"`
	WorksheetName string `json:"worksheet_name,omitempty"`
}

// FindDataArgs are the arguments for the find_excel_data tool.
type FindDataArgs struct {
	SearchTerm    string `json:"search_term"`
	WorksheetName string `json:"worksheet_name,omitempty"`
}

// FormatRangeArgs are the arguments for the format_excel_range tool.
type FormatRangeArgs struct {
	RangeAddress  string `json:"range_address"`
	FormatType    string `json:"format_type"`
	WorksheetName string `json:"worksheet_name,omitempty"`
}

// CreateChartArgs are the arguments for the create_excel_chart tool.
type CreateChartArgs struct {
	DataRange     string `json:"data_range"`
	ChartType     string `json:"chart_type"`
	ChartTitle    string `json:"chart_title"`
	WorksheetName string `json:"worksheet_name,omitempty"`
}

// noArgs is used for tools that take no parameters.
type noArgs struct{}

func inWorksheet(name string) string {
	if name == "" {
		return ""
	}
	return fmt.Sprintf(" in worksheet '%s'", name)
}

// ExcelTools returns registrations for the full set of spreadsheet tools.
// Register them on a Registry with Add:
//
//	registry := tool.NewRegistry().Add(tool.ExcelTools()...)
func ExcelTools() []Registration {
	return []Registration{
		{
			Tool: ai.Tool{
				Name:        "read_excel_range",
				Description: "Read data from a specific Excel range.",
				Parameters: ai.SchemaFrom[ReadRangeArgs]().
					Desc("range_address", "The range address (e.g., 'A1:C5', 'B2')").
					Desc("worksheet_name", "Optional worksheet name; defaults to the active worksheet").
					Required("range_address").
					Build(),
			},
			Handler: typedHandler(func(ctx context.Context, args ReadRangeArgs) (string, error) {
				suffix := ""
				if args.WorksheetName != "" {
					suffix = fmt.Sprintf(" from worksheet '%s'", args.WorksheetName)
				}
				return fmt.Sprintf("Reading Excel range %s%s. The data will be retrieved from your Excel workbook.", args.RangeAddress, suffix), nil
			}),
		},
		{
			Tool: ai.Tool{
				Name:        "write_excel_cell",
				Description: "Write a value to a specific Excel cell.",
				Parameters: ai.SchemaFrom[WriteCellArgs]().
					Desc("cell_address", "The cell address (e.g., 'A1', 'B5')").
					Desc("value", "The value to write (number, text, formula, etc.)").
					Desc("worksheet_name", "Optional worksheet name; defaults to the active worksheet").
					Required("cell_address", "value").
					Build(),
			},
			Handler: typedHandler(func(ctx context.Context, args WriteCellArgs) (string, error) {
				return fmt.Sprintf("Writing '%v' to cell %s%s in your Excel workbook.", args.Value, args.CellAddress, inWorksheet(args.WorksheetName)), nil
			}),
		},
		{
			Tool: ai.Tool{
				Name:        "write_excel_range",
				Description: "Write a 2D array of values to a specific Excel range.",
				Parameters: ai.SchemaFrom[WriteRangeArgs]().
					Desc("range_address", "The range address (e.g., 'A1:C5')").
					Desc("values", "2D array of values to write, row by row").
					Desc("worksheet_name", "Optional worksheet name; defaults to the active worksheet").
					Required("range_address", "values").
					Build(),
			},
			Handler: typedHandler(func(ctx context.Context, args WriteRangeArgs) (string, error) {
				rows := len(args.Values)
				cols := 0
				if rows > 0 {
					cols = len(args.Values[0])
				}
				return fmt.Sprintf("Writing %dx%d data array to range %s%s in your Excel workbook.", rows, cols, args.RangeAddress, inWorksheet(args.WorksheetName)), nil
			}),
		},
		{
			Tool: ai.Tool{
				Name:        "get_excel_workbook_info",
				Description: "Get information about the current Excel workbook including worksheets and active sheet.",
				Parameters:  ai.SchemaFrom[noArgs]().Build(),
			},
			Handler: typedHandler(func(ctx context.Context, args noArgs) (string, error) {
				return "Retrieving information about your current Excel workbook, including worksheet names and active sheet.", nil
			}),
		},
		{
			Tool: ai.Tool{
				Name:        "get_excel_selected_range",
				Description: "Get the currently selected range in Excel.",
				Parameters:  ai.SchemaFrom[noArgs]().Build(),
			},
			Handler: typedHandler(func(ctx context.Context, args noArgs) (string, error) {
				return "Getting information about the currently selected range in your Excel workbook.", nil
			}),
		},
		{
			Tool: ai.Tool{
				Name:        "create_excel_worksheet",
				Description: "Create a new worksheet in the Excel workbook.",
				Parameters: ai.SchemaFrom[CreateWorksheetArgs]().
					Desc("worksheet_name", "Name for the new worksheet").
					Required("worksheet_name").
					Build(),
			},
			Handler: typedHandler(func(ctx context.Context, args CreateWorksheetArgs) (string, error) {
				return fmt.Sprintf("Creating a new worksheet named '%s' in your Excel workbook.", args.WorksheetName), nil
			}),
		},
		{
			Tool: ai.Tool{
				Name:        "analyze_excel_data",
				Description: "Analyze Excel data and provide insights, statistics, and recommendations.",
				Parameters: ai.SchemaFrom[AnalyzeDataArgs]().
					Desc("range_address", "Optional specific range to focus analysis on (e.g., 'A1:C5')").
					Desc("worksheet_name", "Optional worksheet name to analyze").
					Build(),
			},
			Handler: typedHandler(func(ctx context.Context, args AnalyzeDataArgs) (string, error) {
				scope := ""
				switch {
				case args.RangeAddress != "" && args.WorksheetName != "":
					scope = fmt.Sprintf(" for range %s in worksheet '%s'", args.RangeAddress, args.WorksheetName)
				case args.RangeAddress != "":
					scope = fmt.Sprintf(" for range %s", args.RangeAddress)
				case args.WorksheetName != "":
					scope = fmt.Sprintf(" for worksheet '%s'", args.WorksheetName)
				}
				return fmt.Sprintf("Analyzing Excel data%s. I will provide statistical summaries, data patterns, and actionable recommendations.", scope), nil
			}),
		},
		{
			Tool: ai.Tool{
				Name:        "find_excel_data",
				Description: "Find data in Excel worksheets that matches a search term.",
				Parameters: ai.SchemaFrom[FindDataArgs]().
					Desc("search_term", "The value to search for").
					Desc("worksheet_name", "Optional worksheet name; defaults to the active worksheet").
					Required("search_term").
					Build(),
			},
			Handler: typedHandler(func(ctx context.Context, args FindDataArgs) (string, error) {
				return fmt.Sprintf("Searching for '%s'%s in your Excel workbook and returning matching cell locations.", args.SearchTerm, inWorksheet(args.WorksheetName)), nil
			}),
		},
		{
			Tool: ai.Tool{
				Name:        "format_excel_range",
				Description: "Format a range in Excel (currency, percentage, date, bold, etc.).",
				Parameters: ai.SchemaFrom[FormatRangeArgs]().
					Desc("range_address", "The range to format (e.g., 'A1:C5')").
					Desc("format_type", "Type of formatting: 'currency', 'percentage', 'date', 'bold', 'italic', etc.").
					Desc("worksheet_name", "Optional worksheet name; defaults to the active worksheet").
					Required("range_address", "format_type").
					Build(),
			},
			Handler: typedHandler(func(ctx context.Context, args FormatRangeArgs) (string, error) {
				return fmt.Sprintf("Applying '%s' formatting to range %s%s in your Excel workbook.", args.FormatType, args.RangeAddress, inWorksheet(args.WorksheetName)), nil
			}),
		},
		{
			Tool: ai.Tool{
				Name:        "create_excel_chart",
				Description: "Create a chart in Excel from the specified data range.",
				Parameters: ai.SchemaFrom[CreateChartArgs]().
					Desc("data_range", "Range containing the data for the chart (e.g., 'A1:C10')").
					Desc("chart_type", "Type of chart: 'column', 'line', 'pie', 'bar', etc.").
					Desc("chart_title", "Title for the chart").
					Desc("worksheet_name", "Optional worksheet name; defaults to the active worksheet").
					Required("data_range", "chart_type", "chart_title").
					Build(),
			},
			Handler: typedHandler(func(ctx context.Context, args CreateChartArgs) (string, error) {
				return fmt.Sprintf("Creating a %s chart titled '%s' from data range %s%s in your Excel workbook.", args.ChartType, args.ChartTitle, args.DataRange, inWorksheet(args.WorksheetName)), nil
			}),
		},
	}
}

// NewExcelRegistry creates a registry pre-populated with the Excel tool set.
func NewExcelRegistry() *Registry {
	return NewRegistry().Add(ExcelTools()...)
}
