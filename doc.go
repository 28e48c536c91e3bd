// Package gridmind provides the shared contract between the spreadsheet
// assistant workflows and the AI providers that back them.
//
// The root package defines conversation messages, chat options, tool
// definitions, and categorized errors. Provider implementations live under
// provider/, the workflow engine under graph/, and the concrete assistant
// workflows under assistant/.
//
// Basic usage:
//
//	provider := openai.New(os.Getenv("OPENAI_API_KEY"))
//	resp, err := provider.Chat(ctx, []gridmind.Message{
//	    {Role: gridmind.RoleUser, Content: "Suggest a chart for monthly sales"},
//	})
package gridmind
