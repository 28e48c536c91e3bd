// Command demo runs the two gridmind workflows against sample spreadsheet
// data: an interactive chat session and a one-shot data analysis.
//
// Set an API key (ANTHROPIC_API_KEY, OPENAI_API_KEY, or GOOGLE_API_KEY) and
// GRIDMIND_PROVIDER to use a real provider; without keys the demo still runs
// on the deterministic template paths.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	gridmind "github.com/gridmind-ai/gridmind"
	"github.com/gridmind-ai/gridmind/assistant"
	"github.com/gridmind-ai/gridmind/client"
	"github.com/gridmind-ai/gridmind/config"
	"github.com/gridmind-ai/gridmind/excel"
	"github.com/gridmind-ai/gridmind/graph"
	"github.com/gridmind-ai/gridmind/session"
)

const defaultRunTimeout = 2 * time.Minute

var reader = bufio.NewReader(os.Stdin)

func main() {
	ctx := context.Background()

	fmt.Println("╔════════════════════════════════════════╗")
	fmt.Println("║        gridmind - Workflow Demo        ║")
	fmt.Println("╚════════════════════════════════════════╝")
	fmt.Println()

	var provider gridmind.ChatProvider
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("No provider configured (%v); using template responses.\n", err)
	} else {
		provider = client.New(client.Config{
			Provider: gridmind.Provider(cfg.Provider),
			Model:    cfg.Model,
			APIKeys: client.APIKeys{
				Anthropic: cfg.AnthropicKey,
				OpenAI:    cfg.OpenAIKey,
				Google:    cfg.GoogleKey,
			},
		},
			client.WithDefaultTemperature(cfg.Temperature),
			client.WithDefaultMaxTokens(cfg.MaxTokens),
		)
		fmt.Printf("Using provider: %s\n", cfg.Provider)
	}
	fmt.Println()

	store := session.NewMemoryStore()
	asst, err := assistant.New(provider, assistant.WithSessionStore(store))
	if err != nil {
		fmt.Printf("Failed to build workflows: %v\n", err)
		os.Exit(1)
	}

	data := sampleData()

	runAnalysis(ctx, asst, data)
	runChat(ctx, asst, data)
}

func sampleData() *excel.Data {
	return &excel.Data{
		Values: [][]any{
			{"Region", "Q1", "Q2", "Q3"},
			{"North", 1200.0, 1350.0, 1500.0},
			{"South", 800.0, 760.0, 910.0},
			{"East", 1500.0, 1480.0, 1620.0},
			{"West", 950.0, 1010.0, 990.0},
		},
		Address:   "A1:D5",
		Headers:   []string{"Region", "Q1", "Q2", "Q3"},
		SheetName: "Sales",
	}
}

func runAnalysis(ctx context.Context, asst *assistant.Assistant, data *excel.Data) {
	fmt.Println("── Analysis workflow ──")
	fmt.Printf("Analyzing %dx%d range %s...\n\n", data.RowCount(), data.ColumnCount(), data.Address)

	resp, err := asst.AnalyzeData(ctx, data, "", "")
	if err != nil {
		fmt.Printf("Analysis failed: %v\n", err)
		return
	}

	for _, insight := range resp.Insights {
		fmt.Printf("  • [%s] %s (%.0f%%): %s\n", insight.Category, insight.Title, insight.Confidence*100, insight.Description)
	}
	for _, viz := range resp.Visualizations {
		fmt.Printf("  • chart: %s (%s) over %s\n", viz.Title, viz.ChartType, viz.DataRange)
	}
	fmt.Printf("\n%s\n\n", resp.Summary)
}

func runChat(ctx context.Context, asst *assistant.Assistant, data *excel.Data) {
	fmt.Println("── Chat workflow ──")
	fmt.Println("Ask about the sample sales data (empty line to quit).")
	fmt.Println()

	excelCtx := &excel.Context{
		Data:          data,
		SelectedRange: "B2:D5",
		SheetName:     data.SheetName,
	}

	sessionID := ""
	for {
		fmt.Print("you> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			return
		}

		resp, err := asst.ProcessMessage(ctx, line, excelCtx, sessionID, graph.WithTimeout(defaultRunTimeout))
		if err != nil {
			fmt.Printf("error: %v\n", err)
			continue
		}
		sessionID = resp.SessionID

		fmt.Printf("\ngridmind> %s\n", resp.Content)
		for _, action := range resp.Actions {
			fmt.Printf("  [action] %s on %s: %s\n", action.Type, action.Target, action.Description)
		}
		fmt.Println()
	}
}
