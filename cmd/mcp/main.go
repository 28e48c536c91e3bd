// Command mcp exposes the gridmind Excel toolset as an MCP server over stdio.
//
// MCP clients can discover and call the spreadsheet tools. Each tool returns
// an intent description; the actual workbook operation is performed by the
// connected frontend.
//
// Usage:
//
//	go run ./cmd/mcp
package main

import (
	"log"

	"github.com/gridmind-ai/gridmind/mcp"
	"github.com/gridmind-ai/gridmind/tool"
)

func main() {
	registry := tool.NewExcelRegistry()

	if err := mcp.ServeStdio(registry,
		mcp.WithName("gridmind-excel"),
		mcp.WithVersion("1.0.0"),
	); err != nil {
		log.Fatal(err)
	}
}
