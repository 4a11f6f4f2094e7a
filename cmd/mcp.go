package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/skimtext/skim/pkg/summary"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start Skim as an MCP server",
	Long: `Starts Skim as a Model Context Protocol (MCP) server.

This allows AI assistants to condense long documents before reasoning
over them, using Skim's deterministic extractive summarizer.

Transports:
  stdio (default) - For local desktop apps
  http            - For remote deployments

Tools exposed:
  summarize_text - Extract the most representative sentences
  list_languages - List supported languages and their capabilities

Example:
  # Local stdio server
  skim mcp

  # Remote HTTP server
  skim mcp --transport http --port 8081

Configure in an MCP client (e.g. claude_desktop_config.json):
  {
    "mcpServers": {
      "skim": {
        "command": "skim",
        "args": ["mcp"]
      }
    }
  }`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport type: stdio or http")
	mcpCmd.Flags().Int("port", 8081, "HTTP server port (for http transport)")
	mcpCmd.Flags().String("host", "0.0.0.0", "HTTP server host (for http transport)")
}

func runMCP(cmd *cobra.Command, args []string) error {
	transport, _ := cmd.Flags().GetString("transport")
	port, _ := cmd.Flags().GetInt("port")
	host, _ := cmd.Flags().GetString("host")

	s := server.NewMCPServer(
		"Skim",
		"0.1.0",
		server.WithToolCapabilities(false),
	)

	registerMCPTools(s)

	switch transport {
	case "stdio":
		if err := server.ServeStdio(s); err != nil {
			return fmt.Errorf("MCP server error: %w", err)
		}

	case "http":
		addr := fmt.Sprintf("%s:%d", host, port)
		fmt.Printf("Skim MCP server starting on http://%s\n", addr)
		fmt.Printf("  Endpoint: http://%s/mcp\n", addr)
		fmt.Printf("  Health:   http://%s/health\n", addr)
		fmt.Println()

		mux := http.NewServeMux()

		mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"status":"ok","server":"skim-mcp"}`))
		})

		mcpHandler := server.NewStreamableHTTPServer(s, server.WithStateful(true))
		mux.Handle("/mcp", mcpHandler)

		httpServer := &http.Server{
			Addr:    addr,
			Handler: mux,
		}

		if err := httpServer.ListenAndServe(); err != nil {
			return fmt.Errorf("HTTP server error: %w", err)
		}

	default:
		return fmt.Errorf("unsupported transport: %s (use 'stdio' or 'http')", transport)
	}

	return nil
}

func registerMCPTools(s *server.MCPServer) {
	summarizeTool := mcp.NewTool("summarize_text",
		mcp.WithDescription(`Extract the most representative sentences from a document.

WHEN TO USE: Call this tool when a document is too long to process in
full. The summary keeps the original wording - sentences are selected,
never rewritten - so quotes stay accurate.

The selection is deterministic: the same document and parameters always
produce the same summary.`),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("The document to summarize"),
		),
		mcp.WithString("language",
			mcp.Description("Document language (e.g. 'english', 'german'), or 'agnostic' to skip stemming and stopword filtering (default: english)"),
		),
		mcp.WithNumber("sentences",
			mcp.Description("Number of sentences to keep. Mutually exclusive with 'ratio'."),
		),
		mcp.WithNumber("ratio",
			mcp.Description("Target summary length as a fraction of the document, 0.0 to 1.0 (default: 0.2). Mutually exclusive with 'sentences'."),
		),
	)

	s.AddTool(summarizeTool, handleSummarizeText)

	languagesTool := mcp.NewTool("list_languages",
		mcp.WithDescription("List the languages Skim supports, with their stemming and stopword capabilities."),
	)

	s.AddTool(languagesTool, handleListLanguages)
}

func handleSummarizeText(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("text parameter is required"), nil
	}

	language := request.GetString("language", "english")
	n := int(request.GetFloat("sentences", 0))
	ratio := request.GetFloat("ratio", 0)

	if n > 0 && ratio > 0 {
		return mcp.NewToolResultError("sentences and ratio are mutually exclusive"), nil
	}
	if n == 0 && ratio == 0 {
		ratio = 0.2
	}

	summarizer, err := newSummarizer(language)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	sentences, err := summarize(summarizer, text, n, ratio)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("summarization failed: %v", err)), nil
	}

	trimmed := make([]string, len(sentences))
	for i, sentence := range sentences {
		trimmed[i] = strings.TrimSpace(sentence)
	}

	result := map[string]interface{}{
		"sentences": trimmed,
		"stats": map[string]interface{}{
			"input_bytes":      len(text),
			"output_sentences": len(trimmed),
		},
	}

	resultJSON, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(resultJSON)), nil
}

func handleListLanguages(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	languages := summary.Languages()

	entries := make([]map[string]interface{}, len(languages))
	for i, lang := range languages {
		entries[i] = map[string]interface{}{
			"name":      lang.String(),
			"stemmer":   lang.HasStemmer(),
			"stopwords": lang.HasStopwords(),
		}
	}

	result := map[string]interface{}{
		"languages": entries,
		"note":      "Use 'agnostic' for unlisted languages; segmentation still follows Unicode rules.",
	}

	resultJSON, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(resultJSON)), nil
}
