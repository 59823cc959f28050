package serve

import (
	"context"
	"fmt"
	"log"

	"github.com/bytedance/sonic"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ruta53/alojamientos/internal/config"
	"github.com/ruta53/alojamientos/internal/extract"
	"github.com/ruta53/alojamientos/internal/source"
)

// Server exposes the extraction engine and its read patterns as MCP tools
// over stdio. It holds exactly one current snapshot; every successful
// registro_extract call replaces it atomically.
type Server struct {
	config    *config.Config
	service   *source.Service
	holder    *Holder
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server instance.
func NewServer(cfg *config.Config, service *source.Service) (*Server, error) {
	if service == nil {
		return nil, fmt.Errorf("service cannot be nil")
	}

	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false),
	)

	s := &Server{
		config:    cfg,
		service:   service,
		holder:    NewHolder(),
		mcpServer: mcpServer,
	}

	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools.
func (s *Server) registerTools() {
	extractTool := mcp.NewTool(
		"registro_extract",
		mcp.WithDescription("Extract lodging records from a published registro de alojamientos report (PDF or text, optionally zstd/gzip compressed)"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the report file"),
		),
	)
	s.mcpServer.AddTool(extractTool, s.handleExtract)

	searchTool := mcp.NewTool(
		"registro_search",
		mcp.WithDescription("Full-text search over the current snapshot's name, description, province and modalidad fields"),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Search text (case- and accent-insensitive)"),
		),
	)
	s.mcpServer.AddTool(searchTool, s.handleSearch)

	byProvinciaTool := mcp.NewTool(
		"registro_by_provincia",
		mcp.WithDescription("List the current snapshot's records for one province (exact match)"),
		mcp.WithString("provincia",
			mcp.Required(),
			mcp.Description("Province name, e.g. 'Pinar del Río'"),
		),
	)
	s.mcpServer.AddTool(byProvinciaTool, s.handleByProvincia)

	byModalidadTool := mcp.NewTool(
		"registro_by_modalidad",
		mcp.WithDescription("List the current snapshot's records for one lodging modalidad (exact match)"),
		mcp.WithString("modalidad",
			mcp.Required(),
			mcp.Description("Modalidad, e.g. 'Hostal Familiar'"),
		),
	)
	s.mcpServer.AddTool(byModalidadTool, s.handleByModalidad)

	statusTool := mcp.NewTool(
		"registro_status",
		mcp.WithDescription("Report the current snapshot's status, record count and per-section diagnostics"),
	)
	s.mcpServer.AddTool(statusTool, s.handleStatus)
}

// Handler functions

func (s *Server) handleExtract(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.service.ExtractFile(path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	snap := s.holder.Replace(result, path)

	responseText := fmt.Sprintf("Extracted %s\n", path)
	responseText += fmt.Sprintf("Status: %s\n", result.Status)
	responseText += fmt.Sprintf("Records: %d\n", len(result.Records))
	responseText += fmt.Sprintf("Sections: %d\n", result.Sections)
	responseText += fmt.Sprintf("Diagnostics: %d\n", len(result.Diagnostics))
	responseText += fmt.Sprintf("Loaded at: %s\n", snap.LoadedAt.Format("2006-01-02 15:04:05 UTC"))
	if result.Status != extract.StatusOK && len(result.Records) == 0 {
		responseText += "\nNo records were extracted; the previous snapshot, if any, was still replaced. " +
			"Check registro_status for diagnostics before trusting this run.\n"
	}

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleSearch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	snap := s.holder.Current()
	if snap == nil {
		return mcp.NewToolResultError("no snapshot loaded; run registro_extract first"), nil
	}

	return recordsResult(extract.Search(snap.Result.Records, query))
}

func (s *Server) handleByProvincia(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	provincia, err := request.RequireString("provincia")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	snap := s.holder.Current()
	if snap == nil {
		return mcp.NewToolResultError("no snapshot loaded; run registro_extract first"), nil
	}

	return recordsResult(extract.ByRegion(snap.Result.Records, provincia))
}

func (s *Server) handleByModalidad(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	modalidad, err := request.RequireString("modalidad")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	snap := s.holder.Current()
	if snap == nil {
		return mcp.NewToolResultError("no snapshot loaded; run registro_extract first"), nil
	}

	return recordsResult(extract.ByCategory(snap.Result.Records, modalidad))
}

func (s *Server) handleStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap := s.holder.Current()
	if snap == nil {
		return mcp.NewToolResultText("No snapshot loaded. Run registro_extract first."), nil
	}

	responseText := fmt.Sprintf("Source: %s\n", snap.Source)
	responseText += fmt.Sprintf("Loaded at: %s\n", snap.LoadedAt.Format("2006-01-02 15:04:05 UTC"))
	responseText += fmt.Sprintf("Status: %s\n", snap.Result.Status)
	responseText += fmt.Sprintf("Records: %d\n", len(snap.Result.Records))
	responseText += fmt.Sprintf("Sections: %d\n", snap.Result.Sections)
	if len(snap.Result.Diagnostics) > 0 {
		responseText += "\nDiagnostics:\n"
		for _, d := range snap.Result.Diagnostics {
			responseText += fmt.Sprintf("  [%s] %s", d.Region, d.Code)
			if d.Detail != "" {
				responseText += ": " + d.Detail
			}
			responseText += "\n"
		}
	}

	return mcp.NewToolResultText(responseText), nil
}

// recordsResult marshals a record list as JSON tool output.
func recordsResult(records []extract.Record) (*mcp.CallToolResult, error) {
	if records == nil {
		records = []extract.Record{}
	}
	payload, err := sonic.MarshalIndent(records, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode records: %v", err)), nil
	}
	return mcp.NewToolResultText(string(payload)), nil
}

// Run starts the MCP server over stdio. The parent process controls the
// lifecycle.
func (s *Server) Run(ctx context.Context) error {
	if s.config.IsDebug() {
		log.Printf("Starting registro MCP server in stdio mode")
	}

	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}
