package serve

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ruta53/alojamientos/internal/config"
	"github.com/ruta53/alojamientos/internal/extract"
	"github.com/ruta53/alojamientos/internal/source"
)

func testConfig() *config.Config {
	return &config.Config{
		Mode:        config.ModeStdio,
		Version:     "1.0.0",
		ServerName:  "test-registro",
		MaxFileSize: 1024 * 1024,
	}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := testConfig()
	srv, err := NewServer(cfg, source.NewService(cfg.MaxFileSize))
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}
	return srv
}

func requestWith(args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}
}

// extractTextFromResult pulls the text payload out of a CallToolResult.
func extractTextFromResult(result *mcp.CallToolResult) string {
	if result == nil || len(result.Content) == 0 {
		return ""
	}
	for _, content := range result.Content {
		if textContent, ok := content.(mcp.TextContent); ok {
			return textContent.Text
		}
		if textContentPtr, ok := content.(*mcp.TextContent); ok {
			return textContentPtr.Text
		}
	}
	return ""
}

func TestNewServer(t *testing.T) {
	cfg := testConfig()

	srv, err := NewServer(cfg, source.NewService(cfg.MaxFileSize))
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	if srv == nil {
		t.Fatal("server should not be nil")
	}
	if srv.holder == nil {
		t.Error("server should start with an empty holder, not a nil one")
	}
}

func TestNewServerNilService(t *testing.T) {
	_, err := NewServer(testConfig(), nil)
	if err == nil {
		t.Fatal("NewServer should reject a nil service")
	}
}

func TestHandleExtract(t *testing.T) {
	srv := newTestServer(t)

	report := strings.Join([]string{
		"Matanzas Provincia:",
		"Casa Azul\tHotel\tcasaazul@nauta.cu\t52345678",
		"1Total por provincia:",
	}, "\n")
	path := filepath.Join(t.TempDir(), "report.txt")
	if err := os.WriteFile(path, []byte(report), 0o644); err != nil {
		t.Fatalf("failed to write test report: %v", err)
	}

	result, err := srv.handleExtract(context.Background(), requestWith(map[string]interface{}{
		"path": path,
	}))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}

	text := extractTextFromResult(result)
	if !strings.Contains(text, "Records: 1") {
		t.Errorf("expected one extracted record, got: %s", text)
	}
	if !strings.Contains(text, "Status: "+extract.StatusOK) {
		t.Errorf("expected ok status, got: %s", text)
	}

	snap := srv.holder.Current()
	if snap == nil {
		t.Fatal("extract should install a snapshot")
	}
	if snap.Source != path {
		t.Errorf("snapshot source = %q, want %q", snap.Source, path)
	}
}

func TestHandleExtractMissingFile(t *testing.T) {
	srv := newTestServer(t)

	result, err := srv.handleExtract(context.Background(), requestWith(map[string]interface{}{
		"path": filepath.Join(t.TempDir(), "nope.pdf"),
	}))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if result == nil || !result.IsError {
		t.Error("missing file should produce an error result")
	}
	if srv.holder.Current() != nil {
		t.Error("failed extract must not install a snapshot")
	}
}

func TestHandleExtractMissingArgument(t *testing.T) {
	srv := newTestServer(t)

	result, err := srv.handleExtract(context.Background(), requestWith(map[string]interface{}{}))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if result == nil || !result.IsError {
		t.Error("missing path argument should produce an error result")
	}
}

func TestReadHandlersWithoutSnapshot(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	for name, call := range map[string]func() (*mcp.CallToolResult, error){
		"search": func() (*mcp.CallToolResult, error) {
			return srv.handleSearch(ctx, requestWith(map[string]interface{}{"query": "hotel"}))
		},
		"by_provincia": func() (*mcp.CallToolResult, error) {
			return srv.handleByProvincia(ctx, requestWith(map[string]interface{}{"provincia": "Matanzas"}))
		},
		"by_modalidad": func() (*mcp.CallToolResult, error) {
			return srv.handleByModalidad(ctx, requestWith(map[string]interface{}{"modalidad": "Hotel"}))
		},
	} {
		result, err := call()
		if err != nil {
			t.Fatalf("%s handler failed: %v", name, err)
		}
		if result == nil || !result.IsError {
			t.Errorf("%s without a snapshot should produce an error result", name)
		}
	}
}

func TestHandleSearch(t *testing.T) {
	srv := newTestServer(t)
	srv.holder.Replace(&extract.Result{
		Status: extract.StatusOK,
		Records: []extract.Record{
			{Name: "Casa Azul", Category: "Hotel", Region: "Matanzas"},
			{Name: "Rincón Criollo", Category: "Hostal Familiar", Region: "Holguín"},
		},
	}, "test")

	result, err := srv.handleSearch(context.Background(), requestWith(map[string]interface{}{
		"query": "rincon",
	}))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}

	text := extractTextFromResult(result)
	if !strings.Contains(text, "Rincón Criollo") {
		t.Errorf("search should match accent-insensitively, got: %s", text)
	}
	if strings.Contains(text, "Casa Azul") {
		t.Errorf("search should not return non-matching records, got: %s", text)
	}
}

func TestHandleByProvinciaAndModalidad(t *testing.T) {
	srv := newTestServer(t)
	srv.holder.Replace(&extract.Result{
		Status: extract.StatusOK,
		Records: []extract.Record{
			{Name: "Casa Azul", Category: "Hotel", Region: "Matanzas"},
			{Name: "Rincón Criollo", Category: "Hostal Familiar", Region: "Holguín"},
		},
	}, "test")
	ctx := context.Background()

	result, err := srv.handleByProvincia(ctx, requestWith(map[string]interface{}{
		"provincia": "holguin",
	}))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if text := extractTextFromResult(result); !strings.Contains(text, "Rincón Criollo") {
		t.Errorf("by_provincia should match fold-equal, got: %s", text)
	}

	result, err = srv.handleByModalidad(ctx, requestWith(map[string]interface{}{
		"modalidad": "Hotel",
	}))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	text := extractTextFromResult(result)
	if !strings.Contains(text, "Casa Azul") || strings.Contains(text, "Rincón Criollo") {
		t.Errorf("by_modalidad should match exactly one record, got: %s", text)
	}
}

func TestHandleByModalidadNoMatchesIsEmptyList(t *testing.T) {
	srv := newTestServer(t)
	srv.holder.Replace(&extract.Result{Status: extract.StatusOK}, "test")

	result, err := srv.handleByModalidad(context.Background(), requestWith(map[string]interface{}{
		"modalidad": "Resort",
	}))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if text := extractTextFromResult(result); strings.TrimSpace(text) != "[]" {
		t.Errorf("no matches should encode as an empty JSON list, got: %q", text)
	}
}

func TestHandleStatus(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	result, err := srv.handleStatus(ctx, requestWith(nil))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if text := extractTextFromResult(result); !strings.Contains(text, "No snapshot loaded") {
		t.Errorf("status without snapshot should say so, got: %s", text)
	}

	srv.holder.Replace(&extract.Result{
		Status:   extract.StatusOK,
		Records:  []extract.Record{{Name: "Casa Azul"}},
		Sections: 1,
		Diagnostics: []extract.Diagnostic{
			{Region: "Matanzas", Code: extract.DiagMissingTrailer},
		},
	}, "/reports/2024-03.pdf")

	result, err = srv.handleStatus(ctx, requestWith(nil))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	text := extractTextFromResult(result)
	for _, want := range []string{"/reports/2024-03.pdf", "Records: 1", extract.DiagMissingTrailer} {
		if !strings.Contains(text, want) {
			t.Errorf("status output missing %q, got: %s", want, text)
		}
	}
}
