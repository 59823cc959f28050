package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/bytedance/sonic"

	"github.com/ruta53/alojamientos/internal/config"
	"github.com/ruta53/alojamientos/internal/extract"
	"github.com/ruta53/alojamientos/internal/serve"
	"github.com/ruta53/alojamientos/internal/source"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

// setupLogging configures logging based on the run mode
func setupLogging(cfg *config.Config) {
	if cfg.IsStdioMode() {
		// In stdio mode, keep log output off stdout so it cannot interfere
		// with the MCP protocol.
		log.SetOutput(os.Stderr)
		if !cfg.IsDebug() {
			log.SetOutput(os.NewFile(0, os.DevNull))
		}
	} else {
		log.SetOutput(os.Stderr)
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}
}

// runStdioMode serves MCP tools until the parent process closes stdin
func runStdioMode(ctx context.Context, server *serve.Server) {
	if err := server.Run(ctx); err != nil {
		if os.Getenv("DEBUG") != "" {
			log.Printf("Server error: %v", err)
		}
		os.Exit(1)
	}
}

// runExtractMode runs one extraction and prints the result JSON to stdout.
// A run that extracted nothing still exits 0: shortfalls are data, carried
// in the status and diagnostics fields for the caller to act on.
func runExtractMode(cfg *config.Config) {
	svc := source.NewService(cfg.MaxFileSize)

	result, err := svc.ExtractFile(cfg.InputPath)
	if err != nil {
		log.Printf("Extraction failed: %v", err)
		os.Exit(1)
	}

	if cfg.Format == config.FormatText {
		printResultText(result)
		return
	}

	payload, err := sonic.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Printf("Failed to encode result: %v", err)
		os.Exit(1)
	}
	fmt.Println(string(payload))
}

// printResultText writes a human-readable run summary instead of JSON.
func printResultText(result *extract.Result) {
	fmt.Printf("Status: %s\n", result.Status)
	fmt.Printf("Sections: %d\n", result.Sections)
	fmt.Printf("Records: %d\n", len(result.Records))
	for _, rec := range result.Records {
		fmt.Printf("  %-30s %-18s %-28s %s\n", rec.Name, rec.Category, rec.Email, rec.Phone)
	}
	if len(result.Diagnostics) > 0 {
		fmt.Println("Diagnostics:")
		for _, d := range result.Diagnostics {
			if d.Detail != "" {
				fmt.Printf("  [%s] %s: %s\n", d.Region, d.Code, d.Detail)
			} else {
				fmt.Printf("  [%s] %s\n", d.Region, d.Code)
			}
		}
	}
}

func main() {
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			fmt.Printf("registro %s (built %s, commit %s)\n", version, buildTime, gitCommit)
			os.Exit(0)
		}
	}

	cfg, err := config.LoadFromFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}
	cfg.Version = version

	setupLogging(cfg)

	if cfg.IsExtractMode() {
		runExtractMode(cfg)
		return
	}

	svc := source.NewService(cfg.MaxFileSize)
	server, err := serve.NewServer(cfg, svc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create server: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The MCP stdio loop owns the lifecycle; signals just cancel the context.
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	go func() {
		<-signalCh
		cancel()
	}()

	runStdioMode(ctx, server)
}
