package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Mode constants
	ModeStdio   = "stdio"
	ModeExtract = "extract"

	// Output formats for extract mode
	FormatJSON = "json"
	FormatText = "text"

	// Default values
	DefaultLogLevel    = "info"
	DefaultMaxFileSize = 50 * 1024 * 1024 // 50MB
)

// Config holds all configuration for the registro extraction server.
type Config struct {
	// Run mode: "stdio" serves MCP tools, "extract" runs one extraction and
	// prints the snapshot to stdout.
	Mode string

	// Report input
	InputPath string

	// Extract mode output format: "json" or "text"
	Format string

	// Application configuration
	Version     string
	ServerName  string
	LogLevel    string
	MaxFileSize int64
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Mode:        ModeStdio,
		InputPath:   "",
		Format:      FormatJSON,
		Version:     "1.0.0",
		ServerName:  "registro-alojamientos",
		LogLevel:    DefaultLogLevel,
		MaxFileSize: DefaultMaxFileSize,
	}
}

// LoadFromFlags parses command line flags and returns a configuration.
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	pflag.Parse()

	populateConfigFromViper(cfg)

	if cfg.InputPath != "" {
		if expandedPath, err := filepath.Abs(cfg.InputPath); err == nil {
			cfg.InputPath = expandedPath
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix("REGISTRO")
	viper.AutomaticEnv()

	viper.SetDefault("mode", cfg.Mode)
	viper.SetDefault("input", cfg.InputPath)
	viper.SetDefault("format", cfg.Format)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(cfg *Config) {
	pflag.String("mode", cfg.Mode, "Run mode: 'stdio' for MCP standard I/O, 'extract' for a one-shot extraction")
	pflag.String("input", cfg.InputPath, "Path to the report document (.pdf, .txt, optionally .zst/.gz compressed)")
	pflag.String("format", cfg.Format, "Extract mode output format: 'json' or 'text'")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum report file size in bytes")
}

// bindFlagsToViper binds command line flags to viper configuration
func bindFlagsToViper() {
	_ = viper.BindPFlag("mode", pflag.Lookup("mode"))
	_ = viper.BindPFlag("input", pflag.Lookup("input"))
	_ = viper.BindPFlag("format", pflag.Lookup("format"))
	_ = viper.BindPFlag("loglevel", pflag.Lookup("loglevel"))
	_ = viper.BindPFlag("maxfilesize", pflag.Lookup("maxfilesize"))
}

// setupUsageMessage configures the custom usage message
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nRegistro de Alojamientos - reconstructs the published lodging report into structured records\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                                           # stdio MCP mode (default)\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --mode=extract --input=registro.pdf       # one-shot extraction to stdout\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --mode=extract --input=registro.pdf.zst   # compressed snapshot\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  REGISTRO_MODE        Run mode\n")
		fmt.Fprintf(os.Stderr, "  REGISTRO_INPUT       Report document path\n")
		fmt.Fprintf(os.Stderr, "  REGISTRO_FORMAT      Extract mode output format\n")
		fmt.Fprintf(os.Stderr, "  REGISTRO_LOGLEVEL    Log level\n")
		fmt.Fprintf(os.Stderr, "  REGISTRO_MAXFILESIZE Maximum file size\n")
	}
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(cfg *Config) {
	cfg.Mode = viper.GetString("mode")
	cfg.InputPath = viper.GetString("input")
	cfg.Format = viper.GetString("format")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Mode != ModeStdio && c.Mode != ModeExtract {
		return errors.New("mode must be either 'stdio' or 'extract'")
	}

	if c.Mode == ModeExtract && c.InputPath == "" {
		return errors.New("extract mode requires an input path")
	}

	if c.Format != FormatJSON && c.Format != FormatText {
		return errors.New("format must be either 'json' or 'text'")
	}

	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// IsStdioMode returns true if the server is running in stdio MCP mode
func (c *Config) IsStdioMode() bool {
	return c.Mode == ModeStdio
}

// IsExtractMode returns true if the binary runs one extraction and exits
func (c *Config) IsExtractMode() bool {
	return c.Mode == ModeExtract
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{Mode: %s, InputPath: %s, Format: %s, LogLevel: %s, MaxFileSize: %d}",
		c.Mode, c.InputPath, c.Format, c.LogLevel, c.MaxFileSize)
}
