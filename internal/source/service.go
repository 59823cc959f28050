package source

import (
	"fmt"
	"log"

	"github.com/ruta53/alojamientos/internal/extract"
)

// Service runs the full document-to-records path: read, validate, tokenize,
// reconstruct.
type Service struct {
	maxFileSize int64
	engine      *extract.Engine
}

// NewService creates a service with the given file size limit and the
// default extraction strategy.
func NewService(maxFileSize int64) *Service {
	return &Service{
		maxFileSize: maxFileSize,
		engine:      extract.NewEngine(),
	}
}

// NewServiceWithStrategy creates a service with a custom extraction
// strategy.
func NewServiceWithStrategy(maxFileSize int64, strat *extract.Strategy) *Service {
	return &Service{
		maxFileSize: maxFileSize,
		engine:      extract.NewEngineWithStrategy(strat),
	}
}

// ExtractFile reconstructs records from a report file. PDF payloads are
// structurally validated first; any other payload is treated as
// line-oriented text in the degraded mode. A validation failure is an error,
// an extraction shortfall is not: that is reported through the result's
// status and diagnostics instead.
func (s *Service) ExtractFile(path string) (*extract.Result, error) {
	if path == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}

	data, err := ReadDocument(path, s.maxFileSize)
	if err != nil {
		return nil, err
	}

	if !IsPDF(data) {
		return s.engine.ExtractLines(string(data)), nil
	}

	if err := ValidateReport(data); err != nil {
		return nil, err
	}

	pages, err := PageTokens(data)
	if err != nil {
		return nil, err
	}

	result := s.engine.ExtractPages(pages)
	if len(result.Diagnostics) > 0 {
		log.Printf("extraction of %s finished with %d diagnostics (status %s)",
			path, len(result.Diagnostics), result.Status)
	}
	return result, nil
}
