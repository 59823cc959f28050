package source

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// ValidateReport checks the structural health of a PDF payload before
// extraction. Validation is relaxed: the publisher's generator emits minor
// spec violations that do not affect text extraction.
func ValidateReport(data []byte) error {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(bytes.NewReader(data), conf)
	if err != nil {
		return fmt.Errorf("failed to read PDF structure: %w", err)
	}
	if err := api.ValidateContext(ctx); err != nil {
		return fmt.Errorf("PDF validation failed: %w", err)
	}
	return nil
}
