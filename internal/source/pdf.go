package source

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"

	"github.com/ruta53/alojamientos/internal/extract"
)

// PageTokens extracts every page's positioned text fragments in page order.
// Pages that fail to parse are skipped rather than failing the document;
// the engine treats their absence as ordinary layout degradation.
func PageTokens(data []byte) ([][]extract.Token, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	pages := make([][]extract.Token, 0, reader.NumPage())
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			pages = append(pages, nil)
			continue
		}

		content := page.Content()
		tokens := make([]extract.Token, 0, len(content.Text))
		for _, t := range content.Text {
			tokens = append(tokens, extract.Token{
				Text: t.S,
				X:    t.X,
				Y:    t.Y,
				Page: pageNum,
			})
		}
		pages = append(pages, tokens)
	}

	return pages, nil
}
