// Package source turns a raw report document into the token stream the
// extraction engine consumes. Fetching the document is the caller's problem;
// this package only deals in bytes already on disk.
package source

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
)

var (
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	gzipMagic = []byte{0x1f, 0x8b}
	pdfMagic  = []byte("%PDF-")
)

// ReadDocument reads a report file and returns its raw bytes. Archived
// report snapshots arrive zstd- or gzip-compressed; both are unwrapped
// transparently. The size limit applies to the on-disk file.
func ReadDocument(path string, maxFileSize int64) ([]byte, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("file does not exist: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot access file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("file too large: %d bytes (max: %d bytes)", info.Size(), maxFileSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read file: %w", err)
	}
	return decompress(data)
}

// decompress unwraps zstd and gzip payloads; anything else passes through.
func decompress(data []byte) ([]byte, error) {
	switch {
	case bytes.HasPrefix(data, zstdMagic):
		dec, err := zstd.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to open zstd stream: %w", err)
		}
		defer dec.Close()
		out, err := io.ReadAll(dec)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress zstd stream: %w", err)
		}
		return out, nil

	case bytes.HasPrefix(data, gzipMagic):
		gz, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to open gzip stream: %w", err)
		}
		defer gz.Close()
		out, err := io.ReadAll(gz)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress gzip stream: %w", err)
		}
		return out, nil

	default:
		return data, nil
	}
}

// IsPDF reports whether the payload is a PDF document. Anything else is
// treated as line-oriented text in the degraded input mode.
func IsPDF(data []byte) bool {
	return bytes.HasPrefix(data, pdfMagic)
}
