package extractor

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/xuri/excelize/v2"
)

var (
	ErrNotFound         = errors.New("document not found")
	ErrExtractionFailed = errors.New("extraction failed")
)

// Result is the page-ordered text of a document plus its page count.
// For spreadsheets a sheet counts as a page.
type Result struct {
	Text  string
	Pages int
}

// Extractor is the injectable form of the package-level functions.
type Extractor struct{}

func New() Extractor { return Extractor{} }

func (Extractor) FromFile(path string) (*Result, error) { return FromFile(path) }

func (Extractor) FromBytes(data []byte, name string) (*Result, error) { return FromBytes(data, name) }

// FromFile extracts text from a document on disk.
func FromFile(path string) (*Result, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return FromBytes(data, filepath.Base(path))
}

// FromBytes extracts text from an in-memory document. The name is only used
// to pick the parser by extension.
func FromBytes(data []byte, name string) (*Result, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return fromPDF(data, name)
	case ".xlsx", ".xlsm":
		return fromXLSX(data, name)
	default:
		return nil, fmt.Errorf("%w: unsupported document type %q", ErrExtractionFailed, filepath.Ext(name))
	}
}

func fromPDF(data []byte, name string) (res *Result, err error) {
	// the pdf parser panics on some malformed files
	defer func() {
		if r := recover(); r != nil {
			res, err = nil, fmt.Errorf("%w: %s: %v", ErrExtractionFailed, name, r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrExtractionFailed, name, err)
	}

	pages := []string{}
	numPages := r.NumPage()
	for i := 1; i <= numPages; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			continue
		}
		if strings.TrimSpace(text) != "" {
			pages = append(pages, text)
		}
	}

	full := strings.Join(pages, "\n\n")
	if strings.TrimSpace(full) == "" {
		return nil, fmt.Errorf("%w: no text extracted from %s (image-only PDF?)", ErrExtractionFailed, name)
	}
	return &Result{Text: full, Pages: numPages}, nil
}

func fromXLSX(data []byte, name string) (*Result, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrExtractionFailed, name, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	parts := []string{}
	for _, sheet := range sheets {
		rows, err := f.GetRows(sheet)
		if err != nil {
			continue
		}
		lines := []string{}
		for _, row := range rows {
			line := strings.TrimSpace(strings.Join(row, " "))
			if line != "" {
				lines = append(lines, line)
			}
		}
		if len(lines) > 0 {
			parts = append(parts, strings.Join(lines, "\n"))
		}
	}

	full := strings.Join(parts, "\n\n")
	if strings.TrimSpace(full) == "" {
		return nil, fmt.Errorf("%w: no text extracted from %s", ErrExtractionFailed, name)
	}
	return &Result{Text: full, Pages: len(sheets)}, nil
}
