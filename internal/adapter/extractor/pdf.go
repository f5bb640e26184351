package extractor

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"lms-quiz/internal/domain"

	"github.com/ledongthuc/pdf"
)

// PDFExtractor reads the text layer of a PDF. Scanned PDFs without one yield
// empty text, which the dispatcher reports as insufficient content.
type PDFExtractor struct{}

func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

func (PDFExtractor) Extract(ctx context.Context, data []byte, _ string) (text string, err error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !bytes.HasPrefix(bytes.TrimLeft(data, "\x00\t\r\n "), []byte("%PDF")) {
		return "", domain.NewError(domain.ErrInvalidInput, "File is not a readable PDF", fmt.Errorf("missing %%PDF header"))
	}

	// The parser panics on some malformed files.
	defer func() {
		if p := recover(); p != nil {
			text = ""
			err = domain.NewError(domain.ErrInvalidInput, "File is not a readable PDF", fmt.Errorf("pdf parser panic: %v", p))
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", domain.NewError(domain.ErrInvalidInput, "File is not a readable PDF", fmt.Errorf("pdf reader: %w", err))
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", domain.NewError(domain.ErrInvalidInput, "File is not a readable PDF", fmt.Errorf("pdf plaintext: %w", err))
	}
	b, err := io.ReadAll(plain)
	if err != nil {
		return "", fmt.Errorf("pdf read: %w", err)
	}
	return collapseWhitespace(string(b)), nil
}
