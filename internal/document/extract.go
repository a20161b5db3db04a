// Package document extracts plain text from uploaded resume and job
// description files. PDF and DOCX are decoded with dedicated libraries;
// plain text formats pass through unchanged.
package document

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"resumatch/internal/errors"
)

// SupportedExtensions lists the file extensions ExtractText accepts.
var SupportedExtensions = []string{".pdf", ".docx", ".txt", ".md"}

// ExtractText returns the plain text content of a document, dispatching on
// the filename extension. Unknown extensions yield an UNSUPPORTED_FORMAT
// error; corrupt input yields a DECODE_FAILED error wrapping the library
// error.
func ExtractText(data []byte, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return extractPDFText(data)
	case ".docx":
		return extractDocxText(data)
	case ".txt", ".md":
		return string(data), nil
	default:
		return "", errors.NewValidationError(errors.ErrCodeUnsupportedFormat,
			fmt.Sprintf("unsupported document format: %q", ext), nil).
			WithContext("filename", filename)
	}
}

// IsUnsupportedFormat reports whether err marks a rejected file extension.
func IsUnsupportedFormat(err error) bool {
	return errors.HasCode(err, errors.ErrCodeUnsupportedFormat)
}

// IsDecodeError reports whether err marks a document that could not be decoded.
func IsDecodeError(err error) bool {
	return errors.HasCode(err, errors.ErrCodeDecodeFailed)
}

func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", errors.NewIOError(errors.ErrCodeDecodeFailed, "failed to open PDF document", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", errors.NewIOError(errors.ErrCodeDecodeFailed,
				fmt.Sprintf("failed to extract text from PDF page %d", i), err)
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

func extractDocxText(data []byte) (string, error) {
	reader, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", errors.NewIOError(errors.ErrCodeDecodeFailed, "failed to open DOCX document", err)
	}
	defer reader.Close()

	return reader.Editable().GetContent(), nil
}
