package document

import (
	"strings"
	"testing"
)

func TestExtractTextPlainFormats(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		data     []byte
		expected string
	}{
		{name: "txt passthrough", filename: "resume.txt", data: []byte("Python developer"), expected: "Python developer"},
		{name: "md passthrough", filename: "resume.md", data: []byte("# Skills\n- Go"), expected: "# Skills\n- Go"},
		{name: "uppercase extension", filename: "RESUME.TXT", data: []byte("ok"), expected: "ok"},
		{name: "empty file", filename: "empty.txt", data: nil, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractText(tt.data, tt.filename)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("ExtractText() = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestExtractTextUnsupportedFormat(t *testing.T) {
	tests := []struct {
		name     string
		filename string
	}{
		{name: "odt", filename: "resume.odt"},
		{name: "no extension", filename: "resume"},
		{name: "image", filename: "scan.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractText([]byte("data"), tt.filename)
			if err == nil {
				t.Fatal("expected error for unsupported format")
			}
			if !IsUnsupportedFormat(err) {
				t.Errorf("expected unsupported format error, got %v", err)
			}
			if IsDecodeError(err) {
				t.Error("unsupported format should not classify as decode error")
			}
		})
	}
}

func TestExtractTextCorruptDocuments(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		data     []byte
	}{
		{name: "corrupt pdf", filename: "resume.pdf", data: []byte("not a pdf at all")},
		{name: "corrupt docx", filename: "resume.docx", data: []byte("not a zip archive")},
		{name: "truncated pdf header", filename: "resume.pdf", data: []byte("%PDF-1.4")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractText(tt.data, tt.filename)
			if err == nil {
				t.Fatal("expected error for corrupt document")
			}
			if !IsDecodeError(err) {
				t.Errorf("expected decode error, got %v", err)
			}
		})
	}
}

func TestSupportedExtensionsAccepted(t *testing.T) {
	for _, ext := range SupportedExtensions {
		if ext == ".pdf" || ext == ".docx" {
			continue // binary formats need real fixtures
		}
		if _, err := ExtractText([]byte("content"), "file"+ext); err != nil {
			t.Errorf("extension %s should be supported: %v", ext, err)
		}
	}
}

func TestExtractTextErrorMentionsExtension(t *testing.T) {
	_, err := ExtractText([]byte("x"), "cv.rtf")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), ".rtf") {
		t.Errorf("error should name the rejected extension, got %v", err)
	}
}
