// Package document validates study files and loads their text.
package document

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// DefaultMaxSize is the largest accepted file, in bytes.
const DefaultMaxSize int64 = 10 * 1024 * 1024

// AllowedExtensions lists the accepted file types.
var AllowedExtensions = []string{".txt", ".pdf", ".docx"}

var (
	ErrTooLarge              = errors.New("file too large")
	ErrUnsupportedType       = errors.New("file type not supported")
	ErrEmpty                 = errors.New("document has no text")
	ErrExtractionUnsupported = errors.New("text extraction for this file type needs the backend")
)

// Document is a loaded study file.
type Document struct {
	Name string // Base file name
	Path string
	Size int64
	Text string
}

// Words returns the number of whitespace-separated words in the text.
func (d *Document) Words() int {
	return WordCount(d.Text)
}

// Validate checks a file's name and size against the limits. maxSize <= 0
// uses DefaultMaxSize.
func Validate(name string, size, maxSize int64) error {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	if size > maxSize {
		return fmt.Errorf("%w: exceeds %s limit", ErrTooLarge, formatMB(maxSize))
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, allowed := range AllowedExtensions {
		if ext == allowed {
			return nil
		}
	}
	return fmt.Errorf("%w: allowed %s", ErrUnsupportedType, strings.Join(AllowedExtensions, ", "))
}

// NeedsExtraction reports whether the file's text can only be obtained by
// the backend upload endpoint.
func NeedsExtraction(name string) bool {
	return strings.ToLower(filepath.Ext(name)) != ".txt"
}

// Stat validates the file at path without reading it.
func Stat(path string, maxSize int64) (os.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	if err := Validate(info.Name(), info.Size(), maxSize); err != nil {
		return nil, err
	}
	return info, nil
}

// LoadText validates and reads a plain-text file. Other types return
// ErrExtractionUnsupported.
func LoadText(path string, maxSize int64) (*Document, error) {
	info, err := Stat(path, maxSize)
	if err != nil {
		return nil, err
	}
	if NeedsExtraction(path) {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), ErrExtractionUnsupported)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("read document: %s is not valid UTF-8 text", filepath.Base(path))
	}
	return New(info.Name(), path, info.Size(), string(data))
}

// New builds a document from extracted text. Blank text is rejected.
func New(name, path string, size int64, text string) (*Document, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmpty
	}
	return &Document{Name: name, Path: path, Size: size, Text: text}, nil
}

// WordCount counts whitespace-separated words.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

var sizeUnits = []string{"Bytes", "KB", "MB", "GB"}

// FormatSize renders a byte count with two-decimal precision, e.g. "1.5 KB".
func FormatSize(bytes int64) string {
	if bytes <= 0 {
		return "0 Bytes"
	}
	i := int(math.Floor(math.Log(float64(bytes)) / math.Log(1024)))
	i = min(i, len(sizeUnits)-1)
	v := math.Round(float64(bytes)/math.Pow(1024, float64(i))*100) / 100
	return fmt.Sprintf("%s %s", trimFloat(v), sizeUnits[i])
}

func formatMB(bytes int64) string {
	return trimFloat(float64(bytes)/(1024*1024)) + "MB"
}

func trimFloat(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
