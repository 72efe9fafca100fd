// Package language provides language detection and per-language lexical
// syntax for the Indentwise analyzer.
package language

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"

	"github.com/tildaslashalef/indentwise/internal/loggy"
)

// Common language names as reported by go-enry
const (
	LanguageGo         = "Go"
	LanguageJava       = "Java"
	LanguageJavaScript = "JavaScript"
	LanguagePython     = "Python"
	LanguageRust       = "Rust"
	LanguageText       = "Text"
	LanguageBinary     = "Binary"
)

// Detector detects the programming language of a file
type Detector struct {
	logger *loggy.Logger
}

// NewDetector creates a new language detector
func NewDetector(logger *loggy.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// DetectLanguage determines the programming language of a file
func (d *Detector) DetectLanguage(filePath string) (string, error) {
	fileName := filepath.Base(filePath)

	if _, err := os.Stat(filePath); err != nil {
		return "", fmt.Errorf("accessing file: %w", err)
	}

	// Read a small sample of the file
	data, err := readFileSample(filePath, 8*1024)
	if err != nil {
		return "", fmt.Errorf("reading file: %w", err)
	}

	if lang := enry.GetLanguage(fileName, data); lang != "" {
		d.logger.Debug("Detected file language", "path", filePath, "language", lang)
		return lang, nil
	}

	// Fallback to extension-based detection when content detection fails
	if lang, _ := enry.GetLanguageByExtension(filePath); lang != "" {
		d.logger.Debug("Fallback to extension detection", "path", filePath, "detected", lang)
		return lang, nil
	}

	if lang, _ := enry.GetLanguageByFilename(fileName); lang != "" {
		return lang, nil
	}

	if enry.IsBinary(data) {
		return LanguageBinary, nil
	}

	return LanguageText, nil
}

// IsAnalyzable reports whether a file is worth running the analyzer on:
// not vendored, not binary, not documentation or generated content.
func (d *Detector) IsAnalyzable(filePath string) bool {
	if d.IsVendorFile(filePath) {
		return false
	}
	if enry.IsDocumentation(filePath) {
		return false
	}

	lang, err := d.DetectLanguage(filePath)
	if err != nil {
		return false
	}
	switch lang {
	case LanguageBinary, LanguageText, "Markdown", "JSON", "YAML", "XML":
		return false
	}
	return true
}

// IsVendorFile checks if the file lives in vendored or VCS-internal paths
func (d *Detector) IsVendorFile(path string) bool {
	if strings.Contains(path, "/.git/") || path == ".git" || strings.HasPrefix(path, ".git/") {
		return true
	}

	for _, dir := range []string{"/vendor/", "/node_modules/"} {
		if strings.Contains(path, dir) {
			return true
		}
	}

	return enry.IsVendor(path)
}

// readFileSample reads a sample of a file up to maxSize bytes
func readFileSample(filePath string, maxSize int64) ([]byte, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("getting file info: %w", err)
	}

	size := info.Size()
	if size > maxSize {
		size = maxSize
	}

	sample := make([]byte, size)
	if _, err := file.Read(sample); err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	return sample, nil
}
