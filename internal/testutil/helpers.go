package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Sample phrases used across package tests
const (
	// baruch ata, vowelized with marks in canonical order
	BaruchAta = "\u05D1\u05B8\u05BC\u05E8\u05D5\u05BC\u05DA\u05B0 \u05D0\u05B7\u05EA\u05B8\u05BC\u05D4"
	// baruch ata without niqqud
	BaruchAtaRaw = "\u05D1\u05E8\u05D5\u05DA \u05D0\u05EA\u05D4"
	// BaruchAta transliterated for the Lithuanian dialect
	BaruchAtaLithuanian = "\u05D1o\u05E8\u05D5\u05DA\u05B0 \u05D0a\u05EAuh"
	// BaruchAta transliterated for the Hasidic dialect
	BaruchAtaHasidic = "\u05D1u\u05E8\u05D5\u05DA\u05B0 \u05D0a\u05EAuh"
)

// CreateTestFile creates a test file with content
func CreateTestFile(t *testing.T, path string, content []byte) {
	t.Helper()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create directory for test file: %v", err)
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("Failed to create test file %s: %v", path, err)
	}
}

// CreateBatchFile writes lines into a batch file inside a temp directory
// and returns its path
func CreateBatchFile(t *testing.T, lines ...string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "batch.txt")
	CreateTestFile(t, path, []byte(strings.Join(lines, "\n")))
	return path
}

// AssertFileExists checks if a file exists
func AssertFileExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("Expected file to exist: %s", path)
	}
}

// AssertFileNotExists checks if a file does not exist
func AssertFileNotExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); err == nil {
		t.Errorf("Expected file to not exist: %s", path)
	}
}

// AssertFileContent checks if a file has expected content
func AssertFileContent(t *testing.T, path string, expected []byte) {
	t.Helper()

	actual, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}

	if string(actual) != string(expected) {
		t.Errorf("File content mismatch in %s\nExpected: %q\nActual: %q", path, expected, actual)
	}
}

// AssertFileContains checks if a file contains a substring
func AssertFileContains(t *testing.T, path string, substring string) {
	t.Helper()

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}

	if !strings.Contains(string(content), substring) {
		t.Errorf("File %s does not contain expected substring: %q", path, substring)
	}
}
