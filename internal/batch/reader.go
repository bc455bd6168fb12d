// Package batch reads batch files with one translation request per line.
package batch

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Entry is a single translation request. Key is what the dictionaries are
// searched for, Text is what the provider translates on a miss.
type Entry struct {
	Key  string
	Text string
	Line int
}

// ReadBatchFile reads entries from a file.
// Supported line formats:
// - Text only: "Hello world" (the text is also the dictionary key)
// - With key: "greeting = Hello world" (looked up as "greeting")
// Blank lines and lines starting with '#' are skipped, as are lines with an
// empty side of the '='.
func ReadBatchFile(filename string) ([]Entry, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads entries from r
func Parse(r io.Reader) ([]Entry, error) {
	var entries []Entry

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, text, found := strings.Cut(line, "=")
		if !found {
			entries = append(entries, Entry{Key: line, Text: line, Line: lineNo})
			continue
		}

		key = strings.TrimSpace(key)
		text = strings.TrimSpace(text)
		if key == "" || text == "" {
			continue
		}
		entries = append(entries, Entry{Key: key, Text: text, Line: lineNo})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}
	return entries, nil
}
