package quotes

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ReadFile loads quotes from a text file, one per line. Blank lines and
// surrounding whitespace are dropped.
func ReadFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open quote file: %w", err)
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read quote file: %w", err)
	}
	return lines, nil
}

// WriteFile saves quotes to a text file, one per line.
func WriteFile(path string, list []Quote) error {
	var b strings.Builder
	for _, q := range list {
		b.WriteString(q.String())
		b.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write quote file: %w", err)
	}
	return nil
}
