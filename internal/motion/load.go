package motion

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ParseError reports a malformed row in a ground motion file
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// LoadFromFile loads a ground motion record from a whitespace-delimited text file.
// The first non-empty line is a header and is skipped. Columns are time (s) and
// acceleration (g).
func LoadFromFile(path string) (*Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ground motion: %w", err)
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Parse(f, name)
}

// Parse reads a ground motion record in the LoadFromFile format from r
func Parse(r io.Reader, name string) (*Record, error) {
	rec := &Record{Name: name}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	headerSeen := false
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if !headerSeen {
			headerSeen = true
			continue
		}
		if len(fields) < 2 {
			return nil, &ParseError{Line: lineNo, Msg: fmt.Sprintf("expected 2 columns, got %d", len(fields))}
		}

		t, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, &ParseError{Line: lineNo, Msg: fmt.Sprintf("invalid time %q", fields[0])}
		}
		a, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, &ParseError{Line: lineNo, Msg: fmt.Sprintf("invalid acceleration %q", fields[1])}
		}
		if !isFinite(t) || !isFinite(a) {
			return nil, &ParseError{Line: lineNo, Msg: fmt.Sprintf("non-finite time/acceleration %q %q", fields[0], fields[1])}
		}
		rec.Samples = append(rec.Samples, Sample{Time: t, Accel: a})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read ground motion: %w", err)
	}

	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return rec, nil
}
