package source

import (
	"bufio"
	"io"
	"strings"
)

// TextSource handles plain text files: one input line per output line,
// blanks dropped. Useful for pre-extracted document dumps.
type TextSource struct{}

func (s *TextSource) Parse(r io.Reader, filename string) (*Document, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	out := &Document{SourceType: "txt"}
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			out.Lines = append(out.Lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
