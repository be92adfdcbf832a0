package batch

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// maxLineBytes bounds a single line of the phrase file.
const maxLineBytes = 1024 * 1024

// Input is the content of a phrase file.
type Input struct {
	// Lines counts every line in the file, blank ones included.
	Lines int

	// Phrases holds the trimmed, non-empty lines in file order.
	Phrases []string
}

// ReadPhrases loads a UTF-8 phrase file, one phrase per line. Duplicates are
// kept; the existence check handles them.
func ReadPhrases(path string) (*Input, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInputUnavailable, err)
	}
	defer func() { _ = f.Close() }()

	in := &Input{}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		in.Lines++
		phrase := strings.TrimSpace(strings.TrimPrefix(scanner.Text(), "\ufeff"))
		if phrase == "" {
			continue
		}
		in.Phrases = append(in.Phrases, phrase)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: line %d: %w", ErrInputUnreadable, in.Lines+1, err)
	}

	return in, nil
}
