// Package stoplist loads stop words and stop phrases and matches them against a
// token stream.
//
// A stoplist file is a plain newline-delimited list with one stop phrase per line.
// Phrases may contain several words and are compared case-insensitively. Blank lines
// and lines starting with '#' are ignored.
package stoplist

import (
	"bufio"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"
)

// ErrConfiguration is returned when a stoplist source is missing or unreadable.
var ErrConfiguration = errors.New("stoplist configuration error")

//go:embed smart.txt
var smartList string

// Stoplist is an immutable set of normalized stop phrases.
type Stoplist struct {
	phrases  map[string]bool
	maxWords int
}

// New builds a stoplist from in-memory words or phrases.
func New(words ...string) *Stoplist {
	s := &Stoplist{phrases: make(map[string]bool, len(words))}
	for _, w := range words {
		s.add(w)
	}
	return s
}

// Empty returns a stoplist that matches nothing.
func Empty() *Stoplist {
	return New()
}

// Default returns the embedded SMART stoplist.
func Default() *Stoplist {
	s, err := Read(strings.NewReader(smartList))
	if err != nil {
		// the embedded list is a string reader and cannot fail
		panic(err)
	}
	return s
}

// Load reads a stoplist file. The file is closed before Load returns.
func Load(path string) (*Stoplist, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty stoplist path", ErrConfiguration)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open stoplist %s: %v", ErrConfiguration, path, err)
	}
	defer f.Close()

	s, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read stoplist %s: %w", path, err)
	}
	return s, nil
}

// Read parses a newline-delimited stoplist.
func Read(r io.Reader) (*Stoplist, error) {
	s := New()

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		s.add(line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	return s, nil
}

func (s *Stoplist) add(phrase string) {
	fields := strings.Fields(strings.ToLower(phrase))
	if len(fields) == 0 {
		return
	}
	s.phrases[strings.Join(fields, " ")] = true
	if len(fields) > s.maxWords {
		s.maxWords = len(fields)
	}
}

// Contains reports whether phrase is a stop phrase.
func (s *Stoplist) Contains(phrase string) bool {
	return s.phrases[strings.Join(strings.Fields(strings.ToLower(phrase)), " ")]
}

// MatchAt returns the number of tokens covered by the longest stop phrase that
// starts at tokens[i], or 0 when none does. Tokens must already be lowercase.
func (s *Stoplist) MatchAt(tokens []string, i int) int {
	if i < 0 || i >= len(tokens) || len(s.phrases) == 0 {
		return 0
	}

	longest := min(s.maxWords, len(tokens)-i)
	for n := longest; n >= 1; n-- {
		if s.phrases[strings.Join(tokens[i:i+n], " ")] {
			return n
		}
	}
	return 0
}

// Len returns the number of stop phrases.
func (s *Stoplist) Len() int {
	return len(s.phrases)
}

// Words returns all stop phrases in sorted order.
func (s *Stoplist) Words() []string {
	return slices.Sorted(maps.Keys(s.phrases))
}
