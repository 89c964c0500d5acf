// Package indexes holds the market indexes a portfolio can be compared to.
//
// The list comes from the backend's top_indexes.csv, a "symbol,name" file
// with a header line. It is fetched once and then served from memory.
package indexes

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"
)

// Option is an index as presented in a selection list.
type Option struct {
	Label string `json:"label"` // "Name (SYMBOL)"
	Value string `json:"value"` // ticker symbol
}

// Parse reads a "symbol,name" CSV with a header line.
//
// Blank lines are skipped, extra fields after the name are ignored.
func Parse(r io.Reader) ([]Option, error) {
	var options []Option
	scanner := bufio.NewScanner(r)
	header := true
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}
		if header {
			header = false
			continue
		}
		fields := strings.Split(text, ",")
		if len(fields) < 2 {
			return nil, fmt.Errorf("line %d: want \"symbol,name\", got %q", line, text)
		}
		symbol, name := strings.TrimSpace(fields[0]), strings.TrimSpace(fields[1])
		options = append(options, Option{Label: fmt.Sprintf("%s (%s)", name, symbol), Value: symbol})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read index list: %w", err)
	}
	return options, nil
}

// Fetcher retrieves the index list.
type Fetcher func(ctx context.Context) ([]Option, error)

// Store holds the index options loaded once.
//
// Its zero value is an empty store ready to use. It is safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	loaded  bool
	options []Option
}

// Load fetches the options the first time it is called.
//
// Once a fetch has succeeded, subsequent calls return immediately. A failed
// fetch leaves the store empty and is retried by the next call.
func (s *Store) Load(ctx context.Context, fetch Fetcher) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return nil
	}
	options, err := fetch(ctx)
	if err != nil {
		return fmt.Errorf("cannot load index options: %w", err)
	}
	s.options, s.loaded = options, true
	return nil
}

// Options returns a copy of the loaded options, nil before a successful Load.
func (s *Store) Options() []Option {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.options)
}

// Lookup returns the option of a symbol.
func (s *Store) Lookup(symbol string) (Option, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.options, func(o Option) bool { return strings.EqualFold(o.Value, symbol) })
	if i < 0 {
		return Option{}, false
	}
	return s.options[i], true
}
