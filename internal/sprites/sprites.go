// Package sprites maps item descriptions to image paths by keyword.
package sprites

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// Entry binds a keyword to an image path.
type Entry struct {
	Keyword string `json:"keyword"`
	Path    string `json:"path"`
}

// Table is an ordered keyword table plus the image used when nothing matches.
// Order matters: among equally long matches the earliest entry wins.
type Table struct {
	Entries  []Entry `json:"sprites"`
	Fallback string  `json:"fallback"`
}

// Normalize lowercases s and drops everything outside [a-z0-9].
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Lookup returns the path of the longest keyword contained in description.
func (t *Table) Lookup(description string) string {
	if e, ok := t.Match(description); ok {
		return e.Path
	}
	return t.Fallback
}

// Match returns the winning entry, if any.
func (t *Table) Match(description string) (Entry, bool) {
	desc := Normalize(description)
	best, bestLen := -1, 0
	for i, e := range t.Entries {
		kw := Normalize(e.Keyword)
		if kw == "" || !strings.Contains(desc, kw) {
			continue
		}
		if len(kw) > bestLen {
			best, bestLen = i, len(kw)
		}
	}
	if best < 0 {
		return Entry{}, false
	}
	return t.Entries[best], true
}

// ReadJSON decodes {"fallback": ..., "sprites": [{"keyword": ..., "path": ...}]}.
func ReadJSON(r io.Reader) (*Table, error) {
	var t Table
	if err := json.NewDecoder(r).Decode(&t); err != nil {
		return nil, fmt.Errorf("decode sprites: %w", err)
	}
	return &t, nil
}

// LoadFile reads a sprite table from path.
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadJSON(f)
}
