// internal/urlstate/urlstate.go
//
// Shareable grid configuration carried in a query string.
// Responsibilities:
//   - Parse seed / gridSize / categories leniently (bad values become defaults).
//   - Serialize a configuration back into a stable, fully specified query.
//   - Generate fresh random seeds.
//
// Parameters:
//   seed=<[a-z0-9]+, case-insensitive>   invalid or missing: new random seed
//   gridSize=<3..6>                      invalid or missing: DefaultGridSize
//   categories=<int mask>                invalid, missing or wider than 32 bits: -1 (all)

package urlstate

import (
	"crypto/rand"
	"encoding/binary"
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/robalobadob/bingo/internal/catalog"
	"github.com/robalobadob/bingo/internal/game"
)

const (
	DefaultGridSize = 5

	ParamSeed       = "seed"
	ParamGridSize   = "gridSize"
	ParamCategories = "categories"
)

var seedPattern = regexp.MustCompile(`(?i)^[a-z0-9]+$`)

// Config fully determines grid contents (not marks).
type Config struct {
	Seed       string `json:"seed"`
	GridSize   int    `json:"gridSize"`
	Categories int64  `json:"categories"`
}

// ValidSeed reports whether s is acceptable as a seed.
func ValidSeed(s string) bool { return seedPattern.MatchString(s) }

// Parse reads a Config from q. It never fails: each malformed parameter is
// replaced by its default. newSeed supplies the seed when none is usable; nil
// means RandomSeed.
func Parse(q url.Values, newSeed func() string) Config {
	return ParseWithDefault(q, DefaultGridSize, newSeed)
}

// ParseWithDefault is Parse with a configurable fallback grid size.
func ParseWithDefault(q url.Values, defSize int, newSeed func() string) Config {
	if newSeed == nil {
		newSeed = RandomSeed
	}
	if !game.ValidSize(defSize) {
		defSize = DefaultGridSize
	}
	cfg := Config{GridSize: defSize, Categories: catalog.AllCategories}

	if s := strings.TrimSpace(q.Get(ParamSeed)); ValidSeed(s) {
		cfg.Seed = s
	} else {
		cfg.Seed = newSeed()
	}
	if n, err := strconv.Atoi(strings.TrimSpace(q.Get(ParamGridSize))); err == nil && game.ValidSize(n) {
		cfg.GridSize = n
	}
	if m, err := strconv.ParseInt(strings.TrimSpace(q.Get(ParamCategories)), 10, 64); err == nil {
		if m < 0 || m > math.MaxUint32 {
			m = catalog.AllCategories
		}
		cfg.Categories = m
	}
	return cfg
}

// Query returns the query string in fixed parameter order: seed, gridSize, categories.
func (c Config) Query() string {
	return ParamSeed + "=" + url.QueryEscape(c.Seed) +
		"&" + ParamGridSize + "=" + strconv.Itoa(c.GridSize) +
		"&" + ParamCategories + "=" + strconv.FormatInt(c.Categories, 10)
}

// ShareURL appends the query to base, dropping any query base already had.
func (c Config) ShareURL(base string) string {
	if i := strings.IndexAny(base, "?#"); i >= 0 {
		base = base[:i]
	}
	return base + "?" + c.Query()
}

// RandomSeed returns two base36 chunks of crypto randomness.
func RandomSeed() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	hi := binary.BigEndian.Uint64(b[:8])
	lo := binary.BigEndian.Uint64(b[8:])
	return strconv.FormatUint(hi, 36) + strconv.FormatUint(lo, 36)
}
