// internal/catalog/catalog.go
//
// Item catalog: an immutable, explicitly ordered mapping from category name
// to its items.
// Responsibilities:
//   - Hold categories in a fixed order (the order bit i of a mask refers to).
//   - Build the unshuffled pool for a category selection.
//   - Load catalogs from JSON (embedded default or a file).
//
// Notes:
//   - The order is part of the catalog data and is never derived from map
//     iteration; changing it changes what existing share links mean.

package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/samber/lo"
)

// MaxCategories is the bit width of a category mask.
const MaxCategories = 32

var (
	ErrTooManyCategories = fmt.Errorf("catalog: more than %d categories", MaxCategories)
	ErrDuplicateCategory = errors.New("catalog: duplicate category name")
	ErrEmptyName         = errors.New("catalog: empty category name")
)

// Item is a single bingo square.
type Item struct {
	Description string `json:"description"`
}

// Category is a named, ordered list of items.
type Category struct {
	Name  string `json:"name"`
	Items []Item `json:"items"`
}

// Catalog is the full ordered set of categories. It is never mutated after New.
type Catalog struct {
	categories []Category
	order      []string
	index      map[string]int
}

// New validates categories and builds a Catalog. The slice is copied.
func New(categories []Category) (*Catalog, error) {
	if len(categories) > MaxCategories {
		return nil, ErrTooManyCategories
	}
	c := &Catalog{
		categories: make([]Category, len(categories)),
		order:      make([]string, len(categories)),
		index:      make(map[string]int, len(categories)),
	}
	for i, cat := range categories {
		name := strings.TrimSpace(cat.Name)
		if name == "" {
			return nil, ErrEmptyName
		}
		if _, dup := c.index[name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateCategory, name)
		}
		c.index[name] = i
		c.order[i] = name
		c.categories[i] = Category{Name: name, Items: append([]Item(nil), cat.Items...)}
	}
	return c, nil
}

// Order returns the category names in their fixed order.
func (c *Catalog) Order() []string {
	return append([]string(nil), c.order...)
}

// Categories returns a copy of every category.
func (c *Catalog) Categories() []Category {
	return lo.Map(c.categories, func(cat Category, _ int) Category {
		return Category{Name: cat.Name, Items: append([]Item(nil), cat.Items...)}
	})
}

// Has reports whether name is a category of c.
func (c *Catalog) Has(name string) bool {
	_, ok := c.index[name]
	return ok
}

// Len returns the number of categories.
func (c *Catalog) Len() int { return len(c.categories) }

// Pool concatenates the items of every selected category. Catalog order is
// used, not selection order; unknown names are ignored.
func (c *Catalog) Pool(selected []string) []Item {
	want := lo.SliceToMap(selected, func(name string) (string, struct{}) {
		return name, struct{}{}
	})
	picked := lo.Filter(c.categories, func(cat Category, _ int) bool {
		_, ok := want[cat.Name]
		return ok
	})
	return lo.FlatMap(picked, func(cat Category, _ int) []Item {
		return append([]Item(nil), cat.Items...)
	})
}

// Size returns the pool length for selected without building it.
func (c *Catalog) Size(selected []string) int {
	return lo.SumBy(lo.Uniq(selected), func(name string) int {
		if i, ok := c.index[name]; ok {
			return len(c.categories[i].Items)
		}
		return 0
	})
}

// ReadJSON decodes an ordered catalog: [{"name": ..., "items": [{"description": ...}]}].
func ReadJSON(r io.Reader) (*Catalog, error) {
	var cats []Category
	if err := json.NewDecoder(r).Decode(&cats); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return New(cats)
}

// LoadFile reads a JSON catalog from path.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadJSON(f)
}
