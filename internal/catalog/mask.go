package catalog

import "github.com/samber/lo"

// AllCategories is the mask meaning "every category". Any negative mask is
// treated the same way.
const AllCategories int64 = -1

// Encode sums 1<<i for every selected name found at index i of order.
// Names missing from order are ignored.
func Encode(selected []string, order []string) int64 {
	var mask int64
	for i, name := range order {
		if i >= MaxCategories {
			break
		}
		if lo.Contains(selected, name) {
			mask |= 1 << uint(i)
		}
	}
	return mask
}

// Decode returns the names of order whose bit is set in mask, in order.
func Decode(mask int64, order []string) []string {
	if mask < 0 {
		return append([]string(nil), order...)
	}
	out := make([]string, 0, len(order))
	for i, name := range order {
		if i >= MaxCategories {
			break
		}
		if mask&(1<<uint(i)) != 0 {
			out = append(out, name)
		}
	}
	return out
}

// Mask encodes selected against c's order.
func (c *Catalog) Mask(selected []string) int64 { return Encode(selected, c.order) }

// Selection decodes mask against c's order.
func (c *Catalog) Selection(mask int64) []string { return Decode(mask, c.order) }
