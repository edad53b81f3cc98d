package family

import (
	"fmt"
	"strings"
)

// Catalog is an ordered, immutable set of families. It is built once by the
// hosting program; nothing in this module keeps a process-global catalog.
type Catalog struct {
	families []*Family
	byKey    map[string]*Family
}

// NewCatalog returns a catalog of the given families in order. Family names
// must be unique (case-insensitive).
func NewCatalog(families ...*Family) (*Catalog, error) {
	c := &Catalog{
		families: make([]*Family, 0, len(families)),
		byKey:    make(map[string]*Family, len(families)),
	}
	for _, f := range families {
		if f == nil {
			return nil, fmt.Errorf("%w: nil family", ErrInvalidImpl)
		}
		key := catalogKey(f.Name())
		if _, ok := c.byKey[key]; ok {
			return nil, fmt.Errorf("family %q: %w", f.Name(), ErrDuplicateName)
		}
		c.byKey[key] = f
		c.families = append(c.families, f)
	}
	return c, nil
}

// Families returns the families in registration order.
func (c *Catalog) Families() []*Family {
	out := make([]*Family, len(c.families))
	copy(out, c.families)
	return out
}

// Lookup finds a family by name. Matching ignores case and accepts the first
// word of the name as a short alias ("sin" for "Sin Approximations").
func (c *Catalog) Lookup(name string) (*Family, bool) {
	key := catalogKey(name)
	if f, ok := c.byKey[key]; ok {
		return f, true
	}
	for _, f := range c.families {
		if short, _, _ := strings.Cut(catalogKey(f.Name()), " "); short == key {
			return f, true
		}
	}
	return nil, false
}

func catalogKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
