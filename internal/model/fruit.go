package model

import "strings"

type FruitOption struct {
	Name      string `json:"name" yaml:"name"`
	SearchKey string `json:"search_key" yaml:"search_on"`
}

// Catalog is the read-only reference set loaded from fruit_options.
// Names keep the order of the source rows.
type Catalog struct {
	names []string
	keys  map[string]string
}

// NewCatalog builds a catalog from raw rows. Rows with a blank name are
// dropped and duplicate names keep their first search key; dropped rows are
// returned so the caller can report them.
func NewCatalog(options []FruitOption) (*Catalog, []FruitOption) {
	c := &Catalog{
		names: make([]string, 0, len(options)),
		keys:  make(map[string]string, len(options)),
	}

	var skipped []FruitOption
	for _, opt := range options {
		name := strings.TrimSpace(opt.Name)
		if name == "" {
			skipped = append(skipped, opt)
			continue
		}
		if _, exists := c.keys[name]; exists {
			skipped = append(skipped, opt)
			continue
		}
		c.names = append(c.names, name)
		c.keys[name] = strings.TrimSpace(opt.SearchKey)
	}

	return c, skipped
}

func (c *Catalog) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

func (c *Catalog) Len() int {
	return len(c.names)
}

func (c *Catalog) Contains(name string) bool {
	_, ok := c.keys[name]
	return ok
}

// Lookup returns the search key for name. ok is false when the name is
// unknown or its key is blank.
func (c *Catalog) Lookup(name string) (string, bool) {
	key, found := c.keys[name]
	if !found || key == "" {
		return "", false
	}
	return key, true
}

func (c *Catalog) Options() []FruitOption {
	out := make([]FruitOption, 0, len(c.names))
	for _, name := range c.names {
		out = append(out, FruitOption{Name: name, SearchKey: c.keys[name]})
	}
	return out
}
