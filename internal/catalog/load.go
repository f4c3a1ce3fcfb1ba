package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed data/default.yaml
var defaultCatalog []byte

// Load reads a catalog from the given path, or the embedded default catalog
// when path is empty. The catalog is validated before it is returned;
// configuration problems fail here, before any scoring occurs.
func Load(path string) (*Catalog, error) {
	data := defaultCatalog
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read catalog: %w", err)
		}
		data = b
	}
	return Parse(data)
}

// Parse builds and validates a catalog from raw YAML.
func Parse(data []byte) (*Catalog, error) {
	c := &Catalog{}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	c.index()
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate catalog: %w", err)
	}
	return c, nil
}

// New indexes and validates a programmatically built catalog. Alternate
// question sets can be assembled in code instead of YAML.
func New(c Catalog) (*Catalog, error) {
	c.index()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}
