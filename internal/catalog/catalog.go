// Package catalog holds the static table of Git commands the terminal knows
// about. A Catalog is immutable once built and keeps declaration order, which
// resolution and suggestion ranking depend on.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed commands.yaml
var defaultCatalogData []byte

// Category groups commands the way the Git documentation does
type Category string

const (
	CategoryMain        Category = "main"
	CategoryAncillary   Category = "ancillary"
	CategoryPlumbing    Category = "plumbing"
	CategoryInteraction Category = "interaction"
	CategoryGuides      Category = "guides"
)

// Errors
var (
	ErrEmptyCommand     = errors.New("command key is empty")
	ErrDuplicateCommand = errors.New("duplicate command key")
	ErrUnknownCategory  = errors.New("unknown category")
)

// Categories returns every known category in display order
func Categories() []Category {
	return []Category{CategoryMain, CategoryAncillary, CategoryPlumbing, CategoryInteraction, CategoryGuides}
}

// ParseCategory parses a category name, ignoring case and surrounding whitespace
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
	return c, nil
}

// Valid reports whether c is one of the known categories
func (c Category) Valid() bool {
	switch c {
	case CategoryMain, CategoryAncillary, CategoryPlumbing, CategoryInteraction, CategoryGuides:
		return true
	}
	return false
}

// CommandSpec documents a single Git command
type CommandSpec struct {
	Command         string   `yaml:"command" json:"command"`
	Description     string   `yaml:"description" json:"description"`
	Usage           string   `yaml:"usage" json:"usage"`
	Examples        []string `yaml:"examples" json:"examples"`
	RelatedCommands []string `yaml:"related" json:"relatedCommands"`
	Category        Category `yaml:"category" json:"category"`
}

func (s CommandSpec) clone() CommandSpec {
	s.Examples = append([]string(nil), s.Examples...)
	s.RelatedCommands = append([]string(nil), s.RelatedCommands...)
	return s
}

// Catalog is an ordered, read-only table of command specs keyed by command
type Catalog struct {
	specs []CommandSpec
	index map[string]int
}

// New builds a catalog from specs, preserving their order.
// Keys are normalized to lower case; related commands are kept as given.
func New(specs []CommandSpec) (*Catalog, error) {
	c := &Catalog{
		specs: make([]CommandSpec, 0, len(specs)),
		index: make(map[string]int, len(specs)),
	}
	for i, spec := range specs {
		key := strings.ToLower(strings.TrimSpace(spec.Command))
		if key == "" {
			return nil, fmt.Errorf("entry %d: %w", i, ErrEmptyCommand)
		}
		if _, exists := c.index[key]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateCommand, key)
		}
		if !spec.Category.Valid() {
			return nil, fmt.Errorf("command %q: %w: %q", key, ErrUnknownCategory, spec.Category)
		}
		spec = spec.clone()
		spec.Command = key
		c.index[key] = len(c.specs)
		c.specs = append(c.specs, spec)
	}
	return c, nil
}

// catalogFile is the YAML layout of a catalog document
type catalogFile struct {
	Commands []CommandSpec `yaml:"commands"`
}

// Load parses a YAML catalog document
func Load(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return New(f.Commands)
}

// LoadFile reads a YAML catalog document from path
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}
	c, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

var defaultCatalog = sync.OnceValues(func() (*Catalog, error) {
	return Load(defaultCatalogData)
})

// Default returns the embedded Git command catalog
func Default() (*Catalog, error) {
	return defaultCatalog()
}

// Lookup finds a command by exact key, ignoring case
func (c *Catalog) Lookup(key string) (CommandSpec, bool) {
	i, ok := c.index[strings.ToLower(key)]
	if !ok {
		return CommandSpec{}, false
	}
	return c.specs[i].clone(), true
}

// All returns every spec in declaration order
func (c *Catalog) All() []CommandSpec {
	out := make([]CommandSpec, len(c.specs))
	for i, s := range c.specs {
		out[i] = s.clone()
	}
	return out
}

// Keys returns every command key in declaration order
func (c *Catalog) Keys() []string {
	keys := make([]string, len(c.specs))
	for i, s := range c.specs {
		keys[i] = s.Command
	}
	return keys
}

// ByCategory returns the specs of one category in declaration order
func (c *Catalog) ByCategory(category Category) []CommandSpec {
	var out []CommandSpec
	for _, s := range c.specs {
		if s.Category == category {
			out = append(out, s.clone())
		}
	}
	return out
}

// Main returns the main porcelain commands
func (c *Catalog) Main() []CommandSpec {
	return c.ByCategory(CategoryMain)
}

// Count returns the number of commands
func (c *Catalog) Count() int {
	return len(c.specs)
}

// Random picks a command uniformly at random
func (c *Catalog) Random() (CommandSpec, bool) {
	if len(c.specs) == 0 {
		return CommandSpec{}, false
	}
	return c.specs[rand.Intn(len(c.specs))].clone(), true
}
