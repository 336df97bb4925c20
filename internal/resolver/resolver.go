// Package resolver interprets free-text terminal input against a command
// catalog: resolution of a typed line to a command, substring suggestions and
// full-text search. Everything here is read-only and side-effect free.
package resolver

import (
	"strings"

	"github.com/quocvuong92/gitterm/internal/catalog"
)

// DefaultSuggestionLimit caps Suggest results
const DefaultSuggestionLimit = 8

// Resolver matches input against a catalog
type Resolver struct {
	catalog *catalog.Catalog
}

// New creates a Resolver over the given catalog
func New(c *catalog.Catalog) *Resolver {
	return &Resolver{catalog: c}
}

// Catalog returns the underlying catalog
func (r *Resolver) Catalog() *catalog.Catalog {
	return r.catalog
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Resolve maps an input line to a command.
// An exact key wins; otherwise the first key in declaration order that the
// input starts with. There is no word-boundary check, so "git commit-tree x"
// resolves to "git commit" when that is declared first.
func (r *Resolver) Resolve(input string) (catalog.CommandSpec, bool) {
	normalized := normalize(input)
	if normalized == "" {
		return catalog.CommandSpec{}, false
	}

	if spec, ok := r.catalog.Lookup(normalized); ok {
		return spec, true
	}

	for _, key := range r.catalog.Keys() {
		if strings.HasPrefix(normalized, key) {
			return r.catalog.Lookup(key)
		}
	}

	return catalog.CommandSpec{}, false
}

// Suggest returns up to DefaultSuggestionLimit keys containing partial
func (r *Resolver) Suggest(partial string) []string {
	return r.SuggestN(partial, DefaultSuggestionLimit)
}

// SuggestN returns keys whose text contains partial, in declaration order.
// An empty partial matches every key. limit <= 0 disables truncation.
func (r *Resolver) SuggestN(partial string, limit int) []string {
	needle := normalize(partial)

	var out []string
	for _, key := range r.catalog.Keys() {
		if limit > 0 && len(out) >= limit {
			break
		}
		if strings.Contains(key, needle) {
			out = append(out, key)
		}
	}
	return out
}

// Search returns every command whose key, description or examples contain
// query, compared case-insensitively. The query is not trimmed.
func (r *Resolver) Search(query string) []catalog.CommandSpec {
	needle := strings.ToLower(query)

	var out []catalog.CommandSpec
	for _, spec := range r.catalog.All() {
		if matches(spec, needle) {
			out = append(out, spec)
		}
	}
	return out
}

func matches(spec catalog.CommandSpec, needle string) bool {
	if strings.Contains(strings.ToLower(spec.Command), needle) ||
		strings.Contains(strings.ToLower(spec.Description), needle) {
		return true
	}
	for _, example := range spec.Examples {
		if strings.Contains(strings.ToLower(example), needle) {
			return true
		}
	}
	return false
}
