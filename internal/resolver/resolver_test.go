package resolver

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quocvuong92/gitterm/internal/catalog"
)

func newFixture(t *testing.T) *Resolver {
	t.Helper()

	c, err := catalog.New([]catalog.CommandSpec{
		{Command: "git commit", Description: "Record changes", Usage: "git commit", Examples: []string{`git commit -m "msg"`}, Category: catalog.CategoryMain},
		{Command: "git commit-tree", Description: "Create a new commit object", Usage: "git commit-tree <tree>", Category: catalog.CategoryPlumbing},
		{Command: "git log", Description: "Show commit logs", Usage: "git log", Examples: []string{"git log --oneline"}, Category: catalog.CategoryMain},
		{Command: "git stash", Description: "Stash changes away", Usage: "git stash", Examples: []string{"git stash pop"}, Category: catalog.CategoryMain},
	})
	require.NoError(t, err)
	return New(c)
}

func newDefault(t *testing.T) *Resolver {
	t.Helper()

	c, err := catalog.Default()
	require.NoError(t, err)
	return New(c)
}

// =============================================================================
// Resolve Tests
// =============================================================================

func TestResolve(t *testing.T) {
	r := newFixture(t)

	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{"exact", "git log", "git log", true},
		{"upper case with padding", "  GIT LOG  ", "git log", true},
		{"with arguments", `git commit -m "fix"`, "git commit", true},
		{"exact longer key", "git commit-tree", "git commit-tree", true},
		{"longer key with args resolves to earlier prefix", "git commit-tree abc123", "git commit", true},
		{"no word boundary", "git stashed", "git stash", true},
		{"unknown", "git push", "", false},
		{"empty", "", "", false},
		{"blank", "   ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, ok := r.Resolve(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, spec.Command)
		})
	}
}

func TestResolve_RoundTripDefaultCatalog(t *testing.T) {
	r := newDefault(t)
	keys := r.Catalog().Keys()

	for _, spec := range r.Catalog().All() {
		got, ok := r.Resolve(spec.Command)
		require.True(t, ok, spec.Command)
		assert.Equal(t, spec.Command, got.Command)

		// With arguments the earliest declared key that prefixes the line wins.
		extended := spec.Command + " extra args"
		want := ""
		for _, key := range keys {
			if strings.HasPrefix(extended, key) {
				want = key
				break
			}
		}
		got, ok = r.Resolve(extended)
		require.True(t, ok, extended)
		assert.Equal(t, want, got.Command, extended)
	}
}

func TestResolve_DefaultCatalogAmbiguity(t *testing.T) {
	r := newDefault(t)

	spec, ok := r.Resolve("git difftool --tool=vimdiff")
	require.True(t, ok)
	assert.Equal(t, "git diff", spec.Command)

	spec, ok = r.Resolve("git status -s")
	require.True(t, ok)
	assert.Equal(t, "git status", spec.Command)
}

// =============================================================================
// Suggest Tests
// =============================================================================

func TestSuggest_EmptyReturnsFirstKeys(t *testing.T) {
	r := newDefault(t)

	got := r.Suggest("")
	assert.Equal(t, r.Catalog().Keys()[:DefaultSuggestionLimit], got)
	assert.Equal(t, got, r.Suggest("   "))
}

func TestSuggest_Substring(t *testing.T) {
	r := newDefault(t)

	got := r.Suggest("COMMIT")
	assert.Equal(t, []string{"git commit", "git verify-commit", "git commit-graph", "git commit-tree"}, got)
}

func TestSuggest_NeverExceedsLimitAndAlwaysContains(t *testing.T) {
	r := newDefault(t)

	for _, partial := range []string{"", "git", "e", "re", "  Git B", "zzz"} {
		got := r.Suggest(partial)
		assert.LessOrEqual(t, len(got), DefaultSuggestionLimit, partial)
		needle := strings.ToLower(strings.TrimSpace(partial))
		for _, key := range got {
			assert.Contains(t, key, needle)
		}
	}
}

func TestSuggestN(t *testing.T) {
	r := newDefault(t)

	assert.Len(t, r.SuggestN("git", 3), 3)
	assert.Len(t, r.SuggestN("", 0), r.Catalog().Count())

	// scalar is the one catalog key without the git prefix
	all := r.SuggestN("git", 0)
	assert.Len(t, all, r.Catalog().Count()-1)
	assert.NotContains(t, all, "scalar")
	assert.Empty(t, r.SuggestN("zzz-not-a-command", 5))
}

// =============================================================================
// Search Tests
// =============================================================================

func TestSearch(t *testing.T) {
	r := newFixture(t)

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"key", "stash", []string{"git stash"}},
		{"description", "COMMIT OBJECT", []string{"git commit-tree"}},
		{"example", "--oneline", []string{"git log"}},
		{"description and key", "commit", []string{"git commit", "git commit-tree", "git log"}},
		{"untrimmed query", " pop", []string{"git stash"}},
		{"empty matches all", "", []string{"git commit", "git commit-tree", "git log", "git stash"}},
		{"none", "bisect", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, spec := range r.Search(tt.query) {
				got = append(got, spec.Command)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSearch_DefaultCatalog(t *testing.T) {
	r := newDefault(t)

	results := r.Search("binary search")
	require.Len(t, results, 1)
	assert.Equal(t, "git bisect", results[0].Command)
}
