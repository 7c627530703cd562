package overrides

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
)

type genericProductPage struct{}
type exampleComProductPage struct{}
type exampleComReviewsPage struct{}

func TestHandleURLs(t *testing.T) {
	r := NewRegistry()

	HandleURLs[exampleComProductPage, genericProductPage](r,
		[]string{"example.com"},
		WithExclude("example.com/admin"),
		WithMeta("source", "annotations"),
	)

	rules := r.Overrides()
	assert.Equal(t, 1, len(rules))
	rule := rules[0]
	assert.Equal(t, TypeOf[exampleComProductPage](), rule.Use)
	assert.Equal(t, TypeOf[genericProductPage](), rule.InsteadOf)
	assert.Equal(t, []string{"example.com"}, rule.ForPatterns.Include)
	assert.Equal(t, []string{"example.com/admin"}, rule.ForPatterns.Exclude)
	assert.Equal(t, DefaultPriority, rule.ForPatterns.Priority)
	assert.Equal(t, "annotations", rule.Meta["source"].(string))
}

func TestDuplicateRegistrationDropped(t *testing.T) {
	var buf bytes.Buffer
	r := NewRegistry(WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))

	HandleURLs[exampleComProductPage, genericProductPage](r, []string{"example.com"})
	HandleURLs[exampleComProductPage, genericProductPage](r, []string{"other.example.com"})

	assert.True(t, strings.Contains(buf.String(), "duplicate"))

	rules := r.Overrides()
	assert.Equal(t, 1, len(rules))
	// First registration wins.
	assert.Equal(t, []string{"example.com"}, rules[0].ForPatterns.Include)
}

func TestOverridesInsertionOrder(t *testing.T) {
	r := NewRegistry()

	HandleURLs[exampleComProductPage, genericProductPage](r, []string{"example.com"})
	HandleURLs[exampleComReviewsPage, genericProductPage](r, []string{"example.com/reviews"})

	rules := r.Overrides()
	assert.Equal(t, 2, len(rules))
	assert.Equal(t, TypeOf[exampleComProductPage](), rules[0].Use)
	assert.Equal(t, TypeOf[exampleComReviewsPage](), rules[1].Use)
}

func TestConsumeProviders(t *testing.T) {
	provider := func(r *Registry) {
		HandleURLs[exampleComProductPage, genericProductPage](r, []string{"example.com"})
	}

	r := NewRegistry()
	rules := r.Overrides(provider)
	assert.Equal(t, 1, len(rules))

	// Consuming the same provider twice keeps the first registration.
	rules = r.Overrides(provider)
	assert.Equal(t, 1, len(rules))
}

func TestSearch(t *testing.T) {
	r := NewRegistry()
	HandleURLs[exampleComProductPage, genericProductPage](r, []string{"example.com"})
	HandleURLs[exampleComReviewsPage, genericProductPage](r, []string{"example.com/reviews"}, WithPriority(600))

	t.Run("by use is a direct lookup", func(t *testing.T) {
		rules := r.Search(Query{Use: TypeOf[exampleComProductPage]()})
		assert.Equal(t, 1, len(rules))
		assert.Equal(t, TypeOf[exampleComProductPage](), rules[0].Use)

		assert.Equal(t, 0, len(r.Search(Query{Use: TypeOf[genericProductPage]()})))
	})

	t.Run("by instead-of", func(t *testing.T) {
		rules := r.Search(Query{InsteadOf: TypeOf[genericProductPage]()})
		assert.Equal(t, 2, len(rules))
	})

	t.Run("by several fields", func(t *testing.T) {
		priority := 600
		rules := r.Search(Query{InsteadOf: TypeOf[genericProductPage](), Priority: &priority})
		assert.Equal(t, 1, len(rules))
		assert.Equal(t, TypeOf[exampleComReviewsPage](), rules[0].Use)
	})
}

func TestRulesForURL(t *testing.T) {
	r := NewRegistry()
	HandleURLs[exampleComProductPage, genericProductPage](r, []string{"example.com"})
	HandleURLs[exampleComReviewsPage, genericProductPage](r, []string{"example.com/reviews"}, WithPriority(600))

	rules := r.RulesForURL("http://example.com/reviews/42")
	assert.Equal(t, 2, len(rules))
	// Higher priority first.
	assert.Equal(t, TypeOf[exampleComReviewsPage](), rules[0].Use)

	rules = r.RulesForURL("http://example.com/product/1")
	assert.Equal(t, 1, len(rules))
	assert.Equal(t, TypeOf[exampleComProductPage](), rules[0].Use)

	assert.Equal(t, 0, len(r.RulesForURL("http://other.com/")))
}
