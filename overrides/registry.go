// Package overrides maps URL patterns to page object substitutions: "for
// these URLs, use this implementation instead of that one". It is
// independent of the serialization engine.
package overrides

import (
	"log/slog"
	"reflect"
	"sort"
)

// Rule says that for URLs matching ForPatterns, the Use page object should
// be used instead of InsteadOf. Meta carries arbitrary extra information
// and is excluded from rule identity: a registry stores at most one rule
// per Use reference.
type Rule struct {
	ForPatterns Patterns
	Use         reflect.Type
	InsteadOf   reflect.Type
	Meta        map[string]any
}

// TypeOf returns the reflect.Type of T, for use as a rule reference.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Provider registers rules on a registry. Providers replace the original
// import-time decorator side effects: registration code that would run on
// module import is an explicit function handed to Consume or Overrides.
type Provider func(*Registry)

// Registry holds override rules keyed by their Use reference.
//
// A Registry is not safe for concurrent mutation; register rules at
// startup, before any concurrent reads.
type Registry struct {
	rules map[reflect.Type]Rule
	order []reflect.Type
	log   *slog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for duplicate-registration warnings.
var WithLogger = func(log *slog.Logger) Option {
	return func(r *Registry) {
		r.log = log
	}
}

// NewRegistry returns an empty registry. Without WithLogger, warnings are
// discarded.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		rules: make(map[reflect.Type]Rule),
		log:   NullLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RuleOption configures a rule built by HandleURLs.
type RuleOption func(*Rule)

// WithExclude adds URL patterns the rule must not apply to.
var WithExclude = func(patterns ...string) RuleOption {
	return func(rule *Rule) {
		rule.ForPatterns.Exclude = append(rule.ForPatterns.Exclude, patterns...)
	}
}

// WithPriority sets the rule's resolution priority (default 500).
var WithPriority = func(priority int) RuleOption {
	return func(rule *Rule) {
		rule.ForPatterns.Priority = priority
	}
}

// WithMeta attaches one metadata entry to the rule.
var WithMeta = func(key string, value any) RuleOption {
	return func(rule *Rule) {
		if rule.Meta == nil {
			rule.Meta = make(map[string]any)
		}
		rule.Meta[key] = value
	}
}

// HandleURLs registers a rule: for URLs matching include, use `use`
// instead of `insteadOf`. A second registration for the same use reference
// is dropped with a warning and the first one wins, so providers can be
// consumed more than once without error.
func (r *Registry) HandleURLs(include []string, use, insteadOf reflect.Type, opts ...RuleOption) {
	rule := Rule{
		ForPatterns: Patterns{
			Include:  include,
			Priority: DefaultPriority,
		},
		Use:       use,
		InsteadOf: insteadOf,
	}
	for _, opt := range opts {
		opt(&rule)
	}

	if _, exists := r.rules[use]; exists {
		r.log.Warn("ignoring duplicate override rule registration",
			"use", use.String(),
			"include", include)
		return
	}
	r.rules[use] = rule
	r.order = append(r.order, use)
}

// HandleURLs registers a rule on r using the types Use and InsteadOf as
// references.
func HandleURLs[Use, InsteadOf any](r *Registry, include []string, opts ...RuleOption) {
	r.HandleURLs(include, TypeOf[Use](), TypeOf[InsteadOf](), opts...)
}

// Consume runs providers so their registrations land in r.
func (r *Registry) Consume(providers ...Provider) {
	for _, p := range providers {
		p(r)
	}
}

// Overrides returns all rules in insertion order, running any providers
// first.
func (r *Registry) Overrides(providers ...Provider) []Rule {
	r.Consume(providers...)
	rules := make([]Rule, 0, len(r.order))
	for _, use := range r.order {
		rules = append(rules, r.rules[use])
	}
	return rules
}

// Query filters rules by exact field values. Nil fields are ignored.
type Query struct {
	Use       reflect.Type
	InsteadOf reflect.Type
	Priority  *int
}

// Search returns the rules matching every set field of q. Filtering only
// by Use is a direct key lookup.
func (r *Registry) Search(q Query) []Rule {
	if q.Use != nil && q.InsteadOf == nil && q.Priority == nil {
		if rule, ok := r.rules[q.Use]; ok {
			return []Rule{rule}
		}
		return nil
	}

	var results []Rule
	for _, rule := range r.Overrides() {
		if q.Use != nil && rule.Use != q.Use {
			continue
		}
		if q.InsteadOf != nil && rule.InsteadOf != q.InsteadOf {
			continue
		}
		if q.Priority != nil && rule.ForPatterns.Priority != *q.Priority {
			continue
		}
		results = append(results, rule)
	}
	return results
}

// RulesForURL returns the rules whose patterns match rawURL, highest
// priority first; equal priorities keep insertion order.
func (r *Registry) RulesForURL(rawURL string) []Rule {
	var results []Rule
	for _, rule := range r.Overrides() {
		if rule.ForPatterns.Match(rawURL) {
			results = append(results, rule)
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].ForPatterns.Priority > results[j].ForPatterns.Priority
	})
	return results
}
