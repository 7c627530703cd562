package page

// PageParams carries arbitrary parameters passed to a page object by its
// caller, e.g. feature flags or currency/locale hints.
type PageParams map[string]any

// Get returns the value for key, or def when the key is absent.
func (p PageParams) Get(key string, def any) any {
	if v, ok := p[key]; ok {
		return v
	}
	return def
}
