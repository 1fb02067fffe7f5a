package sketch

// Bindings maps a declared variable name to the raw text of its initializer.
// Resolution is deliberately one hop: a value that names another variable is
// returned as-is, never chased further.
type Bindings map[string]string

// Resolve looks up a single binding for text
func (b Bindings) Resolve(text string) (string, bool) {
	value, ok := b[text]
	return value, ok
}

// ResolveOrSelf returns the bound value when one exists, otherwise text verbatim
func (b Bindings) ResolveOrSelf(text string) string {
	if value, ok := b[text]; ok {
		return value
	}
	return text
}
