package route

// An Entry pairs a compiled Pattern with the handler registered for it.
type Entry struct {
	Pattern Pattern
	Handler any
}

// A Resolved is the outcome of matching a path against a Table.
type Resolved struct {
	// Pattern is the compiled pattern that matched.
	Pattern Pattern

	// ParamNames are the names of the parameters in Pattern, in declaration order.
	ParamNames []string

	// Handler is the value registered with Pattern.
	Handler any

	// Params are the parameter values extracted from the path.
	Params map[string]string

	// Path is the pattern string as registered.
	Path string
}

// A Table holds patterns in registration order.
//
// A Table is not safe for concurrent mutation.
// Once populated, it is read-only and may be resolved against concurrently.
type Table struct {
	base    string
	entries []Entry
	index   map[string]int
}

// NewTable constructs a Table whose patterns all match under base.
func NewTable(base string) *Table {
	return &Table{base: base, index: make(map[string]int)}
}

// Base returns the base path every pattern in t is prefixed with.
func (t *Table) Base() string { return t.base }

// Register compiles pattern and pairs it with handler.
//
// Registering a pattern string already in t replaces its handler,
// keeping the position of the first registration.
func (t *Table) Register(pattern string, handler any) {
	e := Entry{Pattern: Compile(t.base, pattern), Handler: handler}
	if i, ok := t.index[pattern]; ok {
		t.entries[i] = e
		return
	}

	t.index[pattern] = len(t.entries)
	t.entries = append(t.entries, e)
}

// Resolve matches path against each Entry in registration order
// and returns the first match.
func (t *Table) Resolve(path string) (*Resolved, bool) {
	for _, e := range t.entries {
		params, ok := e.Pattern.Match(path)
		if !ok {
			continue
		}

		return &Resolved{
			Pattern:    e.Pattern,
			ParamNames: e.Pattern.ParamNames(),
			Handler:    e.Handler,
			Params:     params,
			Path:       e.Pattern.String(),
		}, true
	}

	return nil, false
}

// Len returns the number of distinct patterns registered.
func (t *Table) Len() int { return len(t.entries) }

// Entries returns a copy of the entries in registration order.
func (t *Table) Entries() []Entry {
	return append([]Entry(nil), t.entries...)
}
