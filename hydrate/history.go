package hydrate

import (
	"sync"

	"github.com/xy-planning-network/storefront/router"
)

var _ router.Locator = new(History)

// History is the browser model's stack of visited URLs.
// It reports the current one as a router.Locator
// and re-runs the router it is attached to on every navigation.
type History struct {
	mu      sync.Mutex
	entries []string
	r       *router.Router
}

// NewHistory constructs a *History positioned at initial.
func NewHistory(initial string) *History {
	return &History{entries: []string{initial}}
}

// Attach sets the router navigations start.
func (h *History) Attach(r *router.Router) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.r = r
}

// Location returns the current URL.
func (h *History) Location() string {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.entries[len(h.entries)-1]
}

// Len returns the number of entries.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.entries)
}

// Push navigates to url, adding an entry.
func (h *History) Push(url string) {
	h.mu.Lock()
	h.entries = append(h.entries, url)
	h.mu.Unlock()

	h.start()
}

// Replace navigates to url in place of the current entry.
func (h *History) Replace(url string) {
	h.mu.Lock()
	h.entries[len(h.entries)-1] = url
	h.mu.Unlock()

	h.start()
}

// Back navigates to the previous entry.
// On the first entry, Back does nothing and reports false.
func (h *History) Back() bool {
	h.mu.Lock()
	if len(h.entries) < 2 {
		h.mu.Unlock()
		return false
	}

	h.entries = h.entries[:len(h.entries)-1]
	h.mu.Unlock()

	h.start()
	return true
}

func (h *History) start() {
	h.mu.Lock()
	r := h.r
	h.mu.Unlock()

	if r != nil {
		r.Start()
	}
}
