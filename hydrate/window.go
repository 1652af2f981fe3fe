package hydrate

import (
	"bytes"
	"encoding/json"
	"sync"

	"github.com/xy-planning-network/storefront/ssr"
)

// scriptPrefix opens the data script ssr.Shell writes into a page.
var scriptPrefix = []byte("<script>window." + ssr.DataGlobal + " = ")

// A Window holds the initial data a server-rendered page carried.
//
// A Window is safe for concurrent use.
type Window struct {
	mu   sync.Mutex
	data json.RawMessage
}

// NewWindow constructs a *Window holding data.
// Nil or empty data means the page carried none.
func NewWindow(data json.RawMessage) *Window {
	return &Window{data: data}
}

// NewWindowFromHTML constructs a *Window holding the initial data embedded in page.
func NewWindowFromHTML(page []byte) *Window {
	data, _ := ExtractPayload(page)
	return NewWindow(data)
}

// InitialData returns the data still held, or nil.
func (w *Window) InitialData() json.RawMessage {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.data
}

// Consume returns the data held and clears it,
// so only the first call reports true.
func (w *Window) Consume() (json.RawMessage, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	data := w.data
	w.data = nil
	return data, len(data) > 0
}

// ExtractPayload finds the data script in a rendered page and returns its JSON.
func ExtractPayload(page []byte) (json.RawMessage, bool) {
	start := bytes.Index(page, scriptPrefix)
	if start < 0 {
		return nil, false
	}

	rest := page[start+len(scriptPrefix):]
	end := bytes.Index(rest, []byte("</script>"))
	if end < 0 {
		return nil, false
	}

	raw := bytes.TrimSpace(rest[:end])
	if !json.Valid(raw) {
		return nil, false
	}

	return json.RawMessage(append([]byte(nil), raw...)), true
}
