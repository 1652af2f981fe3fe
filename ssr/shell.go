package ssr

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

const (
	// HeadMarker is replaced by the Result's head markup.
	HeadMarker = "<!--app-head-->"

	// DataMarker is replaced by the data script.
	// If a shell has no DataMarker, the data script follows the head markup.
	DataMarker = "<!--app-data-->"

	// HTMLMarker is replaced by the Result's body markup.
	HTMLMarker = "<!--app-html-->"

	// DataGlobal is the global the data script assigns the Result's data to.
	DataGlobal = "__INITIAL_DATA__"
)

var (
	ErrMissingMarker = errors.New("missing marker")
	ErrMarkerRepeats = errors.New("marker repeats")
)

type slot int

const (
	headSlot slot = iota
	dataSlot
	htmlSlot
)

// A Shell is a static page with markers a Result substitutes into.
type Shell struct {
	parts   []string
	slots   []slot
	hasData bool
}

// ParseShell splits page at its markers.
// HeadMarker and HTMLMarker are required, DataMarker is optional;
// each may appear at most once.
func ParseShell(page string) (Shell, error) {
	type found struct {
		at int
		s  slot
		m  string
	}

	var marks []found
	for _, m := range []struct {
		marker   string
		s        slot
		required bool
	}{
		{HeadMarker, headSlot, true},
		{DataMarker, dataSlot, false},
		{HTMLMarker, htmlSlot, true},
	} {
		switch strings.Count(page, m.marker) {
		case 0:
			if m.required {
				return Shell{}, fmt.Errorf("%w: %s", ErrMissingMarker, m.marker)
			}
		case 1:
			marks = append(marks, found{at: strings.Index(page, m.marker), s: m.s, m: m.marker})
		default:
			return Shell{}, fmt.Errorf("%w: %s", ErrMarkerRepeats, m.marker)
		}
	}

	sort.Slice(marks, func(i, j int) bool { return marks[i].at < marks[j].at })

	var sh Shell
	prev := 0
	for _, f := range marks {
		sh.parts = append(sh.parts, page[prev:f.at])
		sh.slots = append(sh.slots, f.s)
		if f.s == dataSlot {
			sh.hasData = true
		}

		prev = f.at + len(f.m)
	}

	sh.parts = append(sh.parts, page[prev:])
	return sh, nil
}

// Execute writes the shell with res substituted into its markers.
// The body markup is rendered in place with res.Data.
func (sh Shell) Execute(w io.Writer, res Result) error {
	script, err := DataScript(res.Data)
	if err != nil {
		return err
	}

	for i, part := range sh.parts {
		if _, err := io.WriteString(w, part); err != nil {
			return err
		}

		if i == len(sh.slots) {
			break
		}

		switch sh.slots[i] {
		case headSlot:
			head := res.Head
			if !sh.hasData && script != "" {
				head += "\n" + script
			}

			if _, err := io.WriteString(w, head); err != nil {
				return err
			}

		case dataSlot:
			if _, err := io.WriteString(w, script); err != nil {
				return err
			}

		case htmlSlot:
			if res.HTML == nil {
				continue
			}

			if err := res.HTML(w, res.Data); err != nil {
				return fmt.Errorf("cannot render page: %w", err)
			}
		}
	}

	return nil
}

// DataScript returns an inline script assigning data, as JSON, to window.__INITIAL_DATA__.
// A nil data produces no script.
//
// The JSON escapes <, >, &, U+2028 and U+2029, so it cannot close the script element early.
func DataScript(data any) (string, error) {
	if data == nil {
		return "", nil
	}

	b, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("cannot encode initial data: %w", err)
	}

	return "<script>window." + DataGlobal + " = " + string(b) + "</script>", nil
}
