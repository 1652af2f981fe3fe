// Package query converts URL query strings to flat key-value mappings and back.
//
// The conversion is lossy:
// repeated keys collapse to their last value on Parse
// and keys with empty values are omitted on Stringify.
package query

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// Values maps query keys to a single value each.
type Values map[string]string

// Get returns the value for key or the empty string.
func (v Values) Get(key string) string { return v[key] }

// Clone copies v into a new Values.
// Cloning nil returns an empty, non-nil Values.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = val
	}

	return out
}

// Parse converts a query string of the form key=value&key2=value2 into Values.
// A leading "?" is optional.
//
// When a key repeats, its last occurrence wins.
// A pair that cannot be unescaped is skipped without affecting the others.
// Parse never fails; the empty string produces empty Values.
func Parse(search string) Values {
	out := make(Values)
	search = strings.TrimPrefix(search, "?")
	for search != "" {
		var pair string
		pair, search, _ = strings.Cut(search, "&")
		if pair == "" {
			continue
		}

		key, val, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(key)
		if err != nil || key == "" {
			continue
		}

		val, err = url.QueryUnescape(val)
		if err != nil {
			continue
		}

		out[key] = val
	}

	return out
}

// Stringify converts v into a query string without a leading "?".
//
// Keys whose value is the empty string are omitted.
// Keys and values are escaped with standard query escaping.
// Keys are emitted in sorted order so equal Values produce equal strings.
func Stringify(v Values) string {
	keys := make([]string, 0, len(v))
	for k, val := range v {
		if k == "" || val == "" {
			continue
		}

		keys = append(keys, k)
	}

	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}

		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(v[k]))
	}

	return b.String()
}

// StringifyAny converts m into a query string as Stringify does,
// additionally omitting nil values.
// Other values are formatted with the default fmt verb.
func StringifyAny(m map[string]any) string {
	v := make(Values, len(m))
	for k, val := range m {
		if val == nil {
			continue
		}

		v[k] = fmt.Sprint(val)
	}

	return Stringify(v)
}

// Merge applies updates on top of a copy of base.
// An update with an empty value removes the key.
func Merge(base, updates Values) Values {
	out := base.Clone()
	for k, val := range updates {
		if val == "" {
			delete(out, k)
			continue
		}

		out[k] = val
	}

	return out
}

// URL joins path and the stringified v.
// If v stringifies to nothing, path returns as is.
// An empty path is treated as the root path.
func URL(path string, v Values) string {
	if path == "" {
		path = "/"
	}

	qs := Stringify(v)
	if qs == "" {
		return path
	}

	return path + "?" + qs
}
