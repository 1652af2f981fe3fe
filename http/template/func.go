package template

import (
	html "html/template"
	"strconv"

	"github.com/google/uuid"
	"github.com/xy-planning-network/storefront"
	"github.com/xy-planning-network/storefront/ssr"
)

// AddFn includes the named function in the Parse function map.
func (p *Parse) AddFn(name string, fn any) {
	if p.fns == nil {
		p.fns = make(html.FuncMap)
	}
	p.fns[name] = fn
}

// BaseURL encloses the base path the storefront is served under.
// It returns "baseUrl" as the name of the function for convenient passing to a template.FuncMap
// and returns a function returning base.
func BaseURL(base string) (string, func() string) {
	return "baseUrl", func() string { return base }
}

// Env encloses some string representing an environment.
// It returns "env" as the name of the function for convenient passing to a template.FuncMap
// and returns a function returning the enclosed value when called.
func Env(e storefront.Environment) (string, func() string) {
	return "env", func() string { return e.String() }
}

// Marker returns "marker" as the name of the function for convenient passing to a template.FuncMap
// and returns a function emitting the shell marker for "head", "data" or "html".
//
// html/template strips comments from templates, so shells emit markers through this function.
func Marker() (string, func(string) html.HTML) {
	return "marker", func(slot string) html.HTML {
		switch slot {
		case "head":
			return html.HTML(ssr.HeadMarker)
		case "data":
			return html.HTML(ssr.DataMarker)
		case "html":
			return html.HTML(ssr.HTMLMarker)
		default:
			return ""
		}
	}
}

// Nonce returns "nonce" as the name of the function for convenient passing to a template.FuncMap
// and returns a function generating a uuid.
func Nonce() (string, func() string) {
	return "nonce", func() string { return uuid.NewString() }
}

// Price returns "price" as the name of the function for convenient passing to a template.FuncMap
// and returns a function formatting an amount with thousands separators, e.g. 12,900.
func Price() (string, func(int) string) {
	return "price", func(n int) string {
		s := strconv.Itoa(n)
		neg := n < 0
		if neg {
			s = s[1:]
		}

		out := make([]byte, 0, len(s)+len(s)/3)
		for i := range s {
			if i > 0 && (len(s)-i)%3 == 0 {
				out = append(out, ',')
			}
			out = append(out, s[i])
		}

		if neg {
			return "-" + string(out)
		}

		return string(out)
	}
}
