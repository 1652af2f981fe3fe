package storefront

import "net/url"

const (
	LogKindKey = "kind"
	LogMaskVal = "xxxxxx"
)

const (
	AppLogKind    = "app"
	HTTPLogKind   = "http"
	RenderLogKind = "render"
)

// Mask replaces every value of key in vals with a single LogMaskVal.
func Mask(vals url.Values, key string) {
	if vals.Has(key) {
		vals.Set(key, LogMaskVal)
	}
}
