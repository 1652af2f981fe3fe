package template_test

import (
	html "html/template"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/storefront"
	"github.com/xy-planning-network/storefront/http/template"
	tt "github.com/xy-planning-network/storefront/http/template/templatetest"
)

func TestAssetURI(t *testing.T) {
	filesys := tt.NewMockFS(
		tt.NewMockFile("assets/main-a1b2c3.js", nil),
		tt.NewMockFile("favicon.svg", nil),
	)

	tcs := []struct {
		name     string
		fn       func(string) string
		asset    string
		expected string
	}{
		{"Testing", template.AssetURI(storefront.Testing, "", filesys), "assets/main.js", ""},
		{
			"Development",
			template.AssetURI(storefront.Development, "/shop", filesys),
			"/assets/main.js",
			"http://localhost:5173/shop/assets/main.js",
		},
		{"Hashed", template.AssetURI(storefront.Production, "/shop", filesys), "assets/main.js", "/shop/assets/main-a1b2c3.js"},
		{"Not-Hashed", template.AssetURI(storefront.Production, "", filesys), "favicon.svg", "/favicon.svg"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, tc.fn(tc.asset))
		})
	}
}

func TestTagPacker(t *testing.T) {
	filesys := tt.NewMockFS(
		tt.NewMockFile("assets/main-a1b2c3.js", nil),
		tt.NewMockFile("assets/main-d4e5f6.css", nil),
	)

	tcs := []struct {
		name     string
		fn       func(string, bool) html.HTML
		entry    string
		isCSS    bool
		expected html.HTML
	}{
		{"Testing", template.TagPacker(storefront.Testing, "", filesys), "main", false, ""},
		{
			"Development-JS",
			template.TagPacker(storefront.Development, "", filesys),
			"main",
			false,
			`<script src="http://localhost:5173/src/main.js" type="module"></script>`,
		},
		{
			"Production-JS",
			template.TagPacker(storefront.Production, "/shop", filesys),
			"main",
			false,
			`<script src="/shop/assets/main-a1b2c3.js" type="module"></script>`,
		},
		{
			"Production-CSS",
			template.TagPacker(storefront.Production, "", filesys),
			"main",
			true,
			`<link rel="stylesheet" href="/assets/main-d4e5f6.css">`,
		},
		{"Missing", template.TagPacker(storefront.Production, "", filesys), "admin", false, ""},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, tc.fn(tc.entry, tc.isCSS))
		})
	}
}
