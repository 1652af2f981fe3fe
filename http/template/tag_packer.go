package template

import (
	"fmt"
	html "html/template"
	"io/fs"
	"os"

	"github.com/xy-planning-network/storefront"
)

// TagPacker encloses the environment, base path and static filesystem so when called executing a template,
// emits a script or stylesheet tag for the client entry point name.
//
// In development, tags point at the client's development server.
// Otherwise, they point at the hashed bundle under assets/,
// or render nothing when no bundle exists.
func TagPacker(env storefront.Environment, base string, filesys fs.FS) func(string, bool) html.HTML {
	if filesys == nil {
		filesys = os.DirFS(".")
	}

	return func(name string, isCSS bool) html.HTML {
		tagTemplate := `<script src="%s" type="module"></script>`
		devPath := fmt.Sprintf("%s%s/src/%s.js", devServer, base, name)
		assetPath := fmt.Sprintf("%s/%s.js", assetsDir, name)

		if isCSS {
			tagTemplate = `<link rel="stylesheet" href="%s">`
			devPath = fmt.Sprintf("%s%s/src/%s.css", devServer, base, name)
			assetPath = fmt.Sprintf("%s/%s.css", assetsDir, name)
		}

		switch {
		case env.IsTesting():
			return ""

		case env.IsDevelopment():
			return html.HTML(fmt.Sprintf(tagTemplate, devPath))

		default:
			match, ok := hashed(filesys, assetPath)
			if !ok {
				return ""
			}

			return html.HTML(fmt.Sprintf(tagTemplate, base+"/"+match))
		}
	}
}

// Tags returns "tags" as the name of the function for convenient passing to a template.FuncMap
// and returns fn.
func Tags(fn func(string, bool) html.HTML) (string, func(string, bool) html.HTML) {
	return "tags", fn
}

// Assets returns "assetUri" as the name of the function for convenient passing to a template.FuncMap
// and returns fn.
func Assets(fn func(string) string) (string, func(string) string) {
	return "assetUri", fn
}
