package template

import (
	"bytes"
	"fmt"
	html "html/template"
	"io/fs"
	"os"
	"path"

	"github.com/xy-planning-network/storefront"
	"github.com/xy-planning-network/storefront/ssr"
)

// Parser is the interface for parsing HTML templates with the functions provided.
type Parser interface {
	AddFn(name string, fn any)
	Parse(fps ...string) (*html.Template, error)
}

// Parse implements Parser with a focus on utilizing embedded HTML templates through fs.FS.
type Parse struct {
	fs  fs.FS
	fns html.FuncMap
}

// NewParser constructs a Parse with the provided functional options.
func NewParser(opts ...ParserOptFn) Parser {
	p := &Parse{fns: defaultFns()}
	for _, opt := range opts {
		opt(p)
	}

	userFS := p.fs
	if userFS == nil {
		userFS = os.DirFS(".")
	}

	p.fs = &mergeFS{
		cache:   make(map[string]func(string) (fs.File, error)),
		userDir: userFS,
		pkgDir:  pkgFS,
	}

	return p
}

// Parse parses files found in the *Parse.fs with those functions provided previously.
// The template returned is named after the first file.
func (p *Parse) Parse(fps ...string) (*html.Template, error) {
	files := make([]string, 0, len(fps))
	for _, fp := range fps {
		if fp != "" {
			files = append(files, fp)
		}
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w", ErrNoFiles)
	}

	return html.New(path.Base(files[0])).Funcs(p.fns).ParseFS(p.fs, files...)
}

// defaultFns are the functions the embedded templates call,
// set so those templates parse without any options.
// Options override them.
func defaultFns() html.FuncMap {
	fns := make(html.FuncMap)
	for _, fn := range []func() (string, any){
		func() (string, any) { return Marker() },
		func() (string, any) { return Nonce() },
		func() (string, any) { return Price() },
		func() (string, any) { return BaseURL("") },
		func() (string, any) { return Env(storefront.Production) },
		func() (string, any) { return Tags(func(string, bool) html.HTML { return "" }) },
		func() (string, any) { return Assets(func(p string) string { return "/" + p }) },
	} {
		name, f := fn()
		fns[name] = f
	}

	return fns
}

// Shell parses and executes the page shell at fp with data,
// producing the ssr.Shell pages are rendered into.
// The shell marks where rendered markup goes with the marker function:
//
//	<head>{{ marker "head" }}</head>
func Shell(p Parser, fp string, data any) (ssr.Shell, error) {
	tmpl, err := p.Parse(fp)
	if err != nil {
		return ssr.Shell{}, err
	}

	b := new(bytes.Buffer)
	if err := tmpl.Execute(b, data); err != nil {
		return ssr.Shell{}, fmt.Errorf("cannot execute shell %s: %w", fp, err)
	}

	return ssr.ParseShell(b.String())
}
