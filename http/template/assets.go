package template

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/xy-planning-network/storefront"
)

const (
	// assetsDir is where the client build writes bundled assets, relative to the static directory.
	assetsDir = "assets"

	// devServer is the origin of the client's development server.
	devServer = "http://localhost:5173"
)

// AssetURI encloses the environment, base path and static filesystem
// so when called executing a template, emits valid URI for client side static and bundled assets.
//
// Outside development, assetPath resolves to the hashed file the client build emitted, if any:
// assets/main.js matches assets/main-*.js in filesys.
func AssetURI(env storefront.Environment, base string, filesys fs.FS) func(string) string {
	if filesys == nil {
		filesys = os.DirFS(".")
	}

	return func(assetPath string) string {
		assetPath = strings.TrimPrefix(assetPath, "/")
		switch {
		case env.IsTesting():
			return ""

		case env.IsDevelopment():
			return fmt.Sprintf("%s%s/%s", devServer, base, assetPath)

		default:
			match, ok := hashed(filesys, assetPath)
			if !ok {
				return fmt.Sprintf("%s/%s", base, assetPath)
			}

			return fmt.Sprintf("%s/%s", base, match)
		}
	}
}

// hashed finds the hashed build output for assetPath in filesys.
func hashed(filesys fs.FS, assetPath string) (string, bool) {
	ext := filepath.Ext(assetPath)
	glob := fmt.Sprintf("%s-*%s", strings.TrimSuffix(assetPath, ext), ext)
	matches, err := fs.Glob(filesys, glob)
	if errors.Is(err, path.ErrBadPattern) || len(matches) == 0 {
		return "", false
	}

	return matches[0], true
}
