package middleware

import (
	"github.com/gorilla/handlers"
)

// Compress gzip or deflate encodes responses for clients accepting either encoding.
func Compress() Adapter {
	return handlers.CompressHandler
}
