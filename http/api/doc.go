// Package api serves the product catalog as JSON,
// shaped the way the hydration payload is.
package api
