// Package pages holds the storefront's page handlers.
//
// Each page loads its data from a catalog.Service,
// names itself in the document head and renders an embedded template.
// Routes declares them in resolution order, ending in a catch-all for NotFound.
package pages
