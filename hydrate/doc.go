/*
Package hydrate boots the browser model from a server-rendered page.

The server embeds the data a page loaded in the page itself;
see ssr.DataScript. Boot reads that data from a Window exactly once,
seeds the product store with it, and only then registers events,
restores the cart and starts the router.
When a page carries no data, Boot fetches it the way later navigations do.

History models the browser's location so the router can resolve navigations
without a browser.
*/
package hydrate
