package storefront

type Key string

const (
	// IpAddrKey stashes the IP address of an HTTP request being handled by the storefront.
	IpAddrKey Key = "IpAddrKey"

	// RequestIDKey stashes a unique UUID for each HTTP request.
	RequestIDKey Key = "RequestIDKey"

	// RouterKey stashes the per-request router resolving the page being rendered.
	RouterKey Key = "RouterKey"
)

// String formats the stringified key with additional contextual information
func (k Key) String() string {
	return "storefront context key: " + string(k)
}
