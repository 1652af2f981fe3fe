package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"

	"github.com/xy-planning-network/storefront"
)

// UnknownIPAddress stands in for a visitor whose address cannot be found.
const UnknownIPAddress = "0.0.0.0"

// proxyHeaders are read, in order, for the address of the visitor a proxy forwarded.
var proxyHeaders = []string{"X-Forwarded-For", "X-Real-Ip"}

// sharedNets are non-public IPv4 networks net.IP.IsPrivate does not cover:
// carrier-grade NAT, IETF protocol assignments and benchmarking.
var sharedNets = []*net.IPNet{
	mustCIDR("100.64.0.0/10"),
	mustCIDR("192.0.0.0/24"),
	mustCIDR("198.18.0.0/15"),
}

func mustCIDR(s string) *net.IPNet {
	_, n, err := net.ParseCIDR(s)
	if err != nil {
		panic(err)
	}

	return n
}

// InjectIPAddress promotes the visitor's address, as RequestIPAddress finds it,
// to *http.Request.Context under storefront.IpAddrKey.
//
// LogRequest and the responder's error logs read it back with IPAddress.
func InjectIPAddress() Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := RequestIPAddress(r)
			r = r.Clone(context.WithValue(r.Context(), storefront.IpAddrKey, ip))
			h.ServeHTTP(w, r)
		})
	}
}

// IPAddress returns the address InjectIPAddress stashed in ctx, or the empty string.
func IPAddress(ctx context.Context) string {
	ip, _ := ctx.Value(storefront.IpAddrKey).(string)
	return ip
}

// RequestIPAddress finds the visitor's address:
// the public address the proxy headers carry, as GetIPAddress reads them,
// or, for a visitor connecting directly, the connection's remote address.
func RequestIPAddress(r *http.Request) string {
	if ip := GetIPAddress(r.Header); ip != UnknownIPAddress {
		return ip
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}

	if net.ParseIP(host) == nil {
		return UnknownIPAddress
	}

	return host
}

// GetIPAddress parses "X-Forwarded-For" and "X-Real-Ip" headers for the IP address
// from the request.
//
// GetIPAddress skips addresses from non-public ranges,
// returning UnknownIPAddress when no public address remains.
func GetIPAddress(hm http.Header) string {
	for _, h := range proxyHeaders {
		addresses := strings.Split(hm.Get(h), ",")
		// march from right to left until we get a public address
		// that will be the address right before our proxy.
		for i := len(addresses) - 1; i >= 0; i-- {
			ip := strings.TrimSpace(addresses[i])
			parsed := net.ParseIP(ip)
			if !parsed.IsGlobalUnicast() || isPrivate(parsed) {
				continue
			}

			return ip
		}
	}

	return UnknownIPAddress
}

// isPrivate checks whether the address belongs to a private or shared network.
// IPv6 unique local addresses count as private.
func isPrivate(ip net.IP) bool {
	if ip.IsPrivate() {
		return true
	}

	for _, n := range sharedNets {
		if n.Contains(ip) {
			return true
		}
	}

	return false
}
