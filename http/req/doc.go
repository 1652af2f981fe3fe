/*
Package req provides ergonomics for handling an HTTP request.

Package req provides a helper for parsing payloads encoded in query parameters.
It expects to parse payloads into a pointer to a struct.
That struct ought to leverage the appropriate struct tags for performing two tasks.
First, matching keys in the payload to fields on the struct.
Second, for validating the payload's data meets requirements.

Errors are translated to storefront sentinel errors,
so handlers can map them onto responses consistently.
*/
package req
