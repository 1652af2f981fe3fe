/*
Package route compiles path patterns into matchers and resolves paths against them.

A pattern is a path template made of literal text, named parameters and wildcards:

	/                 literal only
	/product/:id/     ":id" matches one or more characters other than "/"
	/files/*          "*" matches any remaining characters, "/" included
	.*                catch-all; ".*" is accepted as a spelling of "*"

A parameter name is one or more of [A-Za-z0-9_].
A ":" not followed by a name character is literal.
Patterns compile once into a sequence of [Token]s.
A [Table] prefixes every pattern with its base path and anchors the match at both ends,
so a trailing slash in the path but not in the pattern, or vice versa, is a non-match.

A [Table] evaluates patterns in registration order: the first match wins.
Register a catch-all last to act as the "not found" route.
*/
package route
