package route

import (
	"net/url"
	"strings"
)

// A Kind tags a Token.
type Kind int

const (
	Literal Kind = iota
	Param
	Wildcard
)

func (k Kind) String() string {
	switch k {
	case Literal:
		return "literal"
	case Param:
		return "param"
	case Wildcard:
		return "wildcard"
	default:
		return "unknown"
	}
}

// A Token is one piece of a compiled pattern.
// Text holds the literal text for a Literal and the name for a Param.
type Token struct {
	Kind Kind
	Text string
}

// A Pattern is a compiled path template.
type Pattern struct {
	raw    string
	names  []string
	tokens []Token
}

// Compile compiles pattern, prefixed by base, into a Pattern.
// base is matched literally; Compile never fails.
func Compile(base, pattern string) Pattern {
	tokens := Tokenize(pattern)
	if base != "" {
		if len(tokens) > 0 && tokens[0].Kind == Literal {
			tokens[0].Text = base + tokens[0].Text
		} else {
			tokens = append([]Token{{Kind: Literal, Text: base}}, tokens...)
		}
	}

	p := Pattern{raw: pattern, tokens: tokens}
	for _, t := range tokens {
		if t.Kind == Param {
			p.names = append(p.names, t.Text)
		}
	}

	return p
}

// Tokenize splits pattern into Tokens, left to right.
// Adjacent literal text collapses into a single Literal.
func Tokenize(pattern string) []Token {
	var (
		tokens []Token
		lit    strings.Builder
	)

	flush := func() {
		if lit.Len() > 0 {
			tokens = append(tokens, Token{Kind: Literal, Text: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(pattern); {
		switch {
		case pattern[i] == ':' && i+1 < len(pattern) && isNameByte(pattern[i+1]):
			j := i + 1
			for j < len(pattern) && isNameByte(pattern[j]) {
				j++
			}

			flush()
			tokens = append(tokens, Token{Kind: Param, Text: pattern[i+1 : j]})
			i = j

		case strings.HasPrefix(pattern[i:], ".*"):
			flush()
			tokens = append(tokens, Token{Kind: Wildcard})
			i += 2

		case pattern[i] == '*':
			flush()
			tokens = append(tokens, Token{Kind: Wildcard})
			i++

		default:
			lit.WriteByte(pattern[i])
			i++
		}
	}

	flush()
	return tokens
}

// String returns the pattern as declared, without any base path.
func (p Pattern) String() string { return p.raw }

// ParamNames returns the names of the parameters in p, in declaration order.
func (p Pattern) ParamNames() []string {
	return append([]string(nil), p.names...)
}

// Tokens returns the compiled Tokens of p, base path included.
func (p Pattern) Tokens() []Token {
	return append([]Token(nil), p.tokens...)
}

// Match reports whether path matches p in full
// and returns the parameter values keyed by name.
//
// Parameters and wildcards match greedily and give back characters when what follows fails,
// so "/:a-:b" matched against "/x-y-z" yields a=x-y and b=z.
// A parameter value is path-unescaped when it holds a valid escape, and left raw otherwise.
// A value whose escapes decode to a path separator stays raw, so no value holds a "/".
func (p Pattern) Match(path string) (map[string]string, bool) {
	caps, ok := match(p.tokens, path, make([]string, 0, len(p.names)))
	if !ok {
		return nil, false
	}

	params := make(map[string]string, len(p.names))
	for i, name := range p.names {
		val := caps[i]
		if unescaped, err := url.PathUnescape(val); err == nil && !strings.Contains(unescaped, "/") {
			val = unescaped
		}

		params[name] = val
	}

	return params, true
}

func match(tokens []Token, path string, caps []string) ([]string, bool) {
	if len(tokens) == 0 {
		return caps, path == ""
	}

	tok, rest := tokens[0], tokens[1:]
	switch tok.Kind {
	case Literal:
		if !strings.HasPrefix(path, tok.Text) {
			return nil, false
		}

		return match(rest, path[len(tok.Text):], caps)

	case Param:
		end := strings.IndexByte(path, '/')
		if end < 0 {
			end = len(path)
		}

		for n := end; n > 0; n-- {
			if out, ok := match(rest, path[n:], append(caps, path[:n])); ok {
				return out, true
			}
		}

		return nil, false

	case Wildcard:
		for n := len(path); n >= 0; n-- {
			if out, ok := match(rest, path[n:], caps); ok {
				return out, true
			}
		}

		return nil, false
	}

	return nil, false
}

func isNameByte(c byte) bool {
	return c == '_' || (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
