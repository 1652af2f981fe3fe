package storefront

// An Enumerable is a type with a closed set of valid values.
type Enumerable interface {
	String() string
	Valid() bool
}
