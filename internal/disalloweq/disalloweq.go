// Package disalloweq provides a method for disallowing struct comparisons
// with the `==` operator.
package disalloweq

// DisallowEqual can be embedded in a struct to make the compiler reject
// attempts to compare instances with the `==` operator.  Points and
// field elements have multiple internal representations of the same
// value, so `==` is never the comparison the caller wants.
type DisallowEqual [0]func()
