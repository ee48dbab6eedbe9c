// Package sanitizer redacts sensitive values from request data before it is
// written to logs.
//
// A key is sensitive when its lower-cased form contains one of the
// configured field names (default: password, token, secret, authorization,
// credit_card). The value under a sensitive key is replaced with [Redacted]
// whatever its type and however deep the key is nested. The input is never
// modified: every call returns a deep copy.
//
// Cyclic structures are not supported; recursion depth equals input depth.
package sanitizer
