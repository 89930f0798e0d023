// Package jwt carries the token claims used for request authentication.
//
// It provides a typed Claims struct on top of the registered claim set, an
// HS512 signer/verifier, and context helpers so handlers and use cases can
// read the authenticated claims without touching the raw token.
package jwt
