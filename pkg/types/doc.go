// Package types defines the Note entity, warning categories, the shorthand
// URL codec, collaborator interfaces, and standard errors for the usernotes
// client library.
package types
