// Package idgen wraps the UUID generator used for scenario run identifiers so
// that tests can stub it. Callers should treat identifiers as opaque strings.
package idgen
