// Package domain contains the core business entities for dropsearch:
// storage entries, indexed documents, search hits, access tokens and
// sync reports, plus the sentinel errors shared across layers.
// It has no dependencies on other internal packages.
package domain
