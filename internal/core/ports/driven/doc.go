// Package driven defines outbound port interfaces: contracts the core
// services require from infrastructure adapters (remote storage, OAuth
// token supply, the search index, report persistence).
package driven
