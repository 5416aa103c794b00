// Package driving defines inbound port interfaces: the operations the
// core exposes to external actors such as the HTTP API and the CLI.
package driving
