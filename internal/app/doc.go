// Package app wires the specification loaders, the validation engine and
// the report output together into one configured application instance.
package app
