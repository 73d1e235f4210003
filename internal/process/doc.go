// Package process implements the validation pipeline: structural and
// schema checks over the table, a processor chain per column, and a
// registry of named row validators. The Engine aggregates everything
// into a report and never fails a run once the input has been read.
package process
