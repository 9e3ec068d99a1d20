// Package sqlite provides the durable DocumentStore backed by SQLite via
// the pure-Go modernc.org/sqlite driver. Schema changes ship as embedded
// SQL migrations applied at open time.
package sqlite
