// Package sqlite provides a SQLite-backed implementation of the
// conversion history store. It uses the pure-Go modernc.org/sqlite
// driver, so no CGO is required.
package sqlite
