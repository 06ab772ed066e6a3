// Package sessionstore provides implementations of repository.SessionRepository.
//
// SQLite keeps the session in a small key/value table so it survives process
// restarts. Memory keeps it for the lifetime of the process only and is used
// when no database file can be opened.
package sessionstore
