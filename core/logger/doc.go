// Package logger records the commands a shell session interprets as newline
// delimited JSON, one event per command cycle.
package logger
