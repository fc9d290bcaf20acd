// Package scripts holds the example programs built on the reqio facade.
//
// Each script is a function over a *reqio.Request so it can run against
// the process's stdio or against in-memory streams in tests. A script
// returns the first I/O error it meets; the caller decides that it is fatal.
package scripts
