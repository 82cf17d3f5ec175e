// Package errs defines custom error types and utilities.
//
// Its purpose is to give every failure a consistent JSON shape
// ({"error": "<message>"}, plus field errors for validation) and a
// status code, so the global error handler can respond uniformly no
// matter which layer produced the error.
package errs
