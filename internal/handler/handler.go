// Package handler is the HTTP layer, the first entry point for business
// logic after the router.
//
// It binds and validates requests using the validation package, calls the
// item service and writes the JSON response. Errors are returned to the
// global error handler, which renders them.
package handler
