// Package validation binds request data and validates it.
//
// It uses the `validator` library to enforce the rules written in struct
// tags, such as required fields, and turns validation failures into the
// field errors returned to the client in a 400 response.
package validation
