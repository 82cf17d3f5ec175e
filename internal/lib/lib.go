// Package lib acts as a library for modules that do not fit
// strictly into other layers.
//
// It contains clients for external services, such as the
// PostgREST client used to reach the managed table store.
package lib
