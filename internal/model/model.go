// Package model defines the shopping item and the request-independent
// shapes the service passes to the storage layer.
package model
