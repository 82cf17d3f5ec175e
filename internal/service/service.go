// Package service contains the business logic.
//
// It sits between the handler and repository layers. Handlers pass in
// validated input; the service calls the item store, times each call and
// reports it to metrics and the request logger.
package service
