package handler

import (
	"github.com/HarshiV3008/Assignment-2-Backend/internal/server"
	"github.com/HarshiV3008/Assignment-2-Backend/internal/service"
)

// Handlers groups all HTTP handlers so the router receives one value.
type Handlers struct {
	Shopping *ShoppingHandler
	Health   *HealthHandler
	OpenAPI  *OpenAPIHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Shopping: NewShoppingHandler(s, services.Items),
		Health:   NewHealthHandler(s, services.Items),
		OpenAPI:  NewOpenAPIHandler(s),
	}
}
