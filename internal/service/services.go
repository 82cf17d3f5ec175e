package service

import (
	"github.com/HarshiV3008/Assignment-2-Backend/internal/repository"
	"github.com/HarshiV3008/Assignment-2-Backend/internal/server"
)

type Services struct {
	Items *ItemService
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	return &Services{
		Items: NewItemService(s, repos.Items),
	}, nil
}
