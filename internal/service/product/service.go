package product

import (
	"context"

	"github.com/willotis/tamarind-drinks-app/internal/domain"
	productrepo "github.com/willotis/tamarind-drinks-app/internal/repository/product"
)

type Service struct {
	repo productrepo.Repository
}

func New(repo productrepo.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filter productrepo.ListFilter) ([]domain.Product, error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}
