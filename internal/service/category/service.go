package category

import (
	"context"

	"github.com/willotis/tamarind-drinks-app/internal/domain"
	categoryrepo "github.com/willotis/tamarind-drinks-app/internal/repository/category"
)

type Service struct {
	repo categoryrepo.Repository
}

func New(repo categoryrepo.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]domain.Category, error) {
	return s.repo.List(ctx)
}
