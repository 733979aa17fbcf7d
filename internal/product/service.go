package product

import "context"

// Service exposes read access for other resources and creation for seeding.
// Products have no REST surface of their own.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]Product, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int) (Product, error) {
	return s.repo.GetByID(ctx, id)
}

// Create stores a new product with a generated id.
func (s *Service) Create(ctx context.Context, p Product) (Product, error) {
	p.ID = 0
	return s.repo.Create(ctx, p)
}
