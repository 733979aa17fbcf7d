package basket

import (
	"context"
	"errors"

	"github.com/wichananm65/basket-api/internal/apperror"
	"github.com/wichananm65/basket-api/internal/product"
	"github.com/wichananm65/basket-api/internal/user"
)

// ProductFinder is the part of product.Repository the basket needs.
type ProductFinder interface {
	GetByID(ctx context.Context, id int) (product.Product, error)
	ListByIDs(ctx context.Context, ids []int) ([]product.Product, error)
}

// UserFinder is the part of user.Repository the basket needs.
type UserFinder interface {
	GetByID(ctx context.Context, id int) (user.User, error)
}

// Service implements the basket item resource. Every item it returns has its
// Product resolved.
type Service struct {
	repo     Repository
	products ProductFinder
	users    UserFinder
}

func NewService(repo Repository, products ProductFinder, users UserFinder) *Service {
	return &Service{repo: repo, products: products, users: users}
}

// List returns the items of userID ordered by id. A missing user is a
// user.ErrNotFound, a user without items gets an empty list.
func (s *Service) List(ctx context.Context, userID int) ([]BasketItem, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.attachProducts(ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}

// Get looks an item up by its own id. The owning user is not checked.
func (s *Service) Get(ctx context.Context, id int) (BasketItem, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return BasketItem{}, err
	}

	items := []BasketItem{item}
	if err := s.attachProducts(ctx, items); err != nil {
		return BasketItem{}, err
	}
	return items[0], nil
}

// Insert creates an item for userID. A non-zero id is used as the new row's
// id. The product is checked before the user.
func (s *Service) Insert(ctx context.Context, id int, in Input, userID int) (BasketItem, error) {
	p, err := s.findProduct(ctx, in.ProductID)
	if err != nil {
		return BasketItem{}, err
	}
	if err := s.checkUser(ctx, userID); err != nil {
		return BasketItem{}, err
	}

	item, err := s.repo.Create(ctx, BasketItem{ID: id, UserID: userID, ProductID: p.ID})
	if err != nil {
		return BasketItem{}, err
	}
	item.Product = &p
	return item, nil
}

// Update points an existing item at a new product and user.
func (s *Service) Update(ctx context.Context, id int, in Input, userID int) (BasketItem, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return BasketItem{}, err
	}
	p, err := s.findProduct(ctx, in.ProductID)
	if err != nil {
		return BasketItem{}, err
	}
	if err := s.checkUser(ctx, userID); err != nil {
		return BasketItem{}, err
	}

	item, err := s.repo.Update(ctx, id, BasketItem{UserID: userID, ProductID: p.ID})
	if err != nil {
		return BasketItem{}, err
	}
	item.Product = &p
	return item, nil
}

func (s *Service) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) findProduct(ctx context.Context, id int) (product.Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if errors.Is(err, apperror.ErrResourceNotFound) {
		return product.Product{}, errProductNotFound
	}
	return p, err
}

func (s *Service) checkUser(ctx context.Context, id int) error {
	_, err := s.users.GetByID(ctx, id)
	if errors.Is(err, apperror.ErrResourceNotFound) {
		return errUserNotFound
	}
	return err
}

// attachProducts resolves the product of every item with a single lookup.
func (s *Service) attachProducts(ctx context.Context, items []BasketItem) error {
	if len(items) == 0 {
		return nil
	}

	seen := make(map[int]bool, len(items))
	ids := make([]int, 0, len(items))
	for _, item := range items {
		if !seen[item.ProductID] {
			seen[item.ProductID] = true
			ids = append(ids, item.ProductID)
		}
	}

	products, err := s.products.ListByIDs(ctx, ids)
	if err != nil {
		return err
	}
	byID := make(map[int]product.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	for i := range items {
		if p, ok := byID[items[i].ProductID]; ok {
			items[i].Product = &p
		}
	}
	return nil
}
