package user

import (
	"context"

	"github.com/wichananm65/basket-api/internal/apperror"
)

var errReferenced = apperror.Conflict("User is still referenced by basket items")

// ReferenceGuard deletes a user only while nothing points at it. The
// Postgres schema enforces this with a foreign key, the in-memory store
// needs a guard that blocks new references while del runs.
type ReferenceGuard interface {
	// DeleteUnreferenced runs del unless userID is referenced, in which case
	// it reports referenced and leaves the user alone.
	DeleteUnreferenced(ctx context.Context, userID int, del func() error) (referenced bool, err error)
}

// Service implements the user resource on top of a Repository. Inputs are
// expected to be validated by the caller.
type Service struct {
	repo Repository
	refs ReferenceGuard
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// SetReferenceGuard makes Delete refuse users that are still referenced.
func (s *Service) SetReferenceGuard(refs ReferenceGuard) {
	s.refs = refs
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int) (User, error) {
	return s.repo.GetByID(ctx, id)
}

// Insert creates a user. A non-zero id is used as the new row's id instead of
// a generated one.
func (s *Service) Insert(ctx context.Context, id int, in Input) (User, error) {
	return s.repo.Create(ctx, User{
		ID:        id,
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
	})
}

// Update overwrites every mutable field of an existing user.
func (s *Service) Update(ctx context.Context, id int, in Input) (User, error) {
	return s.repo.Update(ctx, id, User{
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
	})
}

func (s *Service) Delete(ctx context.Context, id int) error {
	if s.refs == nil {
		return s.repo.Delete(ctx, id)
	}

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	referenced, err := s.refs.DeleteUnreferenced(ctx, id, func() error {
		return s.repo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	if referenced {
		return errReferenced
	}
	return nil
}
