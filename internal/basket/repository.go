package basket

import (
	"context"
	"errors"
	"sync"

	"github.com/wichananm65/basket-api/internal/apperror"
)

// Repository persists basket items. Stored items never carry a resolved
// Product.
type Repository interface {
	ListByUser(ctx context.Context, userID int) ([]BasketItem, error)
	GetByID(ctx context.Context, id int) (BasketItem, error)
	// Create stores item. A zero item.ID gets the next free id.
	Create(ctx context.Context, item BasketItem) (BasketItem, error)
	// Update replaces the user and product of an existing item.
	Update(ctx context.Context, id int, item BasketItem) (BasketItem, error)
	Delete(ctx context.Context, id int) error
}

// InMemoryRepository keeps basket items in a slice. It has no foreign keys,
// so the service checks references before every write. With CheckUsers set
// the owning user is checked again under the write lock, which together with
// DeleteUnreferenced keeps items from outliving their user.
type InMemoryRepository struct {
	mu     sync.RWMutex
	items  []BasketItem
	nextID int
	users  UserFinder
}

func NewInMemoryRepository(seed []BasketItem) *InMemoryRepository {
	r := &InMemoryRepository{
		items:  make([]BasketItem, 0, len(seed)),
		nextID: 1,
	}

	maxID := 0
	for _, item := range seed {
		item.Product = nil
		r.items = append(r.items, item)
		if item.ID > maxID {
			maxID = item.ID
		}
	}

	r.nextID = maxID + 1
	return r
}

// CheckUsers makes Create and Update verify the owning user through users.
func (r *InMemoryRepository) CheckUsers(users UserFinder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = users
}

func (r *InMemoryRepository) ListByUser(_ context.Context, userID int) ([]BasketItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]BasketItem, 0)
	for _, item := range r.items {
		if item.UserID == userID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) GetByID(_ context.Context, id int) (BasketItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		if item.ID == id {
			return item, nil
		}
	}
	return BasketItem{}, ErrNotFound
}

func (r *InMemoryRepository) Create(ctx context.Context, item BasketItem) (BasketItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkUser(ctx, item.UserID); err != nil {
		return BasketItem{}, err
	}

	item.Product = nil
	if item.ID == 0 {
		item.ID = r.nextID
		r.nextID++
	} else {
		for _, existing := range r.items {
			if existing.ID == item.ID {
				return BasketItem{}, errAlreadyExists
			}
		}
		if item.ID >= r.nextID {
			r.nextID = item.ID + 1
		}
	}

	r.items = append(r.items, item)
	return item, nil
}

func (r *InMemoryRepository) Update(ctx context.Context, id int, update BasketItem) (BasketItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkUser(ctx, update.UserID); err != nil {
		return BasketItem{}, err
	}

	for i, item := range r.items {
		if item.ID == id {
			item.UserID = update.UserID
			item.ProductID = update.ProductID
			r.items[i] = item
			return item, nil
		}
	}
	return BasketItem{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, item := range r.items {
		if item.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// DeleteUnreferenced runs del while holding the write lock, so no item for
// userID can be stored in between. It does nothing when items already
// belong to userID.
func (r *InMemoryRepository) DeleteUnreferenced(_ context.Context, userID int, del func() error) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range r.items {
		if item.UserID == userID {
			return true, nil
		}
	}
	return false, del()
}

// checkUser must be called with r.mu held.
func (r *InMemoryRepository) checkUser(ctx context.Context, userID int) error {
	if r.users == nil {
		return nil
	}
	_, err := r.users.GetByID(ctx, userID)
	if errors.Is(err, apperror.ErrResourceNotFound) {
		return errUserNotFound
	}
	return err
}
