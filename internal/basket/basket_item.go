package basket

import (
	"math"

	"github.com/wichananm65/basket-api/internal/apperror"
	"github.com/wichananm65/basket-api/internal/product"
)

var (
	ErrNotFound = apperror.ResourceNotFound("Basket item not found")

	errProductNotFound = apperror.SubresourceNotFound("Product not found")
	errUserNotFound    = apperror.SubresourceNotFound("User not found")
	errAlreadyExists   = apperror.Conflict("Basket item already exists")
)

// BasketItem links one product to one user. Product is filled in by the
// service when the item is returned to a caller.
type BasketItem struct {
	ID        int
	UserID    int
	ProductID int
	Product   *product.Product
}

// Input is the payload accepted by create and upsert. The owning user comes
// from the request path.
type Input struct {
	ProductID int `json:"productId"`
}

func (in Input) Validate() error {
	ve := &apperror.ValidationError{}
	if in.ProductID <= 0 || in.ProductID > math.MaxInt32 {
		ve.Add("productId", "must be a positive id")
	}
	return ve.OrNil()
}

type response struct {
	ID        int               `json:"id"`
	UserID    int               `json:"userId"`
	ProductID int               `json:"productId"`
	Product   *product.Response `json:"product"`
}

func toResponse(item BasketItem) response {
	res := response{
		ID:        item.ID,
		UserID:    item.UserID,
		ProductID: item.ProductID,
	}
	if item.Product != nil {
		p := product.NewResponse(*item.Product)
		res.Product = &p
	}
	return res
}

func toResponseList(items []BasketItem) []response {
	out := make([]response, 0, len(items))
	for _, item := range items {
		out = append(out, toResponse(item))
	}
	return out
}
