package product

import "github.com/wichananm65/basket-api/internal/apperror"

var ErrNotFound = apperror.ResourceNotFound("Product not found")

// Product is a sellable item. Price is in minor currency units.
type Product struct {
	ID    int
	Name  string
	Price int
	Stock int
}

// Response is the wire shape of a product.
type Response struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Price int    `json:"price"`
	Stock int    `json:"stock"`
}

func NewResponse(p Product) Response {
	return Response{
		ID:    p.ID,
		Name:  p.Name,
		Price: p.Price,
		Stock: p.Stock,
	}
}
