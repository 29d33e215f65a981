package products

import "context"

// AllProductsLimit caps the unpaginated listing so a single request
// cannot drag the whole table over the wire.
const AllProductsLimit = 1000

type Repo interface {
	Insert(ctx context.Context, product *Product) (int64, error)
	Update(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id int64) error
	All(ctx context.Context, limit int) ([]*Product, error)
	Search(ctx context.Context, params SearchParams) (*Page, error)
}
