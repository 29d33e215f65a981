package fakeproductrepo

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/jrsteele09/go-catalog-server/products"
)

var _ products.Repo = (*FakeProductRepo)(nil)

type FakeProductRepo struct {
	lock     sync.RWMutex
	products map[int64]*products.Product
	nextID   int64
}

func NewFakeProductRepo() *FakeProductRepo {
	return &FakeProductRepo{
		products: make(map[int64]*products.Product),
		nextID:   1,
	}
}

func (pr *FakeProductRepo) Insert(_ context.Context, product *products.Product) (int64, error) {
	pr.lock.Lock()
	defer pr.lock.Unlock()

	id := pr.nextID
	pr.nextID++

	stored := *product
	stored.ID = id
	pr.products[id] = &stored
	return id, nil
}

func (pr *FakeProductRepo) Update(_ context.Context, product *products.Product) error {
	pr.lock.Lock()
	defer pr.lock.Unlock()

	if _, ok := pr.products[product.ID]; !ok {
		return nil // Mirrors a blind UPDATE: zero rows affected is not an error
	}
	stored := *product
	pr.products[product.ID] = &stored
	return nil
}

func (pr *FakeProductRepo) Delete(_ context.Context, id int64) error {
	pr.lock.Lock()
	defer pr.lock.Unlock()

	delete(pr.products, id)
	return nil
}

func (pr *FakeProductRepo) All(_ context.Context, limit int) ([]*products.Product, error) {
	pr.lock.RLock()
	defer pr.lock.RUnlock()

	list := pr.sortedCopy([]string{"id"})
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (pr *FakeProductRepo) Search(_ context.Context, params products.SearchParams) (*products.Page, error) {
	params = params.Normalize()

	pr.lock.RLock()
	defer pr.lock.RUnlock()

	matched := make([]*products.Product, 0, len(pr.products))
	needle := strings.ToLower(strings.TrimSpace(params.Search))
	for _, p := range pr.sortedCopy(params.OrderBy) {
		if needle == "" ||
			strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle) {
			matched = append(matched, p)
		}
	}

	totalCount := len(matched)
	start := params.Offset()
	if start > totalCount {
		start = totalCount
	}
	end := start + params.PageSize
	if end > totalCount {
		end = totalCount
	}

	return products.NewPage(matched[start:end], params, totalCount), nil
}

func (pr *FakeProductRepo) sortedCopy(orderBy []string) []*products.Product {
	list := make([]*products.Product, 0, len(pr.products))
	for _, p := range pr.products {
		c := *p
		list = append(list, &c)
	}

	sort.Slice(list, func(i, j int) bool {
		for _, field := range orderBy {
			switch field {
			case "name":
				if list[i].Name != list[j].Name {
					return list[i].Name < list[j].Name
				}
			case "price":
				if list[i].Price != list[j].Price {
					return list[i].Price < list[j].Price
				}
			case "description":
				if list[i].Description != list[j].Description {
					return list[i].Description < list[j].Description
				}
			default:
				if list[i].ID != list[j].ID {
					return list[i].ID < list[j].ID
				}
			}
		}
		return list[i].ID < list[j].ID
	})
	return list
}
