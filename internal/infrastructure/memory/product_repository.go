package memory

import (
	"context"

	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación en memoria de ProductRepository.
type ProductRepo struct {
	a access
}

func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	return r.a.write(func(st *state) error {
		if _, ok := st.categories[product.CategoryID]; !ok {
			return domain.ErrCategoryNotFound
		}
		if productNameTaken(st, product.Name, "") {
			return domain.ErrDuplicate
		}
		stored := *product
		stored.Category = nil
		st.products[product.ID] = stored
		st.productOrder = append(st.productOrder, product.ID)
		return nil
	})
}

func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.a.read(func(st *state) error {
		if p, ok := st.products[id]; ok {
			out = withCategory(st, p)
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	return r.list(func(entity.Product) bool { return true })
}

func (r *ProductRepo) ListByCategory(ctx context.Context, categoryID string) ([]*entity.Product, error) {
	return r.list(func(p entity.Product) bool { return p.CategoryID == categoryID })
}

func (r *ProductRepo) list(keep func(entity.Product) bool) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.a.read(func(st *state) error {
		out = make([]*entity.Product, 0)
		for _, id := range st.productOrder {
			if p := st.products[id]; keep(p) {
				out = append(out, withCategory(st, p))
			}
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	return r.a.write(func(st *state) error {
		current, ok := st.products[product.ID]
		if !ok {
			return domain.ErrProductNotFound
		}
		if _, ok := st.categories[product.CategoryID]; !ok {
			return domain.ErrCategoryNotFound
		}
		if productNameTaken(st, product.Name, product.ID) {
			return domain.ErrDuplicate
		}
		current.Name = product.Name
		current.Description = product.Description
		current.Price = product.Price
		current.StockQuantity = product.StockQuantity
		current.CategoryID = product.CategoryID
		current.UpdatedAt = product.UpdatedAt
		st.products[product.ID] = current
		return nil
	})
}

func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	return r.a.write(func(st *state) error {
		if _, ok := st.products[id]; !ok {
			return domain.ErrProductNotFound
		}
		delete(st.products, id)
		st.productOrder = removeID(st.productOrder, id)
		return nil
	})
}

func (r *ProductRepo) DeleteByCategory(ctx context.Context, categoryID string) (int64, error) {
	var n int64
	err := r.a.write(func(st *state) error {
		n = deleteProductsOf(st, categoryID)
		return nil
	})
	return n, err
}

func deleteProductsOf(st *state, categoryID string) int64 {
	var n int64
	kept := st.productOrder[:0]
	for _, id := range st.productOrder {
		if st.products[id].CategoryID == categoryID {
			delete(st.products, id)
			n++
			continue
		}
		kept = append(kept, id)
	}
	st.productOrder = kept
	return n
}

func withCategory(st *state, p entity.Product) *entity.Product {
	if c, ok := st.categories[p.CategoryID]; ok {
		p.Category = &c
	}
	return &p
}

func productNameTaken(st *state, name, exceptID string) bool {
	for id, p := range st.products {
		if id != exceptID && p.Name == name {
			return true
		}
	}
	return false
}
