package memory

import (
	"context"

	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación en memoria de CategoryRepository.
type CategoryRepo struct {
	a access
}

func (r *CategoryRepo) Create(ctx context.Context, category *entity.Category) error {
	return r.a.write(func(st *state) error {
		if categoryNameTaken(st, category.Name, "") {
			return domain.ErrDuplicate
		}
		st.categories[category.ID] = *category
		st.categoryOrder = append(st.categoryOrder, category.ID)
		return nil
	})
}

func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	var out *entity.Category
	err := r.a.read(func(st *state) error {
		if c, ok := st.categories[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

// LockByID en memoria el bloqueo lo da Run; fuera de transacción equivale a GetByID.
func (r *CategoryRepo) LockByID(ctx context.Context, id string) (*entity.Category, error) {
	return r.GetByID(ctx, id)
}

func (r *CategoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	var out []*entity.Category
	err := r.a.read(func(st *state) error {
		out = make([]*entity.Category, 0, len(st.categoryOrder))
		for _, id := range st.categoryOrder {
			c := st.categories[id]
			out = append(out, &c)
		}
		return nil
	})
	return out, err
}

func (r *CategoryRepo) Update(ctx context.Context, category *entity.Category) error {
	return r.a.write(func(st *state) error {
		current, ok := st.categories[category.ID]
		if !ok {
			return domain.ErrCategoryNotFound
		}
		if categoryNameTaken(st, category.Name, category.ID) {
			return domain.ErrDuplicate
		}
		current.Name = category.Name
		current.Description = category.Description
		current.UpdatedAt = category.UpdatedAt
		st.categories[category.ID] = current
		return nil
	})
}

// Delete borra la categoría y, como el ON DELETE CASCADE de PostgreSQL, los productos que aún la referencien.
func (r *CategoryRepo) Delete(ctx context.Context, id string) error {
	return r.a.write(func(st *state) error {
		if _, ok := st.categories[id]; !ok {
			return domain.ErrCategoryNotFound
		}
		deleteProductsOf(st, id)
		delete(st.categories, id)
		st.categoryOrder = removeID(st.categoryOrder, id)
		return nil
	})
}

func categoryNameTaken(st *state, name, exceptID string) bool {
	for id, c := range st.categories {
		if id != exceptID && c.Name == name {
			return true
		}
	}
	return false
}
