package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
	"github.com/jhoicas/catalogo-api/pkg/logger"
	"github.com/jhoicas/catalogo-api/pkg/metrics"
)

// CategoryUseCase casos de uso CRUD para categorías. Borrar una categoría borra sus productos.
type CategoryUseCase struct {
	repo     repository.CategoryRepository
	products repository.ProductRepository
	tx       TxRunner
	log      *logger.Logger
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository, products repository.ProductRepository, tx TxRunner, log *logger.Logger) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, products: products, tx: tx, log: log.Component("categorias")}
}

// List devuelve todas las categorías, sin filtros ni paginación.
func (uc *CategoryUseCase) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCategoryResponse(c))
	}
	return out, nil
}

// GetByID obtiene una categoría. ErrCategoryNotFound si no existe.
func (uc *CategoryUseCase) GetByID(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	category, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// ListProducts devuelve los productos que referencian la categoría.
func (uc *CategoryUseCase) ListProducts(ctx context.Context, id string) ([]dto.ProductResponse, error) {
	if _, err := uc.find(ctx, id); err != nil {
		return nil, err
	}
	list, err := uc.products.ListByCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductResponses(list), nil
}

// Create crea una categoría. El id y los timestamps los asigna el caso de uso.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	if err := validateCategory(in); err != nil {
		return nil, err
	}
	ts := now()
	category := &entity.Category{
		ID:          uuid.New().String(),
		Name:        normalizeName(in.Name),
		Description: in.Description,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
	if err := uc.repo.Create(ctx, category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// Update reemplaza name y description. id y createdAt no cambian.
func (uc *CategoryUseCase) Update(ctx context.Context, id string, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	if err := validateCategory(in); err != nil {
		return nil, err
	}
	category, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	category.Name = normalizeName(in.Name)
	category.Description = in.Description
	category.UpdatedAt = now()
	if err := uc.repo.Update(ctx, category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// Delete elimina la categoría y, en la misma transacción, todos sus productos.
func (uc *CategoryUseCase) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.ErrCategoryNotFound
	}
	var removed int64
	err := uc.tx.Run(ctx, func(categories repository.CategoryRepository, products repository.ProductRepository) error {
		category, err := categories.LockByID(ctx, id)
		if err != nil {
			return err
		}
		if category == nil {
			return domain.ErrCategoryNotFound
		}
		if removed, err = products.DeleteByCategory(ctx, id); err != nil {
			return err
		}
		return categories.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	metrics.CascadeDeletedProducts.Add(float64(removed))
	uc.log.Info().Str("categoria_id", id).Int64("productos_eliminados", removed).Msg("categoría eliminada")
	return nil
}

func (uc *CategoryUseCase) find(ctx context.Context, id string) (*entity.Category, error) {
	if !validID(id) {
		return nil, domain.ErrCategoryNotFound
	}
	category, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrCategoryNotFound
	}
	return category, nil
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	if c == nil {
		return nil
	}
	return &dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
