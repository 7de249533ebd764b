package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos.
// Toda escritura vuelve a resolver la categoría por id contra el store: del cliente solo se toma el id.
type ProductUseCase struct {
	repo repository.ProductRepository
	tx   TxRunner
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, tx TxRunner) *ProductUseCase {
	return &ProductUseCase{repo: repo, tx: tx}
}

// List devuelve todos los productos con su categoría.
func (uc *ProductUseCase) List(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toProductResponses(list), nil
}

// GetByID obtiene un producto. ErrProductNotFound si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	if !validID(id) {
		return nil, domain.ErrProductNotFound
	}
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return toProductResponse(product), nil
}

// Create crea un producto. La categoría es obligatoria (ErrCategoryRequired) y debe existir
// (ErrCategoryNotFound); se bloquea mientras dura el insert para que no pueda borrarse en medio.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.ProductRequest) (*dto.ProductResponse, error) {
	if err := validateProduct(in); err != nil {
		return nil, err
	}
	categoryID, ok := in.CategoryID()
	if !ok {
		return nil, domain.ErrCategoryRequired
	}
	if !validID(categoryID) {
		return nil, domain.ErrCategoryNotFound
	}

	var product *entity.Product
	err := uc.tx.Run(ctx, func(categories repository.CategoryRepository, products repository.ProductRepository) error {
		category, err := categories.LockByID(ctx, categoryID)
		if err != nil {
			return err
		}
		if category == nil {
			return domain.ErrCategoryNotFound
		}
		ts := now()
		product = &entity.Product{
			ID:            uuid.New().String(),
			Name:          normalizeName(in.Name),
			Description:   in.Description,
			Price:         *in.Price,
			StockQuantity: *in.StockQuantity,
			CategoryID:    category.ID,
			Category:      category,
			CreatedAt:     ts,
			UpdatedAt:     ts,
		}
		return products.Create(ctx, product)
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update sobrescribe name, description, price y stockQuantity. La categoría solo cambia si el
// request trae category.id; si lo trae y no existe, nada se modifica y se devuelve ErrCategoryNotFound.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.ProductRequest) (*dto.ProductResponse, error) {
	if err := validateProduct(in); err != nil {
		return nil, err
	}
	if !validID(id) {
		return nil, domain.ErrProductNotFound
	}

	var product *entity.Product
	err := uc.tx.Run(ctx, func(categories repository.CategoryRepository, products repository.ProductRepository) error {
		var err error
		product, err = products.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}
		if categoryID, ok := in.CategoryID(); ok {
			if !validID(categoryID) {
				return domain.ErrCategoryNotFound
			}
			category, err := categories.LockByID(ctx, categoryID)
			if err != nil {
				return err
			}
			if category == nil {
				return domain.ErrCategoryNotFound
			}
			product.CategoryID = category.ID
			product.Category = category
		}
		product.Name = normalizeName(in.Name)
		product.Description = in.Description
		product.Price = *in.Price
		product.StockQuantity = *in.StockQuantity
		product.UpdatedAt = now()
		return products.Update(ctx, product)
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete elimina un producto por ID.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.ErrProductNotFound
	}
	return uc.repo.Delete(ctx, id)
}

func toProductResponses(list []*entity.Product) []dto.ProductResponse {
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toProductResponse(p))
	}
	return out
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
		Category:      toCategoryResponse(p.Category),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
