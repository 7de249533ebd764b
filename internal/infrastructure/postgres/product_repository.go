package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO producto (id, nombre, descripcion, precio, cantidad_stock, categoria_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.Name, product.Description, product.Price, product.StockQuantity,
		product.CategoryID, product.CreatedAt, product.UpdatedAt,
	)
	return productWriteError("insert producto", err)
}

// GetByID obtiene un producto por ID con su categoría.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, productSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producto: %w", err)
	}
	return p, nil
}

// List devuelve todos los productos en orden de creación.
func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, productSelect+` ORDER BY p.created_at, p.id`)
	if err != nil {
		return nil, fmt.Errorf("list productos: %w", err)
	}
	list, err := collectProducts(rows)
	if err != nil {
		return nil, fmt.Errorf("scan producto: %w", err)
	}
	return list, nil
}

// ListByCategory devuelve los productos de una categoría.
func (r *ProductRepo) ListByCategory(ctx context.Context, categoryID string) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, productSelect+` WHERE p.categoria_id = $1 ORDER BY p.created_at, p.id`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list productos por categoria: %w", err)
	}
	list, err := collectProducts(rows)
	if err != nil {
		return nil, fmt.Errorf("scan producto: %w", err)
	}
	return list, nil
}

// Update sobrescribe los campos editables del producto.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE producto
		SET nombre = $2, descripcion = $3, precio = $4, cantidad_stock = $5, categoria_id = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		product.ID, product.Name, product.Description, product.Price, product.StockQuantity,
		product.CategoryID, product.UpdatedAt,
	)
	if err := productWriteError("update producto", err); err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// Delete elimina un producto.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM producto WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete producto: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// DeleteByCategory elimina los productos de la categoría y devuelve cuántos borró.
func (r *ProductRepo) DeleteByCategory(ctx context.Context, categoryID string) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM producto WHERE categoria_id = $1`, categoryID)
	if err != nil {
		return 0, fmt.Errorf("delete productos por categoria: %w", err)
	}
	return tag.RowsAffected(), nil
}

func productWriteError(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case isUniqueViolation(err):
		return domain.ErrDuplicate
	case isForeignKeyViolation(err):
		return domain.ErrCategoryNotFound
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
