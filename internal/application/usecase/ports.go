package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una unidad de trabajo atómica, pasando repositorios atados a ella.
// Si fn devuelve error no queda ningún cambio persistido.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		categories repository.CategoryRepository,
		products repository.ProductRepository,
	) error) error
}

// SnapshotRunner ejecuta fn en una unidad de solo lectura donde todas las lecturas
// ven el mismo estado del store.
type SnapshotRunner interface {
	RunSnapshot(ctx context.Context, fn func(
		categories repository.CategoryRepository,
		products repository.ProductRepository,
	) error) error
}

// CatalogSection una categoría con sus productos, en el orden del store.
type CatalogSection struct {
	Category *entity.Category
	Products []*entity.Product
}

// CatalogPDFGenerator genera el reporte PDF del catálogo.
type CatalogPDFGenerator interface {
	GenerateCatalogPDF(ctx context.Context, title string, generatedAt time.Time, sections []CatalogSection) ([]byte, error)
}
