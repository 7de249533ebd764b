package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

// ReportUseCase genera el reporte PDF del catálogo agrupado por categoría.
type ReportUseCase struct {
	tx        SnapshotRunner
	generator CatalogPDFGenerator
	title     string
}

// NewReportUseCase construye el caso de uso. title aparece en la cabecera del PDF.
func NewReportUseCase(tx SnapshotRunner, generator CatalogPDFGenerator, title string) *ReportUseCase {
	return &ReportUseCase{tx: tx, generator: generator, title: title}
}

// CatalogPDF devuelve los bytes del PDF y un nombre de archivo sugerido.
// Categorías y productos se leen en la misma instantánea, así ningún producto queda fuera de su sección.
func (uc *ReportUseCase) CatalogPDF(ctx context.Context) ([]byte, string, error) {
	var sections []CatalogSection
	err := uc.tx.RunSnapshot(ctx, func(categories repository.CategoryRepository, products repository.ProductRepository) error {
		cats, err := categories.List(ctx)
		if err != nil {
			return err
		}
		prods, err := products.List(ctx)
		if err != nil {
			return err
		}
		index := make(map[string]int, len(cats))
		sections = make([]CatalogSection, len(cats))
		for i, c := range cats {
			sections[i].Category = c
			index[c.ID] = i
		}
		for _, p := range prods {
			if i, ok := index[p.CategoryID]; ok {
				sections[i].Products = append(sections[i].Products, p)
			}
		}
		return nil
	})
	if err != nil {
		return nil, "", err
	}

	generatedAt := now()
	pdf, err := uc.generator.GenerateCatalogPDF(ctx, uc.title, generatedAt, sections)
	if err != nil {
		return nil, "", fmt.Errorf("generar reporte: %w", err)
	}
	return pdf, fmt.Sprintf("catalogo-%s.pdf", generatedAt.Format("20060102-150405")), nil
}
