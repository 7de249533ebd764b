package entity

import "time"

// Category agrupa productos. Name es único en todo el catálogo.
// Los productos de una categoría se obtienen con ProductRepository.ListByCategory;
// la categoría no guarda la colección.
type Category struct {
	ID          string
	Name        string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
