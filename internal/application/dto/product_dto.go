package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// price viaja como número JSON, no como string.
	decimal.MarshalJSONWithoutQuotes = true
}

// ProductRequest entrada para crear o actualizar un producto.
// Price y StockQuantity son punteros para distinguir "ausente/null" de cero.
// En la creación Category es obligatoria; en la actualización su ausencia significa "sin cambios".
type ProductRequest struct {
	Name          string           `json:"name"`
	Description   *string          `json:"description"`
	Price         *decimal.Decimal `json:"price"`
	StockQuantity *int             `json:"stockQuantity"`
	Category      *IDRef           `json:"category"`
}

// CategoryID devuelve el id de la categoría referenciada. ok es false solo si la referencia
// o su id vienen ausentes o null; un id vacío cuenta como referencia y se resuelve.
func (r ProductRequest) CategoryID() (id string, ok bool) {
	if r.Category == nil || r.Category.ID == nil {
		return "", false
	}
	return *r.Category.ID, true
}

// ProductResponse salida de un producto con su categoría resuelta.
type ProductResponse struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Description   *string           `json:"description"`
	Price         decimal.Decimal   `json:"price"`
	StockQuantity int               `json:"stockQuantity"`
	Category      *CategoryResponse `json:"category"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}
