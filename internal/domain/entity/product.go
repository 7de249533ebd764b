package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un artículo vendible. Siempre referencia una categoría existente.
// Category se resuelve desde el store en cada lectura (join), nunca desde el cliente.
type Product struct {
	ID            string
	Name          string
	Description   *string
	Price         decimal.Decimal
	StockQuantity int
	CategoryID    string
	Category      *Category
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
