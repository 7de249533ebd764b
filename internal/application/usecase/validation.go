package usecase

import (
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/domain"
)

// normalizeName recorta espacios y normaliza a NFC para que nombres visualmente iguales choquen en el índice único.
func normalizeName(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// validID: un id que no es UUID no puede existir en el store.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// now trunca a microsegundos, la precisión de timestamptz, para que lo devuelto coincida con lo persistido.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// maxNameLength coincide con VARCHAR(255) de nombre en categoria y producto.
const maxNameLength = 255

func validateName(raw string) error {
	name := normalizeName(raw)
	if name == "" {
		return &domain.ValidationError{Field: "name", Message: "es requerido"}
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return &domain.ValidationError{Field: "name", Message: "no puede superar 255 caracteres"}
	}
	return nil
}

func validateCategory(in dto.CategoryRequest) error {
	return validateName(in.Name)
}

func validateProduct(in dto.ProductRequest) error {
	if err := validateName(in.Name); err != nil {
		return err
	}
	if in.Price == nil {
		return &domain.ValidationError{Field: "price", Message: "es requerido"}
	}
	if in.Price.IsNegative() {
		return &domain.ValidationError{Field: "price", Message: "no puede ser negativo"}
	}
	if in.StockQuantity == nil {
		return &domain.ValidationError{Field: "stockQuantity", Message: "es requerido"}
	}
	if *in.StockQuantity < 0 {
		return &domain.ValidationError{Field: "stockQuantity", Message: "no puede ser negativo"}
	}
	// cantidad_stock es INTEGER.
	if *in.StockQuantity > math.MaxInt32 {
		return &domain.ValidationError{Field: "stockQuantity", Message: "excede el máximo permitido"}
	}
	return nil
}
