package dto

import "time"

// Envelope cuerpo uniforme de todas las respuestas HTTP, éxito o error.
// Data es null en errores y en borrados; Code solo aparece en errores.
type Envelope struct {
	Message   string    `json:"message"`
	Data      any       `json:"data"`
	Status    int       `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Path      string    `json:"path"`
	Code      string    `json:"code,omitempty"`
}

// Códigos de error expuestos en Envelope.Code.
const (
	CodeNotFound         = "NOT_FOUND"
	CodeCategoryRequired = "CATEGORY_REQUIRED"
	CodeValidation       = "VALIDATION"
	CodeDuplicate        = "DUPLICATE"
	CodeInvalidBody      = "INVALID_BODY"
	CodeMissingToken     = "MISSING_TOKEN"
	CodeInvalidToken     = "INVALID_TOKEN"
	CodeMissingRole      = "MISSING_ROLE"
	CodeForbidden        = "FORBIDDEN"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeInternal         = "INTERNAL"
)

// IDRef referencia a otra entidad por identificador. Cualquier otro campo enviado se ignora.
type IDRef struct {
	ID *string `json:"id"`
}
