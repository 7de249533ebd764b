package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/domain"
)

// respond escribe el envelope de éxito. data nil se serializa como null.
func respond(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(dto.Envelope{
		Message:   message,
		Data:      data,
		Status:    status,
		Timestamp: time.Now().UTC(),
		Path:      c.Path(),
	})
}

// respondError escribe el envelope de error con data null y un código legible por máquina.
func respondError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(dto.Envelope{
		Message:   message,
		Status:    status,
		Timestamp: time.Now().UTC(),
		Path:      c.Path(),
		Code:      code,
	})
}

// handleError traduce errores de dominio a respuestas. Los desconocidos se devuelven
// a Fiber para que ErrorHandler los registre y responda 500.
func handleError(c *fiber.Ctx, err error) error {
	var ve *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrCategoryRequired):
		return respondError(c, fiber.StatusBadRequest, dto.CodeCategoryRequired, "la categoría (con id) es obligatoria")
	case errors.As(err, &ve):
		return respondError(c, fiber.StatusBadRequest, dto.CodeValidation, ve.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		return respondError(c, fiber.StatusBadRequest, dto.CodeValidation, err.Error())
	case errors.Is(err, domain.ErrCategoryNotFound):
		return respondError(c, fiber.StatusNotFound, dto.CodeNotFound, "categoría no encontrada")
	case errors.Is(err, domain.ErrProductNotFound):
		return respondError(c, fiber.StatusNotFound, dto.CodeNotFound, "producto no encontrado")
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return respondError(c, fiber.StatusNotFound, dto.CodeNotFound, "recurso no encontrado")
	case errors.Is(err, domain.ErrDuplicate):
		return respondError(c, fiber.StatusConflict, dto.CodeDuplicate, "ya existe un registro con ese nombre")
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return respondError(c, fiber.StatusConflict, dto.CodeDuplicate, "el email ya está registrado")
	case errors.Is(err, domain.ErrUnauthorized):
		return respondError(c, fiber.StatusUnauthorized, dto.CodeUnauthorized, "credenciales inválidas")
	case errors.Is(err, domain.ErrForbidden):
		return respondError(c, fiber.StatusForbidden, dto.CodeForbidden, "acceso denegado")
	default:
		return err
	}
}

// ErrorHandler manejador global de Fiber: rutas inexistentes, panics recuperados y errores no mapeados.
// No registra nada; RequestLogger ya deja la línea de error con el detalle.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code := dto.CodeInternal
			switch fe.Code {
			case fiber.StatusNotFound:
				code = dto.CodeNotFound
			case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
				code = dto.CodeInvalidBody
			}
			return respondError(c, fe.Code, code, fe.Message)
		}
		return respondError(c, fiber.StatusInternalServerError, dto.CodeInternal, "error interno del servidor")
	}
}
