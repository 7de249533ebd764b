package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-api/internal/application/auth"
	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/application/usecase"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/pkg/metrics"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CategoryUC *usecase.CategoryUseCase
	ProductUC  *usecase.ProductUseCase
	ReportUC   *usecase.ReportUseCase
	AuthUC     *auth.AuthUseCase
	UserUC     *usecase.UserUseCase
	JWTSecret  string
	// Ping verifica el store para /health. Opcional.
	Ping func(ctx context.Context) error
}

// Router registra las rutas de la API. Lectura: cualquier usuario autenticado.
// Escritura: solo SUPER_ADMIN.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", healthHandler(deps.Ping))
	app.Get("/metrics", metrics.Handler())

	// Auth (público, salvo /me)
	authGroup := app.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC)
	authGroup.Post("/signup", authHandler.Signup)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	privileged := RequireRole(entity.RoleSuperAdmin)

	categorias := app.Group("/categorias", AuthMiddleware(deps.JWTSecret))
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categorias.Get("/", categoryHandler.List)
	categorias.Get("/:id", categoryHandler.GetByID)
	categorias.Get("/:id/productos", categoryHandler.ListProducts)
	categorias.Post("/", privileged, categoryHandler.Create)
	categorias.Put("/:id", privileged, categoryHandler.Update)
	categorias.Delete("/:id", privileged, categoryHandler.Delete)

	productos := app.Group("/productos", AuthMiddleware(deps.JWTSecret))
	productHandler := NewProductHandler(deps.ProductUC, deps.ReportUC)
	productos.Get("/", productHandler.List)
	productos.Get("/reporte", productHandler.Report)
	productos.Get("/:id", productHandler.GetByID)
	productos.Post("/", privileged, productHandler.Create)
	productos.Put("/:id", privileged, productHandler.Update)
	productos.Delete("/:id", privileged, productHandler.Delete)
}

func healthHandler(ping func(ctx context.Context) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ping != nil {
			if err := ping(c.UserContext()); err != nil {
				return respondError(c, fiber.StatusServiceUnavailable, dto.CodeInternal, "store no disponible")
			}
		}
		return respond(c, fiber.StatusOK, "ok", fiber.Map{"status": "ok"})
	}
}
