package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-api/internal/application/auth"
	"github.com/jhoicas/catalogo-api/internal/application/usecase"
	"github.com/jhoicas/catalogo-api/internal/infrastructure/memory"
	"github.com/jhoicas/catalogo-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/catalogo-api/internal/interfaces/http"
	"github.com/jhoicas/catalogo-api/pkg/logger"
)

// envelope forma decodificada de la respuesta uniforme.
type envelope struct {
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	Status    int             `json:"status"`
	Timestamp string          `json:"timestamp"`
	Path      string          `json:"path"`
	Code      string          `json:"code"`
}

type categoryJSON struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

type productJSON struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Description   *string       `json:"description"`
	Price         float64       `json:"price"`
	StockQuantity int           `json:"stockQuantity"`
	Category      *categoryJSON `json:"category"`
	CreatedAt     string        `json:"createdAt"`
	UpdatedAt     string        `json:"updatedAt"`
}

// testAPI app completa (router + middlewares) sobre el store en memoria.
type testAPI struct {
	t     *testing.T
	app   *fiber.App
	store *memory.Store
	admin string
	user  string
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	log := logger.Nop()
	store := memory.NewStore()

	categoryUC := usecase.NewCategoryUseCase(store.Categories(), store.Products(), store, log)
	productUC := usecase.NewProductUseCase(store.Products(), store)
	reportUC := usecase.NewReportUseCase(store, pdf.NewMarotoPDFGenerator(), "Catálogo de prueba")
	authUC := auth.NewAuthUseCase(store.Users(), auth.JWTConfig{
		Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer,
	})

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler()})
	apphttp.Router(app, apphttp.RouterDeps{
		CategoryUC: categoryUC,
		ProductUC:  productUC,
		ReportUC:   reportUC,
		AuthUC:     authUC,
		UserUC:     usecase.NewUserUseCase(store.Users()),
		JWTSecret:  testJWTSecret,
		Ping:       store.Ping,
	})

	return &testAPI{
		t:     t,
		app:   app,
		store: store,
		admin: tokenForRole(t, "SUPER_ADMIN"),
		user:  tokenForRole(t, "USER"),
	}
}

// do lanza la petición con el token dado ("" = sin Authorization) y decodifica el envelope.
func (a *testAPI) do(method, path, token string, body any) (int, envelope) {
	a.t.Helper()
	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = bytes.NewBufferString(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(a.t, err)
			reader = bytes.NewReader(raw)
		}
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(a.t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(a.t, json.NewDecoder(resp.Body).Decode(&env), "%s %s debe responder con envelope JSON", method, path)
	return resp.StatusCode, env
}

func (a *testAPI) createCategory(name string) categoryJSON {
	a.t.Helper()
	status, env := a.do(http.MethodPost, "/categorias", a.admin, map[string]any{"name": name})
	require.Equal(a.t, http.StatusCreated, status, env.Message)
	var c categoryJSON
	require.NoError(a.t, json.Unmarshal(env.Data, &c))
	return c
}

func (a *testAPI) createProduct(name, categoryID string, price float64, stock int) productJSON {
	a.t.Helper()
	status, env := a.do(http.MethodPost, "/productos", a.admin, map[string]any{
		"name": name, "price": price, "stockQuantity": stock,
		"category": map[string]any{"id": categoryID},
	})
	require.Equal(a.t, http.StatusCreated, status, env.Message)
	var p productJSON
	require.NoError(a.t, json.Unmarshal(env.Data, &p))
	return p
}

func (a *testAPI) listProducts() []productJSON {
	a.t.Helper()
	status, env := a.do(http.MethodGet, "/productos", a.user, nil)
	require.Equal(a.t, http.StatusOK, status)
	var list []productJSON
	require.NoError(a.t, json.Unmarshal(env.Data, &list))
	return list
}

func (a *testAPI) listCategories() []categoryJSON {
	a.t.Helper()
	status, env := a.do(http.MethodGet, "/categorias", a.user, nil)
	require.Equal(a.t, http.StatusOK, status)
	var list []categoryJSON
	require.NoError(a.t, json.Unmarshal(env.Data, &list))
	return list
}

func productNames(list []productJSON) []string {
	names := make([]string, 0, len(list))
	for _, p := range list {
		names = append(names, p.Name)
	}
	return names
}

// ──────────────────────────────────────────────────────────────────────────────
// Envelope, auth y rutas auxiliares
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_EnvelopeDeExito(t *testing.T) {
	api := newTestAPI(t)
	status, env := api.do(http.MethodGet, "/categorias", api.user, nil)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, http.StatusOK, env.Status)
	assert.Equal(t, "/categorias", env.Path)
	assert.NotEmpty(t, env.Message)
	assert.NotEmpty(t, env.Timestamp)
	assert.Empty(t, env.Code, "code solo aparece en errores")
	assert.JSONEq(t, `[]`, string(env.Data), "lista vacía, no null")
}

func TestRouter_EnvelopeDeError(t *testing.T) {
	api := newTestAPI(t)
	status, env := api.do(http.MethodGet, "/productos/00000000-0000-0000-0000-0000000000ff", api.user, nil)

	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, http.StatusNotFound, env.Status)
	assert.Equal(t, "NOT_FOUND", env.Code)
	assert.Equal(t, "null", string(env.Data))
	assert.Equal(t, "/productos/00000000-0000-0000-0000-0000000000ff", env.Path)
}

func TestRouter_LecturaRequiereAutenticacion(t *testing.T) {
	api := newTestAPI(t)
	for _, path := range []string{"/categorias", "/productos"} {
		status, env := api.do(http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, status, path)
		assert.Equal(t, "MISSING_TOKEN", env.Code, path)
	}
}

func TestRouter_EscrituraRequiereRolPrivilegiado(t *testing.T) {
	api := newTestAPI(t)
	cat := api.createCategory("Bebidas")

	cases := []struct {
		method, path string
		body         any
	}{
		{http.MethodPost, "/categorias", map[string]any{"name": "Otra"}},
		{http.MethodPut, "/categorias/" + cat.ID, map[string]any{"name": "Renombrada"}},
		{http.MethodDelete, "/categorias/" + cat.ID, nil},
		{http.MethodPost, "/productos", map[string]any{"name": "Cola", "price": 1, "stockQuantity": 1, "category": map[string]any{"id": cat.ID}}},
	}
	for _, tc := range cases {
		status, env := api.do(tc.method, tc.path, api.user, tc.body)
		assert.Equal(t, http.StatusForbidden, status, "%s %s", tc.method, tc.path)
		assert.Equal(t, "FORBIDDEN", env.Code)
	}

	assert.Len(t, api.listCategories(), 1, "ninguna escritura rechazada debe mutar el store")
	assert.Empty(t, api.listProducts())
}

func TestRouter_RutaInexistente(t *testing.T) {
	api := newTestAPI(t)
	status, env := api.do(http.MethodGet, "/no-existe", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", env.Code)
}

func TestRouter_Health(t *testing.T) {
	api := newTestAPI(t)
	status, env := api.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"ok"}`, string(env.Data))
}

func TestRouter_SignupYLogin(t *testing.T) {
	api := newTestAPI(t)

	status, env := api.do(http.MethodPost, "/auth/signup", "", map[string]any{
		"name": "Ana", "email": "Ana@Example.com", "password": "secreto123",
	})
	require.Equal(t, http.StatusCreated, status, env.Message)
	var user struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &user))
	assert.Equal(t, "ana@example.com", user.Email)
	assert.Equal(t, "USER", user.Role, "signup nunca crea usuarios privilegiados")

	status, env = api.do(http.MethodPost, "/auth/signup", "", map[string]any{
		"name": "Ana", "email": "ana@example.com", "password": "secreto123",
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "DUPLICATE", env.Code)

	status, env = api.do(http.MethodPost, "/auth/login", "", map[string]any{
		"email": "ana@example.com", "password": "secreto123",
	})
	require.Equal(t, http.StatusOK, status, env.Message)
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &login))
	require.NotEmpty(t, login.Token)

	status, env = api.do(http.MethodGet, "/auth/me", "Bearer "+login.Token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(env.Data), `"email":"ana@example.com"`)

	status, env = api.do(http.MethodGet, "/auth/me", api.admin, nil)
	assert.Equal(t, http.StatusNotFound, status, "token válido de un usuario que no existe en el store")
	assert.Equal(t, "NOT_FOUND", env.Code)

	status, _ = api.do(http.MethodGet, "/productos", "Bearer "+login.Token, nil)
	assert.Equal(t, http.StatusOK, status, "el token emitido por login debe servir para leer")

	status, _ = api.do(http.MethodPost, "/categorias", "Bearer "+login.Token, map[string]any{"name": "X"})
	assert.Equal(t, http.StatusForbidden, status, "USER no puede escribir")

	status, env = api.do(http.MethodPost, "/auth/login", "", map[string]any{
		"email": "ana@example.com", "password": "incorrecto",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", env.Code)
}

func TestRouter_SignupPasswordDemasiadoLargo(t *testing.T) {
	api := newTestAPI(t)
	status, env := api.do(http.MethodPost, "/auth/signup", "", map[string]any{
		"name": "Ana", "email": "ana@example.com", "password": strings.Repeat("x", 80),
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", env.Code)

	status, env = api.do(http.MethodPost, "/auth/login", "", map[string]any{
		"email": "ana@example.com", "password": strings.Repeat("x", 80),
	})
	assert.Equal(t, http.StatusUnauthorized, status, "el usuario no debe haberse creado")
	assert.Equal(t, "UNAUTHORIZED", env.Code)
}

func TestRouter_CuerpoMalformado(t *testing.T) {
	api := newTestAPI(t)
	status, env := api.do(http.MethodPost, "/categorias", api.admin, `{"name":`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_BODY", env.Code)
}
