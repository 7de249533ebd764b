package http_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoria_CrearAsignaIDYTimestamps(t *testing.T) {
	api := newTestAPI(t)
	c := api.createCategory("  Beverages  ")

	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "Beverages", c.Name, "el nombre se guarda recortado")
	assert.Nil(t, c.Description)
	assert.Equal(t, c.CreatedAt, c.UpdatedAt, "createdAt == updatedAt al crear")
}

func TestCategoria_NombreRequerido(t *testing.T) {
	api := newTestAPI(t)
	for _, name := range []string{"   ", strings.Repeat("a", 256)} {
		status, env := api.do(http.MethodPost, "/categorias", api.admin, map[string]any{"name": name})
		assert.Equal(t, http.StatusBadRequest, status, "len=%d", len(name))
		assert.Equal(t, "VALIDATION", env.Code)
	}
	assert.Empty(t, api.listCategories())

	// El límite cuenta caracteres, no bytes.
	c := api.createCategory(strings.Repeat("é", 255))
	assert.Equal(t, 255, utf8.RuneCountInString(c.Name))
}

func TestCategoria_NombreDuplicado_409(t *testing.T) {
	api := newTestAPI(t)
	api.createCategory("Bebidas")

	status, env := api.do(http.MethodPost, "/categorias", api.admin, map[string]any{"name": "Bebidas"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "DUPLICATE", env.Code)
	assert.Len(t, api.listCategories(), 1)
}

func TestCategoria_RenombrarADuplicado_409(t *testing.T) {
	api := newTestAPI(t)
	api.createCategory("Bebidas")
	snacks := api.createCategory("Snacks")

	status, env := api.do(http.MethodPut, "/categorias/"+snacks.ID, api.admin, map[string]any{"name": "Bebidas"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "DUPLICATE", env.Code)

	status, env = api.do(http.MethodGet, "/categorias/"+snacks.ID, api.user, nil)
	require.Equal(t, http.StatusOK, status)
	var got categoryJSON
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, snacks, got, "la fila rechazada queda intacta")
}

func TestCategoria_ObtenerPorID(t *testing.T) {
	api := newTestAPI(t)
	c := api.createCategory("Lácteos")

	status, env := api.do(http.MethodGet, "/categorias/"+c.ID, api.user, nil)
	require.Equal(t, http.StatusOK, status)
	var got categoryJSON
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, c, got)

	status, env = api.do(http.MethodGet, "/categorias/no-es-uuid", api.user, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", env.Code)
}

func TestCategoria_ActualizarSobrescribeNombreYDescripcion(t *testing.T) {
	api := newTestAPI(t)
	desc := "vieja"
	status, env := api.do(http.MethodPost, "/categorias", api.admin, map[string]any{"name": "Snacks", "description": desc})
	require.Equal(t, http.StatusCreated, status)
	var created categoryJSON
	require.NoError(t, json.Unmarshal(env.Data, &created))

	status, env = api.do(http.MethodPut, "/categorias/"+created.ID, api.admin, map[string]any{"name": "Pasabocas"})
	require.Equal(t, http.StatusOK, status, env.Message)
	var updated categoryJSON
	require.NoError(t, json.Unmarshal(env.Data, &updated))

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Pasabocas", updated.Name)
	assert.Nil(t, updated.Description, "description ausente reemplaza con null")
	assert.Equal(t, created.CreatedAt, updated.CreatedAt, "createdAt es inmutable")
}

func TestCategoria_ActualizarInexistente_404(t *testing.T) {
	api := newTestAPI(t)
	status, env := api.do(http.MethodPut, "/categorias/00000000-0000-0000-0000-000000000099", api.admin, map[string]any{"name": "X"})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", env.Code)
	assert.Empty(t, api.listCategories())
}

func TestCategoria_EliminarInexistente_404(t *testing.T) {
	api := newTestAPI(t)
	status, _ := api.do(http.MethodDelete, "/categorias/00000000-0000-0000-0000-000000000099", api.admin, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

// Borrar una categoría con N productos elimina los N, para N ≥ 0, sin tocar los de otras categorías.
func TestCategoria_EliminarBorraTodosSusProductos(t *testing.T) {
	for _, n := range []int{0, 1, 5} {
		t.Run(fmt.Sprintf("N=%d", n), func(t *testing.T) {
			api := newTestAPI(t)
			target := api.createCategory("Objetivo")
			other := api.createCategory("Otra")
			for i := 0; i < n; i++ {
				api.createProduct(fmt.Sprintf("p-%d", i), target.ID, 1, 1)
			}
			api.createProduct("sobrevive", other.ID, 2, 2)

			status, env := api.do(http.MethodDelete, "/categorias/"+target.ID, api.admin, nil)
			require.Equal(t, http.StatusOK, status)
			assert.Equal(t, "null", string(env.Data))

			assert.Equal(t, []string{"sobrevive"}, productNames(api.listProducts()))
			status, _ = api.do(http.MethodGet, "/categorias/"+target.ID, api.user, nil)
			assert.Equal(t, http.StatusNotFound, status)
		})
	}
}

func TestCategoria_ListarProductosDeLaCategoria(t *testing.T) {
	api := newTestAPI(t)
	a := api.createCategory("A")
	b := api.createCategory("B")
	api.createProduct("a1", a.ID, 1, 1)
	api.createProduct("b1", b.ID, 1, 1)
	api.createProduct("a2", a.ID, 1, 1)

	status, env := api.do(http.MethodGet, "/categorias/"+a.ID+"/productos", api.user, nil)
	require.Equal(t, http.StatusOK, status)
	var list []productJSON
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Equal(t, []string{"a1", "a2"}, productNames(list))

	status, _ = api.do(http.MethodGet, "/categorias/00000000-0000-0000-0000-000000000099/productos", api.user, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestCategoria_ListarDevuelveExactamenteLoPersistido(t *testing.T) {
	api := newTestAPI(t)
	names := []string{"Uno", "Dos", "Tres"}
	for _, n := range names {
		api.createCategory(n)
	}
	list := api.listCategories()
	got := make([]string, 0, len(list))
	for _, c := range list {
		got = append(got, c.Name)
	}
	assert.Equal(t, names, got)
}
