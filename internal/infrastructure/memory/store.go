// Package memory implementa los puertos de persistencia en memoria del proceso.
// Se usa con STORE_DRIVER=memory y en los tests; respeta las mismas reglas que PostgreSQL:
// nombres únicos, FK producto→categoría y unidades de trabajo atómicas.
package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/jhoicas/catalogo-api/internal/application/usecase"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

var (
	_ usecase.TxRunner       = (*Store)(nil)
	_ usecase.SnapshotRunner = (*Store)(nil)
)

// ErrReadOnly escritura dentro de RunSnapshot.
var ErrReadOnly = errors.New("memory: escritura en unidad de solo lectura")

// Store estado compartido por los repositorios en memoria.
type Store struct {
	mu   sync.RWMutex
	data state
}

type state struct {
	categories    map[string]entity.Category
	categoryOrder []string
	products      map[string]entity.Product
	productOrder  []string
	users         map[string]entity.User
}

// NewStore construye un store vacío.
func NewStore() *Store {
	return &Store{data: state{
		categories: make(map[string]entity.Category),
		products:   make(map[string]entity.Product),
		users:      make(map[string]entity.User),
	}}
}

func (st *state) clone() state {
	c := state{
		categories:    make(map[string]entity.Category, len(st.categories)),
		categoryOrder: append([]string(nil), st.categoryOrder...),
		products:      make(map[string]entity.Product, len(st.products)),
		productOrder:  append([]string(nil), st.productOrder...),
		users:         make(map[string]entity.User, len(st.users)),
	}
	for k, v := range st.categories {
		c.categories[k] = v
	}
	for k, v := range st.products {
		c.products[k] = v
	}
	for k, v := range st.users {
		c.users[k] = v
	}
	return c
}

// Run ejecuta fn con el store bloqueado en exclusiva. Si fn falla, el estado vuelve al snapshot previo.
func (s *Store) Run(ctx context.Context, fn func(
	categories repository.CategoryRepository,
	products repository.ProductRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}

	snapshot := s.data.clone()
	a := access{store: s, inTx: true}
	if err := fn(&CategoryRepo{a: a}, &ProductRepo{a: a}); err != nil {
		s.data = snapshot
		return err
	}
	return nil
}

// RunSnapshot ejecuta fn con el store bloqueado en lectura: todas las lecturas ven el mismo estado
// y cualquier escritura devuelve ErrReadOnly.
func (s *Store) RunSnapshot(ctx context.Context, fn func(
	categories repository.CategoryRepository,
	products repository.ProductRepository,
) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	a := access{store: s, inTx: true, readOnly: true}
	return fn(&CategoryRepo{a: a}, &ProductRepo{a: a})
}

// Ping siempre responde; existe para que /health trate igual a ambos drivers.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Categories repositorio de categorías fuera de transacción.
func (s *Store) Categories() *CategoryRepo { return &CategoryRepo{a: access{store: s}} }

// Products repositorio de productos fuera de transacción.
func (s *Store) Products() *ProductRepo { return &ProductRepo{a: access{store: s}} }

// Users repositorio de usuarios.
func (s *Store) Users() *UserRepo { return &UserRepo{a: access{store: s}} }

// access toma el lock del store salvo cuando ya lo tiene Run.
type access struct {
	store    *Store
	inTx     bool
	readOnly bool
}

func (a access) read(fn func(st *state) error) error {
	if !a.inTx {
		a.store.mu.RLock()
		defer a.store.mu.RUnlock()
	}
	return fn(&a.store.data)
}

func (a access) write(fn func(st *state) error) error {
	if a.readOnly {
		return ErrReadOnly
	}
	if !a.inTx {
		a.store.mu.Lock()
		defer a.store.mu.Unlock()
	}
	return fn(&a.store.data)
}

func removeID(order []string, id string) []string {
	for i, v := range order {
		if v == id {
			return append(order[:i], order[i+1:]...)
		}
	}
	return order
}
