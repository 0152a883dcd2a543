// Package memory implementa los repositorios sobre estado en memoria de un solo puesto.
// Toda lectura y escritura trabaja sobre copias: nadie fuera del Store retiene punteros al estado.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/pdv-api/internal/application/inventory"
	"github.com/jhoicas/pdv-api/internal/domain/entity"
	"github.com/jhoicas/pdv-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

type state struct {
	ingredients map[string]*entity.Ingredient
	products    map[string]*entity.Product
	sales       []*entity.Sale
	saleIndex   map[string]int
}

func newState() *state {
	return &state{
		ingredients: make(map[string]*entity.Ingredient),
		products:    make(map[string]*entity.Product),
		saleIndex:   make(map[string]int),
	}
}

// clone copia insumos y productos; las ventas son inmutables y se comparten.
func (s *state) clone() *state {
	c := &state{
		ingredients: make(map[string]*entity.Ingredient, len(s.ingredients)),
		products:    make(map[string]*entity.Product, len(s.products)),
		sales:       append([]*entity.Sale(nil), s.sales...),
		saleIndex:   make(map[string]int, len(s.saleIndex)),
	}
	for id, ing := range s.ingredients {
		c.ingredients[id] = ing.Clone()
	}
	for id, p := range s.products {
		c.products[id] = p.Clone()
	}
	for id, i := range s.saleIndex {
		c.saleIndex[id] = i
	}
	return c
}

// access abstrae cómo un repositorio llega al estado: con bloqueo del Store o dentro de una tx.
type access interface {
	read(fn func(st *state))
	write(fn func(st *state) error) error
}

// Store estado compartido protegido por un RWMutex.
type Store struct {
	mu sync.RWMutex
	st *state
}

// NewStore crea un Store vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

func (s *Store) read(fn func(st *state)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.st)
}

func (s *Store) write(fn func(st *state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.st)
}

// Ingredients repositorio de insumos fuera de transacción.
func (s *Store) Ingredients() *IngredientRepository { return &IngredientRepository{acc: s} }

// Products repositorio de productos fuera de transacción.
func (s *Store) Products() *ProductRepository { return &ProductRepository{acc: s} }

// Sales repositorio de ventas fuera de transacción.
func (s *Store) Sales() *SaleRepository { return &SaleRepository{acc: s} }

// TxRunner runner transaccional sobre el Store.
func (s *Store) TxRunner() *TxRunner { return &TxRunner{store: s} }

// txState acceso directo a la copia de trabajo de una transacción (el Store ya está bloqueado).
type txState struct{ st *state }

func (t txState) read(fn func(st *state))              { fn(t.st) }
func (t txState) write(fn func(st *state) error) error { return fn(t.st) }

// TxRunner ejecuta fn sobre una copia del estado y la publica solo si fn no devuelve error.
// Mantiene el Store bloqueado durante toda la transacción.
type TxRunner struct {
	store *Store
}

// Run implementa inventory.TxRunner.
func (r *TxRunner) Run(ctx context.Context, fn func(
	ingredientRepo repository.IngredientRepository,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	work := r.store.st.clone()
	acc := txState{st: work}
	if err := fn(
		&IngredientRepository{acc: acc},
		&ProductRepository{acc: acc},
		&SaleRepository{acc: acc},
	); err != nil {
		return err
	}
	r.store.st = work
	return nil
}
