// Package memory guarda todo en mapas del proceso. Se usa cuando no hay
// DB_DSN configurado y en los tests.
package memory

import (
	"context"
	"maps"
	"sync"

	"pet-boarding/internal/domain/costs"
	"pet-boarding/internal/domain/incomes"
	"pet-boarding/internal/domain/pets"
	"pet-boarding/internal/domain/settings"
)

// state es la base completa. Los valores guardados no se modifican en
// sitio: cada escritura reemplaza la entrada del mapa.
type state struct {
	pets     map[int64]pets.Pet
	incomes  map[int64]incomes.Income
	costs    map[int64]costs.Cost
	settings map[string]settings.Setting
}

func newState() *state {
	return &state{
		pets:     make(map[int64]pets.Pet),
		incomes:  make(map[int64]incomes.Income),
		costs:    make(map[int64]costs.Cost),
		settings: make(map[string]settings.Setting),
	}
}

func (s *state) clone() *state {
	return &state{
		pets:     maps.Clone(s.pets),
		incomes:  maps.Clone(s.incomes),
		costs:    maps.Clone(s.costs),
		settings: maps.Clone(s.settings),
	}
}

// access decide cómo llega un repositorio al estado: directo al store (con
// locks) o a la copia de una transacción.
type access interface {
	read(fn func(st *state) error) error
	write(fn func(st *state) error) error
}

// Store implementa pets.Store y expone además costos y ajustes.
//
// writeMu serializa a todos los escritores, incluida una transacción
// completa; mu protege el puntero al estado frente a los lectores.
type Store struct {
	writeMu sync.Mutex
	mu      sync.RWMutex
	st      *state
}

func NewStore() *Store {
	return &Store{st: newState()}
}

type storeAccess struct{ s *Store }

func (a storeAccess) read(fn func(st *state) error) error {
	a.s.mu.RLock()
	defer a.s.mu.RUnlock()
	return fn(a.s.st)
}

func (a storeAccess) write(fn func(st *state) error) error {
	a.s.writeMu.Lock()
	defer a.s.writeMu.Unlock()
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	return fn(a.s.st)
}

// txAccess trabaja sobre la copia privada de una transacción; solo la usa
// la goroutine que la abrió.
type txAccess struct{ st *state }

func (a txAccess) read(fn func(st *state) error) error  { return fn(a.st) }
func (a txAccess) write(fn func(st *state) error) error { return fn(a.st) }

func (s *Store) Pets() pets.Repository         { return &petRepo{a: storeAccess{s}} }
func (s *Store) Incomes() incomes.Repository   { return &incomeRepo{a: storeAccess{s}} }
func (s *Store) Costs() costs.Repository       { return &costRepo{a: storeAccess{s}} }
func (s *Store) Settings() settings.Repository { return &settingRepo{a: storeAccess{s}} }

type tx struct{ a txAccess }

func (t tx) Pets() pets.Repository       { return &petRepo{a: t.a} }
func (t tx) Incomes() incomes.Repository { return &incomeRepo{a: t.a} }

// WithinTx ejecuta fn sobre una copia del estado y la publica solo si fn
// termina bien y el contexto sigue vivo. Los lectores ven el estado de
// antes o el de después, nunca uno intermedio.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx pets.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.RLock()
	work := s.st.clone()
	s.mu.RUnlock()

	if err := fn(ctx, tx{a: txAccess{st: work}}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	s.st = work
	s.mu.Unlock()
	return nil
}

var _ pets.Store = (*Store)(nil)
