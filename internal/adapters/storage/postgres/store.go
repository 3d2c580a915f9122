package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"pet-boarding/internal/domain/costs"
	"pet-boarding/internal/domain/incomes"
	"pet-boarding/internal/domain/pets"
	"pet-boarding/internal/domain/settings"

	"go.uber.org/zap"
)

// Store implementa pets.Store sobre database/sql y expone además costos y
// ajustes.
type Store struct {
	db  *sql.DB
	log *zap.Logger
}

func NewStore(db *sql.DB, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{db: db, log: log}
}

func (s *Store) Pets() pets.Repository         { return NewPetsRepo(s.db) }
func (s *Store) Incomes() incomes.Repository   { return NewIncomesRepo(s.db) }
func (s *Store) Costs() costs.Repository       { return NewCostsRepo(s.db) }
func (s *Store) Settings() settings.Repository { return NewSettingsRepo(s.db) }

type txRepos struct{ tx *sql.Tx }

func (t txRepos) Pets() pets.Repository       { return NewPetsRepo(t.tx) }
func (t txRepos) Incomes() incomes.Repository { return NewIncomesRepo(t.tx) }

// WithinTx abre una transacción, ejecuta fn y hace commit si fn no falla.
// Si fn falla o se cancela ctx, rollback: no queda nada a medias.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx pets.Tx) error) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err == nil {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
			s.log.Warn("rollback failed", zap.Error(rbErr))
		}
	}()

	if err = fn(ctx, txRepos{tx: tx}); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

var _ pets.Store = (*Store)(nil)
