package pets

import (
	"context"

	"pet-boarding/internal/domain/incomes"
	"pet-boarding/internal/platform/dates"
)

type Repository interface {
	Create(ctx context.Context, p Pet) error
	Update(ctx context.Context, p Pet) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (Pet, error)

	// List filtra y pagina; orden startDate desc, id desc.
	List(ctx context.Context, f ListFilter) ([]Pet, int, error)
	// ListOverlapping: estancias con start <= to y end >= from (cerrado).
	// statuses vacío = todas.
	ListOverlapping(ctx context.Context, from, to dates.Date, statuses []Status) ([]Pet, error)
	ListAll(ctx context.Context) ([]Pet, error)
}

// Tx expone los repositorios ligados a una transacción.
type Tx interface {
	Pets() Repository
	Incomes() incomes.Repository
}

// Store: los repositorios fuera de transacción más WithinTx. Toda escritura
// de estancia y su ingreso pasa por WithinTx: o se aplican las dos o ninguna.
type Store interface {
	Tx
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}
