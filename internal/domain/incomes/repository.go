package incomes

import "context"

type Repository interface {
	Create(ctx context.Context, in Income) error
	Update(ctx context.Context, in Income) error
	Delete(ctx context.Context, id int64) error
	DeleteByPetID(ctx context.Context, petID int64) error

	GetByID(ctx context.Context, id int64) (Income, error)
	// GetByPetID devuelve ErrNotFound si la estancia no tiene ingreso.
	GetByPetID(ctx context.Context, petID int64) (Income, error)
	// ListByPetIDs indexa por PetID; las estancias sin ingreso no aparecen.
	ListByPetIDs(ctx context.Context, petIDs []int64) (map[int64]Income, error)

	// List pagina por created_at desc; devuelve también el total filtrado.
	List(ctx context.Context, f ListFilter) ([]Income, int, error)
	ListAll(ctx context.Context) ([]Income, error)

	// ListPetIncome aplica los filtros (sin paginar) y ordena con LessPetIncome.
	ListPetIncome(ctx context.Context, f PetIncomeFilter) ([]PetIncome, error)
	// GetPetIncome devuelve ErrPetNotFound si la estancia no existe.
	GetPetIncome(ctx context.Context, petID int64) (PetIncome, error)
}
