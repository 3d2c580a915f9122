package costs

import "context"

type Repository interface {
	Create(ctx context.Context, c Cost) error
	Update(ctx context.Context, c Cost) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (Cost, error)
	// List filtra por mes exacto; month vacío = todos. Orden costMonth desc, id desc.
	List(ctx context.Context, month string) ([]Cost, error)
}
