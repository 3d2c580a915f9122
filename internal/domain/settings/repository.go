package settings

import "context"

type Repository interface {
	List(ctx context.Context) ([]Setting, error)
	Get(ctx context.Context, key string) (Setting, error)
	Create(ctx context.Context, s Setting) error
	Update(ctx context.Context, s Setting) error
	Delete(ctx context.Context, key string) error
}
