package settings

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"pet-boarding/internal/platform/apperr"

	"go.uber.org/zap"
)

var (
	ErrNotFound    = fmt.Errorf("%w: setting not found", apperr.ErrNotFound)
	ErrDuplicate   = fmt.Errorf("%w: setting already exists", apperr.ErrBadRequest)
	ErrKeyRequired = fmt.Errorf("%w: key is required", apperr.ErrBadRequest)
)

type Service struct {
	repo Repository
	log  *zap.Logger
	now  func() time.Time
}

func NewService(repo Repository, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		repo: repo,
		log:  log,
		now:  time.Now,
	}
}

func (s *Service) List(ctx context.Context) ([]Setting, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, key string) (Setting, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return Setting{}, ErrKeyRequired
	}
	return s.repo.Get(ctx, key)
}

func (s *Service) Create(ctx context.Context, key, value string) (Setting, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return Setting{}, ErrKeyRequired
	}
	st := Setting{Key: key, Value: value, UpdatedAt: s.now()}
	if err := s.repo.Create(ctx, st); err != nil {
		return Setting{}, err
	}
	return st, nil
}

// Update es la única mutación de un valor existente.
func (s *Service) Update(ctx context.Context, key, value string) (Setting, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return Setting{}, ErrKeyRequired
	}
	st := Setting{Key: key, Value: value, UpdatedAt: s.now()}
	if err := s.repo.Update(ctx, st); err != nil {
		return Setting{}, err
	}
	return st, nil
}

func (s *Service) Delete(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrKeyRequired
	}
	return s.repo.Delete(ctx, key)
}

// MaxCapacity resuelve max_capacity: entero positivo, 10 si falta o no se
// puede interpretar. Solo un error del store se propaga.
func (s *Service) MaxCapacity(ctx context.Context) (int, error) {
	st, err := s.repo.Get(ctx, KeyMaxCapacity)
	if errors.Is(err, ErrNotFound) {
		return DefaultMaxCapacity, nil
	}
	if err != nil {
		return 0, err
	}

	n, perr := strconv.Atoi(strings.TrimSpace(st.Value))
	if perr != nil || n <= 0 {
		s.log.Warn("invalid max_capacity, using default",
			zap.String("value", st.Value),
			zap.Int("default", DefaultMaxCapacity),
		)
		return DefaultMaxCapacity, nil
	}
	return n, nil
}
