package costs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pet-boarding/internal/platform/apperr"
	"pet-boarding/internal/platform/dates"
	"pet-boarding/internal/platform/money"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound       = fmt.Errorf("%w: cost not found", apperr.ErrNotFound)
	ErrDuplicateID    = fmt.Errorf("%w: a cost with this id already exists", apperr.ErrBadRequest)
	ErrNegativeAmount = fmt.Errorf("%w: amounts must not be negative", apperr.ErrBadRequest)
)

type IDGenerator interface {
	NextID() int64
}

type Service struct {
	repo Repository
	ids  IDGenerator
	loc  *time.Location
	now  func() time.Time
}

// NewService: loc es la zona del operador (mes por defecto al crear).
func NewService(repo Repository, ids IDGenerator, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		repo: repo,
		ids:  ids,
		loc:  loc,
		now:  time.Now,
	}
}

type CreateInput struct {
	ID             *int64
	CostMonth      string
	WaterFee       *decimal.Decimal
	ElectricityFee *decimal.Decimal
	RentFee        *decimal.Decimal
	OtherFee       *decimal.Decimal
	TotalCost      *decimal.Decimal
}

// Create: mes por defecto = mes actual; totalCost por defecto = suma de
// los cuatro componentes (los ausentes cuentan 0).
func (s *Service) Create(ctx context.Context, in CreateInput) (Cost, error) {
	if err := nonNegative(in.WaterFee, in.ElectricityFee, in.RentFee, in.OtherFee, in.TotalCost); err != nil {
		return Cost{}, err
	}

	now := s.now()
	c := Cost{
		CostMonth:      strings.TrimSpace(in.CostMonth),
		WaterFee:       money.Round(money.OrZero(in.WaterFee)),
		ElectricityFee: money.Round(money.OrZero(in.ElectricityFee)),
		RentFee:        money.Round(money.OrZero(in.RentFee)),
		OtherFee:       money.Round(money.OrZero(in.OtherFee)),
		CreatedAt:      now,
	}
	if c.CostMonth == "" {
		c.CostMonth = dates.MonthOf(dates.FromTime(now.In(s.loc))).String()
	}
	if in.TotalCost != nil {
		c.TotalCost = money.Round(*in.TotalCost)
	} else {
		c.TotalCost = money.Sum(c.WaterFee, c.ElectricityFee, c.RentFee, c.OtherFee)
	}
	if in.ID != nil && *in.ID != 0 {
		c.ID = *in.ID
	} else {
		c.ID = s.ids.NextID()
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return Cost{}, err
	}
	return c, nil
}

// UpdateInput es un patch sin derivación: totalCost no se recalcula.
type UpdateInput struct {
	ID             int64
	CostMonth      *string
	WaterFee       *decimal.Decimal
	ElectricityFee *decimal.Decimal
	RentFee        *decimal.Decimal
	OtherFee       *decimal.Decimal
	TotalCost      *decimal.Decimal
}

func (s *Service) Update(ctx context.Context, in UpdateInput) (Cost, error) {
	if in.ID == 0 {
		return Cost{}, fmt.Errorf("%w: id is required", apperr.ErrBadRequest)
	}
	if err := nonNegative(in.WaterFee, in.ElectricityFee, in.RentFee, in.OtherFee, in.TotalCost); err != nil {
		return Cost{}, err
	}

	c, err := s.repo.GetByID(ctx, in.ID)
	if err != nil {
		return Cost{}, err
	}
	if in.CostMonth != nil {
		c.CostMonth = strings.TrimSpace(*in.CostMonth)
	}
	set := func(dst *decimal.Decimal, v *decimal.Decimal) {
		if v != nil {
			*dst = money.Round(*v)
		}
	}
	set(&c.WaterFee, in.WaterFee)
	set(&c.ElectricityFee, in.ElectricityFee)
	set(&c.RentFee, in.RentFee)
	set(&c.OtherFee, in.OtherFee)
	set(&c.TotalCost, in.TotalCost)

	if err := s.repo.Update(ctx, c); err != nil {
		return Cost{}, err
	}
	return c, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) Get(ctx context.Context, id int64) (Cost, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, month string) ([]Cost, error) {
	return s.repo.List(ctx, strings.TrimSpace(month))
}

func nonNegative(values ...*decimal.Decimal) error {
	for _, v := range values {
		if v != nil && v.IsNegative() {
			return ErrNegativeAmount
		}
	}
	return nil
}
