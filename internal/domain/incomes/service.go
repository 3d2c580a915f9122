package incomes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-boarding/internal/platform/apperr"
	"pet-boarding/internal/platform/money"
	"pet-boarding/internal/platform/paging"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidInput       = fmt.Errorf("%w: invalid income", apperr.ErrBadRequest)
	ErrNotFound           = fmt.Errorf("%w: income not found", apperr.ErrNotFound)
	ErrPetNotFound        = fmt.Errorf("%w: pet not found", apperr.ErrNotFound)
	ErrUnknownPet         = fmt.Errorf("%w: petId does not reference an existing pet", apperr.ErrBadRequest)
	ErrDuplicatePet       = fmt.Errorf("%w: an income already exists for this pet", apperr.ErrBadRequest)
	ErrDuplicateID        = fmt.Errorf("%w: an income with this id already exists", apperr.ErrBadRequest)
	ErrNegativeAmount     = fmt.Errorf("%w: amounts must not be negative", apperr.ErrBadRequest)
	ErrSettleExceedsTotal = fmt.Errorf("%w: settled amount cannot exceed the total amount cap", apperr.ErrBadRequest)
)

type IDGenerator interface {
	NextID() int64
}

type Service struct {
	repo Repository
	ids  IDGenerator
	now  func() time.Time
}

func NewService(repo Repository, ids IDGenerator) *Service {
	return &Service{
		repo: repo,
		ids:  ids,
		now:  time.Now,
	}
}

type CreateInput struct {
	ID            *int64
	PetID         int64
	DailyFee      *decimal.Decimal
	OtherFee      *decimal.Decimal
	TotalFee      *decimal.Decimal
	DaysStayed    *int
	TotalAmount   *decimal.Decimal
	SettledAmount *decimal.Decimal
	Remark        string
}

// Create da de alta un ingreso a mano (correcciones del operador). Si no
// viene totalAmount se deriva con la regla habitual.
func (s *Service) Create(ctx context.Context, in CreateInput) (Income, error) {
	if in.PetID == 0 {
		return Income{}, fmt.Errorf("%w: petId is required", apperr.ErrBadRequest)
	}
	if err := nonNegative(in.DailyFee, in.OtherFee, in.TotalFee, in.TotalAmount, in.SettledAmount); err != nil {
		return Income{}, err
	}
	if in.DaysStayed != nil && *in.DaysStayed < 0 {
		return Income{}, fmt.Errorf("%w: daysStayed must not be negative", apperr.ErrBadRequest)
	}

	if _, err := s.repo.GetByPetID(ctx, in.PetID); err == nil {
		return Income{}, ErrDuplicatePet
	} else if !errors.Is(err, ErrNotFound) {
		return Income{}, err
	}

	now := s.now()
	inc := Income{
		PetID:     in.PetID,
		DailyFee:  money.Round(money.OrZero(in.DailyFee)),
		OtherFee:  money.Round(money.OrZero(in.OtherFee)),
		TotalFee:  money.RoundPtr(in.TotalFee),
		Remark:    strings.TrimSpace(in.Remark),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.ID != nil && *in.ID != 0 {
		inc.ID = *in.ID
	} else {
		inc.ID = s.ids.NextID()
	}
	if in.DaysStayed != nil {
		inc.DaysStayed = *in.DaysStayed
	}
	if in.TotalAmount != nil {
		inc.TotalAmount = money.Round(*in.TotalAmount)
	} else {
		inc.TotalAmount = Derive(inc.DailyFee, inc.OtherFee, inc.DaysStayed, inc.TotalFee)
	}
	inc.SettledAmount = money.Round(money.OrZero(in.SettledAmount))

	if inc.SettledAmount.GreaterThan(inc.TotalAmount) {
		return Income{}, ErrSettleExceedsTotal
	}

	if err := s.repo.Create(ctx, inc); err != nil {
		return Income{}, err
	}
	return inc, nil
}

// UpdateInput es un patch: nil = no tocar.
type UpdateInput struct {
	ID            int64
	DailyFee      *decimal.Decimal
	OtherFee      *decimal.Decimal
	TotalFee      *decimal.Decimal
	DaysStayed    *int
	TotalAmount   *decimal.Decimal
	SettledAmount *decimal.Decimal
	Remark        *string
}

// Update corrige campos sueltos sin derivar nada; el resultado debe seguir
// cumpliendo 0 <= settled <= total.
func (s *Service) Update(ctx context.Context, in UpdateInput) (Income, error) {
	if in.ID == 0 {
		return Income{}, fmt.Errorf("%w: id is required", apperr.ErrBadRequest)
	}
	if err := nonNegative(in.DailyFee, in.OtherFee, in.TotalFee, in.TotalAmount, in.SettledAmount); err != nil {
		return Income{}, err
	}
	if in.DaysStayed != nil && *in.DaysStayed < 0 {
		return Income{}, fmt.Errorf("%w: daysStayed must not be negative", apperr.ErrBadRequest)
	}

	cur, err := s.repo.GetByID(ctx, in.ID)
	if err != nil {
		return Income{}, err
	}

	if in.DailyFee != nil {
		cur.DailyFee = money.Round(*in.DailyFee)
	}
	if in.OtherFee != nil {
		cur.OtherFee = money.Round(*in.OtherFee)
	}
	if in.TotalFee != nil {
		cur.TotalFee = money.RoundPtr(in.TotalFee)
	}
	if in.DaysStayed != nil {
		cur.DaysStayed = *in.DaysStayed
	}
	if in.TotalAmount != nil {
		cur.TotalAmount = money.Round(*in.TotalAmount)
	}
	if in.SettledAmount != nil {
		cur.SettledAmount = money.Round(*in.SettledAmount)
	}
	if in.Remark != nil {
		cur.Remark = strings.TrimSpace(*in.Remark)
	}

	if cur.SettledAmount.GreaterThan(cur.TotalAmount) {
		return Income{}, ErrSettleExceedsTotal
	}

	cur.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, cur); err != nil {
		return Income{}, err
	}
	return cur, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) Get(ctx context.Context, id int64) (Income, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, f ListFilter) (paging.Page[Income], error) {
	req := paging.Request{Page: f.Page, Size: f.Size}.Normalize()
	f.Page, f.Size = req.Page, req.Size

	items, total, err := s.repo.List(ctx, f)
	if err != nil {
		return paging.Page[Income]{}, err
	}
	return paging.New(items, total, req), nil
}

func (s *Service) GetByPet(ctx context.Context, petID int64) (PetIncome, error) {
	return s.repo.GetPetIncome(ctx, petID)
}

// ListPetIncome filtra en el repositorio y pagina aquí.
func (s *Service) ListPetIncome(ctx context.Context, f PetIncomeFilter) (paging.Page[PetIncome], error) {
	req := paging.Request{Page: f.Page, Size: f.Size}.Normalize()

	items, err := s.repo.ListPetIncome(ctx, f)
	if err != nil {
		return paging.Page[PetIncome]{}, err
	}
	return paging.Slice(items, req), nil
}

// Settle fija el importe cobrado. No toca nada más.
func (s *Service) Settle(ctx context.Context, id int64, amount decimal.Decimal) (Income, error) {
	if amount.IsNegative() {
		return Income{}, fmt.Errorf("%w: amount must not be negative", apperr.ErrBadRequest)
	}

	cur, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Income{}, err
	}

	amount = money.Round(amount)
	if amount.GreaterThan(cur.TotalAmount) {
		return Income{}, fmt.Errorf("%w (%s)", ErrSettleExceedsTotal, cur.TotalAmount.StringFixed(money.AmountScale))
	}

	cur.SettledAmount = amount
	cur.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, cur); err != nil {
		return Income{}, err
	}
	return cur, nil
}

// ListAll sin paginar, para los reportes.
func (s *Service) ListAll(ctx context.Context) ([]Income, error) {
	return s.repo.ListAll(ctx)
}

func nonNegative(values ...*decimal.Decimal) error {
	for _, v := range values {
		if v != nil && v.IsNegative() {
			return ErrNegativeAmount
		}
	}
	return nil
}
