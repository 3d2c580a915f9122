package pets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-boarding/internal/domain/incomes"
	"pet-boarding/internal/platform/apperr"
	"pet-boarding/internal/platform/dates"
	"pet-boarding/internal/platform/money"
	"pet-boarding/internal/platform/paging"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	ErrInvalidInput   = fmt.Errorf("%w: invalid pet", apperr.ErrBadRequest)
	ErrNotFound       = fmt.Errorf("%w: pet not found", apperr.ErrNotFound)
	ErrDuplicateID    = fmt.Errorf("%w: a pet with this id already exists", apperr.ErrBadRequest)
	ErrInvalidStatus  = fmt.Errorf("%w: status must be booked or checkedIn", apperr.ErrBadRequest)
	ErrUnknownStatus  = fmt.Errorf("%w: status must be booked, checkedIn or checkedOut", apperr.ErrBadRequest)
	ErrDateRange      = fmt.Errorf("%w: startDate must not be after endDate", apperr.ErrBadRequest)
	ErrDailyFeeNeeded = fmt.Errorf("%w: dailyFee is required", apperr.ErrBadRequest)
	ErrNegativeFee    = fmt.Errorf("%w: fees must not be negative", apperr.ErrBadRequest)
	ErrAlreadyOut     = fmt.Errorf("%w: pet already checked out", apperr.ErrBadRequest)
	ErrNotCheckedIn   = fmt.Errorf("%w: pet must be checked in before checking out", apperr.ErrBadRequest)
	ErrUseCheckOut    = fmt.Errorf("%w: use POST /api/pets/{id}/checkout to check a pet out", apperr.ErrBadRequest)
	ErrBackwards      = fmt.Errorf("%w: status cannot move back in the lifecycle", apperr.ErrBadRequest)
)

type IDGenerator interface {
	NextID() int64
}

type Service struct {
	store Store
	ids   IDGenerator
	log   *zap.Logger
	now   func() time.Time
}

type Option func(*Service)

// WithClock fija el reloj (tests).
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(store Store, ids IDGenerator, log *zap.Logger, opts ...Option) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Service{
		store: store,
		ids:   ids,
		log:   log,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type CreateInput struct {
	ID        *int64
	Name      string
	Breed     string
	Gender    string
	Age       *int
	Neutered  string
	StartDate dates.Date
	EndDate   dates.Date
	DailyFee  *decimal.Decimal
	OtherFee  *decimal.Decimal
	TotalFee  *decimal.Decimal
	Remark    string
	Status    string
}

// Create registra la estancia y, en la misma transacción, su ingreso si
// todavía no existe uno para ese id.
func (s *Service) Create(ctx context.Context, in CreateInput) (View, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return View{}, fmt.Errorf("%w: name is required", apperr.ErrBadRequest)
	}

	status := StatusBooked
	if st := strings.TrimSpace(in.Status); st != "" {
		status = Status(st)
	}
	if status != StatusBooked && status != StatusCheckedIn {
		return View{}, ErrInvalidStatus
	}

	gender, neutered, err := parseProfile(in.Gender, in.Neutered)
	if err != nil {
		return View{}, err
	}
	if err := checkDates(in.StartDate, in.EndDate); err != nil {
		return View{}, err
	}
	if in.DailyFee == nil {
		return View{}, ErrDailyFeeNeeded
	}
	if err := nonNegative(in.DailyFee, in.OtherFee, in.TotalFee); err != nil {
		return View{}, err
	}
	if in.Age != nil && *in.Age < 0 {
		return View{}, fmt.Errorf("%w: age must not be negative", apperr.ErrBadRequest)
	}

	now := s.now()
	p := Pet{
		Name:      name,
		Breed:     strings.TrimSpace(in.Breed),
		Gender:    gender,
		Age:       in.Age,
		Neutered:  neutered,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		DailyFee:  money.Round(*in.DailyFee),
		OtherFee:  money.Round(money.OrZero(in.OtherFee)),
		Remark:    strings.TrimSpace(in.Remark),
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.ID != nil && *in.ID != 0 {
		p.ID = *in.ID
	} else {
		p.ID = s.ids.NextID()
	}

	var inc incomes.Income
	err = s.store.WithinTx(ctx, func(ctx context.Context, tx Tx) error {
		if err := tx.Pets().Create(ctx, p); err != nil {
			return err
		}

		existing, err := tx.Incomes().GetByPetID(ctx, p.ID)
		switch {
		case err == nil:
			// Ya existe: no se toca.
			inc = existing
			return nil
		case !errors.Is(err, incomes.ErrNotFound):
			return err
		}

		nights := p.Nights()
		inc = s.newIncome(p, incomes.Change{
			DailyFee: &p.DailyFee,
			OtherFee: &p.OtherFee,
			TotalFee: in.TotalFee,
			Nights:   &nights,
			Remark:   &p.Remark,
		}, now)
		return tx.Incomes().Create(ctx, inc)
	})
	if err != nil {
		return View{}, err
	}

	s.log.Info("pet created",
		zap.Int64("pet_id", p.ID),
		zap.String("status", string(p.Status)),
		zap.String("total_amount", inc.TotalAmount.String()),
	)
	return newView(p, &inc), nil
}

// UpdateInput es un patch: nil = no informado. La presencia importa: decide
// si el ingreso se recalcula.
type UpdateInput struct {
	ID                 int64
	Name               *string
	Breed              *string
	Gender             *string
	Age                *int
	Neutered           *string
	StartDate          *dates.Date
	EndDate            *dates.Date
	DailyFee           *decimal.Decimal
	OtherFee           *decimal.Decimal
	TotalFee           *decimal.Decimal
	InputSettledAmount *decimal.Decimal
	Remark             *string
	Status             *string
}

// change traduce el patch a entradas de Reconcile. Las noches solo cuentan
// si llegaron las dos fechas.
func (in UpdateInput) change() incomes.Change {
	ch := incomes.Change{
		DailyFee:      in.DailyFee,
		OtherFee:      in.OtherFee,
		TotalFee:      in.TotalFee,
		Remark:        in.Remark,
		SettledAmount: in.InputSettledAmount,
	}
	if in.StartDate != nil && in.EndDate != nil {
		n := dates.Nights(*in.StartDate, *in.EndDate)
		ch.Nights = &n
	}
	return ch
}

// Update aplica el patch a la estancia y reconcilia su ingreso en la misma
// transacción (si falta, se crea a partir de la estancia resultante).
func (s *Service) Update(ctx context.Context, in UpdateInput) (View, error) {
	if in.ID == 0 {
		return View{}, fmt.Errorf("%w: id is required", apperr.ErrBadRequest)
	}
	if err := nonNegative(in.DailyFee, in.OtherFee, in.TotalFee, in.InputSettledAmount); err != nil {
		return View{}, err
	}
	if in.Age != nil && *in.Age < 0 {
		return View{}, fmt.Errorf("%w: age must not be negative", apperr.ErrBadRequest)
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return View{}, fmt.Errorf("%w: name must not be empty", apperr.ErrBadRequest)
	}

	now := s.now()
	var (
		p   Pet
		inc incomes.Income
	)
	err := s.store.WithinTx(ctx, func(ctx context.Context, tx Tx) error {
		cur, err := tx.Pets().GetByID(ctx, in.ID)
		if err != nil {
			return err
		}
		p, err = applyPatch(cur, in)
		if err != nil {
			return err
		}
		p.UpdatedAt = now

		if err := tx.Pets().Update(ctx, p); err != nil {
			return err
		}

		existing, err := tx.Incomes().GetByPetID(ctx, p.ID)
		switch {
		case err == nil:
			inc = incomes.Reconcile(existing, in.change(), now)
			return tx.Incomes().Update(ctx, inc)
		case !errors.Is(err, incomes.ErrNotFound):
			return err
		}

		nights := p.Nights()
		inc = s.newIncome(p, incomes.Change{
			DailyFee:      &p.DailyFee,
			OtherFee:      &p.OtherFee,
			TotalFee:      in.TotalFee,
			Nights:        &nights,
			Remark:        &p.Remark,
			SettledAmount: in.InputSettledAmount,
		}, now)
		return tx.Incomes().Create(ctx, inc)
	})
	if err != nil {
		return View{}, err
	}

	s.log.Info("pet updated",
		zap.Int64("pet_id", p.ID),
		zap.Bool("recomputed", in.change().Recomputes()),
		zap.String("total_amount", inc.TotalAmount.String()),
	)
	return newView(p, &inc), nil
}

func applyPatch(p Pet, in UpdateInput) (Pet, error) {
	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Breed != nil {
		p.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.Gender != nil || in.Neutered != nil {
		g, n := string(p.Gender), string(p.Neutered)
		if in.Gender != nil {
			g = *in.Gender
		}
		if in.Neutered != nil {
			n = *in.Neutered
		}
		gender, neutered, err := parseProfile(g, n)
		if err != nil {
			return Pet{}, err
		}
		p.Gender, p.Neutered = gender, neutered
	}
	if in.Age != nil {
		p.Age = in.Age
	}
	if in.StartDate != nil {
		p.StartDate = *in.StartDate
	}
	if in.EndDate != nil {
		p.EndDate = *in.EndDate
	}
	if err := checkDates(p.StartDate, p.EndDate); err != nil {
		return Pet{}, err
	}
	if in.DailyFee != nil {
		p.DailyFee = money.Round(*in.DailyFee)
	}
	if in.OtherFee != nil {
		p.OtherFee = money.Round(*in.OtherFee)
	}
	if in.Remark != nil {
		p.Remark = strings.TrimSpace(*in.Remark)
	}
	if in.Status != nil {
		st := Status(strings.TrimSpace(*in.Status))
		if !st.Valid() {
			return Pet{}, ErrUnknownStatus
		}
		if err := checkTransition(p.Status, st); err != nil {
			return Pet{}, err
		}
		p.Status = st
	}
	return p, nil
}

// Delete borra la estancia y su ingreso juntos.
func (s *Service) Delete(ctx context.Context, id int64) error {
	err := s.store.WithinTx(ctx, func(ctx context.Context, tx Tx) error {
		if _, err := tx.Pets().GetByID(ctx, id); err != nil {
			return err
		}
		if err := tx.Incomes().DeleteByPetID(ctx, id); err != nil {
			return err
		}
		return tx.Pets().Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.log.Info("pet deleted", zap.Int64("pet_id", id))
	return nil
}

func (s *Service) Get(ctx context.Context, id int64) (View, error) {
	p, err := s.store.Pets().GetByID(ctx, id)
	if err != nil {
		return View{}, err
	}
	inc, err := s.store.Incomes().GetByPetID(ctx, id)
	switch {
	case err == nil:
		return newView(p, &inc), nil
	case errors.Is(err, incomes.ErrNotFound):
		return newView(p, nil), nil
	default:
		return View{}, err
	}
}

// List pagina estancias y suma los agregados de la página actual.
func (s *Service) List(ctx context.Context, f ListFilter) (ListPage, error) {
	if f.Status != "" && !f.Status.Valid() {
		return ListPage{}, ErrUnknownStatus
	}
	for _, st := range f.Statuses {
		if !st.Valid() {
			return ListPage{}, ErrUnknownStatus
		}
	}
	req := paging.Request{Page: f.Page, Size: f.Size}.Normalize()
	f.Page, f.Size = req.Page, req.Size

	items, total, err := s.store.Pets().List(ctx, f)
	if err != nil {
		return ListPage{}, err
	}

	ids := make([]int64, 0, len(items))
	for _, p := range items {
		ids = append(ids, p.ID)
	}
	byPet, err := s.store.Incomes().ListByPetIDs(ctx, ids)
	if err != nil {
		return ListPage{}, err
	}

	out := ListPage{
		Records:            make([]View, 0, len(items)),
		Total:              total,
		Pages:              paging.Pages(total, req.Size),
		Current:            req.Page,
		Size:               req.Size,
		TotalAmount:        decimal.Zero,
		TotalSettledAmount: decimal.Zero,
	}
	for _, p := range items {
		var v View
		if inc, ok := byPet[p.ID]; ok {
			v = newView(p, &inc)
		} else {
			v = newView(p, nil)
		}
		out.Records = append(out.Records, v)
		out.TotalStayDays += v.StayDays
		out.TotalAmount = out.TotalAmount.Add(v.TotalAmount)
		out.TotalSettledAmount = out.TotalSettledAmount.Add(v.SettledAmount)
	}
	out.TotalUnsettledAmount = out.TotalAmount.Sub(out.TotalSettledAmount)
	return out, nil
}

// CheckIn: booked -> checkedIn. Repetir sobre checkedIn no cambia nada.
func (s *Service) CheckIn(ctx context.Context, id int64) (View, error) {
	var p Pet
	err := s.store.WithinTx(ctx, func(ctx context.Context, tx Tx) error {
		cur, err := tx.Pets().GetByID(ctx, id)
		if err != nil {
			return err
		}
		p = cur
		switch cur.Status {
		case StatusCheckedIn:
			return nil
		case StatusCheckedOut:
			return ErrAlreadyOut
		}
		p.Status = StatusCheckedIn
		p.UpdatedAt = s.now()
		return tx.Pets().Update(ctx, p)
	})
	if err != nil {
		return View{}, err
	}
	s.log.Info("pet checked in", zap.Int64("pet_id", id))
	return s.Get(ctx, id)
}

// CheckOut: checkedIn -> checkedOut y refresco del ingreso (sin precio
// cerrado) en la misma transacción. Repetir sobre checkedOut solo vuelve a
// refrescar el ingreso.
func (s *Service) CheckOut(ctx context.Context, id int64) (View, error) {
	now := s.now()
	var (
		p   Pet
		inc incomes.Income
	)
	err := s.store.WithinTx(ctx, func(ctx context.Context, tx Tx) error {
		cur, err := tx.Pets().GetByID(ctx, id)
		if err != nil {
			return err
		}
		p = cur
		switch cur.Status {
		case StatusBooked:
			return ErrNotCheckedIn
		case StatusCheckedIn:
			p.Status = StatusCheckedOut
			p.UpdatedAt = now
			if err := tx.Pets().Update(ctx, p); err != nil {
				return err
			}
		}

		inc, _, err = s.refreshIncome(ctx, tx, p, now)
		return err
	})
	if err != nil {
		return View{}, err
	}

	s.log.Info("pet checked out",
		zap.Int64("pet_id", id),
		zap.String("total_amount", inc.TotalAmount.String()),
	)
	return newView(p, &inc), nil
}

// SyncIncomes recorre todas las estancias en una transacción: crea el
// ingreso que falte y refresca los existentes con la regla de salida.
func (s *Service) SyncIncomes(ctx context.Context) (SyncResult, error) {
	now := s.now()
	var res SyncResult
	err := s.store.WithinTx(ctx, func(ctx context.Context, tx Tx) error {
		all, err := tx.Pets().ListAll(ctx)
		if err != nil {
			return err
		}
		for _, p := range all {
			_, created, err := s.refreshIncome(ctx, tx, p, now)
			if err != nil {
				return fmt.Errorf("sync pet %d: %w", p.ID, err)
			}
			if created {
				res.Created++
			} else {
				res.Refreshed++
			}
		}
		return nil
	})
	if err != nil {
		return SyncResult{}, err
	}

	s.log.Info("incomes synced", zap.Int("created", res.Created), zap.Int("refreshed", res.Refreshed))
	return res, nil
}

// refreshIncome aplica la regla de salida: tarifa diaria × noches + otros,
// sin precio cerrado. Crea el ingreso si no existe.
func (s *Service) refreshIncome(ctx context.Context, tx Tx, p Pet, now time.Time) (incomes.Income, bool, error) {
	nights := p.Nights()
	ch := incomes.Change{
		DailyFee: &p.DailyFee,
		OtherFee: &p.OtherFee,
		Nights:   &nights,
		Remark:   &p.Remark,
	}

	existing, err := tx.Incomes().GetByPetID(ctx, p.ID)
	switch {
	case err == nil:
		inc := incomes.Reconcile(existing, ch, now)
		return inc, false, tx.Incomes().Update(ctx, inc)
	case !errors.Is(err, incomes.ErrNotFound):
		return incomes.Income{}, false, err
	}

	inc := s.newIncome(p, ch, now)
	return inc, true, tx.Incomes().Create(ctx, inc)
}

// newIncome parte de un ingreso vacío (cobrado 0) y le aplica el Change.
func (s *Service) newIncome(p Pet, ch incomes.Change, now time.Time) incomes.Income {
	return incomes.Reconcile(incomes.Income{
		ID:        s.ids.NextID(),
		PetID:     p.ID,
		CreatedAt: now,
	}, ch, now)
}

func newView(p Pet, inc *incomes.Income) View {
	v := View{
		Pet:           p,
		StayDays:      p.Nights(),
		TotalAmount:   decimal.Zero,
		SettledAmount: decimal.Zero,
	}
	if inc != nil {
		v.TotalAmount = inc.TotalAmount
		v.SettledAmount = inc.SettledAmount
		v.TotalFee = inc.TotalFee
	}
	return v
}

func parseProfile(gender, neutered string) (Gender, Neutered, error) {
	g := Gender(strings.TrimSpace(gender))
	if g == "" {
		g = GenderUnknown
	}
	if !g.Valid() {
		return "", "", fmt.Errorf("%w: gender must be male, female or unknown", apperr.ErrBadRequest)
	}
	n := Neutered(strings.TrimSpace(neutered))
	if n == "" {
		n = NeuteredUnknown
	}
	if !n.Valid() {
		return "", "", fmt.Errorf("%w: neutered must be yes, no or unknown", apperr.ErrBadRequest)
	}
	return g, n, nil
}

// checkTransition: en un patch solo vale quedarse igual o booked -> checkedIn.
// La salida va por CheckOut porque refresca el ingreso.
func checkTransition(from, to Status) error {
	switch {
	case from == to:
		return nil
	case from == StatusBooked && to == StatusCheckedIn:
		return nil
	case to == StatusCheckedOut:
		return ErrUseCheckOut
	}
	return ErrBackwards
}

func checkDates(start, end dates.Date) error {
	if start.IsZero() || end.IsZero() {
		return fmt.Errorf("%w: startDate and endDate are required", apperr.ErrBadRequest)
	}
	if start.After(end) {
		return ErrDateRange
	}
	return nil
}

func nonNegative(values ...*decimal.Decimal) error {
	for _, v := range values {
		if v != nil && v.IsNegative() {
			return ErrNegativeFee
		}
	}
	return nil
}
