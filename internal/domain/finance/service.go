package finance

import (
	"context"
	"fmt"

	"pet-boarding/internal/domain/costs"
	"pet-boarding/internal/domain/incomes"
	"pet-boarding/internal/domain/pets"
	"pet-boarding/internal/platform/dates"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type PetSource interface {
	ListOverlapping(ctx context.Context, from, to dates.Date, statuses []pets.Status) ([]pets.Pet, error)
	ListAll(ctx context.Context) ([]pets.Pet, error)
}

type IncomeSource interface {
	ListByPetIDs(ctx context.Context, petIDs []int64) (map[int64]incomes.Income, error)
	ListAll(ctx context.Context) ([]incomes.Income, error)
}

// CostSource: month vacío = todos los meses.
type CostSource interface {
	List(ctx context.Context, month string) ([]costs.Cost, error)
}

type CapacitySource interface {
	MaxCapacity(ctx context.Context) (int, error)
}

// Service carga las entradas de cada reporte y delega el cálculo en las
// funciones puras. Solo lee; cualquier error de carga aborta el reporte.
type Service struct {
	pets     PetSource
	incomes  IncomeSource
	costs    CostSource
	capacity CapacitySource
	log      *zap.Logger
}

func NewService(p PetSource, i IncomeSource, c CostSource, capacity CapacitySource, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{pets: p, incomes: i, costs: c, capacity: capacity, log: log}
}

var activeStatuses = []pets.Status{pets.StatusBooked, pets.StatusCheckedIn}

func (s *Service) CapacityOn(ctx context.Context, d dates.Date) (Capacity, error) {
	var (
		maxCap int
		stays  []pets.Pet
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		maxCap, err = s.capacity.MaxCapacity(gctx)
		return err
	})
	g.Go(func() (err error) {
		stays, err = s.pets.ListOverlapping(gctx, d, d, activeStatuses)
		return err
	})
	if err := g.Wait(); err != nil {
		return Capacity{}, fmt.Errorf("capacity on %s: %w", d, err)
	}
	return CapacityOn(d, maxCap, stays), nil
}

func (s *Service) CapacityByMonth(ctx context.Context, m dates.Month) (MonthCapacity, error) {
	var (
		maxCap int
		stays  []pets.Pet
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		maxCap, err = s.capacity.MaxCapacity(gctx)
		return err
	})
	g.Go(func() (err error) {
		stays, err = s.pets.ListOverlapping(gctx, m.First(), m.Last(), activeStatuses)
		return err
	})
	if err := g.Wait(); err != nil {
		return MonthCapacity{}, fmt.Errorf("capacity for %s: %w", m, err)
	}
	return CapacityByMonth(m, maxCap, stays), nil
}

// loadMonth trae en paralelo las estancias que tocan m y sus costos.
func (s *Service) loadMonth(ctx context.Context, m dates.Month) ([]pets.Pet, []costs.Cost, error) {
	var (
		stays     []pets.Pet
		costItems []costs.Cost
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stays, err = s.pets.ListOverlapping(gctx, m.First(), m.Last(), nil)
		return err
	})
	g.Go(func() (err error) {
		costItems, err = s.costs.List(gctx, m.String())
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return stays, costItems, nil
}

func (s *Service) MonthlyOrdersDetail(ctx context.Context, m dates.Month) (MonthlyDetail, error) {
	stays, costItems, err := s.loadMonth(ctx, m)
	if err != nil {
		return MonthlyDetail{}, fmt.Errorf("monthly orders detail %s: %w", m, err)
	}
	out := BuildMonthlyDetail(m, stays, costItems)
	s.log.Debug("monthly orders detail",
		zap.String("month", m.String()),
		zap.Int("orders", len(out.Orders)),
	)
	return out, nil
}

func (s *Service) MonthlyStats(ctx context.Context, m dates.Month) (MonthlyStats, error) {
	stays, costItems, err := s.loadMonth(ctx, m)
	if err != nil {
		return MonthlyStats{}, fmt.Errorf("monthly stats %s: %w", m, err)
	}
	ids := make([]int64, 0, len(stays))
	for _, p := range stays {
		ids = append(ids, p.ID)
	}
	revenue, err := s.incomes.ListByPetIDs(ctx, ids)
	if err != nil {
		return MonthlyStats{}, fmt.Errorf("monthly stats %s: %w", m, err)
	}
	return BuildMonthlyStats(m, stays, revenue, costItems), nil
}

func (s *Service) MonthlyOrders(ctx context.Context) ([]MonthlyOrders, error) {
	var (
		stays     []pets.Pet
		costItems []costs.Cost
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stays, err = s.pets.ListAll(gctx)
		return err
	})
	g.Go(func() (err error) {
		costItems, err = s.costs.List(gctx, "")
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("monthly orders: %w", err)
	}
	return BuildMonthlyOrders(stays, costItems), nil
}

func (s *Service) TotalStats(ctx context.Context) (TotalStats, error) {
	var (
		revenue   []incomes.Income
		costItems []costs.Cost
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		revenue, err = s.incomes.ListAll(gctx)
		return err
	})
	g.Go(func() (err error) {
		costItems, err = s.costs.List(gctx, "")
		return err
	})
	if err := g.Wait(); err != nil {
		return TotalStats{}, fmt.Errorf("total stats: %w", err)
	}
	return BuildTotalStats(revenue, costItems), nil
}

// MonthlyReportByCheckout: otherFee entero en el mes de salida.
// start <= último día equivale a start < inicio del mes siguiente.
func (s *Service) MonthlyReportByCheckout(ctx context.Context, m dates.Month) (CheckoutReport, error) {
	stays, costItems, err := s.loadMonth(ctx, m)
	if err != nil {
		return CheckoutReport{}, fmt.Errorf("monthly report %s: %w", m, err)
	}
	return BuildCheckoutReport(m, stays, costItems), nil
}
