package costs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

type testRepo struct {
	byID map[int64]Cost
}

func newTestRepo() *testRepo { return &testRepo{byID: map[int64]Cost{}} }

func (r *testRepo) Create(ctx context.Context, c Cost) error {
	if _, ok := r.byID[c.ID]; ok {
		return ErrDuplicateID
	}
	r.byID[c.ID] = c
	return nil
}

func (r *testRepo) Update(ctx context.Context, c Cost) error {
	if _, ok := r.byID[c.ID]; !ok {
		return ErrNotFound
	}
	r.byID[c.ID] = c
	return nil
}

func (r *testRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id int64) (Cost, error) {
	c, ok := r.byID[id]
	if !ok {
		return Cost{}, ErrNotFound
	}
	return c, nil
}

func (r *testRepo) List(ctx context.Context, month string) ([]Cost, error) {
	out := make([]Cost, 0)
	for _, c := range r.byID {
		if month == "" || c.CostMonth == month {
			out = append(out, c)
		}
	}
	return out, nil
}

type seqIDs struct{ next int64 }

func (s *seqIDs) NextID() int64 {
	s.next++
	return s.next
}

func decp(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestService_Create_Defaults(t *testing.T) {
	svc := NewService(newTestRepo(), &seqIDs{}, time.UTC)
	// 23:30 UTC del 30/09 ya es octubre en Asia/Shanghai.
	svc.now = func() time.Time { return time.Date(2025, 9, 30, 23, 30, 0, 0, time.UTC) }

	c, err := svc.Create(context.Background(), CreateInput{
		WaterFee:       decp("150"),
		ElectricityFee: decp("200"),
		RentFee:        decp("3000"),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if c.CostMonth != "2025-09" {
		t.Fatalf("costMonth = %q", c.CostMonth)
	}
	if !c.TotalCost.Equal(decimal.RequireFromString("3350")) {
		t.Fatalf("totalCost = %s", c.TotalCost)
	}

	shanghai, err := time.LoadLocation("Asia/Shanghai")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	svc.loc = shanghai
	c, err = svc.Create(context.Background(), CreateInput{OtherFee: decp("10")})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if c.CostMonth != "2025-10" {
		t.Fatalf("costMonth in operator zone = %q", c.CostMonth)
	}
}

func TestService_Create_ExplicitTotalWins(t *testing.T) {
	svc := NewService(newTestRepo(), &seqIDs{}, time.UTC)

	c, err := svc.Create(context.Background(), CreateInput{
		CostMonth: "2025-09",
		RentFee:   decp("3000"),
		TotalCost: decp("1000"),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !c.TotalCost.Equal(decimal.RequireFromString("1000")) {
		t.Fatalf("totalCost = %s", c.TotalCost)
	}
}

func TestService_Update_NoDerivation(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, &seqIDs{}, time.UTC)
	ctx := context.Background()

	c, err := svc.Create(ctx, CreateInput{CostMonth: "2025-09", RentFee: decp("3000")})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := svc.Update(ctx, UpdateInput{ID: c.ID, WaterFee: decp("100")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !got.TotalCost.Equal(decimal.RequireFromString("3000")) {
		t.Fatalf("totalCost should stay 3000, got %s", got.TotalCost)
	}

	if _, err := svc.Update(ctx, UpdateInput{ID: 999}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.Create(ctx, CreateInput{RentFee: decp("-1")}); !errors.Is(err, ErrNegativeAmount) {
		t.Fatalf("expected ErrNegativeAmount, got %v", err)
	}
}
