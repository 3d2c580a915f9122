package incomes

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"pet-boarding/internal/platform/apperr"
	"pet-boarding/internal/platform/dates"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID map[int64]Income
	pets map[int64]PetIncome
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[int64]Income{}, pets: map[int64]PetIncome{}}
}

func (r *testRepo) Create(ctx context.Context, in Income) error {
	for _, cur := range r.byID {
		if cur.PetID == in.PetID {
			return ErrDuplicatePet
		}
	}
	r.byID[in.ID] = in
	return nil
}

func (r *testRepo) Update(ctx context.Context, in Income) error {
	if _, ok := r.byID[in.ID]; !ok {
		return ErrNotFound
	}
	r.byID[in.ID] = in
	return nil
}

func (r *testRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *testRepo) DeleteByPetID(ctx context.Context, petID int64) error {
	for id, in := range r.byID {
		if in.PetID == petID {
			delete(r.byID, id)
		}
	}
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id int64) (Income, error) {
	in, ok := r.byID[id]
	if !ok {
		return Income{}, ErrNotFound
	}
	return in, nil
}

func (r *testRepo) GetByPetID(ctx context.Context, petID int64) (Income, error) {
	for _, in := range r.byID {
		if in.PetID == petID {
			return in, nil
		}
	}
	return Income{}, ErrNotFound
}

func (r *testRepo) ListByPetIDs(ctx context.Context, petIDs []int64) (map[int64]Income, error) {
	out := map[int64]Income{}
	for _, id := range petIDs {
		if in, err := r.GetByPetID(ctx, id); err == nil {
			out[id] = in
		}
	}
	return out, nil
}

func (r *testRepo) List(ctx context.Context, f ListFilter) ([]Income, int, error) {
	all, _ := r.ListAll(ctx)
	out := all[:0]
	for _, in := range all {
		if f.PetID == nil || in.PetID == *f.PetID {
			out = append(out, in)
		}
	}
	return out, len(out), nil
}

func (r *testRepo) ListAll(ctx context.Context) ([]Income, error) {
	out := make([]Income, 0, len(r.byID))
	for _, in := range r.byID {
		out = append(out, in)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *testRepo) ListPetIncome(ctx context.Context, f PetIncomeFilter) ([]PetIncome, error) {
	out := make([]PetIncome, 0)
	for id := range r.pets {
		pi, _ := r.GetPetIncome(ctx, id)
		if f.Match(pi) {
			out = append(out, pi)
		}
	}
	sort.Slice(out, func(i, j int) bool { return LessPetIncome(out[i], out[j]) })
	return out, nil
}

func (r *testRepo) GetPetIncome(ctx context.Context, petID int64) (PetIncome, error) {
	base, ok := r.pets[petID]
	if !ok {
		return PetIncome{}, ErrPetNotFound
	}
	if in, err := r.GetByPetID(ctx, petID); err == nil {
		return JoinPetIncome(base, &in), nil
	}
	return base, nil
}

type seqIDs struct{ next int64 }

func (s *seqIDs) NextID() int64 {
	s.next++
	return s.next
}

func newTestService(repo Repository) *Service {
	svc := NewService(repo, &seqIDs{next: 100})
	svc.now = func() time.Time { return time.Date(2025, 9, 10, 9, 0, 0, 0, time.UTC) }
	return svc
}

func TestService_Create_DerivesTotal(t *testing.T) {
	svc := newTestService(newTestRepo())

	inc, err := svc.Create(context.Background(), CreateInput{
		PetID:      1,
		DailyFee:   decp("120"),
		OtherFee:   decp("20"),
		DaysStayed: intp(2),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	assertAmount(t, "total", inc.TotalAmount, "260")
	assertAmount(t, "settled", inc.SettledAmount, "0")
	if inc.ID != 101 {
		t.Fatalf("expected generated id 101, got %d", inc.ID)
	}
}

func TestService_Create_Validation(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateInput{}); !apperr.IsBadRequest(err) {
		t.Fatalf("expected bad request without petId, got %v", err)
	}
	if _, err := svc.Create(ctx, CreateInput{PetID: 1, DailyFee: decp("-1")}); !errors.Is(err, ErrNegativeAmount) {
		t.Fatalf("expected ErrNegativeAmount, got %v", err)
	}
	if _, err := svc.Create(ctx, CreateInput{PetID: 1, TotalAmount: decp("100"), SettledAmount: decp("150")}); !errors.Is(err, ErrSettleExceedsTotal) {
		t.Fatalf("expected ErrSettleExceedsTotal, got %v", err)
	}

	if _, err := svc.Create(ctx, CreateInput{PetID: 1, TotalAmount: decp("100")}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create(ctx, CreateInput{PetID: 1, TotalAmount: decp("100")}); !errors.Is(err, ErrDuplicatePet) {
		t.Fatalf("expected ErrDuplicatePet, got %v", err)
	}
}

func TestService_Settle(t *testing.T) {
	svc := newTestService(newTestRepo())
	ctx := context.Background()

	inc, err := svc.Create(ctx, CreateInput{PetID: 1, DailyFee: decp("120"), OtherFee: decp("20"), DaysStayed: intp(2)})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err = svc.Settle(ctx, inc.ID, dec("300"))
	if !errors.Is(err, ErrSettleExceedsTotal) {
		t.Fatalf("expected ErrSettleExceedsTotal, got %v", err)
	}
	if !strings.Contains(err.Error(), "cap") {
		t.Fatalf("message should mention the cap: %q", err.Error())
	}

	if _, err := svc.Settle(ctx, inc.ID, dec("-5")); !apperr.IsBadRequest(err) {
		t.Fatalf("expected bad request for negative amount, got %v", err)
	}
	if _, err := svc.Settle(ctx, 999, dec("1")); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	settled, err := svc.Settle(ctx, inc.ID, dec("260"))
	if err != nil {
		t.Fatalf("Settle: %v", err)
	}
	assertAmount(t, "settled", settled.SettledAmount, "260")
	assertAmount(t, "unsettled", settled.UnsettledAmount(), "0")
}

func TestService_Update_IsPatchWithoutDerivation(t *testing.T) {
	svc := newTestService(newTestRepo())
	ctx := context.Background()

	inc, err := svc.Create(ctx, CreateInput{PetID: 1, DailyFee: decp("120"), OtherFee: decp("20"), DaysStayed: intp(2)})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := svc.Update(ctx, UpdateInput{ID: inc.ID, DailyFee: decp("200"), Remark: strp("corrected")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	assertAmount(t, "daily", got.DailyFee, "200")
	assertAmount(t, "total", got.TotalAmount, "260")
	if got.Remark != "corrected" {
		t.Fatalf("remark = %q", got.Remark)
	}

	if _, err := svc.Update(ctx, UpdateInput{ID: inc.ID, SettledAmount: decp("261")}); !errors.Is(err, ErrSettleExceedsTotal) {
		t.Fatalf("expected ErrSettleExceedsTotal, got %v", err)
	}
	if _, err := svc.Update(ctx, UpdateInput{ID: 12345}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestService_ListPetIncome_FiltersAndPages(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	base := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	for i, name := range []string{"Milo", "Luna", "Milka"} {
		id := int64(i + 1)
		repo.pets[id] = PetIncome{
			PetID:        id,
			PetName:      name,
			PetStatus:    "booked",
			StartDate:    dates.MustParse("2025-09-10"),
			EndDate:      dates.MustParse("2025-09-12"),
			PetCreatedAt: base.Add(time.Duration(i) * time.Hour),
		}
	}
	// Milo cobrado por completo, Luna sin ingreso.
	if _, err := svc.Create(ctx, CreateInput{PetID: 1, TotalAmount: decp("100"), SettledAmount: decp("100")}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create(ctx, CreateInput{PetID: 3, TotalAmount: decp("100")}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	settled := true
	p, err := svc.ListPetIncome(ctx, PetIncomeFilter{IsSettled: &settled})
	if err != nil {
		t.Fatalf("ListPetIncome: %v", err)
	}
	if p.Total != 1 || p.Records[0].PetName != "Milo" {
		t.Fatalf("unexpected settled page %+v", p)
	}

	p, err = svc.ListPetIncome(ctx, PetIncomeFilter{PetName: "Mil", Size: 1})
	if err != nil {
		t.Fatalf("ListPetIncome: %v", err)
	}
	if p.Total != 2 || p.Pages != 2 || len(p.Records) != 1 {
		t.Fatalf("unexpected page %+v", p)
	}

	all, err := svc.ListPetIncome(ctx, PetIncomeFilter{})
	if err != nil {
		t.Fatalf("ListPetIncome: %v", err)
	}
	last := all.Records[len(all.Records)-1]
	if last.PetName != "Luna" || last.IncomeID != nil {
		t.Fatalf("stay without income should sort last, got %+v", last)
	}

	if _, err := svc.GetByPet(ctx, 42); !errors.Is(err, ErrPetNotFound) {
		t.Fatalf("expected ErrPetNotFound, got %v", err)
	}
}
