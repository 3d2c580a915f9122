package memory

import (
	"context"
	"sort"

	"pet-boarding/internal/domain/incomes"
	"pet-boarding/internal/platform/paging"
)

type incomeRepo struct {
	a access
}

// checkRefs valida la FK a pets y la unicidad de pet_id.
func checkRefs(st *state, in incomes.Income) error {
	if _, ok := st.pets[in.PetID]; !ok {
		return incomes.ErrUnknownPet
	}
	for _, other := range st.incomes {
		if other.PetID == in.PetID && other.ID != in.ID {
			return incomes.ErrDuplicatePet
		}
	}
	return nil
}

func (r *incomeRepo) Create(ctx context.Context, in incomes.Income) error {
	return r.a.write(func(st *state) error {
		if _, exists := st.incomes[in.ID]; exists {
			return incomes.ErrDuplicateID
		}
		if err := checkRefs(st, in); err != nil {
			return err
		}
		st.incomes[in.ID] = in
		return nil
	})
}

func (r *incomeRepo) Update(ctx context.Context, in incomes.Income) error {
	return r.a.write(func(st *state) error {
		if _, exists := st.incomes[in.ID]; !exists {
			return incomes.ErrNotFound
		}
		if err := checkRefs(st, in); err != nil {
			return err
		}
		st.incomes[in.ID] = in
		return nil
	})
}

func (r *incomeRepo) Delete(ctx context.Context, id int64) error {
	return r.a.write(func(st *state) error {
		if _, exists := st.incomes[id]; !exists {
			return incomes.ErrNotFound
		}
		delete(st.incomes, id)
		return nil
	})
}

func (r *incomeRepo) DeleteByPetID(ctx context.Context, petID int64) error {
	return r.a.write(func(st *state) error {
		for id, in := range st.incomes {
			if in.PetID == petID {
				delete(st.incomes, id)
			}
		}
		return nil
	})
}

func (r *incomeRepo) GetByID(ctx context.Context, id int64) (incomes.Income, error) {
	var out incomes.Income
	err := r.a.read(func(st *state) error {
		in, ok := st.incomes[id]
		if !ok {
			return incomes.ErrNotFound
		}
		out = in
		return nil
	})
	return out, err
}

// firstForPet: si hubiera más de uno, gana el más antiguo (created_at, id).
func firstForPet(st *state, petID int64) (incomes.Income, bool) {
	var (
		winner incomes.Income
		has    bool
	)
	for _, in := range st.incomes {
		if in.PetID != petID {
			continue
		}
		if !has || in.CreatedAt.Before(winner.CreatedAt) ||
			(in.CreatedAt.Equal(winner.CreatedAt) && in.ID < winner.ID) {
			winner, has = in, true
		}
	}
	return winner, has
}

func (r *incomeRepo) GetByPetID(ctx context.Context, petID int64) (incomes.Income, error) {
	var out incomes.Income
	err := r.a.read(func(st *state) error {
		in, ok := firstForPet(st, petID)
		if !ok {
			return incomes.ErrNotFound
		}
		out = in
		return nil
	})
	return out, err
}

func (r *incomeRepo) ListByPetIDs(ctx context.Context, petIDs []int64) (map[int64]incomes.Income, error) {
	out := make(map[int64]incomes.Income, len(petIDs))
	_ = r.a.read(func(st *state) error {
		for _, id := range petIDs {
			if in, ok := firstForPet(st, id); ok {
				out[id] = in
			}
		}
		return nil
	})
	return out, nil
}

func (r *incomeRepo) List(ctx context.Context, f incomes.ListFilter) ([]incomes.Income, int, error) {
	var matched []incomes.Income
	_ = r.a.read(func(st *state) error {
		for _, in := range st.incomes {
			if f.PetID != nil && in.PetID != *f.PetID {
				continue
			}
			matched = append(matched, in)
		}
		return nil
	})

	// created_at desc, id desc
	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})

	req := paging.Request{Page: f.Page, Size: f.Size}.Normalize()
	lo, hi := req.Window(len(matched))
	return matched[lo:hi], len(matched), nil
}

func (r *incomeRepo) ListAll(ctx context.Context) ([]incomes.Income, error) {
	out := make([]incomes.Income, 0)
	_ = r.a.read(func(st *state) error {
		for _, in := range st.incomes {
			out = append(out, in)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *incomeRepo) ListPetIncome(ctx context.Context, f incomes.PetIncomeFilter) ([]incomes.PetIncome, error) {
	out := make([]incomes.PetIncome, 0)
	_ = r.a.read(func(st *state) error {
		for _, p := range st.pets {
			row := petIncomeBase(p)
			if in, ok := firstForPet(st, p.ID); ok {
				row = incomes.JoinPetIncome(row, &in)
			}
			if f.Match(row) {
				out = append(out, row)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return incomes.LessPetIncome(out[i], out[j]) })
	return out, nil
}

func (r *incomeRepo) GetPetIncome(ctx context.Context, petID int64) (incomes.PetIncome, error) {
	var out incomes.PetIncome
	err := r.a.read(func(st *state) error {
		p, ok := st.pets[petID]
		if !ok {
			return incomes.ErrPetNotFound
		}
		out = petIncomeBase(p)
		if in, ok := firstForPet(st, petID); ok {
			out = incomes.JoinPetIncome(out, &in)
		}
		return nil
	})
	return out, err
}
