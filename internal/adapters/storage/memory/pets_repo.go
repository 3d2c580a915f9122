package memory

import (
	"context"
	"sort"

	"pet-boarding/internal/domain/incomes"
	"pet-boarding/internal/domain/pets"
	"pet-boarding/internal/platform/dates"
	"pet-boarding/internal/platform/paging"
)

type petRepo struct {
	a access
}

func (r *petRepo) Create(ctx context.Context, p pets.Pet) error {
	return r.a.write(func(st *state) error {
		if _, exists := st.pets[p.ID]; exists {
			return pets.ErrDuplicateID
		}
		st.pets[p.ID] = p
		return nil
	})
}

func (r *petRepo) Update(ctx context.Context, p pets.Pet) error {
	return r.a.write(func(st *state) error {
		if _, exists := st.pets[p.ID]; !exists {
			return pets.ErrNotFound
		}
		st.pets[p.ID] = p
		return nil
	})
}

// Delete borra también sus ingresos, como el ON DELETE CASCADE de postgres.
func (r *petRepo) Delete(ctx context.Context, id int64) error {
	return r.a.write(func(st *state) error {
		if _, exists := st.pets[id]; !exists {
			return pets.ErrNotFound
		}
		delete(st.pets, id)
		for iid, in := range st.incomes {
			if in.PetID == id {
				delete(st.incomes, iid)
			}
		}
		return nil
	})
}

func (r *petRepo) GetByID(ctx context.Context, id int64) (pets.Pet, error) {
	var out pets.Pet
	err := r.a.read(func(st *state) error {
		p, ok := st.pets[id]
		if !ok {
			return pets.ErrNotFound
		}
		out = p
		return nil
	})
	return out, err
}

func (r *petRepo) List(ctx context.Context, f pets.ListFilter) ([]pets.Pet, int, error) {
	var matched []pets.Pet
	_ = r.a.read(func(st *state) error {
		for _, p := range st.pets {
			if matchPet(p, f) {
				matched = append(matched, p)
			}
		}
		return nil
	})

	// startDate desc, id desc
	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.StartDate.Equal(b.StartDate) {
			return a.StartDate.After(b.StartDate)
		}
		return a.ID > b.ID
	})

	req := paging.Request{Page: f.Page, Size: f.Size}.Normalize()
	lo, hi := req.Window(len(matched))
	return matched[lo:hi], len(matched), nil
}

func matchPet(p pets.Pet, f pets.ListFilter) bool {
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	if len(f.Statuses) > 0 && !containsStatus(f.Statuses, p.Status) {
		return false
	}
	if f.StartDate != nil && p.StartDate.Before(*f.StartDate) {
		return false
	}
	if f.EndDate != nil && p.EndDate.After(*f.EndDate) {
		return false
	}
	return true
}

func containsStatus(list []pets.Status, s pets.Status) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func (r *petRepo) ListOverlapping(ctx context.Context, from, to dates.Date, statuses []pets.Status) ([]pets.Pet, error) {
	out := make([]pets.Pet, 0)
	_ = r.a.read(func(st *state) error {
		for _, p := range st.pets {
			if p.StartDate.After(to) || p.EndDate.Before(from) {
				continue
			}
			if len(statuses) > 0 && !containsStatus(statuses, p.Status) {
				continue
			}
			out = append(out, p)
		}
		return nil
	})
	sortByStart(out)
	return out, nil
}

func (r *petRepo) ListAll(ctx context.Context) ([]pets.Pet, error) {
	out := make([]pets.Pet, 0)
	_ = r.a.read(func(st *state) error {
		for _, p := range st.pets {
			out = append(out, p)
		}
		return nil
	})
	sortByStart(out)
	return out, nil
}

// sortByStart: startDate asc, id asc (mismo orden que postgres).
func sortByStart(list []pets.Pet) {
	sort.Slice(list, func(i, j int) bool {
		if !list[i].StartDate.Equal(list[j].StartDate) {
			return list[i].StartDate.Before(list[j].StartDate)
		}
		return list[i].ID < list[j].ID
	})
}

// petIncomeBase arma la parte de estancia de la vista unida.
func petIncomeBase(p pets.Pet) incomes.PetIncome {
	return incomes.PetIncome{
		PetID:        p.ID,
		PetName:      p.Name,
		PetBreed:     p.Breed,
		StartDate:    p.StartDate,
		EndDate:      p.EndDate,
		PetStatus:    string(p.Status),
		PetCreatedAt: p.CreatedAt,
	}
}
