package memory

import (
	"context"
	"sort"

	"pet-boarding/internal/domain/costs"
)

type costRepo struct {
	a access
}

func (r *costRepo) Create(ctx context.Context, c costs.Cost) error {
	return r.a.write(func(st *state) error {
		if _, exists := st.costs[c.ID]; exists {
			return costs.ErrDuplicateID
		}
		st.costs[c.ID] = c
		return nil
	})
}

func (r *costRepo) Update(ctx context.Context, c costs.Cost) error {
	return r.a.write(func(st *state) error {
		if _, exists := st.costs[c.ID]; !exists {
			return costs.ErrNotFound
		}
		st.costs[c.ID] = c
		return nil
	})
}

func (r *costRepo) Delete(ctx context.Context, id int64) error {
	return r.a.write(func(st *state) error {
		if _, exists := st.costs[id]; !exists {
			return costs.ErrNotFound
		}
		delete(st.costs, id)
		return nil
	})
}

func (r *costRepo) GetByID(ctx context.Context, id int64) (costs.Cost, error) {
	var out costs.Cost
	err := r.a.read(func(st *state) error {
		c, ok := st.costs[id]
		if !ok {
			return costs.ErrNotFound
		}
		out = c
		return nil
	})
	return out, err
}

func (r *costRepo) List(ctx context.Context, month string) ([]costs.Cost, error) {
	out := make([]costs.Cost, 0)
	_ = r.a.read(func(st *state) error {
		for _, c := range st.costs {
			if month == "" || c.CostMonth == month {
				out = append(out, c)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].CostMonth != out[j].CostMonth {
			return out[i].CostMonth > out[j].CostMonth
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}
