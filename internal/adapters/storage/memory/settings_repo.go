package memory

import (
	"context"
	"sort"

	"pet-boarding/internal/domain/settings"
)

type settingRepo struct {
	a access
}

func (r *settingRepo) List(ctx context.Context) ([]settings.Setting, error) {
	out := make([]settings.Setting, 0)
	_ = r.a.read(func(st *state) error {
		for _, s := range st.settings {
			out = append(out, s)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (r *settingRepo) Get(ctx context.Context, key string) (settings.Setting, error) {
	var out settings.Setting
	err := r.a.read(func(st *state) error {
		s, ok := st.settings[key]
		if !ok {
			return settings.ErrNotFound
		}
		out = s
		return nil
	})
	return out, err
}

func (r *settingRepo) Create(ctx context.Context, s settings.Setting) error {
	return r.a.write(func(st *state) error {
		if _, exists := st.settings[s.Key]; exists {
			return settings.ErrDuplicate
		}
		st.settings[s.Key] = s
		return nil
	})
}

func (r *settingRepo) Update(ctx context.Context, s settings.Setting) error {
	return r.a.write(func(st *state) error {
		if _, exists := st.settings[s.Key]; !exists {
			return settings.ErrNotFound
		}
		st.settings[s.Key] = s
		return nil
	})
}

func (r *settingRepo) Delete(ctx context.Context, key string) error {
	return r.a.write(func(st *state) error {
		if _, exists := st.settings[key]; !exists {
			return settings.ErrNotFound
		}
		delete(st.settings, key)
		return nil
	})
}
