package postgres

import (
	"context"
	"database/sql"
	"errors"

	"pet-boarding/internal/domain/settings"
)

// SettingsRepo: "key" es palabra reservada, va siempre entre comillas.
type SettingsRepo struct {
	db dbtx
}

func NewSettingsRepo(db dbtx) *SettingsRepo {
	return &SettingsRepo{db: db}
}

func (r *SettingsRepo) List(ctx context.Context) ([]settings.Setting, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT "key", value, updated_at FROM settings ORDER BY "key" ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]settings.Setting, 0)
	for rows.Next() {
		var s settings.Setting
		if err := rows.Scan(&s.Key, &s.Value, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SettingsRepo) Get(ctx context.Context, key string) (settings.Setting, error) {
	var s settings.Setting
	err := r.db.QueryRowContext(ctx,
		`SELECT "key", value, updated_at FROM settings WHERE "key" = $1`, key,
	).Scan(&s.Key, &s.Value, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return settings.Setting{}, settings.ErrNotFound
	}
	return s, err
}

func (r *SettingsRepo) Create(ctx context.Context, s settings.Setting) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO settings ("key", value, updated_at) VALUES ($1, $2, $3)`,
		s.Key, s.Value, s.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return settings.ErrDuplicate
	}
	return err
}

func (r *SettingsRepo) Update(ctx context.Context, s settings.Setting) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE settings SET value = $2, updated_at = $3 WHERE "key" = $1`,
		s.Key, s.Value, s.UpdatedAt,
	)
	if err != nil {
		return err
	}
	return affectedOne(res, settings.ErrNotFound)
}

func (r *SettingsRepo) Delete(ctx context.Context, key string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM settings WHERE "key" = $1`, key)
	if err != nil {
		return err
	}
	return affectedOne(res, settings.ErrNotFound)
}
