package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"pet-boarding/internal/domain/pets"
	"pet-boarding/internal/platform/dates"
	"pet-boarding/internal/platform/paging"
)

type PetsRepo struct {
	db dbtx
}

func NewPetsRepo(db dbtx) *PetsRepo {
	return &PetsRepo{db: db}
}

const petColumns = `
	id, name, breed, gender, age, neutered,
	start_date, end_date, daily_fee, other_fee,
	remark, status, created_at, updated_at`

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pets (`+petColumns+`
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
	`,
		p.ID,
		p.Name,
		p.Breed,
		string(p.Gender),
		toNullInt(p.Age),
		string(p.Neutered),
		p.StartDate,
		p.EndDate,
		p.DailyFee,
		p.OtherFee,
		p.Remark,
		string(p.Status),
		p.CreatedAt,
		p.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return pets.ErrDuplicateID
	}
	return err
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE pets
		SET
			name = $2,
			breed = $3,
			gender = $4,
			age = $5,
			neutered = $6,
			start_date = $7,
			end_date = $8,
			daily_fee = $9,
			other_fee = $10,
			remark = $11,
			status = $12,
			updated_at = $13
		WHERE id = $1
	`,
		p.ID,
		p.Name,
		p.Breed,
		string(p.Gender),
		toNullInt(p.Age),
		string(p.Neutered),
		p.StartDate,
		p.EndDate,
		p.DailyFee,
		p.OtherFee,
		p.Remark,
		string(p.Status),
		p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	return affectedOne(res, pets.ErrNotFound)
}

// Delete: el ingreso cae por ON DELETE CASCADE.
func (r *PetsRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return affectedOne(res, pets.ErrNotFound)
}

func (r *PetsRepo) GetByID(ctx context.Context, id int64) (pets.Pet, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+petColumns+` FROM pets WHERE id = $1`, id)
	p, err := scanPet(row)
	if errors.Is(err, sql.ErrNoRows) {
		return pets.Pet{}, pets.ErrNotFound
	}
	return p, err
}

func (r *PetsRepo) List(ctx context.Context, f pets.ListFilter) ([]pets.Pet, int, error) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if f.Status != "" {
		where = append(where, "status = "+arg(string(f.Status)))
	}
	if len(f.Statuses) > 0 {
		where = append(where, "status = ANY("+arg(statusStrings(f.Statuses))+")")
	}
	if f.StartDate != nil {
		where = append(where, "start_date >= "+arg(*f.StartDate))
	}
	if f.EndDate != nil {
		where = append(where, "end_date <= "+arg(*f.EndDate))
	}
	cond := ""
	if len(where) > 0 {
		cond = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM pets`+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	req := paging.Request{Page: f.Page, Size: f.Size}.Normalize()
	q := `SELECT ` + petColumns + ` FROM pets` + cond +
		` ORDER BY start_date DESC, id DESC LIMIT ` + arg(req.Size) + ` OFFSET ` + arg(req.Offset())
	out, err := r.query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *PetsRepo) ListOverlapping(ctx context.Context, from, to dates.Date, statuses []pets.Status) ([]pets.Pet, error) {
	q := `SELECT ` + petColumns + ` FROM pets WHERE start_date <= $1 AND end_date >= $2`
	args := []any{to, from}
	if len(statuses) > 0 {
		q += ` AND status = ANY($3)`
		args = append(args, statusStrings(statuses))
	}
	q += ` ORDER BY start_date ASC, id ASC`
	return r.query(ctx, q, args...)
}

func (r *PetsRepo) ListAll(ctx context.Context) ([]pets.Pet, error) {
	return r.query(ctx, `SELECT `+petColumns+` FROM pets ORDER BY start_date ASC, id ASC`)
}

func (r *PetsRepo) query(ctx context.Context, q string, args ...any) ([]pets.Pet, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPet(s scanner) (pets.Pet, error) {
	var (
		p                        pets.Pet
		gender, neutered, status string
		age                      sql.NullInt64
	)
	if err := s.Scan(
		&p.ID,
		&p.Name,
		&p.Breed,
		&gender,
		&age,
		&neutered,
		&p.StartDate,
		&p.EndDate,
		&p.DailyFee,
		&p.OtherFee,
		&p.Remark,
		&status,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return pets.Pet{}, err
	}
	p.Gender = pets.Gender(gender)
	p.Neutered = pets.Neutered(neutered)
	p.Status = pets.Status(status)
	if age.Valid {
		n := int(age.Int64)
		p.Age = &n
	}
	return p, nil
}

func statusStrings(list []pets.Status) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		out = append(out, string(s))
	}
	return out
}

func toNullInt(n *int) sql.NullInt64 {
	if n == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*n), Valid: true}
}
