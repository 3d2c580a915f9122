package postgres

import (
	"context"
	"database/sql"
	"errors"

	"pet-boarding/internal/domain/costs"
)

type CostsRepo struct {
	db dbtx
}

func NewCostsRepo(db dbtx) *CostsRepo {
	return &CostsRepo{db: db}
}

const costColumns = `
	id, cost_month, water_fee, electricity_fee,
	rent_fee, other_fee, total_cost, created_at`

func (r *CostsRepo) Create(ctx context.Context, c costs.Cost) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO costs (`+costColumns+`
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		c.ID,
		c.CostMonth,
		c.WaterFee,
		c.ElectricityFee,
		c.RentFee,
		c.OtherFee,
		c.TotalCost,
		c.CreatedAt,
	)
	if isUniqueViolation(err) {
		return costs.ErrDuplicateID
	}
	return err
}

func (r *CostsRepo) Update(ctx context.Context, c costs.Cost) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE costs
		SET
			cost_month = $2,
			water_fee = $3,
			electricity_fee = $4,
			rent_fee = $5,
			other_fee = $6,
			total_cost = $7
		WHERE id = $1
	`,
		c.ID,
		c.CostMonth,
		c.WaterFee,
		c.ElectricityFee,
		c.RentFee,
		c.OtherFee,
		c.TotalCost,
	)
	if err != nil {
		return err
	}
	return affectedOne(res, costs.ErrNotFound)
}

func (r *CostsRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM costs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return affectedOne(res, costs.ErrNotFound)
}

func (r *CostsRepo) GetByID(ctx context.Context, id int64) (costs.Cost, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+costColumns+` FROM costs WHERE id = $1`, id)
	c, err := scanCost(row)
	if errors.Is(err, sql.ErrNoRows) {
		return costs.Cost{}, costs.ErrNotFound
	}
	return c, err
}

func (r *CostsRepo) List(ctx context.Context, month string) ([]costs.Cost, error) {
	q := `SELECT ` + costColumns + ` FROM costs`
	var args []any
	if month != "" {
		q += ` WHERE cost_month = $1`
		args = append(args, month)
	}
	q += ` ORDER BY cost_month DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]costs.Cost, 0)
	for rows.Next() {
		c, err := scanCost(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func scanCost(s scanner) (costs.Cost, error) {
	var c costs.Cost
	err := s.Scan(
		&c.ID,
		&c.CostMonth,
		&c.WaterFee,
		&c.ElectricityFee,
		&c.RentFee,
		&c.OtherFee,
		&c.TotalCost,
		&c.CreatedAt,
	)
	return c, err
}
