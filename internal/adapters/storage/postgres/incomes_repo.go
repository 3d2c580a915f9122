package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"pet-boarding/internal/domain/incomes"
	"pet-boarding/internal/platform/paging"

	"github.com/shopspring/decimal"
)

type IncomesRepo struct {
	db dbtx
}

func NewIncomesRepo(db dbtx) *IncomesRepo {
	return &IncomesRepo{db: db}
}

const incomeColumns = `
	id, pet_id, daily_fee, other_fee, total_fee,
	days_stayed, total_amount, settled_amount, remark,
	created_at, updated_at`

// mapIncomeWriteErr traduce violaciones de constraint a errores de dominio.
func mapIncomeWriteErr(err error) error {
	code, constraint, ok := pgError(err)
	if !ok {
		return err
	}
	switch {
	case isForeignKeyViolation(err):
		return incomes.ErrUnknownPet
	case isUniqueViolation(err) && constraint == "incomes_pet_id_key":
		return incomes.ErrDuplicatePet
	case isUniqueViolation(err):
		return incomes.ErrDuplicateID
	}
	return fmt.Errorf("income write (%s): %w", code, err)
}

func (r *IncomesRepo) Create(ctx context.Context, in incomes.Income) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO incomes (`+incomeColumns+`
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		in.ID,
		in.PetID,
		in.DailyFee,
		in.OtherFee,
		toNullDecimal(in.TotalFee),
		in.DaysStayed,
		in.TotalAmount,
		in.SettledAmount,
		in.Remark,
		in.CreatedAt,
		in.UpdatedAt,
	)
	if err != nil {
		return mapIncomeWriteErr(err)
	}
	return nil
}

func (r *IncomesRepo) Update(ctx context.Context, in incomes.Income) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE incomes
		SET
			pet_id = $2,
			daily_fee = $3,
			other_fee = $4,
			total_fee = $5,
			days_stayed = $6,
			total_amount = $7,
			settled_amount = $8,
			remark = $9,
			updated_at = $10
		WHERE id = $1
	`,
		in.ID,
		in.PetID,
		in.DailyFee,
		in.OtherFee,
		toNullDecimal(in.TotalFee),
		in.DaysStayed,
		in.TotalAmount,
		in.SettledAmount,
		in.Remark,
		in.UpdatedAt,
	)
	if err != nil {
		return mapIncomeWriteErr(err)
	}
	return affectedOne(res, incomes.ErrNotFound)
}

func (r *IncomesRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM incomes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return affectedOne(res, incomes.ErrNotFound)
}

func (r *IncomesRepo) DeleteByPetID(ctx context.Context, petID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM incomes WHERE pet_id = $1`, petID)
	return err
}

func (r *IncomesRepo) GetByID(ctx context.Context, id int64) (incomes.Income, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+incomeColumns+` FROM incomes WHERE id = $1`, id)
	in, err := scanIncome(row)
	if errors.Is(err, sql.ErrNoRows) {
		return incomes.Income{}, incomes.ErrNotFound
	}
	return in, err
}

// GetByPetID: con la UNIQUE sobre pet_id hay como mucho uno; el ORDER BY
// fija cuál si la constraint faltara.
func (r *IncomesRepo) GetByPetID(ctx context.Context, petID int64) (incomes.Income, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+incomeColumns+` FROM incomes
		WHERE pet_id = $1
		ORDER BY created_at ASC, id ASC
		LIMIT 1
	`, petID)
	in, err := scanIncome(row)
	if errors.Is(err, sql.ErrNoRows) {
		return incomes.Income{}, incomes.ErrNotFound
	}
	return in, err
}

func (r *IncomesRepo) ListByPetIDs(ctx context.Context, petIDs []int64) (map[int64]incomes.Income, error) {
	out := make(map[int64]incomes.Income, len(petIDs))
	if len(petIDs) == 0 {
		return out, nil
	}
	list, err := r.query(ctx, `
		SELECT DISTINCT ON (pet_id) `+incomeColumns+` FROM incomes
		WHERE pet_id = ANY($1)
		ORDER BY pet_id, created_at ASC, id ASC
	`, petIDs)
	if err != nil {
		return nil, err
	}
	for _, in := range list {
		out[in.PetID] = in
	}
	return out, nil
}

func (r *IncomesRepo) List(ctx context.Context, f incomes.ListFilter) ([]incomes.Income, int, error) {
	cond := ""
	var args []any
	if f.PetID != nil {
		cond = ` WHERE pet_id = $1`
		args = append(args, *f.PetID)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM incomes`+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	req := paging.Request{Page: f.Page, Size: f.Size}.Normalize()
	args = append(args, req.Size, req.Offset())
	q := fmt.Sprintf(`SELECT %s FROM incomes%s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		incomeColumns, cond, len(args)-1, len(args))
	out, err := r.query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *IncomesRepo) ListAll(ctx context.Context) ([]incomes.Income, error) {
	return r.query(ctx, `SELECT `+incomeColumns+` FROM incomes ORDER BY id ASC`)
}

// petIncomeSelect une cada estancia con su ingreso más antiguo.
const petIncomeSelect = `
	SELECT
		p.id, p.name, p.breed, p.start_date, p.end_date, p.status, p.created_at,
		i.id, i.daily_fee, i.other_fee, i.total_amount, i.days_stayed,
		i.settled_amount, i.remark, i.created_at
	FROM pets p
	LEFT JOIN LATERAL (
		SELECT * FROM incomes
		WHERE incomes.pet_id = p.id
		ORDER BY incomes.created_at ASC, incomes.id ASC
		LIMIT 1
	) i ON true`

func (r *IncomesRepo) ListPetIncome(ctx context.Context, f incomes.PetIncomeFilter) ([]incomes.PetIncome, error) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if name := strings.TrimSpace(f.PetName); name != "" {
		where = append(where, "strpos(p.name, "+arg(name)+") > 0")
	}
	if st := strings.TrimSpace(f.PetStatus); st != "" {
		where = append(where, "p.status = "+arg(st))
	}
	if f.StartDate != nil {
		where = append(where, "p.start_date >= "+arg(*f.StartDate))
	}
	if f.EndDate != nil {
		where = append(where, "p.end_date <= "+arg(*f.EndDate))
	}
	if f.IsSettled != nil {
		where = append(where, "COALESCE(i.settled_amount >= i.total_amount, false) = "+arg(*f.IsSettled))
	}

	q := petIncomeSelect
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += ` ORDER BY i.created_at DESC NULLS LAST, p.created_at DESC, p.id DESC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]incomes.PetIncome, 0)
	for rows.Next() {
		pi, err := scanPetIncome(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, pi)
	}
	return out, rows.Err()
}

func (r *IncomesRepo) GetPetIncome(ctx context.Context, petID int64) (incomes.PetIncome, error) {
	row := r.db.QueryRowContext(ctx, petIncomeSelect+` WHERE p.id = $1`, petID)
	pi, err := scanPetIncome(row)
	if errors.Is(err, sql.ErrNoRows) {
		return incomes.PetIncome{}, incomes.ErrPetNotFound
	}
	return pi, err
}

func (r *IncomesRepo) query(ctx context.Context, q string, args ...any) ([]incomes.Income, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]incomes.Income, 0)
	for rows.Next() {
		in, err := scanIncome(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	return out, rows.Err()
}

func scanIncome(s scanner) (incomes.Income, error) {
	var (
		in       incomes.Income
		totalFee decimal.NullDecimal
	)
	if err := s.Scan(
		&in.ID,
		&in.PetID,
		&in.DailyFee,
		&in.OtherFee,
		&totalFee,
		&in.DaysStayed,
		&in.TotalAmount,
		&in.SettledAmount,
		&in.Remark,
		&in.CreatedAt,
		&in.UpdatedAt,
	); err != nil {
		return incomes.Income{}, err
	}
	if totalFee.Valid {
		d := totalFee.Decimal
		in.TotalFee = &d
	}
	return in, nil
}

func scanPetIncome(s scanner) (incomes.PetIncome, error) {
	var (
		base    incomes.PetIncome
		id      sql.NullInt64
		daily   decimal.NullDecimal
		other   decimal.NullDecimal
		total   decimal.NullDecimal
		days    sql.NullInt64
		settled decimal.NullDecimal
		remark  sql.NullString
		created sql.NullTime
	)
	if err := s.Scan(
		&base.PetID,
		&base.PetName,
		&base.PetBreed,
		&base.StartDate,
		&base.EndDate,
		&base.PetStatus,
		&base.PetCreatedAt,
		&id,
		&daily,
		&other,
		&total,
		&days,
		&settled,
		&remark,
		&created,
	); err != nil {
		return incomes.PetIncome{}, err
	}
	if !id.Valid {
		return base, nil
	}
	return incomes.JoinPetIncome(base, &incomes.Income{
		ID:            id.Int64,
		PetID:         base.PetID,
		DailyFee:      daily.Decimal,
		OtherFee:      other.Decimal,
		DaysStayed:    int(days.Int64),
		TotalAmount:   total.Decimal,
		SettledAmount: settled.Decimal,
		Remark:        remark.String,
		CreatedAt:     created.Time,
	}), nil
}

func toNullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}
