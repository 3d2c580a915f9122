package postgres

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"

	"pet-boarding/internal/domain/incomes"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestMapIncomeWriteErr(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{"fk", &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation, ConstraintName: "incomes_pet_id_fkey"}, incomes.ErrUnknownPet},
		{"pet unique", &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "incomes_pet_id_key"}, incomes.ErrDuplicatePet},
		{"pk unique", &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "incomes_pkey"}, incomes.ErrDuplicateID},
		{"wrapped", fmt.Errorf("exec: %w", &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "incomes_pet_id_key"}), incomes.ErrDuplicatePet},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := mapIncomeWriteErr(tc.err); !errors.Is(got, tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}

	plain := errors.New("connection reset")
	if got := mapIncomeWriteErr(plain); got != plain {
		t.Fatalf("non-postgres errors must pass through, got %v", got)
	}
}

func TestMigrations_Embedded(t *testing.T) {
	names, err := fs.Glob(migrationsFS, "migrations/*.sql")
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	var up, down int
	for _, n := range names {
		switch {
		case strings.HasSuffix(n, ".up.sql"):
			up++
		case strings.HasSuffix(n, ".down.sql"):
			down++
		}
	}
	if up == 0 || up != down {
		t.Fatalf("expected paired up/down migrations, got %v", names)
	}

	b, err := migrationsFS.ReadFile("migrations/000001_init.up.sql")
	if err != nil {
		t.Fatalf("read init: %v", err)
	}
	if !strings.Contains(string(b), `"key"`) {
		t.Fatalf("settings.key must be quoted in the schema")
	}
}

func TestToNullInt(t *testing.T) {
	if v := toNullInt(nil); v.Valid {
		t.Fatalf("nil must be NULL")
	}
	n := 3
	if v := toNullInt(&n); !v.Valid || v.Int64 != 3 {
		t.Fatalf("unexpected %+v", v)
	}
}
