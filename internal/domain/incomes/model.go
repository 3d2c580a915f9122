package incomes

import (
	"strings"
	"time"

	"pet-boarding/internal/platform/dates"

	"github.com/shopspring/decimal"
)

// Income es el registro de ingreso de una estancia. Hay exactamente uno por
// PetID; lo crea y lo mantiene el registro de estancias.
type Income struct {
	ID    int64
	PetID int64

	DailyFee decimal.Decimal
	OtherFee decimal.Decimal
	// TotalFee: precio cerrado por la estancia (sin otherFee). nil = no se pactó.
	TotalFee *decimal.Decimal

	DaysStayed    int
	TotalAmount   decimal.Decimal
	SettledAmount decimal.Decimal

	Remark string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (i Income) UnsettledAmount() decimal.Decimal {
	return i.TotalAmount.Sub(i.SettledAmount)
}

// PetIncome es la vista de lectura estancia + ingreso (outer join: los
// campos del ingreso son nil si la estancia todavía no tiene ingreso).
type PetIncome struct {
	PetID        int64
	PetName      string
	PetBreed     string
	StartDate    dates.Date
	EndDate      dates.Date
	PetStatus    string
	PetCreatedAt time.Time

	IncomeID        *int64
	DailyFee        *decimal.Decimal
	OtherFee        *decimal.Decimal
	TotalAmount     *decimal.Decimal
	DaysStayed      *int
	SettledAmount   *decimal.Decimal
	UnsettledAmount *decimal.Decimal
	IncomeRemark    *string
	IncomeCreatedAt *time.Time
}

// IsSettled: cobrado por completo (settled >= total, ambos presentes).
func (p PetIncome) IsSettled() bool {
	if p.SettledAmount == nil || p.TotalAmount == nil {
		return false
	}
	return p.SettledAmount.GreaterThanOrEqual(*p.TotalAmount)
}

type ListFilter struct {
	PetID *int64
	Page  int
	Size  int
}

type PetIncomeFilter struct {
	PetName   string
	PetStatus string
	StartDate *dates.Date
	EndDate   *dates.Date
	IsSettled *bool
	Page      int
	Size      int
}

// Match aplica el filtro a una fila ya unida (adaptadores en memoria).
func (f PetIncomeFilter) Match(p PetIncome) bool {
	if name := strings.TrimSpace(f.PetName); name != "" && !strings.Contains(p.PetName, name) {
		return false
	}
	if st := strings.TrimSpace(f.PetStatus); st != "" && p.PetStatus != st {
		return false
	}
	if f.StartDate != nil && p.StartDate.Before(*f.StartDate) {
		return false
	}
	if f.EndDate != nil && p.EndDate.After(*f.EndDate) {
		return false
	}
	if f.IsSettled != nil && p.IsSettled() != *f.IsSettled {
		return false
	}
	return true
}

// LessPetIncome ordena por fecha de creación del ingreso desc (sin ingreso
// al final) y luego por creación de la estancia desc.
func LessPetIncome(a, b PetIncome) bool {
	switch {
	case a.IncomeCreatedAt != nil && b.IncomeCreatedAt == nil:
		return true
	case a.IncomeCreatedAt == nil && b.IncomeCreatedAt != nil:
		return false
	case a.IncomeCreatedAt != nil && !a.IncomeCreatedAt.Equal(*b.IncomeCreatedAt):
		return a.IncomeCreatedAt.After(*b.IncomeCreatedAt)
	}
	if !a.PetCreatedAt.Equal(b.PetCreatedAt) {
		return a.PetCreatedAt.After(b.PetCreatedAt)
	}
	return a.PetID > b.PetID
}

// JoinPetIncome arma la vista a partir del ingreso (puede ser nil).
func JoinPetIncome(base PetIncome, in *Income) PetIncome {
	if in == nil {
		return base
	}
	id := in.ID
	daily, other, total, settled := in.DailyFee, in.OtherFee, in.TotalAmount, in.SettledAmount
	unsettled := in.UnsettledAmount()
	days := in.DaysStayed
	remark := in.Remark
	created := in.CreatedAt

	base.IncomeID = &id
	base.DailyFee = &daily
	base.OtherFee = &other
	base.TotalAmount = &total
	base.DaysStayed = &days
	base.SettledAmount = &settled
	base.UnsettledAmount = &unsettled
	base.IncomeRemark = &remark
	base.IncomeCreatedAt = &created
	return base
}
