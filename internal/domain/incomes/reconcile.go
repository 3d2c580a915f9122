package incomes

import (
	"time"

	"pet-boarding/internal/platform/money"

	"github.com/shopspring/decimal"
)

// Change son las entradas opcionales con las que una escritura de estancia
// toca su ingreso. nil = no informado; 0 es un valor válido.
type Change struct {
	DailyFee *decimal.Decimal
	OtherFee *decimal.Decimal
	TotalFee *decimal.Decimal
	// Nights solo se informa cuando llegaron las dos fechas.
	Nights *int
	Remark *string
	// SettledAmount es el override del operador: se escribe tal cual.
	SettledAmount *decimal.Decimal
}

// Recomputes: totalFee, ambas fechas, dailyFee u otherFee.
func (c Change) Recomputes() bool {
	return c.TotalFee != nil || c.Nights != nil || c.DailyFee != nil || c.OtherFee != nil
}

// Derive es la regla de totalAmount: totalFee + otherFee si hay precio
// cerrado; si no dailyFee × noches + otherFee.
func Derive(dailyFee, otherFee decimal.Decimal, nights int, totalFee *decimal.Decimal) decimal.Decimal {
	if nights < 0 {
		nights = 0
	}
	if totalFee != nil {
		return money.Round(totalFee.Add(otherFee))
	}
	return money.Round(dailyFee.Mul(money.FromInt(nights)).Add(otherFee))
}

// Reconcile aplica un Change sobre el ingreso actual. Es la única tabla de
// derivación: alta, edición, salida y sync de estancias solo eligen qué
// campos informan.
//
//   - dailyFee, otherFee y remark informados se escriben siempre.
//   - Si Recomputes(): noches = Nights o el daysStayed actual; totalFee se
//     usa (y persiste) solo si vino en el Change; se recalcula totalAmount.
//   - settled: override si vino; si no, tras recalcular se recorta al total.
func Reconcile(cur Income, ch Change, now time.Time) Income {
	next := cur

	if ch.DailyFee != nil {
		next.DailyFee = money.Round(*ch.DailyFee)
	}
	if ch.OtherFee != nil {
		next.OtherFee = money.Round(*ch.OtherFee)
	}
	if ch.Remark != nil {
		next.Remark = *ch.Remark
	}

	recomputed := ch.Recomputes()
	if recomputed {
		if ch.Nights != nil {
			next.DaysStayed = max(0, *ch.Nights)
		}
		totalFee := money.RoundPtr(ch.TotalFee)
		if totalFee != nil {
			next.TotalFee = totalFee
		}
		next.TotalAmount = Derive(next.DailyFee, next.OtherFee, next.DaysStayed, totalFee)
	}

	switch {
	case ch.SettledAmount != nil:
		next.SettledAmount = money.Round(*ch.SettledAmount)
	case recomputed && next.SettledAmount.GreaterThan(next.TotalAmount):
		next.SettledAmount = next.TotalAmount
	}

	next.UpdatedAt = now
	return next
}
