// Package money agrupa los helpers de importes sobre shopspring/decimal.
//
// Importes persistidos: 2 decimales. Ratios intermedios: 4 decimales.
// Redondeo half-up (decimal.Round redondea "half away from zero", que para
// importes no negativos es lo mismo).
package money

import "github.com/shopspring/decimal"

const (
	AmountScale = 2
	RatioScale  = 4
)

func init() {
	// Los importes salen en JSON como números, no como strings.
	decimal.MarshalJSONWithoutQuotes = true
}

var Zero = decimal.Zero

func Round(d decimal.Decimal) decimal.Decimal { return d.Round(AmountScale) }

func FromInt(n int) decimal.Decimal { return decimal.NewFromInt(int64(n)) }

// OrZero trata un importe ausente como 0.
func OrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

// Ptr devuelve un puntero a una copia redondeada.
func Ptr(d decimal.Decimal) *decimal.Decimal {
	r := Round(d)
	return &r
}

// RoundPtr redondea un importe opcional sin perder la ausencia.
func RoundPtr(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	return Ptr(*d)
}

// Ratio = part/whole con 4 decimales. whole <= 0 devuelve 1 (toda la
// parte cae en el único periodo que existe).
func Ratio(part, whole int) decimal.Decimal {
	if whole <= 0 {
		return decimal.NewFromInt(1)
	}
	return decimal.NewFromInt(int64(part)).DivRound(decimal.NewFromInt(int64(whole)), RatioScale)
}

// Share aplica un ratio a un importe y redondea a 2 decimales.
func Share(amount, ratio decimal.Decimal) decimal.Decimal {
	return Round(amount.Mul(ratio))
}

func Sum(ds ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, d := range ds {
		total = total.Add(d)
	}
	return total
}

func IsNegative(d decimal.Decimal) bool { return d.Sign() < 0 }
