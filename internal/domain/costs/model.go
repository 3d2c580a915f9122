package costs

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cost es un gasto operativo mensual etiquetado con su mes (YYYY-MM).
type Cost struct {
	ID             int64
	CostMonth      string
	WaterFee       decimal.Decimal
	ElectricityFee decimal.Decimal
	RentFee        decimal.Decimal
	OtherFee       decimal.Decimal
	TotalCost      decimal.Decimal
	CreatedAt      time.Time
}
