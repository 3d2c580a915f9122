package finance

import (
	"sort"

	"pet-boarding/internal/domain/costs"
	"pet-boarding/internal/domain/incomes"
	"pet-boarding/internal/domain/pets"
	"pet-boarding/internal/platform/dates"
	"pet-boarding/internal/platform/money"

	"github.com/shopspring/decimal"
)

// OrderShare es la parte de una estancia que cae en un mes.
//
// Las noches del mes se cuentan sobre [max(start, inicio), min(end, inicio
// del mes siguiente)), así la suma sobre todos los meses da las noches de la
// estancia. otherFee se reparte con el mismo ratio (4 decimales).
type OrderShare struct {
	PetID   int64
	PetName string

	// Recorte de la estancia dentro del mes.
	StartDate dates.Date
	EndDate   dates.Date

	DaysInMonth int
	TotalDays   int

	DailyFee    decimal.Decimal
	OtherFee    decimal.Decimal // parte prorrateada de otherFee
	TotalIncome decimal.Decimal

	OriginalStartDate dates.Date
	OriginalEndDate   dates.Date
	IsCrossMonth      bool

	ratio decimal.Decimal
}

// Overlaps: la estancia toca el mes (intervalo cerrado en ambos lados).
func Overlaps(p pets.Pet, m dates.Month) bool {
	return !p.StartDate.After(m.Last()) && !p.EndDate.Before(m.First())
}

// ShareOf calcula la parte de p en m. No comprueba el solapamiento.
// Las noches se cuentan sobre [from, inicio del mes siguiente); la fila
// muestra como fin el último día del mes.
func ShareOf(p pets.Pet, m dates.Month) OrderShare {
	from := dates.Max(p.StartDate, m.First())
	days := dates.Nights(from, dates.Min(p.EndDate, m.Next().First()))
	total := p.Nights()

	ratio := money.Ratio(days, total)
	other := money.Share(p.OtherFee, ratio)
	dayPart := p.DailyFee.Mul(money.FromInt(days))

	return OrderShare{
		PetID:             p.ID,
		PetName:           p.Name,
		StartDate:         from,
		EndDate:           dates.Min(p.EndDate, m.Last()),
		DaysInMonth:       days,
		TotalDays:         total,
		DailyFee:          p.DailyFee,
		OtherFee:          other,
		TotalIncome:       money.Round(dayPart.Add(other)),
		OriginalStartDate: p.StartDate,
		OriginalEndDate:   p.EndDate,
		IsCrossMonth:      p.StartDate.Month().String() != p.EndDate.Month().String(),
		ratio:             ratio,
	}
}

// counted: la estancia suma un pedido en el mes.
func (s OrderShare) counted() bool { return s.DaysInMonth > 0 && s.TotalDays > 0 }

type CostSummary struct {
	WaterFee       decimal.Decimal
	ElectricityFee decimal.Decimal
	RentFee        decimal.Decimal
	OtherCostFee   decimal.Decimal
	TotalCost      decimal.Decimal
}

func SumCosts(items []costs.Cost) CostSummary {
	var out CostSummary
	for _, c := range items {
		out.WaterFee = out.WaterFee.Add(c.WaterFee)
		out.ElectricityFee = out.ElectricityFee.Add(c.ElectricityFee)
		out.RentFee = out.RentFee.Add(c.RentFee)
		out.OtherCostFee = out.OtherCostFee.Add(c.OtherFee)
		out.TotalCost = out.TotalCost.Add(c.TotalCost)
	}
	return out
}

type DetailSummary struct {
	TotalIncome decimal.Decimal
	TotalCost   decimal.Decimal
	NetProfit   decimal.Decimal
}

type MonthlyDetail struct {
	Month        dates.Month
	MonthlyCosts CostSummary
	Orders       []OrderShare
	Summary      DetailSummary
}

// shares devuelve la parte de cada estancia que toca m, por petId asc.
func shares(m dates.Month, stays []pets.Pet) []OrderShare {
	out := make([]OrderShare, 0, len(stays))
	for _, p := range stays {
		if Overlaps(p, m) {
			out = append(out, ShareOf(p, m))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PetID < out[j].PetID })
	return out
}

// BuildMonthlyDetail reparte cada estancia del mes; costItems ya viene
// filtrado por el mes.
func BuildMonthlyDetail(m dates.Month, stays []pets.Pet, costItems []costs.Cost) MonthlyDetail {
	orders := shares(m, stays)
	income := decimal.Zero
	for _, o := range orders {
		income = income.Add(o.TotalIncome)
	}
	cs := SumCosts(costItems)
	return MonthlyDetail{
		Month:        m,
		MonthlyCosts: cs,
		Orders:       orders,
		Summary: DetailSummary{
			TotalIncome: income,
			TotalCost:   cs.TotalCost,
			NetProfit:   income.Sub(cs.TotalCost),
		},
	}
}

type MonthlyStats struct {
	Month           dates.Month
	TotalIncome     decimal.Decimal
	SettledAmount   decimal.Decimal
	UnsettledAmount decimal.Decimal
	TotalCost       decimal.Decimal
	NetProfit       decimal.Decimal
}

// BuildMonthlyStats: el cobrado se prorratea con el mismo ratio que
// otherFee. Las estancias sin ingreso no suman cobrado.
func BuildMonthlyStats(m dates.Month, stays []pets.Pet, revenue map[int64]incomes.Income, costItems []costs.Cost) MonthlyStats {
	income := decimal.Zero
	settled := decimal.Zero
	for _, s := range shares(m, stays) {
		income = income.Add(s.TotalIncome)
		if in, ok := revenue[s.PetID]; ok {
			settled = settled.Add(money.Share(in.SettledAmount, s.ratio))
		}
	}
	cost := SumCosts(costItems).TotalCost
	return MonthlyStats{
		Month:           m,
		TotalIncome:     income,
		SettledAmount:   settled,
		UnsettledAmount: income.Sub(settled),
		TotalCost:       cost,
		NetProfit:       income.Sub(cost),
	}
}

type MonthlyOrders struct {
	Month       dates.Month
	OrderCount  int
	TotalIncome decimal.Decimal
	TotalCost   decimal.Decimal
	TotalProfit decimal.Decimal
}

// BuildMonthlyOrders agrupa por mes todas las estancias. Una estancia cuenta
// como pedido en cada mes donde tiene al menos una noche, pero su parte de
// ingreso suma siempre, igual que en BuildMonthlyDetail (una estancia de cero
// noches deja su otherFee en el mes). Los meses sin pedidos ni ingreso no
// aparecen. costItems son los costos de todos los meses.
func BuildMonthlyOrders(stays []pets.Pet, costItems []costs.Cost) []MonthlyOrders {
	byMonth := map[string]*MonthlyOrders{}
	for _, p := range stays {
		last := p.EndDate.Month()
		for m := p.StartDate.Month(); !last.Before(m); m = m.Next() {
			s := ShareOf(p, m)
			if !s.counted() && s.TotalIncome.IsZero() {
				continue
			}
			row, ok := byMonth[m.String()]
			if !ok {
				row = &MonthlyOrders{Month: m}
				byMonth[m.String()] = row
			}
			if s.counted() {
				row.OrderCount++
			}
			row.TotalIncome = row.TotalIncome.Add(s.TotalIncome)
		}
	}

	costByMonth := map[string]decimal.Decimal{}
	for _, c := range costItems {
		costByMonth[c.CostMonth] = costByMonth[c.CostMonth].Add(c.TotalCost)
	}

	out := make([]MonthlyOrders, 0, len(byMonth))
	for key, row := range byMonth {
		row.TotalCost = costByMonth[key]
		row.TotalProfit = row.TotalIncome.Sub(row.TotalCost)
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month.Before(out[j].Month) })
	return out
}

type TotalStats struct {
	TotalIncome decimal.Decimal
	TotalCost   decimal.Decimal
	TotalProfit decimal.Decimal
}

func BuildTotalStats(revenue []incomes.Income, costItems []costs.Cost) TotalStats {
	income := decimal.Zero
	for _, in := range revenue {
		income = income.Add(in.TotalAmount)
	}
	cost := SumCosts(costItems).TotalCost
	return TotalStats{
		TotalIncome: income,
		TotalCost:   cost,
		TotalProfit: income.Sub(cost),
	}
}

// CheckoutLine es una fila del reporte mensual por salida.
type CheckoutLine struct {
	PetID       int64
	Name        string
	Breed       string
	Status      pets.Status
	StartDate   dates.Date
	EndDate     dates.Date
	DaysInMonth int
	DailyFee    decimal.Decimal
	DailyPart   decimal.Decimal
	OtherPart   decimal.Decimal
	Total       decimal.Decimal
}

type CheckoutReport struct {
	Month     dates.Month
	Income    decimal.Decimal
	Cost      decimal.Decimal
	Profit    decimal.Decimal
	PetsCount int
	Details   []CheckoutLine
	CostItems int
}

// BuildCheckoutReport es la otra forma de repartir: las noches se cuentan
// igual que en BuildMonthlyDetail, pero otherFee entero va al mes que
// contiene endDate. Entra toda estancia con start < inicio del mes
// siguiente y end >= inicio del mes.
func BuildCheckoutReport(m dates.Month, stays []pets.Pet, costItems []costs.Cost) CheckoutReport {
	first, next := m.First(), m.Next().First()
	out := CheckoutReport{
		Month:     m,
		Income:    decimal.Zero,
		Details:   []CheckoutLine{},
		CostItems: len(costItems),
	}
	for _, p := range stays {
		if !p.StartDate.Before(next) || p.EndDate.Before(first) {
			continue
		}
		days := dates.Nights(dates.Max(p.StartDate, first), dates.Min(p.EndDate, next))
		dayPart := money.Round(p.DailyFee.Mul(money.FromInt(days)))
		otherPart := decimal.Zero
		if m.Contains(p.EndDate) {
			otherPart = p.OtherFee
		}
		line := CheckoutLine{
			PetID:       p.ID,
			Name:        p.Name,
			Breed:       p.Breed,
			Status:      p.Status,
			StartDate:   p.StartDate,
			EndDate:     p.EndDate,
			DaysInMonth: days,
			DailyFee:    p.DailyFee,
			DailyPart:   dayPart,
			OtherPart:   otherPart,
			Total:       dayPart.Add(otherPart),
		}
		out.Details = append(out.Details, line)
		out.Income = out.Income.Add(line.Total)
	}
	sort.Slice(out.Details, func(i, j int) bool { return out.Details[i].PetID < out.Details[j].PetID })
	out.PetsCount = len(out.Details)
	out.Cost = SumCosts(costItems).TotalCost
	out.Profit = out.Income.Sub(out.Cost)
	return out
}
