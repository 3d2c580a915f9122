package finance

import (
	"testing"

	"pet-boarding/internal/domain/costs"
	"pet-boarding/internal/domain/incomes"
	"pet-boarding/internal/domain/pets"
	"pet-boarding/internal/platform/dates"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertAmount(t *testing.T, field string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(dec(want)) {
		t.Fatalf("%s = %s, want %s", field, got, want)
	}
}

func stay(id int64, name, start, end, daily, other string, status pets.Status) pets.Pet {
	return pets.Pet{
		ID:        id,
		Name:      name,
		StartDate: dates.MustParse(start),
		EndDate:   dates.MustParse(end),
		DailyFee:  dec(daily),
		OtherFee:  dec(other),
		Status:    status,
	}
}

func month(s string) dates.Month {
	m, err := dates.ParseMonth(s)
	if err != nil {
		panic(err)
	}
	return m
}

func TestShareOf_CrossMonth(t *testing.T) {
	p := stay(1, "Lucky", "2025-09-29", "2025-10-03", "100", "40", pets.StatusCheckedOut)

	sep := ShareOf(p, month("2025-09"))
	if sep.DaysInMonth != 2 || sep.TotalDays != 4 {
		t.Fatalf("sep days = %d/%d, want 2/4", sep.DaysInMonth, sep.TotalDays)
	}
	assertAmount(t, "sep other", sep.OtherFee, "20")
	assertAmount(t, "sep total", sep.TotalIncome, "220")
	if !sep.IsCrossMonth {
		t.Fatalf("expected cross month")
	}
	if sep.StartDate.String() != "2025-09-29" || sep.EndDate.String() != "2025-09-30" {
		t.Fatalf("unexpected clip %s..%s", sep.StartDate, sep.EndDate)
	}

	oct := ShareOf(p, month("2025-10"))
	if oct.DaysInMonth != 2 {
		t.Fatalf("oct days = %d, want 2", oct.DaysInMonth)
	}
	assertAmount(t, "oct total", oct.TotalIncome, "220")
	if oct.StartDate.String() != "2025-10-01" || oct.EndDate.String() != "2025-10-03" {
		t.Fatalf("unexpected oct clip %s..%s", oct.StartDate, oct.EndDate)
	}
}

func TestShareOf_NightsSumAcrossMonths(t *testing.T) {
	cases := []pets.Pet{
		stay(1, "a", "2025-09-29", "2025-10-03", "100", "40", pets.StatusBooked),
		stay(2, "b", "2024-01-30", "2024-03-02", "50", "0", pets.StatusBooked),
		stay(3, "c", "2025-12-31", "2026-01-01", "80", "10", pets.StatusBooked),
		stay(4, "d", "2025-09-10", "2025-09-10", "80", "10", pets.StatusBooked),
		stay(5, "e", "2025-09-01", "2025-10-01", "10", "0", pets.StatusBooked),
	}
	for _, p := range cases {
		sum := 0
		last := p.EndDate.Month()
		for m := p.StartDate.Month(); !last.Before(m); m = m.Next() {
			s := ShareOf(p, m)
			if s.DaysInMonth > s.TotalDays {
				t.Fatalf("stay %d: %s has %d > %d nights", p.ID, m, s.DaysInMonth, s.TotalDays)
			}
			sum += s.DaysInMonth
		}
		if sum != p.Nights() {
			t.Fatalf("stay %d: nights over months = %d, want %d", p.ID, sum, p.Nights())
		}
	}
}

func TestShareOf_InsideMonthTakesWholeOtherFee(t *testing.T) {
	p := stay(1, "a", "2025-09-10", "2025-09-12", "120", "20", pets.StatusBooked)
	s := ShareOf(p, month("2025-09"))
	if s.DaysInMonth != s.TotalDays {
		t.Fatalf("days %d != total %d", s.DaysInMonth, s.TotalDays)
	}
	assertAmount(t, "other", s.OtherFee, "20")
	assertAmount(t, "total", s.TotalIncome, "260")

	zero := stay(2, "b", "2025-09-10", "2025-09-10", "120", "20", pets.StatusBooked)
	z := ShareOf(zero, month("2025-09"))
	assertAmount(t, "zero-night total", z.TotalIncome, "20")
}

func TestBuildMonthlyDetail(t *testing.T) {
	stays := []pets.Pet{
		stay(9, "Cross", "2025-09-29", "2025-10-03", "100", "40", pets.StatusCheckedIn),
		stay(3, "Single", "2025-09-10", "2025-09-12", "120", "20", pets.StatusCheckedOut),
		stay(5, "Outside", "2025-08-01", "2025-08-05", "100", "0", pets.StatusCheckedOut),
	}
	costItems := []costs.Cost{
		{CostMonth: "2025-09", WaterFee: dec("50"), ElectricityFee: dec("100"), RentFee: dec("3000"), OtherFee: dec("200"), TotalCost: dec("3350")},
	}

	d := BuildMonthlyDetail(month("2025-09"), stays, costItems)
	if len(d.Orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(d.Orders))
	}
	if d.Orders[0].PetID != 3 || d.Orders[1].PetID != 9 {
		t.Fatalf("orders not sorted by petId: %d, %d", d.Orders[0].PetID, d.Orders[1].PetID)
	}
	if d.Orders[0].IsCrossMonth || !d.Orders[1].IsCrossMonth {
		t.Fatalf("unexpected isCrossMonth flags")
	}
	assertAmount(t, "cross total", d.Orders[1].TotalIncome, "220")

	sum := decimal.Zero
	for _, o := range d.Orders {
		sum = sum.Add(o.TotalIncome)
	}
	assertAmount(t, "summary income", d.Summary.TotalIncome, sum.String())
	assertAmount(t, "summary income", d.Summary.TotalIncome, "480")
	assertAmount(t, "rent", d.MonthlyCosts.RentFee, "3000")
	assertAmount(t, "cost", d.Summary.TotalCost, "3350")
	assertAmount(t, "profit", d.Summary.NetProfit, "-2870")
}

func TestBuildMonthlyDetail_Empty(t *testing.T) {
	d := BuildMonthlyDetail(month("2025-09"), nil, nil)
	if len(d.Orders) != 0 {
		t.Fatalf("expected no orders")
	}
	assertAmount(t, "income", d.Summary.TotalIncome, "0")
	assertAmount(t, "profit", d.Summary.NetProfit, "0")
}

func TestBuildMonthlyStats_ProratesSettled(t *testing.T) {
	stays := []pets.Pet{
		stay(1, "Cross", "2025-09-29", "2025-10-03", "100", "40", pets.StatusCheckedOut),
		stay(2, "NoIncome", "2025-09-10", "2025-09-12", "120", "20", pets.StatusBooked),
	}
	revenue := map[int64]incomes.Income{
		1: {PetID: 1, TotalAmount: dec("440"), SettledAmount: dec("100")},
	}

	st := BuildMonthlyStats(month("2025-09"), stays, revenue, []costs.Cost{{TotalCost: dec("100")}})
	assertAmount(t, "income", st.TotalIncome, "480")
	assertAmount(t, "settled", st.SettledAmount, "50")
	assertAmount(t, "unsettled", st.UnsettledAmount, "430")
	assertAmount(t, "cost", st.TotalCost, "100")
	assertAmount(t, "profit", st.NetProfit, "380")
}

func TestBuildMonthlyOrders(t *testing.T) {
	stays := []pets.Pet{
		stay(1, "Cross", "2025-09-29", "2025-10-03", "100", "40", pets.StatusCheckedOut),
		stay(2, "Single", "2025-09-10", "2025-09-12", "120", "20", pets.StatusBooked),
		// termina el 1 de noviembre: cero noches en noviembre, no cuenta
		stay(3, "Edge", "2025-10-30", "2025-11-01", "50", "0", pets.StatusBooked),
		// cero noches: no es pedido, pero su otherFee queda en diciembre
		stay(4, "SameDay", "2025-12-05", "2025-12-05", "50", "10", pets.StatusBooked),
	}
	costItems := []costs.Cost{
		{CostMonth: "2025-09", TotalCost: dec("300")},
		{CostMonth: "2025-09", TotalCost: dec("200")},
		{CostMonth: "2025-12", TotalCost: dec("999")},
	}

	rows := BuildMonthlyOrders(stays, costItems)
	if len(rows) != 3 {
		t.Fatalf("expected 3 months, got %d", len(rows))
	}
	sep, oct, december := rows[0], rows[1], rows[2]
	if sep.Month.String() != "2025-09" || oct.Month.String() != "2025-10" {
		t.Fatalf("unexpected order %s, %s", sep.Month, oct.Month)
	}
	if sep.OrderCount != 2 || oct.OrderCount != 2 {
		t.Fatalf("counts = %d, %d; want 2, 2", sep.OrderCount, oct.OrderCount)
	}
	assertAmount(t, "sep income", sep.TotalIncome, "480")
	assertAmount(t, "sep cost", sep.TotalCost, "500")
	assertAmount(t, "sep profit", sep.TotalProfit, "-20")
	assertAmount(t, "oct income", oct.TotalIncome, "320")
	assertAmount(t, "oct cost", oct.TotalCost, "0")
	if december.Month.String() != "2025-12" || december.OrderCount != 0 {
		t.Fatalf("dec = %s with %d orders, want 2025-12 with 0", december.Month, december.OrderCount)
	}
	assertAmount(t, "dec income", december.TotalIncome, "10")
	assertAmount(t, "dec profit", december.TotalProfit, "-989")
}

func TestMonthlyOrdersMatchesDetailIncome(t *testing.T) {
	stays := []pets.Pet{
		stay(1, "Cross", "2025-09-29", "2025-10-03", "100", "40", pets.StatusCheckedOut),
		stay(2, "SameDay", "2025-09-15", "2025-09-15", "50", "10", pets.StatusBooked),
		stay(3, "Edge", "2025-10-30", "2025-11-01", "50", "0", pets.StatusBooked),
	}

	byMonth := map[string]MonthlyOrders{}
	for _, row := range BuildMonthlyOrders(stays, nil) {
		byMonth[row.Month.String()] = row
	}
	for _, key := range []string{"2025-09", "2025-10", "2025-11"} {
		detail := BuildMonthlyDetail(month(key), stays, nil)
		got := byMonth[key].TotalIncome
		if !got.Equal(detail.Summary.TotalIncome) {
			t.Fatalf("%s: monthly orders income %s, detail %s", key, got, detail.Summary.TotalIncome)
		}
	}
	if byMonth["2025-09"].OrderCount != 1 {
		t.Fatalf("zero-night stay must not count as an order, got %d", byMonth["2025-09"].OrderCount)
	}
}

func TestBuildTotalStats(t *testing.T) {
	revenue := []incomes.Income{{TotalAmount: dec("260")}, {TotalAmount: dec("500")}}
	costItems := []costs.Cost{{TotalCost: dec("3350")}, {TotalCost: dec("1000")}}

	st := BuildTotalStats(revenue, costItems)
	assertAmount(t, "income", st.TotalIncome, "760")
	assertAmount(t, "cost", st.TotalCost, "4350")
	assertAmount(t, "profit", st.TotalProfit, "-3590")

	empty := BuildTotalStats(nil, nil)
	assertAmount(t, "empty profit", empty.TotalProfit, "0")
}

func TestBuildCheckoutReport_OtherFeeInEndMonth(t *testing.T) {
	stays := []pets.Pet{
		stay(1, "Cross", "2025-09-29", "2025-10-03", "100", "40", pets.StatusCheckedOut),
		stay(2, "EndsFirst", "2025-09-28", "2025-10-01", "10", "5", pets.StatusCheckedOut),
	}

	sep := BuildCheckoutReport(month("2025-09"), stays, nil)
	if sep.PetsCount != 2 {
		t.Fatalf("sep pets = %d", sep.PetsCount)
	}
	assertAmount(t, "sep cross daily", sep.Details[0].DailyPart, "200")
	assertAmount(t, "sep cross other", sep.Details[0].OtherPart, "0")
	assertAmount(t, "sep income", sep.Income, "230")

	oct := BuildCheckoutReport(month("2025-10"), stays, []costs.Cost{{TotalCost: dec("40")}})
	if oct.PetsCount != 2 || oct.CostItems != 1 {
		t.Fatalf("oct pets = %d, cost items = %d", oct.PetsCount, oct.CostItems)
	}
	assertAmount(t, "oct cross total", oct.Details[0].Total, "240")
	// la que sale el 1 de octubre deja su otherFee en octubre, sin noches
	if oct.Details[1].DaysInMonth != 0 {
		t.Fatalf("ends-first nights in oct = %d", oct.Details[1].DaysInMonth)
	}
	assertAmount(t, "oct ends-first other", oct.Details[1].OtherPart, "5")
	assertAmount(t, "oct income", oct.Income, "245")
	assertAmount(t, "oct profit", oct.Profit, "205")
}

func TestBuildCheckoutReport_StayEndingOnFirstDay(t *testing.T) {
	// sale el 1 de septiembre: ninguna noche en septiembre, pero entra
	// con su otherFee; en agosto solo aporta noches
	stays := []pets.Pet{
		stay(1, "EndsOnFirst", "2025-08-30", "2025-09-01", "10", "7", pets.StatusCheckedOut),
	}

	sep := BuildCheckoutReport(month("2025-09"), stays, nil)
	if sep.PetsCount != 1 || sep.Details[0].DaysInMonth != 0 {
		t.Fatalf("sep pets = %d, details = %+v", sep.PetsCount, sep.Details)
	}
	assertAmount(t, "sep other", sep.Details[0].OtherPart, "7")
	assertAmount(t, "sep income", sep.Income, "7")

	aug := BuildCheckoutReport(month("2025-08"), stays, nil)
	assertAmount(t, "aug daily", aug.Details[0].DailyPart, "20")
	assertAmount(t, "aug other", aug.Details[0].OtherPart, "0")

	oct := BuildCheckoutReport(month("2025-10"), stays, nil)
	if oct.PetsCount != 0 {
		t.Fatalf("oct must be empty, got %d", oct.PetsCount)
	}
}

func TestCapacityOn(t *testing.T) {
	stays := []pets.Pet{
		stay(1, "Booked", "2025-09-14", "2025-09-16", "1", "0", pets.StatusBooked),
		stay(2, "InA", "2025-09-15", "2025-09-15", "1", "0", pets.StatusCheckedIn),
		stay(3, "InB", "2025-09-01", "2025-09-15", "1", "0", pets.StatusCheckedIn),
		stay(4, "Out", "2025-09-10", "2025-09-20", "1", "0", pets.StatusCheckedOut),
		stay(5, "Later", "2025-09-16", "2025-09-20", "1", "0", pets.StatusBooked),
	}

	c := CapacityOn(dates.MustParse("2025-09-15"), 10, stays)
	if c.BookedCount != 1 || c.CheckedInCount != 2 || c.AvailableCount != 7 {
		t.Fatalf("unexpected counts %+v", c)
	}
	if len(c.BookedPetNames) != 1 || c.BookedPetNames[0] != "Booked" {
		t.Fatalf("booked names = %v", c.BookedPetNames)
	}
	if len(c.CheckedInPetNames) != 2 {
		t.Fatalf("checked-in names = %v", c.CheckedInPetNames)
	}

	full := CapacityOn(dates.MustParse("2025-09-15"), 2, stays)
	if full.AvailableCount != 0 {
		t.Fatalf("available must not go negative, got %d", full.AvailableCount)
	}
}

func TestCapacityByMonth(t *testing.T) {
	stays := []pets.Pet{
		stay(1, "a", "2024-02-28", "2024-03-02", "1", "0", pets.StatusBooked),
	}
	mc := CapacityByMonth(month("2024-02"), 5, stays)
	if len(mc.Days) != 29 || mc.MaxCapacity != 5 {
		t.Fatalf("days = %d, max = %d", len(mc.Days), mc.MaxCapacity)
	}
	if mc.Days[26].BookedCount != 0 || mc.Days[27].BookedCount != 1 || mc.Days[28].AvailableCount != 4 {
		t.Fatalf("unexpected tail %+v", mc.Days[26:])
	}
}
