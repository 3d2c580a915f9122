package finance

import (
	"pet-boarding/internal/domain/pets"
	"pet-boarding/internal/platform/dates"
)

// Capacity es la ocupación de un día: reservas y mascotas alojadas frente
// al máximo configurado.
type Capacity struct {
	Date              dates.Date
	MaxCapacity       int
	BookedCount       int
	CheckedInCount    int
	AvailableCount    int
	BookedPetNames    []string
	CheckedInPetNames []string
}

// DayCapacity es la fila diaria del calendario mensual (sin nombres).
type DayCapacity struct {
	Date           dates.Date
	BookedCount    int
	CheckedInCount int
	AvailableCount int
}

type MonthCapacity struct {
	Month       dates.Month
	MaxCapacity int
	Days        []DayCapacity
}

// CapacityOn cuenta las estancias activas el día d (startDate <= d <= endDate).
// Solo cuentan booked y checkedIn; el orden de los nombres es el de stays.
func CapacityOn(d dates.Date, maxCapacity int, stays []pets.Pet) Capacity {
	out := Capacity{
		Date:              d,
		MaxCapacity:       maxCapacity,
		BookedPetNames:    []string{},
		CheckedInPetNames: []string{},
	}
	for _, p := range stays {
		if !d.Between(p.StartDate, p.EndDate) {
			continue
		}
		switch p.Status {
		case pets.StatusBooked:
			out.BookedCount++
			out.BookedPetNames = append(out.BookedPetNames, p.Name)
		case pets.StatusCheckedIn:
			out.CheckedInCount++
			out.CheckedInPetNames = append(out.CheckedInPetNames, p.Name)
		}
	}
	out.AvailableCount = available(maxCapacity, out.BookedCount, out.CheckedInCount)
	return out
}

// CapacityByMonth aplica CapacityOn a cada día del mes.
func CapacityByMonth(m dates.Month, maxCapacity int, stays []pets.Pet) MonthCapacity {
	days := m.Days()
	out := MonthCapacity{
		Month:       m,
		MaxCapacity: maxCapacity,
		Days:        make([]DayCapacity, 0, len(days)),
	}
	for _, d := range days {
		c := CapacityOn(d, maxCapacity, stays)
		out.Days = append(out.Days, DayCapacity{
			Date:           d,
			BookedCount:    c.BookedCount,
			CheckedInCount: c.CheckedInCount,
			AvailableCount: c.AvailableCount,
		})
	}
	return out
}

func available(maxCapacity, booked, checkedIn int) int {
	if n := maxCapacity - booked - checkedIn; n > 0 {
		return n
	}
	return 0
}
