package pets

import (
	"time"

	"pet-boarding/internal/platform/dates"

	"github.com/shopspring/decimal"
)

// Status es el ciclo de vida de una estancia.
// @Enum booked, checkedIn, checkedOut
type Status string

const (
	StatusBooked     Status = "booked"
	StatusCheckedIn  Status = "checkedIn"
	StatusCheckedOut Status = "checkedOut"
)

func (s Status) Valid() bool {
	switch s {
	case StatusBooked, StatusCheckedIn, StatusCheckedOut:
		return true
	}
	return false
}

// Gender define el sexo de la mascota.
// @Enum male, female, unknown
type Gender string

const (
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderUnknown Gender = "unknown"
)

func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale || g == GenderUnknown
}

// Neutered: castrado / esterilizado.
// @Enum yes, no, unknown
type Neutered string

const (
	NeuteredYes     Neutered = "yes"
	NeuteredNo      Neutered = "no"
	NeuteredUnknown Neutered = "unknown"
)

func (n Neutered) Valid() bool {
	return n == NeuteredYes || n == NeuteredNo || n == NeuteredUnknown
}

// Pet es la estancia persistida: la mascota, sus fechas y su tarifa.
type Pet struct {
	ID int64

	Name     string
	Breed    string
	Gender   Gender
	Age      *int
	Neutered Neutered

	StartDate dates.Date
	EndDate   dates.Date

	DailyFee decimal.Decimal
	OtherFee decimal.Decimal
	Remark   string

	Status Status

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Nights: noches facturables de la estancia.
func (p Pet) Nights() int { return dates.Nights(p.StartDate, p.EndDate) }

// View es la estancia con los campos derivados de su ingreso. Nunca se
// persiste.
type View struct {
	Pet

	StayDays      int
	TotalAmount   decimal.Decimal
	SettledAmount decimal.Decimal
	TotalFee      *decimal.Decimal
}

type ListFilter struct {
	// Status y Statuses se combinan (AND) si llegan los dos.
	Status    Status
	Statuses  []Status
	StartDate *dates.Date // startDate >=
	EndDate   *dates.Date // endDate <=
	Page      int
	Size      int
}

// ListPage es la página del listado con agregados de la página actual.
type ListPage struct {
	Records []View
	Total   int
	Pages   int
	Current int
	Size    int

	TotalStayDays        int
	TotalAmount          decimal.Decimal
	TotalSettledAmount   decimal.Decimal
	TotalUnsettledAmount decimal.Decimal
}

// SyncResult resume una sincronización masiva de ingresos.
type SyncResult struct {
	Created   int `json:"created"`
	Refreshed int `json:"refreshed"`
}
