// Package dates modela fechas de calendario y meses sin hora del día.
//
// Un Date siempre se guarda como medianoche UTC de su día, así la aritmética
// de días no cruza cambios de horario. La zona del operador solo importa al
// convertir "ahora" en Date (ver Today).
package dates

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jinzhu/now"
)

const (
	Layout      = "2006-01-02"
	MonthLayout = "2006-01"
)

type Date struct {
	t time.Time
}

func New(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// FromTime toma el día de calendario de t en su propia location.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return New(y, m, d)
}

// Today devuelve el día actual en loc (UTC si loc es nil).
func Today(loc *time.Location) Date {
	if loc == nil {
		loc = time.UTC
	}
	return FromTime(time.Now().In(loc))
}

func Parse(s string) (Date, error) {
	t, err := time.Parse(Layout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("date must be YYYY-MM-DD: %w", err)
	}
	return FromTime(t), nil
}

// MustParse solo para tests y constantes.
func MustParse(s string) Date {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Date) Time() time.Time { return d.t }
func (d Date) IsZero() bool     { return d.t.IsZero() }
func (d Date) String() string   { return d.t.Format(Layout) }

func (d Date) Before(o Date) bool { return d.t.Before(o.t) }
func (d Date) After(o Date) bool  { return d.t.After(o.t) }
func (d Date) Equal(o Date) bool  { return d.t.Equal(o.t) }

func (d Date) AddDays(n int) Date { return Date{t: d.t.AddDate(0, 0, n)} }

func (d Date) Month() Month { return MonthOf(d) }

// Between: from <= d <= to (intervalo cerrado).
func (d Date) Between(from, to Date) bool {
	return !d.Before(from) && !d.After(to)
}

// Nights cuenta las noches facturables entre start y end; nunca negativo.
func Nights(start, end Date) int {
	if !end.After(start) {
		return 0
	}
	return int(end.t.Sub(start.t).Hours() / 24)
}

func Max(a, b Date) Date {
	if a.After(b) {
		return a
	}
	return b
}

func Min(a, b Date) Date {
	if a.Before(b) {
		return a
	}
	return b
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" || s == `""` {
		*d = Date{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("date must be a YYYY-MM-DD string: %w", err)
	}
	parsed, err := Parse(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value guarda la fecha como literal DATE.
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}

func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
	case time.Time:
		*d = FromTime(v)
	case string:
		return d.scanString(v)
	case []byte:
		return d.scanString(string(v))
	default:
		return fmt.Errorf("dates: cannot scan %T", src)
	}
	return nil
}

func (d *Date) scanString(s string) error {
	if len(s) > len(Layout) {
		s = s[:len(Layout)]
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Month es un mes de calendario (YYYY-MM).
type Month struct {
	first Date
}

func MonthOf(d Date) Month {
	return Month{first: FromTime(now.With(d.t).BeginningOfMonth())}
}

func ParseMonth(s string) (Month, error) {
	t, err := time.Parse(MonthLayout, strings.TrimSpace(s))
	if err != nil {
		return Month{}, fmt.Errorf("month must be YYYY-MM: %w", err)
	}
	return MonthOf(FromTime(t)), nil
}

// CurrentMonth devuelve el mes de hoy en loc.
func CurrentMonth(loc *time.Location) Month {
	return MonthOf(Today(loc))
}

func (m Month) String() string { return m.first.t.Format(MonthLayout) }
func (m Month) IsZero() bool    { return m.first.IsZero() }

func (m Month) First() Date { return m.first }

// Last: último día del mes.
func (m Month) Last() Date { return FromTime(now.With(m.first.t).EndOfMonth()) }

func (m Month) Next() Month { return Month{first: Date{t: m.first.t.AddDate(0, 1, 0)}} }

func (m Month) Before(o Month) bool { return m.first.Before(o.first) }

func (m Month) Contains(d Date) bool { return d.Between(m.First(), m.Last()) }

// Days lista todos los días del mes en orden.
func (m Month) Days() []Date {
	last := m.Last()
	out := make([]Date, 0, 31)
	for d := m.first; !d.After(last); d = d.AddDays(1) {
		out = append(out, d)
	}
	return out
}

func (m Month) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}
