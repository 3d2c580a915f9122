package settings

import "time"

const (
	KeyMaxCapacity     = "max_capacity"
	DefaultMaxCapacity = 10
)

// Setting es un par clave/valor; la clave se guarda tal cual.
type Setting struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}
