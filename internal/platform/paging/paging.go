// Package paging normaliza page/size y arma la página de respuesta.
package paging

import "math"

const (
	DefaultPage = 1
	DefaultSize = 10
	MaxSize     = 200
	// MaxPage mantiene (page-1)*size dentro de int para cualquier size válido.
	MaxPage     = math.MaxInt / MaxSize
)

type Request struct {
	Page int
	Size int
}

// Normalize aplica defaults: page < 1 => 1, size < 1 => 10, size > 200 => 200.
// page se recorta a MaxPage.
func (r Request) Normalize() Request {
	if r.Page < 1 {
		r.Page = DefaultPage
	}
	if r.Page > MaxPage {
		r.Page = MaxPage
	}
	if r.Size < 1 {
		r.Size = DefaultSize
	}
	if r.Size > MaxSize {
		r.Size = MaxSize
	}
	return r
}

func (r Request) Offset() int { return (r.Page - 1) * r.Size }

// Window devuelve [lo, hi) de la página dentro de n elementos. Normaliza
// antes, así que nunca sale de [0, n].
func (r Request) Window(n int) (int, int) {
	r = r.Normalize()
	lo := min(max(r.Offset(), 0), n)
	hi := min(lo+r.Size, n)
	return lo, hi
}

type Page[T any] struct {
	Records []T `json:"records"`
	Total   int `json:"total"`
	Pages   int `json:"pages"`
	Current int `json:"current"`
	Size    int `json:"size"`
}

func New[T any](records []T, total int, req Request) Page[T] {
	if records == nil {
		records = []T{}
	}
	return Page[T]{
		Records: records,
		Total:   total,
		Pages:   Pages(total, req.Size),
		Current: req.Page,
		Size:    req.Size,
	}
}

// Slice pagina en memoria una lista ya filtrada.
func Slice[T any](all []T, req Request) Page[T] {
	lo, hi := req.Window(len(all))
	return New(all[lo:hi], len(all), req)
}

func Pages(total, size int) int {
	if size <= 0 || total <= 0 {
		return 0
	}
	return (total + size - 1) / size
}
