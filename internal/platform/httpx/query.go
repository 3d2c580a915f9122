package httpx

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"pet-boarding/internal/platform/apperr"
	"pet-boarding/internal/platform/dates"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

func query(r *http.Request, key string) string {
	return strings.TrimSpace(r.URL.Query().Get(key))
}

// QueryInt devuelve def si el parámetro no viene.
func QueryInt(r *http.Request, key string, def int) (int, error) {
	raw := query(r, key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", apperr.ErrBadRequest, key)
	}
	return n, nil
}

func QueryInt64(r *http.Request, key string) (*int64, error) {
	raw := query(r, key)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be an integer", apperr.ErrBadRequest, key)
	}
	return &n, nil
}

func QueryString(r *http.Request, key string) string { return query(r, key) }

// QueryDate: parámetro opcional YYYY-MM-DD.
func QueryDate(r *http.Request, key string) (*dates.Date, error) {
	raw := query(r, key)
	if raw == "" {
		return nil, nil
	}
	d, err := dates.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be YYYY-MM-DD", apperr.ErrBadRequest, key)
	}
	return &d, nil
}

// RequireDate: igual que QueryDate pero obligatorio.
func RequireDate(r *http.Request, key string) (dates.Date, error) {
	d, err := QueryDate(r, key)
	if err != nil {
		return dates.Date{}, err
	}
	if d == nil {
		return dates.Date{}, fmt.Errorf("%w: %s is required", apperr.ErrBadRequest, key)
	}
	return *d, nil
}

func RequireMonth(r *http.Request, key string) (dates.Month, error) {
	raw := query(r, key)
	if raw == "" {
		return dates.Month{}, fmt.Errorf("%w: %s is required", apperr.ErrBadRequest, key)
	}
	m, err := dates.ParseMonth(raw)
	if err != nil {
		return dates.Month{}, fmt.Errorf("%w: %s must be YYYY-MM", apperr.ErrBadRequest, key)
	}
	return m, nil
}

func QueryBool(r *http.Request, key string) (*bool, error) {
	raw := query(r, key)
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be true or false", apperr.ErrBadRequest, key)
	}
	return &b, nil
}

func RequireDecimal(r *http.Request, key string) (decimal.Decimal, error) {
	raw := query(r, key)
	if raw == "" {
		return decimal.Zero, fmt.Errorf("%w: %s is required", apperr.ErrBadRequest, key)
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s must be a number", apperr.ErrBadRequest, key)
	}
	return d, nil
}

// PathID lee un id numérico del path (chi).
func PathID(r *http.Request, key string) (int64, error) {
	raw := strings.TrimSpace(chi.URLParam(r, key))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", apperr.ErrBadRequest, key)
	}
	return id, nil
}
