// Package apperr define los dos tipos de error visibles para el cliente.
// Los errores de dominio los envuelven con %w y su propio mensaje; todo lo
// demás se considera error operacional.
package apperr

import "errors"

var (
	ErrBadRequest = errors.New("bad request")
	ErrNotFound   = errors.New("not found")
)

func IsBadRequest(err error) bool { return errors.Is(err, ErrBadRequest) }
func IsNotFound(err error) bool   { return errors.Is(err, ErrNotFound) }

// IsClient: errores que se pueden mostrar tal cual al operador.
func IsClient(err error) bool {
	return IsBadRequest(err) || IsNotFound(err)
}
