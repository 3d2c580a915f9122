// Package httpx reúne la plomería HTTP compartida por los módulos:
// sobre de respuesta, decodificación + validación y parseo de query params.
package httpx

import (
	"encoding/json"
	"net/http"

	"pet-boarding/internal/platform/apperr"

	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

const (
	CodeOK   = 0
	CodeFail = -1

	MessageOK          = "ok"
	MessageServerError = "server error"
)

// Envelope es el sobre estándar. Siempre se responde HTTP 200; el éxito o
// fallo va en Code.
type Envelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(v)
}

func OK(w http.ResponseWriter, data any) {
	writeJSON(w, Envelope{Code: CodeOK, Message: MessageOK, Data: data})
}

func Fail(w http.ResponseWriter, message string) {
	writeJSON(w, Envelope{Code: CodeFail, Message: message})
}

// Error traduce un error a sobre. Validación y not-found viajan con su
// mensaje; el resto se loguea y el cliente solo ve "server error".
func Error(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error) {
	if apperr.IsClient(err) {
		Fail(w, err.Error())
		return
	}
	if log != nil {
		log.Error("request failed",
			zap.String("request_id", chimw.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
	Fail(w, MessageServerError)
}
