package settings

import (
	"net/http"
	"time"

	"pet-boarding/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func RegisterRoutes(r chi.Router, svc *Service, log *zap.Logger) {
	r.Get("/", listSettingsHandler(svc, log))
	r.Post("/", createSettingHandler(svc, log))
	r.Get("/{key}", getSettingHandler(svc, log))
	r.Put("/{key}", updateSettingHandler(svc, log))
	r.Delete("/{key}", deleteSettingHandler(svc, log))
}

type settingResponse struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type createSettingRequest struct {
	Key   string `json:"key" validate:"required"`
	Value string `json:"value"`
}

type updateSettingRequest struct {
	Value string `json:"value"`
}

// listSettingsHandler godoc
// @Summary Listar configuración
// @Tags settings
// @Produce json
// @Success 200 {object} httpx.Envelope{data=[]settingResponse}
// @Router /api/settings [get]
func listSettingsHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			httpx.Error(w, r, log, err)
			return
		}
		out := make([]settingResponse, 0, len(items))
		for _, st := range items {
			out = append(out, toSettingResponse(st))
		}
		httpx.OK(w, out)
	}
}

// createSettingHandler godoc
// @Summary Crear clave
// @Tags settings
// @Accept json
// @Produce json
// @Param payload body createSettingRequest true "Clave y valor"
// @Success 200 {object} httpx.Envelope{data=settingResponse}
// @Router /api/settings [post]
func createSettingHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createSettingRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.Error(w, r, log, err)
			return
		}
		st, err := svc.Create(r.Context(), req.Key, req.Value)
		if err != nil {
			httpx.Error(w, r, log, err)
			return
		}
		httpx.OK(w, toSettingResponse(st))
	}
}

// getSettingHandler godoc
// @Summary Obtener clave
// @Tags settings
// @Produce json
// @Param key path string true "Clave"
// @Success 200 {object} httpx.Envelope{data=settingResponse}
// @Router /api/settings/{key} [get]
func getSettingHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, err := svc.Get(r.Context(), chi.URLParam(r, "key"))
		if err != nil {
			httpx.Error(w, r, log, err)
			return
		}
		httpx.OK(w, toSettingResponse(st))
	}
}

// updateSettingHandler godoc
// @Summary Actualizar valor
// @Tags settings
// @Accept json
// @Produce json
// @Param key path string true "Clave"
// @Param payload body updateSettingRequest true "Nuevo valor"
// @Success 200 {object} httpx.Envelope{data=settingResponse}
// @Router /api/settings/{key} [put]
func updateSettingHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateSettingRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.Error(w, r, log, err)
			return
		}
		st, err := svc.Update(r.Context(), chi.URLParam(r, "key"), req.Value)
		if err != nil {
			httpx.Error(w, r, log, err)
			return
		}
		httpx.OK(w, toSettingResponse(st))
	}
}

// deleteSettingHandler godoc
// @Summary Borrar clave
// @Tags settings
// @Produce json
// @Param key path string true "Clave"
// @Success 200 {object} httpx.Envelope
// @Router /api/settings/{key} [delete]
func deleteSettingHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "key")); err != nil {
			httpx.Error(w, r, log, err)
			return
		}
		httpx.OK(w, true)
	}
}

func toSettingResponse(s Setting) settingResponse {
	return settingResponse{Key: s.Key, Value: s.Value, UpdatedAt: s.UpdatedAt}
}
