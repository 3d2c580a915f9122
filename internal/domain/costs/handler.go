package costs

import (
	"net/http"
	"time"

	"pet-boarding/internal/platform/httpx"
	"pet-boarding/internal/platform/idgen"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func RegisterRoutes(r chi.Router, svc *Service, log *zap.Logger) {
	r.Post("/", createCostHandler(svc, log))
	r.Put("/", updateCostHandler(svc, log))
	r.Get("/", listCostsHandler(svc, log))
	r.Get("/{id}", getCostHandler(svc, log))
	r.Delete("/{id}", deleteCostHandler(svc, log))
}

type costResponse struct {
	ID             idgen.ID        `json:"id"`
	CostMonth      string          `json:"costMonth"`
	WaterFee       decimal.Decimal `json:"waterFee"`
	ElectricityFee decimal.Decimal `json:"electricityFee"`
	RentFee        decimal.Decimal `json:"rentFee"`
	OtherFee       decimal.Decimal `json:"otherFee"`
	TotalCost      decimal.Decimal `json:"totalCost"`
	CreatedAt      time.Time       `json:"createdAt"`
}

type createCostRequest struct {
	ID             *idgen.ID        `json:"id"`
	CostMonth      string           `json:"costMonth"` // YYYY-MM; vacío = mes actual
	WaterFee       *decimal.Decimal `json:"waterFee"`
	ElectricityFee *decimal.Decimal `json:"electricityFee"`
	RentFee        *decimal.Decimal `json:"rentFee"`
	OtherFee       *decimal.Decimal `json:"otherFee"`
	TotalCost      *decimal.Decimal `json:"totalCost"`
}

type updateCostRequest struct {
	ID             idgen.ID         `json:"id" validate:"required"`
	CostMonth      *string          `json:"costMonth"`
	WaterFee       *decimal.Decimal `json:"waterFee"`
	ElectricityFee *decimal.Decimal `json:"electricityFee"`
	RentFee        *decimal.Decimal `json:"rentFee"`
	OtherFee       *decimal.Decimal `json:"otherFee"`
	TotalCost      *decimal.Decimal `json:"totalCost"`
}

// createCostHandler godoc
// @Summary Registrar costo mensual
// @Description costMonth por defecto = mes actual; totalCost por defecto = agua + luz + alquiler + otros.
// @Tags costs
// @Accept json
// @Produce json
// @Param payload body createCostRequest true "Costo"
// @Success 200 {object} httpx.Envelope{data=costResponse}
// @Router /api/costs [post]
func createCostHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createCostRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.Error(w, r, log, err)
			return
		}
		c, err := svc.Create(r.Context(), CreateInput{
			ID:             req.ID.Ptr(),
			CostMonth:      req.CostMonth,
			WaterFee:       req.WaterFee,
			ElectricityFee: req.ElectricityFee,
			RentFee:        req.RentFee,
			OtherFee:       req.OtherFee,
			TotalCost:      req.TotalCost,
		})
		if err != nil {
			httpx.Error(w, r, log, err)
			return
		}
		httpx.OK(w, toCostResponse(c))
	}
}

// updateCostHandler godoc
// @Summary Actualizar costo
// @Tags costs
// @Accept json
// @Produce json
// @Param payload body updateCostRequest true "Campos a modificar"
// @Success 200 {object} httpx.Envelope{data=costResponse}
// @Router /api/costs [put]
func updateCostHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateCostRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.Error(w, r, log, err)
			return
		}
		c, err := svc.Update(r.Context(), UpdateInput{
			ID:             req.ID.Int64(),
			CostMonth:      req.CostMonth,
			WaterFee:       req.WaterFee,
			ElectricityFee: req.ElectricityFee,
			RentFee:        req.RentFee,
			OtherFee:       req.OtherFee,
			TotalCost:      req.TotalCost,
		})
		if err != nil {
			httpx.Error(w, r, log, err)
			return
		}
		httpx.OK(w, toCostResponse(c))
	}
}

// listCostsHandler godoc
// @Summary Listar costos
// @Tags costs
// @Produce json
// @Param costMonth query string false "Mes YYYY-MM"
// @Success 200 {object} httpx.Envelope{data=[]costResponse}
// @Router /api/costs [get]
func listCostsHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context(), httpx.QueryString(r, "costMonth"))
		if err != nil {
			httpx.Error(w, r, log, err)
			return
		}
		out := make([]costResponse, 0, len(items))
		for _, c := range items {
			out = append(out, toCostResponse(c))
		}
		httpx.OK(w, out)
	}
}

// getCostHandler godoc
// @Summary Obtener costo
// @Tags costs
// @Produce json
// @Param id path string true "ID del costo"
// @Success 200 {object} httpx.Envelope{data=costResponse}
// @Router /api/costs/{id} [get]
func getCostHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.PathID(r, "id")
		if err != nil {
			httpx.Error(w, r, log, err)
			return
		}
		c, err := svc.Get(r.Context(), id)
		if err != nil {
			httpx.Error(w, r, log, err)
			return
		}
		httpx.OK(w, toCostResponse(c))
	}
}

// deleteCostHandler godoc
// @Summary Borrar costo
// @Tags costs
// @Produce json
// @Param id path string true "ID del costo"
// @Success 200 {object} httpx.Envelope
// @Router /api/costs/{id} [delete]
func deleteCostHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.PathID(r, "id")
		if err != nil {
			httpx.Error(w, r, log, err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			httpx.Error(w, r, log, err)
			return
		}
		httpx.OK(w, true)
	}
}

func toCostResponse(c Cost) costResponse {
	return costResponse{
		ID:             idgen.ID(c.ID),
		CostMonth:      c.CostMonth,
		WaterFee:       c.WaterFee,
		ElectricityFee: c.ElectricityFee,
		RentFee:        c.RentFee,
		OtherFee:       c.OtherFee,
		TotalCost:      c.TotalCost,
		CreatedAt:      c.CreatedAt,
	}
}
