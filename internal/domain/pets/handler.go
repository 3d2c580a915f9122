package pets

import (
	"net/http"
	"strings"
	"time"

	"pet-boarding/internal/platform/dates"
	"pet-boarding/internal/platform/httpx"
	"pet-boarding/internal/platform/idgen"
	"pet-boarding/internal/platform/paging"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// RegisterRoutes monta las rutas de estancias sobre el grupo /api/pets.
func RegisterRoutes(r chi.Router, svc *Service, log *zap.Logger) {
	r.Post("/", createPetHandler(svc, log))
	r.Put("/", updatePetHandler(svc, log))
	r.Get("/", listPetsHandler(svc, log))
	r.Post("/sync-incomes", syncIncomesHandler(svc, log))

	r.Get("/{id}", getPetHandler(svc, log))
	r.Delete("/{id}", deletePetHandler(svc, log))
	r.Post("/{id}/checkin", checkInHandler(svc, log))
	r.Post("/{id}/checkout", checkOutHandler(svc, log))
}

type createPetRequest struct {
	ID        *idgen.ID        `json:"id"`
	Name      string           `json:"name" validate:"required"`
	Breed     string           `json:"breed"`
	Gender    string           `json:"gender" validate:"omitempty,oneof=male female unknown"`
	Age       *int             `json:"age" validate:"omitempty,min=0"`
	Neutered  string           `json:"neutered" validate:"omitempty,oneof=yes no unknown"`
	StartDate dates.Date       `json:"startDate"` // YYYY-MM-DD
	EndDate   dates.Date       `json:"endDate"`   // YYYY-MM-DD
	DailyFee  *decimal.Decimal `json:"dailyFee"`
	OtherFee  *decimal.Decimal `json:"otherFee"`
	TotalFee  *decimal.Decimal `json:"totalFee"`
	Remark    string           `json:"remark"`
	Status    string           `json:"status"`
}

// Punteros para PATCH real: nil = no tocar.
type updatePetRequest struct {
	ID                 idgen.ID         `json:"id" validate:"required"`
	Name               *string          `json:"name"`
	Breed              *string          `json:"breed"`
	Gender             *string          `json:"gender" validate:"omitempty,oneof=male female unknown"`
	Age                *int             `json:"age" validate:"omitempty,min=0"`
	Neutered           *string          `json:"neutered" validate:"omitempty,oneof=yes no unknown"`
	StartDate          *dates.Date      `json:"startDate"`
	EndDate            *dates.Date      `json:"endDate"`
	DailyFee           *decimal.Decimal `json:"dailyFee"`
	OtherFee           *decimal.Decimal `json:"otherFee"`
	TotalFee           *decimal.Decimal `json:"totalFee"`
	InputSettledAmount *decimal.Decimal `json:"inputSettledAmount"`
	Remark             *string          `json:"remark"`
	Status             *string          `json:"status"`
}

type petResponse struct {
	ID            idgen.ID         `json:"id"`
	Name          string           `json:"name"`
	Breed         string           `json:"breed"`
	Gender        Gender           `json:"gender"`
	Age           *int             `json:"age"`
	Neutered      Neutered         `json:"neutered"`
	StartDate     dates.Date       `json:"startDate"`
	EndDate       dates.Date       `json:"endDate"`
	DailyFee      decimal.Decimal  `json:"dailyFee"`
	OtherFee      decimal.Decimal  `json:"otherFee"`
	Remark        string           `json:"remark"`
	Status        Status           `json:"status"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
	StayDays      int              `json:"stayDays"`
	TotalAmount   decimal.Decimal  `json:"totalAmount"`
	SettledAmount decimal.Decimal  `json:"settledAmount"`
	TotalFee      *decimal.Decimal `json:"totalFee"`
}

type petListResponse struct {
	paging.Page[petResponse]

	TotalStayDays        int             `json:"totalStayDays"`
	TotalAmount          decimal.Decimal `json:"totalAmount"`
	TotalSettledAmount   decimal.Decimal `json:"totalSettledAmount"`
	TotalUnsettledAmount decimal.Decimal `json:"totalUnsettledAmount"`
}

// createPetHandler godoc
// @Summary Registrar estancia
// @Description Crea la estancia (status booked por defecto, o checkedIn) y su ingreso en la misma transacción. totalAmount = totalFee + otherFee si viene totalFee; si no dailyFee × noches + otherFee.
// @Tags pets
// @Accept json
// @Produce json
// @Param payload body createPetRequest true "Estancia; fechas YYYY-MM-DD"
// @Success 200 {object} httpx.Envelope{data=petResponse}
// @Router /api/pets [post]
func createPetHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createPetRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.Error(w, r, log, err)
			return
		}

		v, err := svc.Create(r.Context(), CreateInput{
			ID:        req.ID.Ptr(),
			Name:      req.Name,
			Breed:     req.Breed,
			Gender:    req.Gender,
			Age:       req.Age,
			Neutered:  req.Neutered,
			StartDate: req.StartDate,
			EndDate:   req.EndDate,
			DailyFee:  req.DailyFee,
			OtherFee:  req.OtherFee,
			TotalFee:  req.TotalFee,
			Remark:    req.Remark,
			Status:    req.Status,
		})
		if err != nil {
			httpx.Error(w, r, log, err)
			return
		}
		httpx.OK(w, toPetResponse(v))
	}
}

// updatePetHandler godoc
// @Summary Actualizar estancia
// @Description Patch de la estancia. El ingreso se recalcula si llega totalFee, ambas fechas, dailyFee u otherFee. inputSettledAmount se escribe tal cual.
// @Tags pets
// @Accept json
// @Produce json
// @Param payload body updatePetRequest true "Campos a modificar (id obligatorio)"
// @Success 200 {object} httpx.Envelope{data=petResponse}
// @Router /api/pets [put]
func updatePetHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updatePetRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.Error(w, r, log, err)
			return
		}

		v, err := svc.Update(r.Context(), UpdateInput{
			ID:                 req.ID.Int64(),
			Name:               req.Name,
			Breed:              req.Breed,
			Gender:             req.Gender,
			Age:                req.Age,
			Neutered:           req.Neutered,
			StartDate:          req.StartDate,
			EndDate:            req.EndDate,
			DailyFee:           req.DailyFee,
			OtherFee:           req.OtherFee,
			TotalFee:           req.TotalFee,
			InputSettledAmount: req.InputSettledAmount,
			Remark:             req.Remark,
			Status:             req.Status,
		})
		if err != nil {
			httpx.Error(w, r, log, err)
			return
		}
		httpx.OK(w, toPetResponse(v))
	}
}

// listPetsHandler godoc
// @Summary Listar estancias
// @Description Paginado, orden startDate desc. Agregados sobre la página actual.
// @Tags pets
// @Produce json
// @Param status query string false "Un estado"
// @Param statuses query string false "Varios estados separados por coma"
// @Param startDate query string false "startDate >= (YYYY-MM-DD)"
// @Param endDate query string false "endDate <= (YYYY-MM-DD)"
// @Param page query int false "Página (default 1)"
// @Param size query int false "Tamaño (default 10, máx 200)"
// @Success 200 {object} httpx.Envelope{data=petListResponse}
// @Router /api/pets [get]
func listPetsHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f := ListFilter{Status: Status(httpx.QueryString(r, "status"))}
		for _, st := range strings.Split(httpx.QueryString(r, "statuses"), ",") {
			if st = strings.TrimSpace(st); st != "" {
				f.Statuses = append(f.Statuses, Status(st))
			}
		}

		var err error
		if f.StartDate, err = httpx.QueryDate(r, "startDate"); err != nil {
			httpx.Error(w, r, log, err)
			return
		}
		if f.EndDate, err = httpx.QueryDate(r, "endDate"); err != nil {
			httpx.Error(w, r, log, err)
			return
		}
		if f.Page, err = httpx.QueryInt(r, "page", paging.DefaultPage); err != nil {
			httpx.Error(w, r, log, err)
			return
		}
		if f.Size, err = httpx.QueryInt(r, "size", paging.DefaultSize); err != nil {
			httpx.Error(w, r, log, err)
			return
		}

		p, err := svc.List(r.Context(), f)
		if err != nil {
			httpx.Error(w, r, log, err)
			return
		}

		out := make([]petResponse, 0, len(p.Records))
		for _, v := range p.Records {
			out = append(out, toPetResponse(v))
		}
		httpx.OK(w, petListResponse{
			Page: paging.Page[petResponse]{
				Records: out,
				Total:   p.Total,
				Pages:   p.Pages,
				Current: p.Current,
				Size:    p.Size,
			},
			TotalStayDays:        p.TotalStayDays,
			TotalAmount:          p.TotalAmount,
			TotalSettledAmount:   p.TotalSettledAmount,
			TotalUnsettledAmount: p.TotalUnsettledAmount,
		})
	}
}

// getPetHandler godoc
// @Summary Obtener estancia
// @Tags pets
// @Produce json
// @Param id path string true "ID de la estancia"
// @Success 200 {object} httpx.Envelope{data=petResponse}
// @Router /api/pets/{id} [get]
func getPetHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.PathID(r, "id")
		if err != nil {
			httpx.Error(w, r, log, err)
			return
		}
		v, err := svc.Get(r.Context(), id)
		if err != nil {
			httpx.Error(w, r, log, err)
			return
		}
		httpx.OK(w, toPetResponse(v))
	}
}

// deletePetHandler godoc
// @Summary Borrar estancia
// @Description Borra la estancia y su ingreso.
// @Tags pets
// @Produce json
// @Param id path string true "ID de la estancia"
// @Success 200 {object} httpx.Envelope
// @Router /api/pets/{id} [delete]
func deletePetHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
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

// checkInHandler godoc
// @Summary Check-in
// @Description booked -> checkedIn (idempotente sobre checkedIn).
// @Tags pets
// @Produce json
// @Param id path string true "ID de la estancia"
// @Success 200 {object} httpx.Envelope{data=petResponse}
// @Router /api/pets/{id}/checkin [post]
func checkInHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.PathID(r, "id")
		if err != nil {
			httpx.Error(w, r, log, err)
			return
		}
		v, err := svc.CheckIn(r.Context(), id)
		if err != nil {
			httpx.Error(w, r, log, err)
			return
		}
		httpx.OK(w, toPetResponse(v))
	}
}

// checkOutHandler godoc
// @Summary Check-out
// @Description checkedIn -> checkedOut; refresca (o crea) el ingreso con dailyFee × noches + otherFee.
// @Tags pets
// @Produce json
// @Param id path string true "ID de la estancia"
// @Success 200 {object} httpx.Envelope{data=petResponse}
// @Router /api/pets/{id}/checkout [post]
func checkOutHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.PathID(r, "id")
		if err != nil {
			httpx.Error(w, r, log, err)
			return
		}
		v, err := svc.CheckOut(r.Context(), id)
		if err != nil {
			httpx.Error(w, r, log, err)
			return
		}
		httpx.OK(w, toPetResponse(v))
	}
}

// syncIncomesHandler godoc
// @Summary Sincronizar ingresos
// @Description Crea los ingresos que falten y refresca los existentes, todo en una transacción.
// @Tags pets
// @Produce json
// @Success 200 {object} httpx.Envelope{data=SyncResult}
// @Router /api/pets/sync-incomes [post]
func syncIncomesHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := svc.SyncIncomes(r.Context())
		if err != nil {
			httpx.Error(w, r, log, err)
			return
		}
		httpx.OK(w, res)
	}
}

func toPetResponse(v View) petResponse {
	return petResponse{
		ID:            idgen.ID(v.ID),
		Name:          v.Name,
		Breed:         v.Breed,
		Gender:        v.Gender,
		Age:           v.Age,
		Neutered:      v.Neutered,
		StartDate:     v.StartDate,
		EndDate:       v.EndDate,
		DailyFee:      v.DailyFee,
		OtherFee:      v.OtherFee,
		Remark:        v.Remark,
		Status:        v.Status,
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
		StayDays:      v.StayDays,
		TotalAmount:   v.TotalAmount,
		SettledAmount: v.SettledAmount,
		TotalFee:      v.TotalFee,
	}
}
