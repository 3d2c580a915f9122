package incomes

import (
	"net/http"
	"time"

	"pet-boarding/internal/platform/dates"
	"pet-boarding/internal/platform/httpx"
	"pet-boarding/internal/platform/idgen"
	"pet-boarding/internal/platform/paging"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// RegisterRoutes monta /api/incomes sobre r (el grupo ya montado).
func RegisterRoutes(r chi.Router, svc *Service, log *zap.Logger) {
	r.Post("/", createIncomeHandler(svc, log))
	r.Put("/", updateIncomeHandler(svc, log))
	r.Get("/", listIncomesHandler(svc, log))

	// Rutas fijas antes de /{id}
	r.Get("/pet-income", listPetIncomeHandler(svc, log))
	r.Get("/pet/{petId}", getPetIncomeHandler(svc, log))

	r.Get("/{id}", getIncomeHandler(svc, log))
	r.Delete("/{id}", deleteIncomeHandler(svc, log))
	r.Put("/{id}/settle", settleIncomeHandler(svc, log))
}

type incomeResponse struct {
	ID              idgen.ID         `json:"id"`
	PetID           idgen.ID         `json:"petId"`
	DailyFee        decimal.Decimal  `json:"dailyFee"`
	OtherFee        decimal.Decimal  `json:"otherFee"`
	TotalFee        *decimal.Decimal `json:"totalFee"`
	DaysStayed      int              `json:"daysStayed"`
	TotalAmount     decimal.Decimal  `json:"totalAmount"`
	SettledAmount   decimal.Decimal  `json:"settledAmount"`
	UnsettledAmount decimal.Decimal  `json:"unsettledAmount"`
	Remark          string           `json:"remark"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

type petIncomeResponse struct {
	PetID           idgen.ID         `json:"petId"`
	PetName         string           `json:"petName"`
	PetBreed        string           `json:"petBreed"`
	StartDate       dates.Date       `json:"startDate"`
	EndDate         dates.Date       `json:"endDate"`
	PetStatus       string           `json:"petStatus"`
	IncomeID        *idgen.ID        `json:"incomeId"`
	DailyFee        *decimal.Decimal `json:"dailyFee"`
	OtherFee        *decimal.Decimal `json:"otherFee"`
	TotalAmount     *decimal.Decimal `json:"totalAmount"`
	DaysStayed      *int             `json:"daysStayed"`
	SettledAmount   *decimal.Decimal `json:"settledAmount"`
	UnsettledAmount *decimal.Decimal `json:"unsettledAmount"`
	IncomeRemark    *string          `json:"incomeRemark"`
	IncomeCreatedAt *time.Time       `json:"incomeCreatedAt"`
}

type createIncomeRequest struct {
	ID            *idgen.ID        `json:"id"`
	PetID         idgen.ID         `json:"petId" validate:"required"`
	DailyFee      *decimal.Decimal `json:"dailyFee"`
	OtherFee      *decimal.Decimal `json:"otherFee"`
	TotalFee      *decimal.Decimal `json:"totalFee"`
	DaysStayed    *int             `json:"daysStayed" validate:"omitempty,min=0"`
	TotalAmount   *decimal.Decimal `json:"totalAmount"`
	SettledAmount *decimal.Decimal `json:"settledAmount"`
	Remark        string           `json:"remark"`
}

// Punteros para PATCH real: nil = no tocar.
type updateIncomeRequest struct {
	ID            idgen.ID         `json:"id" validate:"required"`
	DailyFee      *decimal.Decimal `json:"dailyFee"`
	OtherFee      *decimal.Decimal `json:"otherFee"`
	TotalFee      *decimal.Decimal `json:"totalFee"`
	DaysStayed    *int             `json:"daysStayed" validate:"omitempty,min=0"`
	TotalAmount   *decimal.Decimal `json:"totalAmount"`
	SettledAmount *decimal.Decimal `json:"settledAmount"`
	Remark        *string          `json:"remark"`
}

// createIncomeHandler godoc
// @Summary Crear ingreso
// @Description Alta manual de un ingreso (corrección). Si no viene totalAmount se deriva de dailyFee, daysStayed, otherFee y totalFee.
// @Tags incomes
// @Accept json
// @Produce json
// @Param payload body createIncomeRequest true "Ingreso"
// @Success 200 {object} httpx.Envelope{data=incomeResponse}
// @Router /api/incomes [post]
func createIncomeHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createIncomeRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.Error(w, r, log, err)
			return
		}

		inc, err := svc.Create(r.Context(), CreateInput{
			ID:            req.ID.Ptr(),
			PetID:         req.PetID.Int64(),
			DailyFee:      req.DailyFee,
			OtherFee:      req.OtherFee,
			TotalFee:      req.TotalFee,
			DaysStayed:    req.DaysStayed,
			TotalAmount:   req.TotalAmount,
			SettledAmount: req.SettledAmount,
			Remark:        req.Remark,
		})
		if err != nil {
			httpx.Error(w, r, log, err)
			return
		}
		httpx.OK(w, toIncomeResponse(inc))
	}
}

// updateIncomeHandler godoc
// @Summary Actualizar ingreso
// @Description Patch sin derivación; el resultado debe cumplir 0 <= settledAmount <= totalAmount.
// @Tags incomes
// @Accept json
// @Produce json
// @Param payload body updateIncomeRequest true "Campos a modificar"
// @Success 200 {object} httpx.Envelope{data=incomeResponse}
// @Router /api/incomes [put]
func updateIncomeHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateIncomeRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.Error(w, r, log, err)
			return
		}

		inc, err := svc.Update(r.Context(), UpdateInput{
			ID:            req.ID.Int64(),
			DailyFee:      req.DailyFee,
			OtherFee:      req.OtherFee,
			TotalFee:      req.TotalFee,
			DaysStayed:    req.DaysStayed,
			TotalAmount:   req.TotalAmount,
			SettledAmount: req.SettledAmount,
			Remark:        req.Remark,
		})
		if err != nil {
			httpx.Error(w, r, log, err)
			return
		}
		httpx.OK(w, toIncomeResponse(inc))
	}
}

// listIncomesHandler godoc
// @Summary Listar ingresos
// @Tags incomes
// @Produce json
// @Param petId query string false "Filtrar por estancia"
// @Param page query int false "Página (default 1)"
// @Param size query int false "Tamaño (default 10, máx 200)"
// @Success 200 {object} httpx.Envelope
// @Router /api/incomes [get]
func listIncomesHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID, err := httpx.QueryInt64(r, "petId")
		if err != nil {
			httpx.Error(w, r, log, err)
			return
		}
		page, err := httpx.QueryInt(r, "page", paging.DefaultPage)
		if err != nil {
			httpx.Error(w, r, log, err)
			return
		}
		size, err := httpx.QueryInt(r, "size", paging.DefaultSize)
		if err != nil {
			httpx.Error(w, r, log, err)
			return
		}

		p, err := svc.List(r.Context(), ListFilter{PetID: petID, Page: page, Size: size})
		if err != nil {
			httpx.Error(w, r, log, err)
			return
		}

		out := make([]incomeResponse, 0, len(p.Records))
		for _, inc := range p.Records {
			out = append(out, toIncomeResponse(inc))
		}
		httpx.OK(w, paging.Page[incomeResponse]{
			Records: out, Total: p.Total, Pages: p.Pages, Current: p.Current, Size: p.Size,
		})
	}
}

// listPetIncomeHandler godoc
// @Summary Vista estancia + ingreso
// @Description Outer join estancia/ingreso con filtros; paginado en la aplicación.
// @Tags incomes
// @Produce json
// @Param petName query string false "Subcadena del nombre"
// @Param petStatus query string false "booked | checkedIn | checkedOut"
// @Param startDate query string false "startDate >= (YYYY-MM-DD)"
// @Param endDate query string false "endDate <= (YYYY-MM-DD)"
// @Param isSettled query bool false "Cobrado por completo"
// @Param page query int false "Página"
// @Param size query int false "Tamaño"
// @Success 200 {object} httpx.Envelope
// @Router /api/incomes/pet-income [get]
func listPetIncomeHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f := PetIncomeFilter{
			PetName:   httpx.QueryString(r, "petName"),
			PetStatus: httpx.QueryString(r, "petStatus"),
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
		if f.IsSettled, err = httpx.QueryBool(r, "isSettled"); err != nil {
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

		p, err := svc.ListPetIncome(r.Context(), f)
		if err != nil {
			httpx.Error(w, r, log, err)
			return
		}

		out := make([]petIncomeResponse, 0, len(p.Records))
		for _, pi := range p.Records {
			out = append(out, toPetIncomeResponse(pi))
		}
		httpx.OK(w, paging.Page[petIncomeResponse]{
			Records: out, Total: p.Total, Pages: p.Pages, Current: p.Current, Size: p.Size,
		})
	}
}

// getPetIncomeHandler godoc
// @Summary Ingreso de una estancia (con datos de la estancia)
// @Tags incomes
// @Produce json
// @Param petId path string true "ID de la estancia"
// @Success 200 {object} httpx.Envelope{data=petIncomeResponse}
// @Router /api/incomes/pet/{petId} [get]
func getPetIncomeHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID, err := httpx.PathID(r, "petId")
		if err != nil {
			httpx.Error(w, r, log, err)
			return
		}
		pi, err := svc.GetByPet(r.Context(), petID)
		if err != nil {
			httpx.Error(w, r, log, err)
			return
		}
		httpx.OK(w, toPetIncomeResponse(pi))
	}
}

// getIncomeHandler godoc
// @Summary Obtener ingreso
// @Tags incomes
// @Produce json
// @Param id path string true "ID del ingreso"
// @Success 200 {object} httpx.Envelope{data=incomeResponse}
// @Router /api/incomes/{id} [get]
func getIncomeHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.PathID(r, "id")
		if err != nil {
			httpx.Error(w, r, log, err)
			return
		}
		inc, err := svc.Get(r.Context(), id)
		if err != nil {
			httpx.Error(w, r, log, err)
			return
		}
		httpx.OK(w, toIncomeResponse(inc))
	}
}

// deleteIncomeHandler godoc
// @Summary Borrar ingreso
// @Tags incomes
// @Produce json
// @Param id path string true "ID del ingreso"
// @Success 200 {object} httpx.Envelope
// @Router /api/incomes/{id} [delete]
func deleteIncomeHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
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

// settleIncomeHandler godoc
// @Summary Registrar cobro
// @Description Fija settledAmount; falla si supera totalAmount.
// @Tags incomes
// @Produce json
// @Param id path string true "ID del ingreso"
// @Param amount query number true "Importe cobrado"
// @Success 200 {object} httpx.Envelope{data=incomeResponse}
// @Router /api/incomes/{id}/settle [put]
func settleIncomeHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.PathID(r, "id")
		if err != nil {
			httpx.Error(w, r, log, err)
			return
		}
		amount, err := httpx.RequireDecimal(r, "amount")
		if err != nil {
			httpx.Error(w, r, log, err)
			return
		}
		inc, err := svc.Settle(r.Context(), id, amount)
		if err != nil {
			httpx.Error(w, r, log, err)
			return
		}
		httpx.OK(w, toIncomeResponse(inc))
	}
}

func toIncomeResponse(in Income) incomeResponse {
	return incomeResponse{
		ID:              idgen.ID(in.ID),
		PetID:           idgen.ID(in.PetID),
		DailyFee:        in.DailyFee,
		OtherFee:        in.OtherFee,
		TotalFee:        in.TotalFee,
		DaysStayed:      in.DaysStayed,
		TotalAmount:     in.TotalAmount,
		SettledAmount:   in.SettledAmount,
		UnsettledAmount: in.UnsettledAmount(),
		Remark:          in.Remark,
		CreatedAt:       in.CreatedAt,
		UpdatedAt:       in.UpdatedAt,
	}
}

func toPetIncomeResponse(p PetIncome) petIncomeResponse {
	out := petIncomeResponse{
		PetID:           idgen.ID(p.PetID),
		PetName:         p.PetName,
		PetBreed:        p.PetBreed,
		StartDate:       p.StartDate,
		EndDate:         p.EndDate,
		PetStatus:       p.PetStatus,
		DailyFee:        p.DailyFee,
		OtherFee:        p.OtherFee,
		TotalAmount:     p.TotalAmount,
		DaysStayed:      p.DaysStayed,
		SettledAmount:   p.SettledAmount,
		UnsettledAmount: p.UnsettledAmount,
		IncomeRemark:    p.IncomeRemark,
		IncomeCreatedAt: p.IncomeCreatedAt,
	}
	if p.IncomeID != nil {
		id := idgen.ID(*p.IncomeID)
		out.IncomeID = &id
	}
	return out
}
