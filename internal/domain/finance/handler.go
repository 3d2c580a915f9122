package finance

import (
	"net/http"

	"pet-boarding/internal/platform/dates"
	"pet-boarding/internal/platform/httpx"
	"pet-boarding/internal/platform/idgen"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// RegisterRoutes monta /api/finance.
func RegisterRoutes(r chi.Router, svc *Service, log *zap.Logger) {
	r.Get("/monthly-stats", monthlyStatsHandler(svc, log))
	r.Get("/total-stats", totalStatsHandler(svc, log))
	r.Get("/monthly-orders", monthlyOrdersHandler(svc, log))
	r.Get("/monthly-orders-detail", monthlyOrdersDetailHandler(svc, log))
}

// RegisterCapacityRoutes cuelga de /api/pets; se registra antes que /{id}.
func RegisterCapacityRoutes(r chi.Router, svc *Service, log *zap.Logger) {
	r.Get("/capacity", capacityHandler(svc, log))
	r.Get("/capacity/month", capacityMonthHandler(svc, log))
}

// RegisterReportRoutes monta /api/reports.
func RegisterReportRoutes(r chi.Router, svc *Service, log *zap.Logger) {
	r.Get("/monthly", monthlyReportHandler(svc, log))
}

type capacityResponse struct {
	Date              dates.Date `json:"date"`
	MaxCapacity       int        `json:"maxCapacity"`
	BookedCount       int        `json:"bookedCount"`
	CheckedInCount    int        `json:"checkedInCount"`
	AvailableCount    int        `json:"availableCount"`
	BookedPetNames    []string   `json:"bookedPetNames"`
	CheckedInPetNames []string   `json:"checkedInPetNames"`
}

type dayCapacityResponse struct {
	Date           dates.Date `json:"date"`
	BookedCount    int        `json:"bookedCount"`
	CheckedInCount int        `json:"checkedInCount"`
	AvailableCount int        `json:"availableCount"`
}

type monthCapacityResponse struct {
	Month       string                `json:"month"`
	MaxCapacity int                   `json:"maxCapacity"`
	Days        []dayCapacityResponse `json:"days"`
}

type monthlyStatsResponse struct {
	Month           string          `json:"month"`
	TotalIncome     decimal.Decimal `json:"totalIncome"`
	SettledAmount   decimal.Decimal `json:"settledAmount"`
	UnsettledAmount decimal.Decimal `json:"unsettledAmount"`
	TotalCost       decimal.Decimal `json:"totalCost"`
	NetProfit       decimal.Decimal `json:"netProfit"`
}

type totalStatsResponse struct {
	TotalIncome decimal.Decimal `json:"totalIncome"`
	TotalCost   decimal.Decimal `json:"totalCost"`
	TotalProfit decimal.Decimal `json:"totalProfit"`
}

type monthlyOrdersResponse struct {
	Month       string          `json:"month"`
	OrderCount  int             `json:"orderCount"`
	TotalIncome decimal.Decimal `json:"totalIncome"`
	TotalCost   decimal.Decimal `json:"totalCost"`
	TotalProfit decimal.Decimal `json:"totalProfit"`
}

type monthlyCostsResponse struct {
	WaterFee       decimal.Decimal `json:"waterFee"`
	ElectricityFee decimal.Decimal `json:"electricityFee"`
	RentFee        decimal.Decimal `json:"rentFee"`
	OtherCostFee   decimal.Decimal `json:"otherCostFee"`
	TotalCost      decimal.Decimal `json:"totalCost"`
}

type orderDetailResponse struct {
	PetID             idgen.ID        `json:"petId"`
	PetName           string          `json:"petName"`
	StartDate         dates.Date      `json:"startDate"`
	EndDate           dates.Date      `json:"endDate"`
	DaysInMonth       int             `json:"daysInMonth"`
	DailyFee          decimal.Decimal `json:"dailyFee"`
	OtherFee          decimal.Decimal `json:"otherFee"`
	TotalIncome       decimal.Decimal `json:"totalIncome"`
	OriginalStartDate dates.Date      `json:"originalStartDate"`
	OriginalEndDate   dates.Date      `json:"originalEndDate"`
	IsCrossMonth      bool            `json:"isCrossMonth"`
}

type detailSummaryResponse struct {
	TotalIncome decimal.Decimal `json:"totalIncome"`
	TotalCost   decimal.Decimal `json:"totalCost"`
	NetProfit   decimal.Decimal `json:"netProfit"`
}

type monthlyDetailResponse struct {
	Month        string                `json:"month"`
	MonthlyCosts monthlyCostsResponse  `json:"monthlyCosts"`
	Orders       []orderDetailResponse `json:"orders"`
	Summary      detailSummaryResponse `json:"summary"`
}

type checkoutLineResponse struct {
	PetID       idgen.ID        `json:"petId"`
	Name        string          `json:"name"`
	Breed       string          `json:"breed"`
	Status      string          `json:"status"`
	StartDate   dates.Date      `json:"startDate"`
	EndDate     dates.Date      `json:"endDate"`
	DaysInMonth int             `json:"daysInMonth"`
	DailyFee    decimal.Decimal `json:"dailyFee"`
	DailyPart   decimal.Decimal `json:"dailyPart"`
	OtherPart   decimal.Decimal `json:"otherPart"`
	Total       decimal.Decimal `json:"total"`
}

type checkoutReportResponse struct {
	Month     string                 `json:"month"`
	Income    decimal.Decimal        `json:"income"`
	Cost      decimal.Decimal        `json:"cost"`
	Profit    decimal.Decimal        `json:"profit"`
	PetsCount int                    `json:"petsCount"`
	Details   []checkoutLineResponse `json:"details"`
	CostItems int                    `json:"costItems"`
}

// capacityHandler godoc
// @Summary Ocupación de un día
// @Description Cuenta reservas y alojados con startDate <= date <= endDate frente a max_capacity.
// @Tags capacity
// @Produce json
// @Param date query string true "Fecha YYYY-MM-DD"
// @Success 200 {object} httpx.Envelope{data=capacityResponse}
// @Router /api/pets/capacity [get]
func capacityHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := httpx.RequireDate(r, "date")
		if err != nil {
			httpx.Error(w, r, log, err)
			return
		}
		c, err := svc.CapacityOn(r.Context(), d)
		if err != nil {
			httpx.Error(w, r, log, err)
			return
		}
		httpx.OK(w, capacityResponse{
			Date:              c.Date,
			MaxCapacity:       c.MaxCapacity,
			BookedCount:       c.BookedCount,
			CheckedInCount:    c.CheckedInCount,
			AvailableCount:    c.AvailableCount,
			BookedPetNames:    c.BookedPetNames,
			CheckedInPetNames: c.CheckedInPetNames,
		})
	}
}

// capacityMonthHandler godoc
// @Summary Ocupación diaria de un mes
// @Tags capacity
// @Produce json
// @Param month query string true "Mes YYYY-MM"
// @Success 200 {object} httpx.Envelope{data=monthCapacityResponse}
// @Router /api/pets/capacity/month [get]
func capacityMonthHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, err := httpx.RequireMonth(r, "month")
		if err != nil {
			httpx.Error(w, r, log, err)
			return
		}
		mc, err := svc.CapacityByMonth(r.Context(), m)
		if err != nil {
			httpx.Error(w, r, log, err)
			return
		}
		days := make([]dayCapacityResponse, 0, len(mc.Days))
		for _, d := range mc.Days {
			days = append(days, dayCapacityResponse{
				Date:           d.Date,
				BookedCount:    d.BookedCount,
				CheckedInCount: d.CheckedInCount,
				AvailableCount: d.AvailableCount,
			})
		}
		httpx.OK(w, monthCapacityResponse{
			Month:       mc.Month.String(),
			MaxCapacity: mc.MaxCapacity,
			Days:        days,
		})
	}
}

// monthlyStatsHandler godoc
// @Summary Estadísticas financieras del mes
// @Description Ingreso y cobrado prorrateados por noches; costo del mes.
// @Tags finance
// @Produce json
// @Param month query string true "Mes YYYY-MM"
// @Success 200 {object} httpx.Envelope{data=monthlyStatsResponse}
// @Router /api/finance/monthly-stats [get]
func monthlyStatsHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, err := httpx.RequireMonth(r, "month")
		if err != nil {
			httpx.Error(w, r, log, err)
			return
		}
		st, err := svc.MonthlyStats(r.Context(), m)
		if err != nil {
			httpx.Error(w, r, log, err)
			return
		}
		httpx.OK(w, monthlyStatsResponse{
			Month:           st.Month.String(),
			TotalIncome:     st.TotalIncome,
			SettledAmount:   st.SettledAmount,
			UnsettledAmount: st.UnsettledAmount,
			TotalCost:       st.TotalCost,
			NetProfit:       st.NetProfit,
		})
	}
}

// totalStatsHandler godoc
// @Summary Totales históricos
// @Tags finance
// @Produce json
// @Success 200 {object} httpx.Envelope{data=totalStatsResponse}
// @Router /api/finance/total-stats [get]
func totalStatsHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, err := svc.TotalStats(r.Context())
		if err != nil {
			httpx.Error(w, r, log, err)
			return
		}
		httpx.OK(w, totalStatsResponse{
			TotalIncome: st.TotalIncome,
			TotalCost:   st.TotalCost,
			TotalProfit: st.TotalProfit,
		})
	}
}

// monthlyOrdersHandler godoc
// @Summary Pedidos por mes
// @Description Una estancia cuenta en cada mes donde pasa al menos una noche.
// @Tags finance
// @Produce json
// @Success 200 {object} httpx.Envelope{data=[]monthlyOrdersResponse}
// @Router /api/finance/monthly-orders [get]
func monthlyOrdersHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.MonthlyOrders(r.Context())
		if err != nil {
			httpx.Error(w, r, log, err)
			return
		}
		out := make([]monthlyOrdersResponse, 0, len(rows))
		for _, row := range rows {
			out = append(out, monthlyOrdersResponse{
				Month:       row.Month.String(),
				OrderCount:  row.OrderCount,
				TotalIncome: row.TotalIncome,
				TotalCost:   row.TotalCost,
				TotalProfit: row.TotalProfit,
			})
		}
		httpx.OK(w, out)
	}
}

// monthlyOrdersDetailHandler godoc
// @Summary Detalle de pedidos del mes
// @Description Cada estancia recortada al mes; otherFee prorrateado por noches.
// @Tags finance
// @Produce json
// @Param month query string true "Mes YYYY-MM"
// @Success 200 {object} httpx.Envelope{data=monthlyDetailResponse}
// @Router /api/finance/monthly-orders-detail [get]
func monthlyOrdersDetailHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, err := httpx.RequireMonth(r, "month")
		if err != nil {
			httpx.Error(w, r, log, err)
			return
		}
		d, err := svc.MonthlyOrdersDetail(r.Context(), m)
		if err != nil {
			httpx.Error(w, r, log, err)
			return
		}
		httpx.OK(w, toDetailResponse(d))
	}
}

// monthlyReportHandler godoc
// @Summary Reporte mensual por salida
// @Description Noches del mes a tarifa diaria; otherFee entero en el mes que contiene endDate.
// @Tags reports
// @Produce json
// @Param month query string true "Mes YYYY-MM"
// @Success 200 {object} httpx.Envelope{data=checkoutReportResponse}
// @Router /api/reports/monthly [get]
func monthlyReportHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, err := httpx.RequireMonth(r, "month")
		if err != nil {
			httpx.Error(w, r, log, err)
			return
		}
		rep, err := svc.MonthlyReportByCheckout(r.Context(), m)
		if err != nil {
			httpx.Error(w, r, log, err)
			return
		}
		details := make([]checkoutLineResponse, 0, len(rep.Details))
		for _, l := range rep.Details {
			details = append(details, checkoutLineResponse{
				PetID:       idgen.ID(l.PetID),
				Name:        l.Name,
				Breed:       l.Breed,
				Status:      string(l.Status),
				StartDate:   l.StartDate,
				EndDate:     l.EndDate,
				DaysInMonth: l.DaysInMonth,
				DailyFee:    l.DailyFee,
				DailyPart:   l.DailyPart,
				OtherPart:   l.OtherPart,
				Total:       l.Total,
			})
		}
		httpx.OK(w, checkoutReportResponse{
			Month:     rep.Month.String(),
			Income:    rep.Income,
			Cost:      rep.Cost,
			Profit:    rep.Profit,
			PetsCount: rep.PetsCount,
			Details:   details,
			CostItems: rep.CostItems,
		})
	}
}

func toDetailResponse(d MonthlyDetail) monthlyDetailResponse {
	orders := make([]orderDetailResponse, 0, len(d.Orders))
	for _, o := range d.Orders {
		orders = append(orders, orderDetailResponse{
			PetID:             idgen.ID(o.PetID),
			PetName:           o.PetName,
			StartDate:         o.StartDate,
			EndDate:           o.EndDate,
			DaysInMonth:       o.DaysInMonth,
			DailyFee:          o.DailyFee,
			OtherFee:          o.OtherFee,
			TotalIncome:       o.TotalIncome,
			OriginalStartDate: o.OriginalStartDate,
			OriginalEndDate:   o.OriginalEndDate,
			IsCrossMonth:      o.IsCrossMonth,
		})
	}
	return monthlyDetailResponse{
		Month: d.Month.String(),
		MonthlyCosts: monthlyCostsResponse{
			WaterFee:       d.MonthlyCosts.WaterFee,
			ElectricityFee: d.MonthlyCosts.ElectricityFee,
			RentFee:        d.MonthlyCosts.RentFee,
			OtherCostFee:   d.MonthlyCosts.OtherCostFee,
			TotalCost:      d.MonthlyCosts.TotalCost,
		},
		Orders: orders,
		Summary: detailSummaryResponse{
			TotalIncome: d.Summary.TotalIncome,
			TotalCost:   d.Summary.TotalCost,
			NetProfit:   d.Summary.NetProfit,
		},
	}
}
