package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pet-boarding/internal/router"

	"github.com/shopspring/decimal"
)

// envelope replica el sobre de respuesta con data sin decodificar.
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	h, err := router.NewRouter(router.Options{})
	if err != nil {
		t.Fatalf("NewRouter: %v", err)
	}
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_Health(t *testing.T) {
	ts := newServer(t)

	st, env := doReq(t, ts.URL, "GET", "/health", nil)
	if st != http.StatusOK || env.Code != 0 {
		t.Fatalf("expected ok health, got %d %+v", st, env)
	}
}

func TestHTTP_PetLifecycleAndSettle(t *testing.T) {
	ts := newServer(t)

	// 1) Alta: 2 noches × 100 + 60
	pet := createPet(t, ts.URL, map[string]any{
		"name":      "Lucky",
		"startDate": "2025-09-10",
		"endDate":   "2025-09-12",
		"dailyFee":  "100",
		"otherFee":  "60",
	})
	if pet.Status != "booked" || pet.StayDays != 2 {
		t.Fatalf("unexpected pet %+v", pet)
	}
	assertAmount(t, "totalAmount", pet.TotalAmount, "260")

	// 2) El ingreso existe y se ve en la vista por estancia
	var view struct {
		IncomeID    string          `json:"incomeId"`
		TotalAmount decimal.Decimal `json:"totalAmount"`
	}
	mustOK(t, ts.URL, "GET", "/api/incomes/pet/"+pet.ID, nil, &view)
	if view.IncomeID == "" {
		t.Fatalf("expected an income for pet %s", pet.ID)
	}

	// 3) Cobro por encima del total => code -1
	{
		_, env := doReq(t, ts.URL, "PUT", "/api/incomes/"+view.IncomeID+"/settle?amount=300", nil)
		if env.Code != -1 || !strings.Contains(env.Message, "cap") {
			t.Fatalf("expected settle rejection, got %+v", env)
		}
	}

	// 4) Cobro válido
	var settled struct {
		SettledAmount   decimal.Decimal `json:"settledAmount"`
		UnsettledAmount decimal.Decimal `json:"unsettledAmount"`
	}
	mustOK(t, ts.URL, "PUT", "/api/incomes/"+view.IncomeID+"/settle?amount=200", nil, &settled)
	assertAmount(t, "settledAmount", settled.SettledAmount, "200")
	assertAmount(t, "unsettledAmount", settled.UnsettledAmount, "60")

	// 5) checkout sin checkin => code -1
	{
		_, env := doReq(t, ts.URL, "POST", "/api/pets/"+pet.ID+"/checkout", nil)
		if env.Code != -1 {
			t.Fatalf("expected checkout rejection, got %+v", env)
		}
	}

	// 6) checkin + checkout
	var out petView
	mustOK(t, ts.URL, "POST", "/api/pets/"+pet.ID+"/checkin", nil, &out)
	if out.Status != "checkedIn" {
		t.Fatalf("expected checkedIn, got %s", out.Status)
	}
	mustOK(t, ts.URL, "POST", "/api/pets/"+pet.ID+"/checkout", nil, &out)
	if out.Status != "checkedOut" {
		t.Fatalf("expected checkedOut, got %s", out.Status)
	}
	assertAmount(t, "totalAmount after checkout", out.TotalAmount, "260")
	assertAmount(t, "settledAmount after checkout", out.SettledAmount, "200")

	// 7) Baja: la estancia deja de existir
	mustOK(t, ts.URL, "DELETE", "/api/pets/"+pet.ID, nil, nil)
	{
		_, env := doReq(t, ts.URL, "GET", "/api/pets/"+pet.ID, nil)
		if env.Code != -1 {
			t.Fatalf("expected not found after delete, got %+v", env)
		}
	}
}

func TestHTTP_RejectsInvalidPet(t *testing.T) {
	ts := newServer(t)

	_, env := doReq(t, ts.URL, "POST", "/api/pets", map[string]any{
		"name":      "Bad",
		"startDate": "2025-09-12",
		"endDate":   "2025-09-10",
		"dailyFee":  "100",
	})
	if env.Code != -1 || env.Message == "server error" {
		t.Fatalf("expected a client error, got %+v", env)
	}
}

func TestHTTP_Capacity(t *testing.T) {
	ts := newServer(t)

	createPet(t, ts.URL, map[string]any{
		"name": "Booked", "startDate": "2025-09-14", "endDate": "2025-09-16", "dailyFee": "1",
	})
	createPet(t, ts.URL, map[string]any{
		"name": "InA", "startDate": "2025-09-15", "endDate": "2025-09-15", "dailyFee": "1", "status": "checkedIn",
	})
	createPet(t, ts.URL, map[string]any{
		"name": "InB", "startDate": "2025-09-01", "endDate": "2025-09-15", "dailyFee": "1", "status": "checkedIn",
	})
	createPet(t, ts.URL, map[string]any{
		"name": "Later", "startDate": "2025-09-16", "endDate": "2025-09-20", "dailyFee": "1",
	})

	var c struct {
		MaxCapacity       int      `json:"maxCapacity"`
		BookedCount       int      `json:"bookedCount"`
		CheckedInCount    int      `json:"checkedInCount"`
		AvailableCount    int      `json:"availableCount"`
		CheckedInPetNames []string `json:"checkedInPetNames"`
	}
	mustOK(t, ts.URL, "GET", "/api/pets/capacity?date=2025-09-15", nil, &c)
	if c.MaxCapacity != 10 || c.BookedCount != 1 || c.CheckedInCount != 2 || c.AvailableCount != 7 {
		t.Fatalf("unexpected capacity %+v", c)
	}
	if len(c.CheckedInPetNames) != 2 {
		t.Fatalf("expected 2 checked-in names, got %v", c.CheckedInPetNames)
	}

	// max_capacity configurable
	mustOK(t, ts.URL, "POST", "/api/settings", map[string]any{"key": "max_capacity", "value": "3"}, nil)
	mustOK(t, ts.URL, "GET", "/api/pets/capacity?date=2025-09-15", nil, &c)
	if c.MaxCapacity != 3 || c.AvailableCount != 0 {
		t.Fatalf("unexpected capacity after setting %+v", c)
	}

	var month struct {
		Month string `json:"month"`
		Days  []struct {
			Date        string `json:"date"`
			BookedCount int    `json:"bookedCount"`
		} `json:"days"`
	}
	mustOK(t, ts.URL, "GET", "/api/pets/capacity/month?month=2025-09", nil, &month)
	if month.Month != "2025-09" || len(month.Days) != 30 {
		t.Fatalf("unexpected month capacity %s days=%d", month.Month, len(month.Days))
	}
}

func TestHTTP_FinanceCrossMonth(t *testing.T) {
	ts := newServer(t)

	createPet(t, ts.URL, map[string]any{
		"name":      "Cross",
		"startDate": "2025-09-29",
		"endDate":   "2025-10-03",
		"dailyFee":  "100",
		"otherFee":  "40",
	})
	mustOK(t, ts.URL, "POST", "/api/costs", map[string]any{
		"costMonth": "2025-09",
		"waterFee":  "50",
		"rentFee":   "100",
	}, nil)

	var detail struct {
		Month  string `json:"month"`
		Orders []struct {
			DaysInMonth  int             `json:"daysInMonth"`
			TotalIncome  decimal.Decimal `json:"totalIncome"`
			IsCrossMonth bool            `json:"isCrossMonth"`
		} `json:"orders"`
		Summary struct {
			TotalIncome decimal.Decimal `json:"totalIncome"`
			TotalCost   decimal.Decimal `json:"totalCost"`
			NetProfit   decimal.Decimal `json:"netProfit"`
		} `json:"summary"`
	}
	for _, m := range []string{"2025-09", "2025-10"} {
		mustOK(t, ts.URL, "GET", "/api/finance/monthly-orders-detail?month="+m, nil, &detail)
		if len(detail.Orders) != 1 || detail.Orders[0].DaysInMonth != 2 || !detail.Orders[0].IsCrossMonth {
			t.Fatalf("%s: unexpected orders %+v", m, detail.Orders)
		}
		assertAmount(t, m+" income", detail.Orders[0].TotalIncome, "220")
	}
	mustOK(t, ts.URL, "GET", "/api/finance/monthly-orders-detail?month=2025-09", nil, &detail)
	assertAmount(t, "sep cost", detail.Summary.TotalCost, "150")
	assertAmount(t, "sep profit", detail.Summary.NetProfit, "70")

	var total struct {
		TotalIncome decimal.Decimal `json:"totalIncome"`
		TotalCost   decimal.Decimal `json:"totalCost"`
		TotalProfit decimal.Decimal `json:"totalProfit"`
	}
	mustOK(t, ts.URL, "GET", "/api/finance/total-stats", nil, &total)
	assertAmount(t, "total income", total.TotalIncome, "440")
	assertAmount(t, "total cost", total.TotalCost, "150")
	assertAmount(t, "total profit", total.TotalProfit, "290")

	// mes mal formado => code -1
	_, env := doReq(t, ts.URL, "GET", "/api/finance/monthly-stats?month=2025-13", nil)
	if env.Code != -1 {
		t.Fatalf("expected rejection for bad month, got %+v", env)
	}
}

type petView struct {
	ID            string          `json:"id"`
	Status        string          `json:"status"`
	StayDays      int             `json:"stayDays"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	SettledAmount decimal.Decimal `json:"settledAmount"`
}

func createPet(t *testing.T, baseURL string, payload map[string]any) petView {
	t.Helper()

	var p petView
	mustOK(t, baseURL, "POST", "/api/pets", payload, &p)
	if p.ID == "" {
		t.Fatalf("create pet: missing id")
	}
	return p
}

func mustOK(t *testing.T, baseURL, method, path string, payload any, out any) {
	t.Helper()

	st, env := doReq(t, baseURL, method, path, payload)
	if st != http.StatusOK || env.Code != 0 {
		t.Fatalf("%s %s: expected ok, got %d %+v", method, path, st, env)
	}
	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			t.Fatalf("%s %s: decode data: %v body=%s", method, path, err, string(env.Data))
		}
	}
}

func doReq(t *testing.T, baseURL, method, path string, payload any) (int, envelope) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("%s %s: invalid envelope: %v body=%s", method, path, err, string(raw))
	}
	return resp.StatusCode, env
}

func assertAmount(t *testing.T, name string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Fatalf("%s = %s, want %s", name, got, want)
	}
}
