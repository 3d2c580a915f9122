package money

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestRatio(t *testing.T) {
	cases := []struct {
		part, whole int
		want        string
	}{
		{2, 4, "0.5"},
		{1, 3, "0.3333"},
		{2, 3, "0.6667"},
		{0, 5, "0"},
		{3, 0, "1"},
	}
	for _, tc := range cases {
		got := Ratio(tc.part, tc.whole)
		if !got.Equal(decimal.RequireFromString(tc.want)) {
			t.Fatalf("Ratio(%d,%d) = %s, want %s", tc.part, tc.whole, got, tc.want)
		}
	}
}

func TestShare_RoundsHalfUp(t *testing.T) {
	// 10 * 0.3333 = 3.333 -> 3.33 ; 0.5 * 0.01 = 0.005 -> 0.01
	if got := Share(decimal.NewFromInt(10), Ratio(1, 3)); got.String() != "3.33" {
		t.Fatalf("share = %s", got)
	}
	if got := Share(decimal.RequireFromString("0.01"), decimal.RequireFromString("0.5")); got.String() != "0.01" {
		t.Fatalf("share = %s", got)
	}
}

func TestJSONWithoutQuotes(t *testing.T) {
	b, err := json.Marshal(map[string]decimal.Decimal{"v": decimal.RequireFromString("260.00")})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"v":260}` {
		t.Fatalf("json = %s", b)
	}
}
