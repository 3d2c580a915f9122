package idgen

import (
	"encoding/json"
	"testing"
)

func TestNextID_StrictlyIncreasing(t *testing.T) {
	g, err := New(1)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	prev := g.NextID()
	for i := 0; i < 5000; i++ {
		id := g.NextID()
		if id <= prev {
			t.Fatalf("id %d not greater than %d", id, prev)
		}
		prev = id
	}
}

func TestNew_RejectsNodeOutOfRange(t *testing.T) {
	if _, err := New(4096); err == nil {
		t.Fatalf("expected error for node out of range")
	}
}

func TestID_JSON(t *testing.T) {
	var in struct {
		A ID  `json:"a"`
		B ID  `json:"b"`
		C *ID `json:"c"`
	}
	if err := json.Unmarshal([]byte(`{"a":"1760000000000000001","b":42,"c":null}`), &in); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if in.A != 1760000000000000001 || in.B != 42 || in.C != nil {
		t.Fatalf("unexpected %+v", in)
	}

	out, err := json.Marshal(in.A)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `"1760000000000000001"` {
		t.Fatalf("json = %s", out)
	}
}
