package paging

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		in, want Request
	}{
		{Request{}, Request{Page: 1, Size: 10}},
		{Request{Page: -3, Size: 500}, Request{Page: 1, Size: 200}},
		{Request{Page: 4, Size: 25}, Request{Page: 4, Size: 25}},
	}
	for _, tc := range cases {
		if got := tc.in.Normalize(); got != tc.want {
			t.Fatalf("Normalize(%+v) = %+v, want %+v", tc.in, got, tc.want)
		}
	}
}

func TestSlice(t *testing.T) {
	all := []int{1, 2, 3, 4, 5}

	p := Slice(all, Request{Page: 2, Size: 2})
	if len(p.Records) != 2 || p.Records[0] != 3 || p.Total != 5 || p.Pages != 3 || p.Current != 2 {
		t.Fatalf("unexpected page %+v", p)
	}

	past := Slice(all, Request{Page: 9, Size: 2})
	if len(past.Records) != 0 || past.Records == nil {
		t.Fatalf("expected empty non-nil records, got %+v", past)
	}
}

func TestHugePage_StaysInBounds(t *testing.T) {
	req := Request{Page: 922337203685477582, Size: 10}.Normalize()
	if req.Page != MaxPage {
		t.Fatalf("page = %d, want %d", req.Page, MaxPage)
	}
	if off := req.Offset(); off < 0 {
		t.Fatalf("offset overflowed: %d", off)
	}

	lo, hi := Request{Page: 922337203685477582, Size: 10}.Window(5)
	if lo != 5 || hi != 5 {
		t.Fatalf("window = [%d, %d), want [5, 5)", lo, hi)
	}

	p := Slice([]int{1, 2, 3}, Request{Page: 922337203685477582, Size: 10})
	if len(p.Records) != 0 || p.Total != 3 {
		t.Fatalf("unexpected page %+v", p)
	}
}
