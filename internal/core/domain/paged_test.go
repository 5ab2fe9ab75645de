package domain

import (
	"reflect"
	"testing"
)

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func TestNewPagedResponse(t *testing.T) {
	tests := []struct {
		name      string
		page      int
		limit     int
		data      []int
		wantPage  int
		wantLimit int
		wantPages int
		wantData  []int
	}{
		{
			name: "second page", page: 2, limit: 3, data: seq(10),
			wantPage: 2, wantLimit: 3, wantPages: 4, wantData: []int{3, 4, 5},
		},
		{
			name: "first page", page: 1, limit: 3, data: seq(10),
			wantPage: 1, wantLimit: 3, wantPages: 4, wantData: []int{0, 1, 2},
		},
		{
			name: "last partial page", page: 4, limit: 3, data: seq(10),
			wantPage: 4, wantLimit: 3, wantPages: 4, wantData: []int{9},
		},
		{
			name: "page past the end clamps", page: 9, limit: 3, data: seq(10),
			wantPage: 4, wantLimit: 3, wantPages: 4, wantData: []int{9},
		},
		{
			name: "limit above total clamps", page: 1, limit: 50, data: seq(4),
			wantPage: 1, wantLimit: 4, wantPages: 1, wantData: []int{0, 1, 2, 3},
		},
		{
			name: "exact multiple", page: 2, limit: 5, data: seq(10),
			wantPage: 2, wantLimit: 5, wantPages: 2, wantData: []int{5, 6, 7, 8, 9},
		},
		{
			name: "page zero", page: 0, limit: 3, data: seq(10),
			wantPage: 0, wantLimit: 3, wantPages: 0, wantData: []int{},
		},
		{
			name: "empty data", page: 1, limit: 3, data: nil,
			wantPage: 0, wantLimit: 0, wantPages: 0, wantData: []int{},
		},
		{
			name: "zero limit", page: 1, limit: 0, data: seq(3),
			wantPage: 1, wantLimit: 0, wantPages: 0, wantData: []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewPagedResponse(tt.page, tt.limit, tt.data)

			if got.Page != tt.wantPage {
				t.Errorf("Page = %d, want %d", got.Page, tt.wantPage)
			}
			if got.Limit != tt.wantLimit {
				t.Errorf("Limit = %d, want %d", got.Limit, tt.wantLimit)
			}
			if got.NumberOfPages != tt.wantPages {
				t.Errorf("NumberOfPages = %d, want %d", got.NumberOfPages, tt.wantPages)
			}
			if got.Total != len(tt.data) {
				t.Errorf("Total = %d, want %d", got.Total, len(tt.data))
			}
			if !reflect.DeepEqual(got.Data, tt.wantData) {
				t.Errorf("Data = %v, want %v", got.Data, tt.wantData)
			}
		})
	}
}

func TestNewPagedResponse_DoesNotAlias(t *testing.T) {
	data := seq(6)
	p := NewPagedResponse(1, 3, data)
	p.Data[0] = 99
	if data[0] != 0 {
		t.Error("page data should not alias the input slice")
	}
}

func TestMapPaged(t *testing.T) {
	p := NewPagedResponse(2, 2, []int{1, 2, 3, 4, 5})
	m := MapPaged(p, func(v int) string { return string(rune('a' + v - 1)) })

	if m.Page != p.Page || m.NumberOfPages != p.NumberOfPages || m.Total != p.Total {
		t.Errorf("metadata changed: %+v vs %+v", m, p)
	}
	if !reflect.DeepEqual(m.Data, []string{"c", "d"}) {
		t.Errorf("Data = %v", m.Data)
	}
}
