package paging

import (
	"net/http/httptest"
	"testing"
)

func TestParsePage(t *testing.T) {
	tests := []struct {
		url  string
		want int
	}{
		{"/audit", 1},
		{"/audit?page=3", 3},
		{"/audit?page=0", 1},
		{"/audit?page=-2", 1},
		{"/audit?page=abc", 1},
	}
	for _, tt := range tests {
		r := httptest.NewRequest("GET", tt.url, nil)
		if got := ParsePage(r); got != tt.want {
			t.Errorf("ParsePage(%q) = %d, want %d", tt.url, got, tt.want)
		}
	}
}

func TestOffset(t *testing.T) {
	if got := Offset(1); got != 0 {
		t.Errorf("Offset(1) = %d, want 0", got)
	}
	if got := Offset(3); got != 2*PageSize {
		t.Errorf("Offset(3) = %d, want %d", got, 2*PageSize)
	}
	if got := Offset(0); got != 0 {
		t.Errorf("Offset(0) = %d, want 0", got)
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total int64
		want  int
	}{
		{0, 1},
		{1, 1},
		{PageSize, 1},
		{PageSize + 1, 2},
		{3 * PageSize, 3},
	}
	for _, tt := range tests {
		if got := TotalPages(tt.total); got != tt.want {
			t.Errorf("TotalPages(%d) = %d, want %d", tt.total, got, tt.want)
		}
	}
}
