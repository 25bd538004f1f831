package utils

import "testing"

func TestNewPagination(t *testing.T) {
	cases := []struct {
		name       string
		page       int
		size       int
		total      int64
		wantPages  int
	}{
		{"exact fit", 1, 20, 40, 2},
		{"partial last page", 1, 20, 41, 3},
		{"empty set still has one page", 1, 20, 0, 1},
		{"single item", 1, 20, 1, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPagination(PageRequest{Page: tc.page, PageSize: tc.size}, tc.total)
			if p.TotalPages != tc.wantPages {
				t.Fatalf("expected %d pages, got %d", tc.wantPages, p.TotalPages)
			}
			if p.TotalCount != tc.total || p.CurrentPage != tc.page || p.PageSize != tc.size {
				t.Fatalf("wrong meta: %+v", p)
			}
		})
	}
}

func TestNewPaginationUnpaginated(t *testing.T) {
	p := NewPagination(PageRequest{Page: 1, PageSize: DefaultPageSize, NoPagination: true}, 57)
	if p.TotalPages != 1 {
		t.Fatalf("unpaginated response is one page, got %d", p.TotalPages)
	}
	if p.PageSize != 57 {
		t.Fatalf("page_size must reflect the returned size, got %d", p.PageSize)
	}
	if p.TotalCount != 57 || p.CurrentPage != 1 {
		t.Fatalf("wrong meta: %+v", p)
	}
}

func TestPageRequestOffset(t *testing.T) {
	if got := (PageRequest{Page: 1, PageSize: 20}).Offset(); got != 0 {
		t.Fatalf("expected offset 0, got %d", got)
	}
	if got := (PageRequest{Page: 3, PageSize: 25}).Offset(); got != 50 {
		t.Fatalf("expected offset 50, got %d", got)
	}
}
