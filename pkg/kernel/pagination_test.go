package kernel

import "testing"

func TestNormalizeClampsOutOfRangeValues(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		in       PaginationOptions
		page     int
		pageSize int
	}{
		{"zero value", PaginationOptions{}, 1, 20},
		{"negative page", PaginationOptions{Page: -3, PageSize: 10}, 1, 10},
		{"oversized page size", PaginationOptions{Page: 2, PageSize: 500}, 2, 20},
		{"valid untouched", PaginationOptions{Page: 4, PageSize: 50}, 4, 50},
		{"upper boundary kept", PaginationOptions{Page: 1, PageSize: 100}, 1, 100},
	}

	for _, tc := range cases {
		got := tc.in.Normalize()
		if got.Page != tc.page || got.PageSize != tc.pageSize {
			t.Fatalf("%s: got page=%d size=%d, want page=%d size=%d",
				tc.name, got.Page, got.PageSize, tc.page, tc.pageSize)
		}
	}
}

func TestOffset(t *testing.T) {
	t.Parallel()

	if off := (PaginationOptions{Page: 1, PageSize: 20}).Offset(); off != 0 {
		t.Fatalf("first page offset should be 0, got %d", off)
	}
	if off := (PaginationOptions{Page: 3, PageSize: 25}).Offset(); off != 50 {
		t.Fatalf("expected offset 50, got %d", off)
	}
}

func TestNewPageRoundsUp(t *testing.T) {
	t.Parallel()

	page := NewPage(PaginationOptions{Page: 2, PageSize: 20}, 41)
	if page.Pages != 3 {
		t.Fatalf("41 rows at 20 per page should be 3 pages, got %d", page.Pages)
	}
	if page.Total != 41 || page.Number != 2 || page.Size != 20 {
		t.Fatalf("unexpected page metadata %+v", page)
	}

	if empty := NewPage(PaginationOptions{Page: 1, PageSize: 20}, 0); empty.Pages != 0 {
		t.Fatalf("zero rows should be zero pages, got %d", empty.Pages)
	}
}
