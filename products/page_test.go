package products_test

import (
	"testing"

	"github.com/jrsteele09/go-catalog-server/products"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDefaults(t *testing.T) {
	params := products.SearchParams{}.Normalize()
	require.Equal(t, 1, params.PageNumber)
	require.Equal(t, 10, params.PageSize)
	require.Equal(t, []string{"id"}, params.OrderBy)
}

func TestNormalizeDropsUnknownOrderFields(t *testing.T) {
	params := products.SearchParams{
		PageNumber: 2,
		PageSize:   5,
		OrderBy:    []string{"price", "drop table", "name"},
	}.Normalize()
	require.Equal(t, []string{"price", "name"}, params.OrderBy)
	require.Equal(t, 5, params.Offset())
}

func TestNewPageTotals(t *testing.T) {
	tests := []struct {
		name       string
		totalCount int
		pageSize   int
		totalPages int
	}{
		{name: "exact multiple", totalCount: 20, pageSize: 10, totalPages: 2},
		{name: "remainder rounds up", totalCount: 21, pageSize: 10, totalPages: 3},
		{name: "single short page", totalCount: 3, pageSize: 10, totalPages: 1},
		{name: "empty", totalCount: 0, pageSize: 10, totalPages: 0},
		{name: "page size one", totalCount: 7, pageSize: 1, totalPages: 7},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			params := products.SearchParams{PageNumber: 1, PageSize: tc.pageSize}.Normalize()
			page := products.NewPage(nil, params, tc.totalCount)
			require.Equal(t, tc.totalPages, page.TotalPages)
			require.Equal(t, tc.totalCount, page.TotalCount)
			require.False(t, page.HasPreviousPage)
			require.Equal(t, tc.totalPages > 1, page.HasNextPage)
		})
	}
}
