package products

// allowedOrderFields is the whitelist of columns a caller may order by.
// Anything else in the request is silently dropped.
var allowedOrderFields = map[string]struct{}{
	"id":          {},
	"name":        {},
	"price":       {},
	"description": {},
}

const (
	defaultPageNumber = 1
	defaultPageSize   = 10
)

// SearchParams is the paginated search request for the catalog.
type SearchParams struct {
	PageNumber int      `json:"pageNumber"`
	PageSize   int      `json:"pageSize"`
	OrderBy    []string `json:"orderBy"`
	Search     string   `json:"search"`
}

// Normalize applies defaults and strips order fields that are not in the
// whitelist. Returns the sanitized copy, leaving the original untouched.
func (p SearchParams) Normalize() SearchParams {
	if p.PageNumber < 1 {
		p.PageNumber = defaultPageNumber
	}
	if p.PageSize < 1 {
		p.PageSize = defaultPageSize
	}

	orderBy := make([]string, 0, len(p.OrderBy))
	for _, field := range p.OrderBy {
		if _, ok := allowedOrderFields[field]; ok {
			orderBy = append(orderBy, field)
		}
	}
	if len(orderBy) == 0 {
		orderBy = []string{"id"}
	}
	p.OrderBy = orderBy

	return p
}

// Offset is the number of rows to skip for the requested page.
func (p SearchParams) Offset() int {
	return (p.PageNumber - 1) * p.PageSize
}

// Page is one page of search results plus the cursor bookkeeping clients
// use to render pagination controls.
type Page struct {
	Data            []*Product `json:"data"`
	CurrentPage     int        `json:"currentPage"`
	TotalPages      int        `json:"totalPages"`
	TotalCount      int        `json:"totalCount"`
	PageSize        int        `json:"pageSize"`
	HasPreviousPage bool       `json:"hasPreviousPage"`
	HasNextPage     bool       `json:"hasNextPage"`
}

// NewPage assembles a Page from one page of rows and the total filtered
// count. TotalPages is ceil(totalCount / pageSize).
func NewPage(data []*Product, params SearchParams, totalCount int) *Page {
	totalPages := (totalCount + params.PageSize - 1) / params.PageSize
	return &Page{
		Data:            data,
		CurrentPage:     params.PageNumber,
		TotalPages:      totalPages,
		TotalCount:      totalCount,
		PageSize:        params.PageSize,
		HasPreviousPage: params.PageNumber > 1,
		HasNextPage:     params.PageNumber < totalPages,
	}
}
