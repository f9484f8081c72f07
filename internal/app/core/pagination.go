package core

// Page sizes of the paginated listings.
const (
	RestaurantsPageSize = 3
	CategoryPageSize    = 25
	SearchPageSize      = 25
)

// PaginationOutput is embedded by paginated outputs.
type PaginationOutput struct {
	TotalPages   int
	TotalResults int
}

// NormalizePage maps any page below 1 to the first page.
func NormalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// Offset returns the number of rows to skip to reach page.
func Offset(page, size int) int {
	return (NormalizePage(page) - 1) * size
}

// TotalPages is ceil(total / size).
func TotalPages(total, size int) int {
	if size <= 0 || total <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

func NewPagination(total, size int) PaginationOutput {
	return PaginationOutput{TotalPages: TotalPages(total, size), TotalResults: total}
}
