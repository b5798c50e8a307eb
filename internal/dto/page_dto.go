package dto

// PageMeta describes one page of a paginated listing.
type PageMeta struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// NewPageMeta computes TotalPages from the total row count.
func NewPageMeta(page, perPage int, total int64) PageMeta {
	pages := int((total + int64(perPage) - 1) / int64(perPage))
	return PageMeta{Page: page, PerPage: perPage, Total: total, TotalPages: pages}
}
