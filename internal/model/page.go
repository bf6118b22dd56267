package model

// PageMeta describes one page of a listing result.
type PageMeta struct {
	CurrentPage int  `json:"current_page"`
	TotalPages  int  `json:"total_pages"`
	TotalItems  int  `json:"total_items"`
	HasNext     bool `json:"has_next"`
	HasPrev     bool `json:"has_prev"`
}

// NewPageMeta clamps page to >= 1 and derives the navigation flags.
// A page past the end yields HasNext=false rather than an error.
func NewPageMeta(page, pageSize, total int) PageMeta {
	if page < 1 {
		page = 1
	}
	totalPages := 0
	if total > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}
	return PageMeta{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalItems:  total,
		HasNext:     page < totalPages,
		HasPrev:     page > 1 && total > 0,
	}
}

// Offset converts a 1-based page number into a row offset.
func Offset(page, pageSize int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * pageSize
}
