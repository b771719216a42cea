package pagination

import (
	"math"
	"strconv"
)

// window is how many page links are shown around the current page.
const window = 5

type Pager struct {
	TotalItems  int
	CurrentPage int
	PageSize    int
	TotalPages  int
	Pages       []int
}

func NewPager(totalItems, currentPage, pageSize int) Pager {
	if pageSize < 1 {
		pageSize = 1
	}
	totalPages := int(math.Ceil(float64(totalItems) / float64(pageSize)))
	if currentPage < 1 || totalPages == 0 {
		currentPage = 1
	}
	if totalPages > 0 && currentPage > totalPages {
		currentPage = totalPages
	}

	start := currentPage - window/2
	if start < 1 {
		start = 1
	}
	end := start + window - 1
	if end > totalPages {
		end = totalPages
		start = end - window + 1
		if start < 1 {
			start = 1
		}
	}

	var pages []int
	for i := start; i <= end; i++ {
		pages = append(pages, i)
	}

	return Pager{
		TotalItems:  totalItems,
		CurrentPage: currentPage,
		PageSize:    pageSize,
		TotalPages:  totalPages,
		Pages:       pages,
	}
}

// PageParam parses a ?page= value, defaulting to 1.
func PageParam(value string) int {
	page, err := strconv.Atoi(value)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func (p Pager) Offset() int {
	if p.CurrentPage < 1 {
		return 0
	}
	return (p.CurrentPage - 1) * p.PageSize
}

func (p Pager) HasPrev() bool {
	return p.CurrentPage > 1
}

func (p Pager) HasNext() bool {
	return p.CurrentPage < p.TotalPages
}
