package handlers

import (
	"ems/internal/pagination"
)

// fetchPage loads the requested page and, when it lies past the last page,
// reloads the last one so the list and the pager agree.
func fetchPage[T any](page, pageSize int, fetch func(pagination.Pager) ([]T, int, error)) ([]T, pagination.Pager, error) {
	list, total, err := fetch(pagination.Pager{CurrentPage: page, PageSize: pageSize})
	if err != nil {
		return nil, pagination.Pager{}, err
	}

	pager := pagination.NewPager(total, page, pageSize)
	if pager.CurrentPage != page && total > 0 {
		list, total, err = fetch(pager)
		if err != nil {
			return nil, pagination.Pager{}, err
		}
		pager = pagination.NewPager(total, pager.CurrentPage, pageSize)
	}
	return list, pager, nil
}
