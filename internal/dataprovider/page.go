package dataprovider

import "strings"

type Page[T any] struct {
	Items  []T
	Total  int64
	Offset int
	Limit  int
}

func (p Page[T]) PageNumber() int {
	if p.Limit < 1 {
		return 1
	}
	page, _, _ := Paginate(p.Total, p.Offset/p.Limit+1, p.Limit)
	return page
}

func (p Page[T]) TotalPages() int {
	_, totalPages, _ := Paginate(p.Total, 1, p.Limit)
	return totalPages
}

func (p Page[T]) HasPrev() bool {
	return p.PageNumber() > 1
}

func (p Page[T]) HasNext() bool {
	return p.PageNumber() < p.TotalPages()
}

func (p Page[T]) ShowingFrom() int {
	from, _ := ShowingRange(p.Total, p.Offset, len(p.Items))
	return from
}

func (p Page[T]) ShowingTo() int {
	_, to := ShowingRange(p.Total, p.Offset, len(p.Items))
	return to
}

// Paginate clamps page into [1, totalPages] and returns (page, totalPages, offset).
func Paginate(totalCount int64, page, perPage int) (int, int, int) {
	if perPage < 1 {
		perPage = 1
	}
	if page < 1 {
		page = 1
	}
	denom := int64(perPage)
	totalPages := int((totalCount + denom - 1) / denom)
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}
	offset := (page - 1) * perPage
	return page, totalPages, offset
}

func ShowingRange(totalCount int64, offset, showingCount int) (int, int) {
	if totalCount <= 0 || showingCount <= 0 {
		return 0, 0
	}
	showingFrom := offset + 1
	showingTo := offset + showingCount
	if int64(showingTo) > totalCount {
		showingTo = int(totalCount)
	}
	return showingFrom, showingTo
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// LikePrefix builds an ILIKE pattern matching values that start with filter.
// Queries must declare ESCAPE '\'.
func LikePrefix(filter string) string {
	return likeEscaper.Replace(strings.TrimSpace(filter)) + "%"
}
