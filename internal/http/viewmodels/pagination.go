package viewmodels

type PagerData struct {
	Query       string
	Page        int
	TotalPages  int
	Total       int64
	ShowingFrom int
	ShowingTo   int
	PrevURL     string
	NextURL     string
}

func (p PagerData) HasPrev() bool {
	return p.PrevURL != ""
}

func (p PagerData) HasNext() bool {
	return p.NextURL != ""
}
