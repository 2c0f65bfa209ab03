package handlers

import (
	"strconv"
	"strings"

	"github.com/ccmadmin/ccm-admin/internal/dataprovider"
	"github.com/ccmadmin/ccm-admin/internal/http/viewmodels"
	"github.com/ccmadmin/ccm-admin/internal/http/views"
	"github.com/labstack/echo/v5"
)

func parsePageParam(c *echo.Context) int {
	page := 1
	if rawPage := strings.TrimSpace(c.QueryParam("page")); rawPage != "" {
		if parsed, err := strconv.Atoi(rawPage); err == nil && parsed > 0 {
			page = parsed
		}
	}
	return page
}

func (h *Handlers) perPage() int {
	if h.Cfg.PageSize > 0 {
		return h.Cfg.PageSize
	}
	return 25
}

// loadPage binds the provider to the requested page, then applies the ?q=
// filter. A changed filter reloads through the provider's refresh listener;
// otherwise the page is loaded directly.
func loadPage[T any](c *echo.Context, provider *dataprovider.Provider[T], perPage int) (dataprovider.Page[T], string, error) {
	ctx := c.Request().Context()
	number := parsePageParam(c)

	var (
		page      dataprovider.Page[T]
		err       error
		refreshed bool
	)
	provider.OnRefresh(func(string) {
		page, err = provider.PageNumber(ctx, number, perPage)
		refreshed = true
	})

	query := strings.TrimSpace(c.QueryParam("q"))
	provider.SetFilter(query)
	if !refreshed {
		page, err = provider.PageNumber(ctx, number, perPage)
	}
	if err != nil {
		return dataprovider.Page[T]{}, query, err
	}
	return page, query, nil
}

func pagerData[T any](baseHref, query string, page dataprovider.Page[T]) viewmodels.PagerData {
	current := page.PageNumber()
	pager := viewmodels.PagerData{
		Query:       query,
		Page:        current,
		TotalPages:  page.TotalPages(),
		Total:       page.Total,
		ShowingFrom: page.ShowingFrom(),
		ShowingTo:   page.ShowingTo(),
	}
	if page.HasPrev() {
		pager.PrevURL = views.ListURL(baseHref, query, current-1)
	}
	if page.HasNext() {
		pager.NextURL = views.ListURL(baseHref, query, current+1)
	}
	return pager
}
