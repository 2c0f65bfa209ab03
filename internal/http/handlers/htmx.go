package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v5"
)

const (
	headerHXRequest  = "HX-Request"
	headerHXTarget   = "HX-Target"
	headerHXRedirect = "HX-Redirect"
)

func requestHeader(c *echo.Context, name string) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	return strings.TrimSpace(c.Request().Header.Get(name))
}

func isHX(c *echo.Context) bool {
	return strings.EqualFold(requestHeader(c, headerHXRequest), "true")
}

func isHXTarget(c *echo.Context, target string) bool {
	return strings.EqualFold(requestHeader(c, headerHXTarget), strings.TrimSpace(target))
}

func setHXRedirect(c *echo.Context, url string) {
	if c == nil {
		return
	}
	c.Response().Header().Set(headerHXRedirect, url)
}

// wantsResults reports whether a list request only asked for the results
// region named target. The response varies on both htmx headers either way.
func wantsResults(c *echo.Context, target string) bool {
	addVary(c, headerHXRequest, headerHXTarget)
	return isHXTarget(c, target)
}

// seeOther ends a dialog submission. htmx requests get an HX-Redirect so the
// whole page reloads instead of swapping the list into the dialog.
func seeOther(c *echo.Context, location string) error {
	addVary(c, headerHXRequest)
	if isHX(c) {
		setHXRedirect(c, location)
		return c.NoContent(http.StatusOK)
	}
	return c.Redirect(http.StatusSeeOther, location)
}

// addVary merges values into the Vary header without duplicates. A wildcard
// Vary is left untouched.
func addVary(c *echo.Context, values ...string) {
	if c == nil || len(values) == 0 {
		return
	}

	header := c.Response().Header()
	var tokens []string
	for _, line := range header.Values(echo.HeaderVary) {
		tokens = append(tokens, strings.Split(line, ",")...)
	}
	tokens = append(tokens, values...)

	seen := make(map[string]bool, len(tokens))
	merged := make([]string, 0, len(tokens))
	for _, token := range tokens {
		token = strings.TrimSpace(token)
		switch {
		case token == "":
			continue
		case token == "*":
			header.Set(echo.HeaderVary, "*")
			return
		}
		canonical := http.CanonicalHeaderKey(token)
		if seen[canonical] {
			continue
		}
		seen[canonical] = true
		merged = append(merged, canonical)
	}
	if len(merged) > 0 {
		header.Set(echo.HeaderVary, strings.Join(merged, ", "))
	}
}
