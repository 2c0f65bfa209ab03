package views

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

func FormatInt(v int) string {
	return strconv.Itoa(v)
}

func FormatInt64(v int64) string {
	return strconv.FormatInt(v, 10)
}

// ListURL builds a list page link that keeps the filter and page number.
func ListURL(baseHref string, query string, page int) string {
	query = strings.TrimSpace(query)

	values := url.Values{}
	if query != "" {
		values.Set("q", query)
	}
	if page > 1 {
		values.Set("page", strconv.Itoa(page))
	}
	if len(values) == 0 {
		return baseHref
	}
	return baseHref + "?" + values.Encode()
}

// RoleKey is the message key naming a console role.
func RoleKey(role string) string {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case "admin":
		return "users.role.admin"
	case "viewer":
		return "users.role.viewer"
	default:
		return "users.role.none"
	}
}

func RoleBadgeClass(role string) string {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case "admin":
		return "badge badge-info"
	case "viewer":
		return "badge badge-muted"
	default:
		return "badge-outline"
	}
}

func AlertRole(destructive bool) string {
	if destructive {
		return "alert"
	}
	return "status"
}

func AlertAriaLive(destructive bool) string {
	if destructive {
		return "assertive"
	}
	return "polite"
}

func IsActivePath(activePath, target string) bool {
	activePath = strings.TrimSpace(activePath)
	target = strings.TrimSpace(target)
	if target == "/" {
		return activePath == "/"
	}
	return activePath == target || strings.HasPrefix(activePath, target+"/")
}

func AriaCurrent(activePath, target string) string {
	if IsActivePath(activePath, target) {
		return "page"
	}
	return ""
}

// Indent is the left padding, in rem, of a tree row at depth.
func Indent(depth int) string {
	if depth < 1 {
		return "0"
	}
	return strconv.FormatFloat(float64(depth-1)*1.5, 'f', -1, 64)
}

// Dict packs alternating keys and values so partials can take several arguments.
func Dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, errors.New("dict: odd number of arguments")
	}
	out := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is not a string", pairs[i])
		}
		out[key] = pairs[i+1]
	}
	return out, nil
}
