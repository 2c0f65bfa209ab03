package i18n

import (
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/language"
)

const (
	// LangParam selects a language for the request and persists it.
	LangParam = "lang"
	// LangCookieName stores the selected language.
	LangCookieName = "ccm_lang"
)

// Resolve picks the request language from ?lang=, then the language cookie,
// then Accept-Language, then the default. The bool reports whether the choice
// came from the query parameter and should be persisted.
func (c *Catalog) Resolve(r *http.Request) (language.Tag, bool) {
	if r == nil {
		return c.fallback, false
	}
	if raw := strings.TrimSpace(r.URL.Query().Get(LangParam)); raw != "" {
		if tag, ok := c.Parse(raw); ok {
			return tag, true
		}
	}
	if cookie, err := r.Cookie(LangCookieName); err == nil {
		if tag, ok := c.Parse(cookie.Value); ok {
			return tag, false
		}
	}
	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tags) > 0 {
			return c.Match(tags...), false
		}
	}
	return c.fallback, false
}

func SetLanguageCookie(w http.ResponseWriter, tag language.Tag, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookieName,
		Value:    tag.String(),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
