package i18n

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"golang.org/x/text/language"
)

func loadTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := LoadEmbedded("en-US")
	if err != nil {
		t.Fatalf("LoadEmbedded() error = %v", err)
	}
	return c
}

func TestEmbeddedCatalogsDefineBaseKeys(t *testing.T) {
	t.Parallel()

	c := loadTestCatalog(t)
	if !c.HasLocale("en-US") || !c.HasLocale("de-DE") {
		t.Fatalf("Locales() = %v, want en-US and de-DE", c.Locales())
	}

	base := map[string]bool{}
	for _, key := range c.Keys(BaseLocale) {
		base[key] = true
	}
	for _, locale := range c.Locales() {
		for _, key := range c.Keys(locale) {
			if !base[key] {
				t.Fatalf("locale %s defines %q which is missing from %s", locale, key, BaseLocale)
			}
		}
	}
}

func TestTranslatorLookups(t *testing.T) {
	t.Parallel()

	c := loadTestCatalog(t)
	en := c.Translator(language.MustParse("en-US"))
	de := c.Translator(language.MustParse("de-DE"))

	if got := en.T("nav.users"); got != "Users" {
		t.Fatalf("en nav.users = %q, want Users", got)
	}
	if got := de.T("nav.users"); got != "Benutzer" {
		t.Fatalf("de nav.users = %q, want Benutzer", got)
	}
	if got := en.T("table.showing", 1, 25, 40); got != "Showing 1-25 of 40" {
		t.Fatalf("en table.showing = %q", got)
	}
	if got := en.T("no.such.key"); got != "no.such.key" {
		t.Fatalf("missing key rendered %q, want the key itself", got)
	}
	var nilTranslator *Translator
	if got := nilTranslator.T("nav.users"); got != "nav.users" {
		t.Fatalf("nil translator rendered %q", got)
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	c := loadTestCatalog(t)
	tests := []struct {
		name        string
		target      string
		cookie      string
		accept      string
		want        string
		wantPersist bool
	}{
		{name: "default", target: "/", want: "en-US"},
		{name: "query", target: "/?lang=de-DE", want: "de-DE", wantPersist: true},
		{name: "query base language", target: "/?lang=de", want: "de-DE", wantPersist: true},
		{name: "unsupported query falls through to cookie", target: "/?lang=xx-invalid-", cookie: "de-DE", want: "de-DE"},
		{name: "accept language", target: "/", accept: "de-AT,de;q=0.9,en;q=0.5", want: "de-DE"},
		{name: "accept unsupported", target: "/", accept: "ja", want: "en-US"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, tc.target, nil)
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: LangCookieName, Value: tc.cookie})
			}
			if tc.accept != "" {
				req.Header.Set("Accept-Language", tc.accept)
			}
			tag, persist := c.Resolve(req)
			if tag.String() != tc.want || persist != tc.wantPersist {
				t.Fatalf("Resolve() = %s, %v; want %s, %v", tag, persist, tc.want, tc.wantPersist)
			}
		})
	}
}

func TestLoadFromFSValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		files   fstest.MapFS
		wantErr string
	}{
		{
			name: "locale mismatch",
			files: fstest.MapFS{
				"locales/en-US/AdminResources.yaml": {Data: []byte("locale: de-DE\nbundle: AdminResources\nmessages:\n  a: b\n")},
			},
			wantErr: "must match path locale",
		},
		{
			name: "wrong bundle",
			files: fstest.MapFS{
				"locales/en-US/AdminResources.yaml": {Data: []byte("locale: en-US\nbundle: Other\nmessages:\n  a: b\n")},
			},
			wantErr: "bundle must be",
		},
		{
			name: "missing base locale",
			files: fstest.MapFS{
				"locales/de-DE/AdminResources.yaml": {Data: []byte("locale: de-DE\nbundle: AdminResources\nmessages:\n  a: b\n")},
			},
			wantErr: "base locale",
		},
		{
			name:    "no catalogs",
			files:   fstest.MapFS{},
			wantErr: "no AdminResources catalogs",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := LoadFromFS(tc.files, "en-US")
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("LoadFromFS() error = %v, want containing %q", err, tc.wantErr)
			}
		})
	}
}

func TestUnsupportedDefaultLocaleFallsBackToBase(t *testing.T) {
	t.Parallel()

	c, err := LoadEmbedded("fr-FR")
	if err != nil {
		t.Fatalf("LoadEmbedded() error = %v", err)
	}
	if c.Default().String() != BaseLocale {
		t.Fatalf("Default() = %s, want %s", c.Default(), BaseLocale)
	}
}
