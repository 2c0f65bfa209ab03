package viewmodels

import "github.com/ccmadmin/ccm-admin/internal/i18n"

type LayoutData struct {
	Title          string
	CSRFToken      string
	UserName       string
	UserRole       string
	IsAdmin        bool
	ConsoleEnabled bool
	Toast          *ToastViewData
	ActivePath     string
	Lang           string
	Locales        []LocaleOption
	Translator     *i18n.Translator
}

// T resolves key in the AdminResources bundle for the request language.
func (l LayoutData) T(key string, args ...any) string {
	return l.Translator.T(key, args...)
}

type LocaleOption struct {
	Tag    string
	Label  string
	Active bool
}

type ToastViewData struct {
	Category    string `json:"category"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

type Alert struct {
	Title       string
	Message     string
	Destructive bool
}

type Option struct {
	Value    string
	Label    string
	Selected bool
}

type DeleteViewData struct {
	ID        int64
	Label     string
	Action    string
	CancelURL string
	Allowed   bool
	Reason    string
}
