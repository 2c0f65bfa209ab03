// Package i18n resolves display strings of the AdminResources bundle.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"
)

const (
	// BundleName is the only resource bundle the admin console reads from.
	BundleName = "AdminResources"
	// BaseLocale must define every key; other locales fall back to it.
	BaseLocale = "en-US"
)

//go:embed locales/*/*.yaml
var embeddedLocales embed.FS

type catalogFile struct {
	Locale   string            `yaml:"locale"`
	Bundle   string            `yaml:"bundle"`
	Messages map[string]string `yaml:"messages"`
}

// Catalog holds the messages of every locale and the matcher used to pick one.
type Catalog struct {
	messages map[string]map[string]string
	tags     []language.Tag
	matcher  language.Matcher
	builder  *catalog.Builder
	fallback language.Tag
}

// LoadEmbedded loads the catalogs compiled into the binary.
func LoadEmbedded(defaultLocale string) (*Catalog, error) {
	return LoadFromFS(embeddedLocales, defaultLocale)
}

func LoadFromFS(fsys fs.FS, defaultLocale string) (*Catalog, error) {
	paths, err := fs.Glob(fsys, "locales/*/"+BundleName+".yaml")
	if err != nil {
		return nil, fmt.Errorf("glob catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no %s catalogs found", BundleName)
	}
	sort.Strings(paths)

	c := &Catalog{messages: map[string]map[string]string{}}
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", p, err)
		}
		var file catalogFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", p, err)
		}
		if err := c.add(p, file); err != nil {
			return nil, err
		}
	}
	if _, ok := c.messages[BaseLocale]; !ok {
		return nil, fmt.Errorf("base locale %s is not defined", BaseLocale)
	}

	defaultTag, err := language.Parse(strings.TrimSpace(defaultLocale))
	if err != nil || !c.HasLocale(defaultTag.String()) {
		defaultTag = language.MustParse(BaseLocale)
	}
	if err := c.build(defaultTag); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) add(p string, file catalogFile) error {
	locale := strings.TrimSpace(file.Locale)
	if locale == "" {
		return fmt.Errorf("catalog %s: locale is required", p)
	}
	if dir := path.Base(path.Dir(p)); locale != dir {
		return fmt.Errorf("catalog %s: locale %q must match path locale %q", p, locale, dir)
	}
	if strings.TrimSpace(file.Bundle) != BundleName {
		return fmt.Errorf("catalog %s: bundle must be %q", p, BundleName)
	}
	if len(file.Messages) == 0 {
		return fmt.Errorf("catalog %s: messages are required", p)
	}
	if _, exists := c.messages[locale]; exists {
		return fmt.Errorf("catalog %s: locale %q already loaded", p, locale)
	}

	messages := make(map[string]string, len(file.Messages))
	for key, value := range file.Messages {
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("catalog %s: message key cannot be blank", p)
		}
		messages[key] = value
	}
	c.messages[locale] = messages
	return nil
}

// build registers every message with an x/text catalog. Keys missing from a
// locale are filled from the base locale.
func (c *Catalog) build(defaultTag language.Tag) error {
	c.fallback = defaultTag
	c.builder = catalog.NewBuilder(catalog.Fallback(defaultTag))

	base := c.messages[BaseLocale]
	locales := c.Locales()
	c.tags = make([]language.Tag, 0, len(locales))
	// The matcher prefers its first tag when nothing matches.
	c.tags = append(c.tags, defaultTag)
	for _, locale := range locales {
		tag, err := language.Parse(locale)
		if err != nil {
			return fmt.Errorf("parse locale tag %q: %w", locale, err)
		}
		if tag != defaultTag {
			c.tags = append(c.tags, tag)
		}
		messages := c.messages[locale]
		for key, value := range base {
			if localized, ok := messages[key]; ok {
				value = localized
			}
			if err := c.builder.SetString(tag, key, value); err != nil {
				return fmt.Errorf("register %s %q: %w", locale, key, err)
			}
		}
	}
	c.matcher = language.NewMatcher(c.tags)
	return nil
}

func (c *Catalog) HasLocale(locale string) bool {
	_, ok := c.messages[strings.TrimSpace(locale)]
	return ok
}

// Locales returns the loaded locale identifiers in lexical order.
func (c *Catalog) Locales() []string {
	out := make([]string, 0, len(c.messages))
	for locale := range c.messages {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

// Tags returns the supported tags, default first.
func (c *Catalog) Tags() []language.Tag {
	return append([]language.Tag(nil), c.tags...)
}

func (c *Catalog) Default() language.Tag {
	return c.fallback
}

// Keys lists the keys a locale defines itself, without fallback.
func (c *Catalog) Keys(locale string) []string {
	messages := c.messages[strings.TrimSpace(locale)]
	out := make([]string, 0, len(messages))
	for key := range messages {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

// Match picks the best supported tag for the preferred tags.
func (c *Catalog) Match(preferred ...language.Tag) language.Tag {
	if len(preferred) == 0 {
		return c.fallback
	}
	_, idx, conf := c.matcher.Match(preferred...)
	if conf == language.No || idx < 0 || idx >= len(c.tags) {
		return c.fallback
	}
	return c.tags[idx]
}

// Parse matches a raw locale string against the supported tags.
func (c *Catalog) Parse(raw string) (language.Tag, bool) {
	tag, err := language.Parse(strings.TrimSpace(raw))
	if err != nil {
		return language.Und, false
	}
	_, idx, conf := c.matcher.Match(tag)
	if conf == language.No || idx < 0 || idx >= len(c.tags) {
		return language.Und, false
	}
	return c.tags[idx], true
}

// Translator returns a translator bound to tag.
func (c *Catalog) Translator(tag language.Tag) *Translator {
	return &Translator{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(c.builder)),
	}
}

// Translator renders messages for one locale. Unknown keys render as the key.
type Translator struct {
	tag     language.Tag
	printer *message.Printer
}

func (t *Translator) Tag() language.Tag {
	if t == nil {
		return language.Und
	}
	return t.tag
}

// T looks key up and formats it with args.
func (t *Translator) T(key string, args ...any) string {
	if t == nil || t.printer == nil {
		return key
	}
	return t.printer.Sprintf(key, args...)
}
