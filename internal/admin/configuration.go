package admin

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/ccmadmin/ccm-admin/internal/db/gen"
	"github.com/ccmadmin/ccm-admin/internal/forms"
)

const (
	KindString = "string"
	KindBool   = "bool"
	KindInt    = "int"
	KindList   = "list"
)

// DefaultConfiguration lists the entries seeded on startup. Existing values are kept.
var DefaultConfiguration = []gen.EnsureConfigurationEntryParams{
	{Name: "core.site_name", Value: "CCM", Kind: KindString, Description: "Name shown in page titles and emails."},
	{Name: "core.default_locale", Value: "en-US", Kind: KindString, Description: "Locale used when a visitor has no preference."},
	{Name: "core.supported_locales", Value: "en-US\nde-DE", Kind: KindList, Description: "Locales content may be authored in, one per line."},
	{Name: "kernel.registration_enabled", Value: "false", Kind: KindBool, Description: "Allow visitors to create accounts."},
	{Name: "kernel.password_min_length", Value: "8", Kind: KindInt, Description: "Minimum password length for new passwords."},
	{Name: "kernel.session_timeout_minutes", Value: "720", Kind: KindInt, Description: "Idle time before a public session expires."},
	{Name: "mail.sender_address", Value: "noreply@example.org", Kind: KindString, Description: "From address of system emails."},
}

func (s *Service) EnsureDefaultConfiguration(ctx context.Context) error {
	for _, entry := range DefaultConfiguration {
		if err := s.store.EnsureConfigurationEntry(ctx, entry); err != nil {
			return fmt.Errorf("seed configuration %s: %w", entry.Name, err)
		}
	}
	return nil
}

func (s *Service) GetConfigurationEntry(ctx context.Context, name string) (gen.ConfigurationEntry, error) {
	entry, err := s.store.GetConfigurationEntry(ctx, strings.TrimSpace(name))
	return entry, notFound(err, "get configuration entry")
}

// NormalizeConfigurationValue validates raw against kind and returns its stored form.
func NormalizeConfigurationValue(kind, raw string) (string, bool) {
	switch kind {
	case KindBool:
		b, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return "", false
		}
		return strconv.FormatBool(b), true
	case KindInt:
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return "", false
		}
		return strconv.FormatInt(n, 10), true
	case KindList:
		lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
		out := make([]string, 0, len(lines))
		for _, line := range lines {
			if line = strings.TrimSpace(line); line != "" {
				out = append(out, line)
			}
		}
		return strings.Join(out, "\n"), true
	default:
		return strings.TrimSpace(raw), true
	}
}

func ConfigurationSnapshot(entry gen.ConfigurationEntry) forms.Snapshot {
	return forms.Snapshot{FieldValue: entry.Value}
}

func (s *Service) UpdateConfigurationEntry(ctx context.Context, name, raw string) (gen.ConfigurationEntry, error) {
	entry, err := s.GetConfigurationEntry(ctx, name)
	if err != nil {
		return gen.ConfigurationEntry{}, err
	}

	errs := forms.Errors{}
	value, ok := NormalizeConfigurationValue(entry.Kind, raw)
	if !ok {
		errs.Add(FieldValue, forms.MsgInvalidValue)
	}
	errs.MaxLength(FieldValue, value, maxValueLength)
	if err := errs.Err(); err != nil {
		return gen.ConfigurationEntry{}, err
	}

	updated, err := s.store.UpdateConfigurationEntryValue(ctx, gen.UpdateConfigurationEntryValueParams{Name: entry.Name, Value: value})
	if err != nil {
		return gen.ConfigurationEntry{}, notFound(err, "update configuration entry")
	}
	return updated, nil
}
