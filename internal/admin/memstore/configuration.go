package memstore

import (
	"context"
	"slices"
	"strings"

	"github.com/ccmadmin/ccm-admin/internal/db/gen"
)

func (s *state) configMatching(pattern string) []gen.ConfigurationEntry {
	var out []gen.ConfigurationEntry
	for _, entry := range s.config {
		if matchLike(pattern, entry.Name) {
			out = append(out, entry)
		}
	}
	slices.SortFunc(out, func(a, b gen.ConfigurationEntry) int { return strings.Compare(a.Name, b.Name) })
	return out
}

func (m *Store) CountConfigurationEntriesByNamePrefix(ctx context.Context, pattern string) (int64, error) {
	s, unlock, err := m.lock()
	if err != nil {
		return 0, err
	}
	defer unlock()
	return int64(len(s.configMatching(pattern))), nil
}

func (m *Store) ListConfigurationEntriesPageByNamePrefix(ctx context.Context, arg gen.ListConfigurationEntriesPageByNamePrefixParams) ([]gen.ConfigurationEntry, error) {
	s, unlock, err := m.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()
	return window(s.configMatching(arg.Pattern), arg.PageOffset, arg.PageLimit), nil
}

func (m *Store) GetConfigurationEntry(ctx context.Context, name string) (gen.ConfigurationEntry, error) {
	s, unlock, err := m.lock()
	if err != nil {
		return gen.ConfigurationEntry{}, err
	}
	defer unlock()
	return get(s.config, func(entry gen.ConfigurationEntry) bool { return entry.Name == name })
}

func (m *Store) UpdateConfigurationEntryValue(ctx context.Context, arg gen.UpdateConfigurationEntryValueParams) (gen.ConfigurationEntry, error) {
	s, unlock, err := m.lock()
	if err != nil {
		return gen.ConfigurationEntry{}, err
	}
	defer unlock()
	i, ok := find(s.config, func(entry gen.ConfigurationEntry) bool { return entry.Name == arg.Name })
	if !ok {
		return gen.ConfigurationEntry{}, errNoRows()
	}
	s.config[i].Value = arg.Value
	s.config[i].UpdatedAt = now()
	return s.config[i], nil
}

func (m *Store) EnsureConfigurationEntry(ctx context.Context, arg gen.EnsureConfigurationEntryParams) error {
	s, unlock, err := m.lock()
	if err != nil {
		return err
	}
	defer unlock()
	if _, ok := find(s.config, func(entry gen.ConfigurationEntry) bool { return entry.Name == arg.Name }); ok {
		return nil
	}
	s.config = append(s.config, gen.ConfigurationEntry{
		Name:        arg.Name,
		Value:       arg.Value,
		Kind:        arg.Kind,
		Description: arg.Description,
		UpdatedAt:   now(),
	})
	return nil
}
