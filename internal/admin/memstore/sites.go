package memstore

import (
	"context"
	"slices"
	"strings"

	"github.com/ccmadmin/ccm-admin/internal/db/gen"
	"github.com/jackc/pgx/v5/pgtype"
)

func (s *state) siteConflict(id int64, domain string, isDefault bool) error {
	for _, site := range s.sites {
		if site.ID == id {
			continue
		}
		if strings.EqualFold(site.DomainOfSite, domain) {
			return uniqueViolation("sites_domain_lower_key")
		}
		if isDefault && site.DefaultSite {
			return uniqueViolation("sites_single_default_key")
		}
	}
	return nil
}

func (s *state) appCountForSite(id int64) int64 {
	var n int64
	for _, app := range s.apps {
		if app.SiteID.Valid && app.SiteID.Int64 == id {
			n++
		}
	}
	return n
}

func (s *state) sitesMatching(pattern string) []gen.Site {
	var out []gen.Site
	for _, site := range s.sites {
		if matchLike(pattern, site.DomainOfSite) {
			out = append(out, site)
		}
	}
	slices.SortFunc(out, byLowerName(func(site gen.Site) string { return site.DomainOfSite }, func(site gen.Site) int64 { return site.ID }))
	return out
}

func (m *Store) CountSites(ctx context.Context) (int64, error) {
	s, unlock, err := m.lock()
	if err != nil {
		return 0, err
	}
	defer unlock()
	return int64(len(s.sites)), nil
}

func (m *Store) CountSitesByDomainPrefix(ctx context.Context, pattern string) (int64, error) {
	s, unlock, err := m.lock()
	if err != nil {
		return 0, err
	}
	defer unlock()
	return int64(len(s.sitesMatching(pattern))), nil
}

func (m *Store) ListSitesPageByDomainPrefix(ctx context.Context, arg gen.ListSitesPageByDomainPrefixParams) ([]gen.ListSitesPageByDomainPrefixRow, error) {
	s, unlock, err := m.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()
	page := window(s.sitesMatching(arg.Pattern), arg.PageOffset, arg.PageLimit)
	out := make([]gen.ListSitesPageByDomainPrefixRow, 0, len(page))
	for _, site := range page {
		out = append(out, gen.ListSitesPageByDomainPrefixRow{
			ID:               site.ID,
			DomainOfSite:     site.DomainOfSite,
			DefaultSite:      site.DefaultSite,
			DefaultTheme:     site.DefaultTheme,
			ApplicationCount: s.appCountForSite(site.ID),
		})
	}
	return out, nil
}

func (m *Store) ListSites(ctx context.Context) ([]gen.Site, error) {
	s, unlock, err := m.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()
	return s.sitesMatching("%"), nil
}

func (m *Store) GetSite(ctx context.Context, id int64) (gen.Site, error) {
	s, unlock, err := m.lock()
	if err != nil {
		return gen.Site{}, err
	}
	defer unlock()
	return get(s.sites, func(site gen.Site) bool { return site.ID == id })
}

func (m *Store) GetSiteByDomain(ctx context.Context, domainOfSite string) (gen.Site, error) {
	s, unlock, err := m.lock()
	if err != nil {
		return gen.Site{}, err
	}
	defer unlock()
	return get(s.sites, func(site gen.Site) bool { return strings.EqualFold(site.DomainOfSite, domainOfSite) })
}

func (m *Store) CreateSite(ctx context.Context, arg gen.CreateSiteParams) (gen.Site, error) {
	s, unlock, err := m.lock()
	if err != nil {
		return gen.Site{}, err
	}
	defer unlock()
	if err := s.siteConflict(0, arg.DomainOfSite, arg.DefaultSite); err != nil {
		return gen.Site{}, err
	}
	site := gen.Site{ID: s.nextID(), DomainOfSite: arg.DomainOfSite, DefaultSite: arg.DefaultSite, DefaultTheme: arg.DefaultTheme}
	s.sites = append(s.sites, site)
	return site, nil
}

func (m *Store) UpdateSite(ctx context.Context, arg gen.UpdateSiteParams) (gen.Site, error) {
	s, unlock, err := m.lock()
	if err != nil {
		return gen.Site{}, err
	}
	defer unlock()
	if err := s.siteConflict(arg.ID, arg.DomainOfSite, arg.DefaultSite); err != nil {
		return gen.Site{}, err
	}
	i, ok := find(s.sites, func(site gen.Site) bool { return site.ID == arg.ID })
	if !ok {
		return gen.Site{}, errNoRows()
	}
	s.sites[i].DomainOfSite = arg.DomainOfSite
	s.sites[i].DefaultSite = arg.DefaultSite
	s.sites[i].DefaultTheme = arg.DefaultTheme
	return s.sites[i], nil
}

func (m *Store) GetDefaultSiteForUpdate(ctx context.Context) (gen.Site, error) {
	s, unlock, err := m.lock()
	if err != nil {
		return gen.Site{}, err
	}
	defer unlock()
	return get(s.sites, func(site gen.Site) bool { return site.DefaultSite })
}

func (m *Store) ClearDefaultSite(ctx context.Context, keepID int64) error {
	s, unlock, err := m.lock()
	if err != nil {
		return err
	}
	defer unlock()
	for i := range s.sites {
		if s.sites[i].ID != keepID {
			s.sites[i].DefaultSite = false
		}
	}
	return nil
}

func (m *Store) DeleteSite(ctx context.Context, id int64) error {
	s, unlock, err := m.lock()
	if err != nil {
		return err
	}
	defer unlock()
	s.sites = slices.DeleteFunc(s.sites, func(site gen.Site) bool { return site.ID == id })
	return nil
}

func (m *Store) CountApplicationsForSite(ctx context.Context, siteID pgtype.Int8) (int64, error) {
	s, unlock, err := m.lock()
	if err != nil {
		return 0, err
	}
	defer unlock()
	if !siteID.Valid {
		return 0, nil
	}
	return s.appCountForSite(siteID.Int64), nil
}
