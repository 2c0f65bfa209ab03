package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ccmadmin/ccm-admin/internal/db/gen"
	"github.com/ccmadmin/ccm-admin/internal/forms"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	MsgDomainRequired = "sites.error.domain_required"
	MsgDefaultUnnamed = "sites.error.default_unnamed"
)

type SiteInput struct {
	Domain      string
	DefaultSite bool
	Theme       string
}

func (in SiteInput) normalized() SiteInput {
	in.Domain = strings.ToLower(strings.TrimSpace(in.Domain))
	in.Theme = strings.TrimSpace(in.Theme)
	return in
}

func (in SiteInput) Snapshot() forms.Snapshot {
	return forms.Snapshot{
		FieldDomain:      in.Domain,
		FieldDefaultSite: boolField(in.DefaultSite),
		FieldTheme:       in.Theme,
	}
}

func SiteSnapshot(site gen.Site) forms.Snapshot {
	return SiteInput{Domain: site.DomainOfSite, DefaultSite: site.DefaultSite, Theme: site.DefaultTheme}.Snapshot()
}

// validateSite allows an empty domain only on the default site.
func (s *Service) validateSite(ctx context.Context, in SiteInput, existingID int64) error {
	errs := forms.Errors{}
	if in.Domain == "" && !in.DefaultSite {
		errs.Add(FieldDomain, MsgDomainRequired)
	}
	errs.MaxLength(FieldDomain, in.Domain, maxNameLength)
	errs.MaxLength(FieldTheme, in.Theme, maxNameLength)
	if err := errs.Unique(ctx, FieldDomain, in.Domain, func(ctx context.Context, domain string) (bool, error) {
		site, err := s.store.GetSiteByDomain(ctx, domain)
		return taken(err, site.ID, existingID)
	}); err != nil {
		return err
	}
	return errs.Err()
}

func (s *Service) GetSite(ctx context.Context, id int64) (gen.Site, error) {
	site, err := s.store.GetSite(ctx, id)
	return site, notFound(err, "get site")
}

func (s *Service) ListSites(ctx context.Context) ([]gen.Site, error) {
	sites, err := s.store.ListSites(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sites: %w", err)
	}
	return sites, nil
}

// CreateSite saves a new site. Marking it default clears the flag on the
// previous default site in the same transaction.
func (s *Service) CreateSite(ctx context.Context, in SiteInput) (gen.Site, error) {
	in = in.normalized()
	if err := s.validateSite(ctx, in, 0); err != nil {
		return gen.Site{}, err
	}
	var created gen.Site
	err := s.tx.WithinTx(ctx, func(q Store) error {
		if in.DefaultSite {
			if err := takeOverDefault(ctx, q, 0); err != nil {
				return err
			}
		}
		site, err := q.CreateSite(ctx, gen.CreateSiteParams{
			DomainOfSite: in.Domain,
			DefaultSite:  in.DefaultSite,
			DefaultTheme: in.Theme,
		})
		if err != nil {
			return saveError(err, FieldDomain, "create site")
		}
		created = site
		return nil
	})
	return created, err
}

func (s *Service) UpdateSite(ctx context.Context, id int64, in SiteInput) (gen.Site, error) {
	in = in.normalized()
	if _, err := s.GetSite(ctx, id); err != nil {
		return gen.Site{}, err
	}
	if err := s.validateSite(ctx, in, id); err != nil {
		return gen.Site{}, err
	}
	var updated gen.Site
	err := s.tx.WithinTx(ctx, func(q Store) error {
		if in.DefaultSite {
			if err := takeOverDefault(ctx, q, id); err != nil {
				return err
			}
		}
		site, err := q.UpdateSite(ctx, gen.UpdateSiteParams{
			ID:           id,
			DomainOfSite: in.Domain,
			DefaultSite:  in.DefaultSite,
			DefaultTheme: in.Theme,
		})
		if err != nil {
			return saveError(err, FieldDomain, "update site")
		}
		updated = site
		return nil
	})
	return updated, err
}

// takeOverDefault clears the default flag on every site except keepID. The
// current default keeps its flag while it has no domain, since only the
// default site may omit one.
func takeOverDefault(ctx context.Context, q Store, keepID int64) error {
	current, err := q.GetDefaultSiteForUpdate(ctx)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return nil
	case err != nil:
		return fmt.Errorf("lock default site: %w", err)
	}
	if current.ID == keepID {
		return nil
	}
	if current.DomainOfSite == "" {
		return forms.FieldError(FieldDefaultSite, MsgDefaultUnnamed)
	}
	if err := q.ClearDefaultSite(ctx, keepID); err != nil {
		return fmt.Errorf("clear default site: %w", err)
	}
	return nil
}

// DeleteSite fails with ErrSiteInUse while any application references the site.
func (s *Service) DeleteSite(ctx context.Context, id int64) (gen.Site, error) {
	var deleted gen.Site
	err := s.tx.WithinTx(ctx, func(q Store) error {
		site, err := q.GetSite(ctx, id)
		if err != nil {
			return notFound(err, "get site")
		}
		n, err := q.CountApplicationsForSite(ctx, pgtype.Int8{Int64: id, Valid: true})
		if err != nil {
			return fmt.Errorf("count site applications: %w", err)
		}
		if n > 0 {
			return ErrSiteInUse
		}
		if err := q.DeleteSite(ctx, id); err != nil {
			return fmt.Errorf("delete site: %w", err)
		}
		deleted = site
		return nil
	})
	return deleted, err
}
